package bloom

// NumPitchClasses is the length of every chroma vector.
const NumPitchClasses = 12

// PitchNames are the pitch classes in chroma order.
var PitchNames = [NumPitchClasses]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Flower is a section of the track together with the notes played in it.
type Flower struct {
	Index      int     `json:"index_sections"`
	Start      float64 `json:"start_sections"`
	End        float64 `json:"end_sections"`
	Duration   float64 `json:"duration_sections"`
	Loudness   float64 `json:"loudness_sections"`
	Confidence float64 `json:"confidence_sections"`
	NumBars    int     `json:"num_bars_sections"`
	Key        int     `json:"key_sections"`
	Notes      []Note  `json:"notes"`
}

// Note is a pitch frame attributed to its bar and section.
type Note struct {
	SectionIndex int     `json:"index_sections"`
	BarIndex     int     `json:"index_bars"`
	BarStart     float64 `json:"start_bars"`
	BarDuration  float64 `json:"duration_bars"`
	// SectionedBar is the 0-based position of the note's bar within its section.
	SectionedBar int     `json:"sectioned_bar"`
	Start        float64 `json:"start_pitches"`
	Duration     float64 `json:"duration_pitches"`
	End          float64 `json:"end_pitches"`

	PitchClasses
}

// PitchClasses holds one intensity per pitch class. The fields serialize
// flat into the enclosing note under their pitch names.
type PitchClasses struct {
	C      float64 `json:"C"`
	CSharp float64 `json:"C#"`
	D      float64 `json:"D"`
	DSharp float64 `json:"D#"`
	E      float64 `json:"E"`
	F      float64 `json:"F"`
	FSharp float64 `json:"F#"`
	G      float64 `json:"G"`
	GSharp float64 `json:"G#"`
	A      float64 `json:"A"`
	ASharp float64 `json:"A#"`
	B      float64 `json:"B"`
}

// NewPitchClasses maps a chroma vector onto named pitch classes.
func NewPitchClasses(v [NumPitchClasses]float64) PitchClasses {
	return PitchClasses{
		C: v[0], CSharp: v[1], D: v[2], DSharp: v[3],
		E: v[4], F: v[5], FSharp: v[6], G: v[7],
		GSharp: v[8], A: v[9], ASharp: v[10], B: v[11],
	}
}

// Vector returns the intensities in chroma order.
func (p PitchClasses) Vector() [NumPitchClasses]float64 {
	return [NumPitchClasses]float64{
		p.C, p.CSharp, p.D, p.DSharp,
		p.E, p.F, p.FSharp, p.G,
		p.GSharp, p.A, p.ASharp, p.B,
	}
}

// Stats summarizes one garden.
type Stats struct {
	// NumberSections is the number of flowers in the garden.
	NumberSections int `json:"number_sections"`
	// NumberBars is the number of bars (petals) across all flowers.
	NumberBars int `json:"number_bars"`
	// UnmappedBars counts bars that started after every section ended.
	UnmappedBars int `json:"unmapped_bars"`
	// DroppedNotes counts pitch frames that could not be chained to a bar and a section.
	DroppedNotes int `json:"dropped_notes"`
}
