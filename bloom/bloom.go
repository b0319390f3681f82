package bloom

// Track is the single track a search query resolved to.
type Track struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Artist string   `json:"artist"`
	ISRC   string   `json:"isrc,omitempty"`
	Source string   `json:"source"`
	Genres []string `json:"genres,omitempty"`
}

// Analysis is the raw audio analysis of a track, as handed over by the
// analysis provider. Records are kept in provider order.
type Analysis struct {
	Sections []RawSection `json:"sections"`
	Bars     []RawBar     `json:"bars"`
	Segments []RawSegment `json:"segments"`
}

// RawSection is a section of a song
type RawSection struct {
	// Start is the starting point (in seconds) of the section. A missing start is read as 0.
	Start *float64 `json:"start"`
	// Duration is the duration (in seconds) of the section.
	Duration *float64 `json:"duration"`
	// Loudness is the overall loudness of the section in decibels (dB). Loudness values are useful for comparing relative loudness of sections within tracks.
	// Example: -14.938
	Loudness float64 `json:"loudness"`
	// Confidence, from 0.0 to 1.0, of the reliability of the section's "designation".
	Confidence float64 `json:"confidence"`
	// Key is the estimated overall key of the section. Integers map to pitches using standard Pitch Class notation. E.g. 0 = C, 1 = C♯/D♭, 2 = D, and so on. If no key was detected, the value is -1.
	// Range: -1 - 11. A missing key is read as NoKey.
	Key *int `json:"key"`
}

// RawBar is a bar (or measure) of a song
type RawBar struct {
	Start    *float64 `json:"start"`
	Duration *float64 `json:"duration"`
}

// RawSegment is a segment of a song
type RawSegment struct {
	// Start is the starting point (in seconds) of the segment
	Start *float64 `json:"start"`
	// Duration is the duration (in seconds) of the segment.
	Duration *float64 `json:"duration"`
	// Pitches are given by a “chroma” vector, corresponding to the 12 pitch classes C, C#, D to B, with values ranging from 0 to 1 that describe the relative dominance of every pitch in the chromatic scale.
	// Vectors are normalized to 1 by their strongest dimension. Values are carried through as-is.
	Pitches []float64 `json:"pitches"`
}

// NoKey is the key of a section with no detected key.
const NoKey = -1

// Float returns a pointer to v, for building raw records by hand.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for building raw records by hand.
func Int(v int) *int {
	return &v
}
