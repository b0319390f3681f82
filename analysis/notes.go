package analysis

import (
	"github.com/mager/bloom/bloom"
)

// AssembleNotes chains every pitch frame through its bar to its section.
// Frames without a bar, or whose bar has no section, are dropped and counted.
func AssembleNotes(
	frames []PitchFrame,
	frameBars ContainmentMap,
	bars []Bar,
	barSections ContainmentMap,
	sectionedBars []int,
) (notes []bloom.Note, dropped int) {
	notes = make([]bloom.Note, 0, len(frames))
	for i, f := range frames {
		b := frameBars.Parent(i)
		if b == Unmapped || b >= len(bars) {
			dropped++
			continue
		}
		s := barSections.Parent(b)
		if s == Unmapped {
			dropped++
			continue
		}

		bar := bars[b]
		notes = append(notes, bloom.Note{
			SectionIndex: s,
			BarIndex:     bar.Index,
			BarStart:     bar.Start,
			BarDuration:  bar.Duration,
			SectionedBar: sectionedBars[b],
			Start:        f.Start,
			Duration:     f.Duration,
			End:          f.End,
			PitchClasses: bloom.NewPitchClasses(f.Pitches),
		})
	}
	return notes, dropped
}
