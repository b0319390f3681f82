package analysis

import (
	"fmt"

	"github.com/mager/bloom/bloom"
)

// PitchFrame is a segment reduced to its timing and chroma vector.
type PitchFrame struct {
	Interval
	Pitches [bloom.NumPitchClasses]float64
}

// ExtractPitchFrames builds one pitch frame per segment. Every segment must
// carry exactly one intensity per pitch class.
func ExtractPitchFrames(segments []Segment) ([]PitchFrame, error) {
	frames := make([]PitchFrame, 0, len(segments))
	for _, s := range segments {
		if len(s.Pitches) != bloom.NumPitchClasses {
			return nil, fmt.Errorf("%w: segment %d has %d pitches, want %d",
				bloom.ErrMalformedRecord, s.Index, len(s.Pitches), bloom.NumPitchClasses)
		}

		f := PitchFrame{Interval: s.Interval}
		copy(f.Pitches[:], s.Pitches)
		frames = append(frames, f)
	}
	return frames, nil
}
