// Package analysis turns the raw interval series of a track analysis into
// a garden of flowers (sections) and notes (pitch frames).
package analysis

import (
	"fmt"
	"math"

	"github.com/mager/bloom/bloom"
)

// Interval is one record of an interval series. Index is the record's
// 0-based position in its series.
type Interval struct {
	Index    int
	Start    float64
	Duration float64
	End      float64
}

// Span returns the interval itself. Types embedding Interval inherit it.
func (iv Interval) Span() Interval {
	return iv
}

// Spanner is anything that covers an interval of the track.
type Spanner interface {
	Span() Interval
}

// Section is a normalized section record.
type Section struct {
	Interval
	Loudness   float64
	Confidence float64
	Key        int
}

// Bar is a normalized bar record.
type Bar struct {
	Interval
}

// Segment is a normalized segment record with its raw chroma vector.
type Segment struct {
	Interval
	Pitches []float64
}

func newInterval(kind string, i int, start, duration *float64) (Interval, error) {
	if duration == nil {
		return Interval{}, fmt.Errorf("%w: %s %d has no duration", bloom.ErrMalformedRecord, kind, i)
	}

	var s float64
	if start != nil {
		s = *start
	}
	d := *duration

	if math.IsNaN(s) || math.IsNaN(d) || s < 0 || d < 0 {
		return Interval{}, fmt.Errorf("%w: %s %d has start %v and duration %v", bloom.ErrMalformedRecord, kind, i, s, d)
	}

	return Interval{Index: i, Start: s, Duration: d, End: s + d}, nil
}

// NormalizeSections indexes sections in input order and derives their ends.
func NormalizeSections(raw []bloom.RawSection) ([]Section, error) {
	sections := make([]Section, 0, len(raw))
	for i, r := range raw {
		iv, err := newInterval("section", i, r.Start, r.Duration)
		if err != nil {
			return nil, err
		}
		key := bloom.NoKey
		if r.Key != nil {
			key = *r.Key
		}
		sections = append(sections, Section{
			Interval:   iv,
			Loudness:   r.Loudness,
			Confidence: r.Confidence,
			Key:        key,
		})
	}
	return sections, nil
}

// NormalizeBars indexes bars in input order and derives their ends.
func NormalizeBars(raw []bloom.RawBar) ([]Bar, error) {
	bars := make([]Bar, 0, len(raw))
	for i, r := range raw {
		iv, err := newInterval("bar", i, r.Start, r.Duration)
		if err != nil {
			return nil, err
		}
		bars = append(bars, Bar{Interval: iv})
	}
	return bars, nil
}

// NormalizeSegments indexes segments in input order and derives their ends.
func NormalizeSegments(raw []bloom.RawSegment) ([]Segment, error) {
	segments := make([]Segment, 0, len(raw))
	for i, r := range raw {
		iv, err := newInterval("segment", i, r.Start, r.Duration)
		if err != nil {
			return nil, err
		}
		segments = append(segments, Segment{Interval: iv, Pitches: r.Pitches})
	}
	return segments, nil
}
