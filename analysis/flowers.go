package analysis

import (
	"github.com/mager/bloom/bloom"
)

// BuildFlowers counts the bars of every section.
//
// By default every section becomes a flower, sections without bars
// included. With trimUnmatched the section list is cut down to as many
// sections as received at least one bar, dropping from the tail.
func BuildFlowers(sections []Section, bars ContainmentMap, trimUnmatched bool) []bloom.Flower {
	counts := bars.Children()

	keep := len(sections)
	if trimUnmatched {
		keep = min(len(bars.Parents()), len(sections))
	}

	flowers := make([]bloom.Flower, 0, keep)
	for _, s := range sections[:keep] {
		flowers = append(flowers, bloom.Flower{
			Index:      s.Index,
			Start:      s.Start,
			End:        s.Start + s.Duration,
			Duration:   s.Duration,
			Loudness:   s.Loudness,
			Confidence: s.Confidence,
			NumBars:    counts[s.Index],
			Key:        s.Key,
			Notes:      []bloom.Note{},
		})
	}
	return flowers
}
