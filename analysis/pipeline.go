package analysis

import (
	"github.com/mager/bloom/bloom"
)

// Options tune how a garden is grown.
type Options struct {
	// TrimUnmatchedSections drops trailing sections instead of emitting
	// flowers with no bars.
	TrimUnmatchedSections bool
}

// Result is the garden grown from one analysis.
type Result struct {
	Flowers []bloom.Flower
	Stats   bloom.Stats
}

// Build runs the whole pipeline over one raw analysis. It only fails on
// malformed records; empty series produce an empty garden.
func Build(a bloom.Analysis, opts Options) (Result, error) {
	sections, err := NormalizeSections(a.Sections)
	if err != nil {
		return Result{}, err
	}
	bars, err := NormalizeBars(a.Bars)
	if err != nil {
		return Result{}, err
	}
	segments, err := NormalizeSegments(a.Segments)
	if err != nil {
		return Result{}, err
	}
	frames, err := ExtractPitchFrames(segments)
	if err != nil {
		return Result{}, err
	}

	barSections := Contain(bars, sections)
	frameBars := Contain(frames, bars)
	sectionedBars := Rank(barSections)

	flowers := BuildFlowers(sections, barSections, opts.TrimUnmatchedSections)
	notes, dropped := AssembleNotes(frames, frameBars, bars, barSections, sectionedBars)
	tree := BuildTree(flowers, notes)

	stats := bloom.Stats{
		NumberSections: len(tree),
		UnmappedBars:   barSections.Unmapped(),
	}
	placed := 0
	for _, f := range tree {
		stats.NumberBars += f.NumBars
		placed += len(f.Notes)
	}
	stats.DroppedNotes = dropped + len(notes) - placed

	return Result{Flowers: tree, Stats: stats}, nil
}
