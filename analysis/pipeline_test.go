package analysis

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/mager/bloom/bloom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneHot(i int) []float64 {
	v := make([]float64, bloom.NumPitchClasses)
	v[i] = 1
	return v
}

func singleSectionAnalysis() bloom.Analysis {
	a := bloom.Analysis{
		Sections: []bloom.RawSection{
			{Start: bloom.Float(0), Duration: bloom.Float(20), Loudness: -5, Confidence: 0.9, Key: bloom.Int(2)},
		},
		Bars: []bloom.RawBar{
			{Start: bloom.Float(0), Duration: bloom.Float(10)},
			{Start: bloom.Float(10), Duration: bloom.Float(10)},
		},
	}
	for _, s := range []float64{0, 5, 10, 15} {
		a.Segments = append(a.Segments, bloom.RawSegment{Start: bloom.Float(s), Duration: bloom.Float(5), Pitches: oneHot(2)})
	}
	return a
}

// randomAnalysis builds a contiguous analysis with a few records past the
// end of the track.
func randomAnalysis(r *rand.Rand) bloom.Analysis {
	var a bloom.Analysis
	t := 0.0
	n := 1 + r.IntN(6)
	for i := 0; i < n; i++ {
		d := 5 + r.Float64()*30
		a.Sections = append(a.Sections, bloom.RawSection{Start: bloom.Float(t), Duration: bloom.Float(d), Loudness: -r.Float64() * 30, Confidence: r.Float64(), Key: bloom.Int(r.IntN(12))})
		t += d
	}
	end := t

	t = 0
	for t < end+3 {
		d := 1 + r.Float64()*3
		a.Bars = append(a.Bars, bloom.RawBar{Start: bloom.Float(t), Duration: bloom.Float(d)})
		t += d
	}

	t = 0
	for t < end+6 {
		d := 0.1 + r.Float64()
		p := make([]float64, bloom.NumPitchClasses)
		for k := range p {
			p[k] = r.Float64()
		}
		a.Segments = append(a.Segments, bloom.RawSegment{Start: bloom.Float(t), Duration: bloom.Float(d), Pitches: p})
		t += d
	}
	return a
}

func TestBuildSingleSection(t *testing.T) {
	res, err := Build(singleSectionAnalysis(), Options{})
	require.NoError(t, err)

	require.Len(t, res.Flowers, 1)
	f := res.Flowers[0]
	assert.Equal(t, 2, f.NumBars)
	assert.Equal(t, 20.0, f.End)
	assert.Equal(t, -5.0, f.Loudness)
	assert.Equal(t, 0.9, f.Confidence)
	assert.Equal(t, 2, f.Key)

	require.Len(t, f.Notes, 4)
	var sectioned []int
	for _, n := range f.Notes {
		sectioned = append(sectioned, n.SectionedBar)
		assert.Equal(t, 1.0, n.D)
		assert.Equal(t, n.Start+5, n.End)
	}
	assert.Equal(t, []int{0, 0, 1, 1}, sectioned)
	assert.Equal(t, []int{0, 0, 1, 1}, []int{f.Notes[0].BarIndex, f.Notes[1].BarIndex, f.Notes[2].BarIndex, f.Notes[3].BarIndex})

	assert.Equal(t, bloom.Stats{NumberSections: 1, NumberBars: 2}, res.Stats)
}

func TestBuildSectionedBars(t *testing.T) {
	a := bloom.Analysis{
		Sections: []bloom.RawSection{
			{Start: bloom.Float(0), Duration: bloom.Float(6)},
			{Start: bloom.Float(6), Duration: bloom.Float(4)},
		},
	}
	for i := 0; i < 5; i++ {
		s := float64(i * 2)
		a.Bars = append(a.Bars, bloom.RawBar{Start: bloom.Float(s), Duration: bloom.Float(2)})
		a.Segments = append(a.Segments, bloom.RawSegment{Start: bloom.Float(s), Duration: bloom.Float(2), Pitches: oneHot(i)})
	}

	res, err := Build(a, Options{})
	require.NoError(t, err)
	require.Len(t, res.Flowers, 2)

	var sectioned []int
	for _, f := range res.Flowers {
		for _, n := range f.Notes {
			sectioned = append(sectioned, n.SectionedBar)
		}
	}
	assert.Equal(t, []int{0, 1, 2, 0, 1}, sectioned)
	assert.Equal(t, 3, res.Flowers[0].NumBars)
	assert.Equal(t, 2, res.Flowers[1].NumBars)
}

func TestBuildDropsRecordsPastTheEnd(t *testing.T) {
	a := singleSectionAnalysis()
	a.Bars = append(a.Bars, bloom.RawBar{Start: bloom.Float(20), Duration: bloom.Float(10)})
	a.Segments = append(a.Segments,
		bloom.RawSegment{Start: bloom.Float(20), Duration: bloom.Float(5), Pitches: oneHot(0)},
		bloom.RawSegment{Start: bloom.Float(35), Duration: bloom.Float(5), Pitches: oneHot(0)},
	)

	res, err := Build(a, Options{})
	require.NoError(t, err)

	require.Len(t, res.Flowers, 1)
	assert.Len(t, res.Flowers[0].Notes, 4)
	assert.Equal(t, 2, res.Flowers[0].NumBars)
	assert.Equal(t, 1, res.Stats.UnmappedBars)
	assert.Equal(t, 2, res.Stats.DroppedNotes)
}

func TestBuildTrimUnmatchedSections(t *testing.T) {
	a := singleSectionAnalysis()
	a.Sections = append(a.Sections, bloom.RawSection{Start: bloom.Float(20), Duration: bloom.Float(10)})

	res, err := Build(a, Options{})
	require.NoError(t, err)
	require.Len(t, res.Flowers, 2)
	assert.Equal(t, 0, res.Flowers[1].NumBars)
	assert.Empty(t, res.Flowers[1].Notes)

	res, err = Build(a, Options{TrimUnmatchedSections: true})
	require.NoError(t, err)
	assert.Len(t, res.Flowers, 1)
	assert.Equal(t, 1, res.Stats.NumberSections)
}

func TestBuildEmptyInputs(t *testing.T) {
	cases := map[string]func(*bloom.Analysis){
		"no sections": func(a *bloom.Analysis) { a.Sections = nil },
		"no bars":     func(a *bloom.Analysis) { a.Bars = nil },
		"no segments": func(a *bloom.Analysis) { a.Segments = []bloom.RawSegment{} },
		"nothing":     func(a *bloom.Analysis) { *a = bloom.Analysis{} },
	}
	for name, strip := range cases {
		t.Run(name, func(t *testing.T) {
			a := singleSectionAnalysis()
			strip(&a)

			res, err := Build(a, Options{})
			require.NoError(t, err)
			assert.NotNil(t, res.Flowers)
			assert.Empty(t, res.Flowers)

			b, err := json.Marshal(res.Flowers)
			require.NoError(t, err)
			assert.Equal(t, "[]", string(b))
		})
	}
}

func TestBuildMalformed(t *testing.T) {
	a := singleSectionAnalysis()
	a.Sections[0].Duration = nil
	_, err := Build(a, Options{})
	assert.ErrorIs(t, err, bloom.ErrMalformedRecord)

	a = singleSectionAnalysis()
	a.Segments[1].Pitches = a.Segments[1].Pitches[:11]
	_, err = Build(a, Options{})
	assert.ErrorIs(t, err, bloom.ErrMalformedRecord)
}

func TestBuildIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 1))
	for i := 0; i < 20; i++ {
		a := randomAnalysis(r)

		first, err := Build(a, Options{})
		require.NoError(t, err)
		second, err := Build(a, Options{})
		require.NoError(t, err)

		b1, err := json.Marshal(first.Flowers)
		require.NoError(t, err)
		b2, err := json.Marshal(second.Flowers)
		require.NoError(t, err)
		assert.Equal(t, b1, b2)
		assert.Equal(t, first.Stats, second.Stats)
	}
}

func TestBuildNotesAreComplete(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 20; i++ {
		res, err := Build(randomAnalysis(r), Options{})
		require.NoError(t, err)

		b, err := json.Marshal(res.Flowers)
		require.NoError(t, err)

		var tree []map[string]any
		require.NoError(t, json.Unmarshal(b, &tree))

		bars := 0
		for _, flower := range tree {
			bars += int(flower["num_bars_sections"].(float64))
			notes, ok := flower["notes"].([]any)
			require.True(t, ok)
			for _, raw := range notes {
				note := raw.(map[string]any)
				assert.Equal(t, flower["index_sections"], note["index_sections"])
				for _, name := range bloom.PitchNames {
					_, ok := note[name].(float64)
					assert.True(t, ok, "note is missing %s", name)
				}
			}
		}
		assert.Equal(t, res.Stats.NumberBars, bars)
		assert.Positive(t, res.Stats.DroppedNotes)
	}
}
