package analysis

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Unmapped marks a fine record with no containing coarse record.
const Unmapped = -1

// ContainmentMap holds, for every fine record index, the index of the coarse
// record containing it, or Unmapped.
type ContainmentMap []int

// Parent returns the coarse index for fine record i.
func (m ContainmentMap) Parent(i int) int {
	if i < 0 || i >= len(m) {
		return Unmapped
	}
	return m[i]
}

// Unmapped counts the fine records that have no parent.
func (m ContainmentMap) Unmapped() int {
	n := 0
	for _, p := range m {
		if p == Unmapped {
			n++
		}
	}
	return n
}

// Children counts the fine records mapped to each coarse index.
func (m ContainmentMap) Children() map[int]int {
	counts := make(map[int]int)
	for _, p := range m {
		if p != Unmapped {
			counts[p]++
		}
	}
	return counts
}

// Parents returns the distinct coarse indexes that received a fine record,
// in ascending order.
func (m ContainmentMap) Parents() []int {
	parents := maps.Keys(m.Children())
	slices.Sort(parents)
	return parents
}

// Contain maps every fine record to the earliest coarse record that has not
// ended by the time the fine record starts. Intervals are half-open, so a
// fine record starting on a boundary belongs to the coarse record beginning
// there, and a fine record starting exactly at the last coarse end is
// Unmapped. Coarse starts are never checked: with contiguous coarse series the
// earliest unfinished interval is the one containing the fine start.
//
// Fine and coarse records are addressed by their position, which for a
// normalized series is their Index.
func Contain[F, C Spanner](fine []F, coarse []C) ContainmentMap {
	// reach[i] is the latest end among coarse[0..i]. It is sorted even when
	// the coarse ends are not, and its first value past a start is at the
	// same position as the first coarse end past that start.
	reach := make([]float64, len(coarse))
	for i, c := range coarse {
		end := c.Span().End
		if i > 0 && reach[i-1] > end {
			end = reach[i-1]
		}
		reach[i] = end
	}

	m := make(ContainmentMap, len(fine))
	for i, f := range fine {
		j, _ := slices.BinarySearchFunc(reach, f.Span().Start, func(end, start float64) int {
			if end > start {
				return 1
			}
			return -1
		})
		if j == len(coarse) {
			m[i] = Unmapped
			continue
		}
		m[i] = coarse[j].Span().Index
	}
	return m
}
