package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	m := ContainmentMap{0, 0, 0, 1, 1}
	assert.Equal(t, []int{0, 1, 2, 0, 1}, Rank(m))
}

func TestRankSkipsUnmapped(t *testing.T) {
	m := ContainmentMap{0, 0, 1, Unmapped}
	assert.Equal(t, []int{0, 1, 0, Unmapped}, Rank(m))
}

func TestRankFromBars(t *testing.T) {
	sections := spans([2]float64{0, 12}, [2]float64{12, 20})
	bars := spans([2]float64{0, 4}, [2]float64{4, 8}, [2]float64{8, 12}, [2]float64{12, 16}, [2]float64{16, 20})

	assert.Equal(t, []int{0, 1, 2, 0, 1}, Rank(Contain(bars, sections)))
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(ContainmentMap{}))
}
