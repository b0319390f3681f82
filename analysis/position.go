package analysis

// Rank returns the 0-based position of every fine record among the fine
// records sharing its parent, in index order. Unmapped records rank Unmapped.
func Rank(m ContainmentMap) []int {
	first := make(map[int]int)
	ranks := make([]int, len(m))
	for i, p := range m {
		if p == Unmapped {
			ranks[i] = Unmapped
			continue
		}
		// indices ascend, so the first child seen is the parent's lowest
		f, ok := first[p]
		if !ok {
			f = i
			first[p] = i
		}
		ranks[i] = i - f
	}
	return ranks
}
