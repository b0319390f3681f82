package analysis

import (
	"github.com/mager/bloom/bloom"
)

// BuildTree nests every note under the flower of its section, keeping the
// notes in the order given. No flowers or no notes make an empty tree.
func BuildTree(flowers []bloom.Flower, notes []bloom.Note) []bloom.Flower {
	if len(flowers) == 0 || len(notes) == 0 {
		return []bloom.Flower{}
	}

	bySection := make(map[int][]bloom.Note)
	for _, n := range notes {
		bySection[n.SectionIndex] = append(bySection[n.SectionIndex], n)
	}

	tree := make([]bloom.Flower, 0, len(flowers))
	for _, f := range flowers {
		f.Notes = []bloom.Note{}
		if ns, ok := bySection[f.Index]; ok {
			f.Notes = ns
		}
		tree = append(tree, f)
	}
	return tree
}
