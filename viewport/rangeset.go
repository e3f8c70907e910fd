package viewport

import "github.com/google/btree"

type rangeItem LineRange

func (r rangeItem) Less(than btree.Item) bool {
	return r.Start < than.(rangeItem).Start
}

// NewRangeSet creates a RangeSet holding the given ranges. Overlapping
// and adjacent ranges are merged.
func NewRangeSet(ranges ...LineRange) *RangeSet {
	s := &RangeSet{tree: btree.New(8)}
	for _, r := range ranges {
		s.Add(r)
	}
	return s
}

// Add inserts r, merging it with every range it touches.
func (s *RangeSet) Add(r LineRange) {
	r = r.normalize()

	var touching []rangeItem
	s.tree.DescendLessOrEqual(rangeItem{Start: r.Start}, func(it btree.Item) bool {
		if v := it.(rangeItem); v.End >= r.Start-1 {
			touching = append(touching, v)
		}
		return false
	})
	s.tree.AscendGreaterOrEqual(rangeItem{Start: r.Start}, func(it btree.Item) bool {
		v := it.(rangeItem)
		if v.Start > r.End+1 {
			return false
		}
		touching = append(touching, v)
		return true
	})

	for _, v := range touching {
		s.tree.Delete(v)
		r.Start = min(r.Start, v.Start)
		r.End = max(r.End, v.End)
	}
	s.tree.ReplaceOrInsert(rangeItem(r))
}

// Contains reports whether line is covered by any range in the set.
func (s *RangeSet) Contains(line int) bool {
	var found bool
	s.tree.DescendLessOrEqual(rangeItem{Start: line}, func(it btree.Item) bool {
		found = it.(rangeItem).End >= line
		return false
	})
	return found
}

// Len returns the number of disjoint ranges in the set.
func (s *RangeSet) Len() int {
	return s.tree.Len()
}

// Ranges returns the disjoint ranges in ascending order.
func (s *RangeSet) Ranges() []LineRange {
	out := make([]LineRange, 0, s.tree.Len())
	s.tree.Ascend(func(it btree.Item) bool {
		out = append(out, LineRange(it.(rangeItem)))
		return true
	})
	return out
}
