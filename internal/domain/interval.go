package domain

import "sort"

// IntervalTree provides O(log n + k) residue-containment queries over a
// fixed set of domain features using a sorted-slice approach. Features are
// loaded once at build time and never modified.
type IntervalTree struct {
	intervals []Feature
	maxEnd    []int // maxEnd[i] = max(End) for intervals[0..i]
}

// BuildIntervalTree creates an interval tree from extracted features.
func BuildIntervalTree(features []Feature) *IntervalTree {
	if len(features) == 0 {
		return &IntervalTree{}
	}

	intervals := make([]Feature, len(features))
	copy(intervals, features)
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})

	// Prefix max over End. The containment scan walks candidates from high
	// start down, so the prune at index i must bound every interval at or
	// before i, not after it.
	maxEnd := make([]int, len(intervals))
	maxEnd[0] = intervals[0].End
	for i := 1; i < len(intervals); i++ {
		maxEnd[i] = intervals[i].End
		if maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &IntervalTree{intervals: intervals, maxEnd: maxEnd}
}

// At returns every feature whose [Start, End] range contains pos.
func (t *IntervalTree) At(pos int) []Feature {
	if len(t.intervals) == 0 {
		return nil
	}

	var result []Feature

	// Binary search: candidates are exactly the intervals with Start <= pos.
	hi := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].Start > pos
	})

	for i := hi - 1; i >= 0; i-- {
		// maxEnd[i] bounds every End in [0, i]; once it drops below pos no
		// earlier interval can contain it.
		if t.maxEnd[i] < pos {
			break
		}
		if t.intervals[i].End >= pos {
			result = append(result, t.intervals[i])
		}
	}

	return result
}
