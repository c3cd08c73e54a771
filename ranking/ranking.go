// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import "fmt"

// ComputeRankings derives the full rank tuple for every option from the
// given responses. It is a pure function: no I/O, no retained state, safe
// for concurrent use. An empty option list yields an empty map.
func ComputeRankings(options []Option, responses []Response) map[string]RankTuple {
	if len(options) == 0 {
		return map[string]RankTuple{}
	}

	tallies := tallyByOption(options, responses)

	fewestNos := rankIndex("fewest-nos", rankByKey(options, func(o Option) (int, bool) {
		t, ok := tallies[o.ID]
		if !ok {
			return 0, false
		}
		return t[-1], true
	}))

	fewestNosMaybes := rankIndex("fewest-nos-maybes", rankByKey(options, func(o Option) (int, bool) {
		t, ok := tallies[o.ID]
		if !ok {
			return 0, false
		}
		return t[-1] + t[0], true
	}))

	bestScore := rankIndex("best-score", rankByKey(options, func(o Option) (int, bool) {
		t, ok := tallies[o.ID]
		if !ok {
			return 0, false
		}
		// Ascending rank order, so highest weighted sum ranks first.
		return -t.Score(), true
	}))

	componentsOf := func(o Option) [3]int {
		return [3]int{
			fewestNos.rankOf(o.ID),
			fewestNosMaybes.rankOf(o.ID),
			bestScore.rankOf(o.ID),
		}
	}

	// The overall criterion is a positional composite over the three
	// component ranks, weakest (best-score) to strongest (fewest-nos).
	// This exact arithmetic is load-bearing: the label thresholds are
	// calibrated to it, so it must not be replaced with a true
	// lexicographic compare even though ties are possible when the rank
	// spread exceeds the option count.
	n := len(options)
	overall := rankIndex("overall", rankByKey(options, func(o Option) (int, bool) {
		parts := [3]int{
			bestScore.rankOf(o.ID),
			fewestNosMaybes.rankOf(o.ID),
			fewestNos.rankOf(o.ID),
		}
		aggregate := 0
		for i, r := range parts {
			aggregate += i*n + r
		}
		return aggregate, true
	}))

	dominance := rankIndex("dominance", rankByCompare(options, func(a, b Option) int {
		return compareDominance(componentsOf(a), componentsOf(b))
	}))

	result := make(map[string]RankTuple, len(options))
	for _, o := range options {
		result[o.ID] = RankTuple{
			FewestNos:        fewestNos.rankOf(o.ID),
			FewestNosMaybes:  fewestNosMaybes.rankOf(o.ID),
			BestScore:        bestScore.rankOf(o.ID),
			Overall:          overall.rankOf(o.ID),
			StrictlySuperior: dominance.rankOf(o.ID),
		}
	}
	return result
}

// compareDominance orders two options by their component rank tuples
// (fewest-nos, fewest-nos-maybes, best-score). a precedes b when a is at
// least as good in every component and strictly better in one; options that
// are better in some components and worse in others are incomparable and
// treated as equal.
func compareDominance(a, b [3]int) int {
	aAtMost, bAtMost := true, true
	for i := range a {
		if a[i] > b[i] {
			aAtMost = false
		}
		if b[i] > a[i] {
			bAtMost = false
		}
	}
	switch {
	case aAtMost && !bAtMost:
		return -1
	case bAtMost && !aAtMost:
		return 1
	default:
		return 0
	}
}

// criterionIndex maps option id to its rank under one criterion, built once
// per computation so rank lookups are O(1) instead of a linear scan.
type criterionIndex struct {
	criterion string
	ranks     map[string]int
}

func rankIndex(criterion string, entries []ranked[Option]) criterionIndex {
	ranks := make(map[string]int, len(entries))
	for _, e := range entries {
		ranks[e.item.ID] = e.rank
	}
	return criterionIndex{criterion: criterion, ranks: ranks}
}

// rankOf returns the rank for an option that is guaranteed to have been
// ranked. A missing entry means the index was built from a different option
// set, which is a programming defect, not a recoverable condition.
func (ci criterionIndex) rankOf(optionID string) int {
	rank, ok := ci.ranks[optionID]
	if !ok {
		panic(fmt.Sprintf("ranking: option %q missing from %s index", optionID, ci.criterion))
	}
	return rank
}
