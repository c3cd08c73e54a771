// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"cmp"
	"slices"
)

// ranked pairs an input item with its computed zero-based rank.
type ranked[T any] struct {
	item T
	rank int
}

// rankByCompare stable-sorts items with the given three-way comparator and
// assigns zero-based ranks. An item comparing equal to its immediate
// predecessor shares the predecessor's rank; otherwise its rank is the
// predecessor's rank plus one. Ranks are dense: a group of k tied items
// advances the next distinct group by 1, not by k.
func rankByCompare[T any](items []T, compare func(a, b T) int) []ranked[T] {
	sorted := make([]T, len(items))
	copy(sorted, items)
	slices.SortStableFunc(sorted, compare)

	out := make([]ranked[T], len(sorted))
	rank := 0
	for i, item := range sorted {
		if i > 0 && compare(sorted[i-1], item) != 0 {
			rank++
		}
		out[i] = ranked[T]{item: item, rank: rank}
	}
	return out
}

// rankByKey ranks items by an orderable key that may be absent. Present keys
// compare by natural ascending order (smaller key = better rank). Items with
// an absent key sort after every item with a present key, and two absent
// keys compare equal.
func rankByKey[T any](items []T, key func(T) (int, bool)) []ranked[T] {
	return rankByCompare(items, func(a, b T) int {
		ka, aok := key(a)
		kb, bok := key(b)
		switch {
		case aok && bok:
			return cmp.Compare(ka, kb)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
}
