// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

// Tally counts, per preference value, how many responses recorded that value
// for one option.
type Tally map[int]int

// Score is the weighted sum of the tally: each preference value times the
// number of responses that chose it.
func (t Tally) Score() int {
	sum := 0
	for preference, count := range t {
		sum += preference * count
	}
	return sum
}

// tallyByOption aggregates every selected option across all responses into
// per-option tallies. Options nobody selected are absent from the result map
// (not zero-filled): downstream criteria must treat a missing entry as "no
// data", not as zero. Selections referencing an option id that is not in the
// options list are dropped.
func tallyByOption(options []Option, responses []Response) map[string]Tally {
	known := make(map[string]struct{}, len(options))
	for _, opt := range options {
		known[opt.ID] = struct{}{}
	}

	tallies := make(map[string]Tally)
	for _, resp := range responses {
		for _, sel := range resp.SelectedOptions {
			if _, ok := known[sel.OptionID]; !ok {
				continue
			}
			t := tallies[sel.OptionID]
			if t == nil {
				t = make(Tally)
				tallies[sel.OptionID] = t
			}
			t[sel.Preference]++
		}
	}
	return tallies
}
