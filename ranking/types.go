// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

// Option is a candidate date under consideration. Date is an ISO-8601
// calendar date (YYYY-MM-DD) with no time component.
type Option struct {
	ID   string
	Date string
}

// SelectedOption is one respondent's preference for one option.
// Preference is an ordered integer scale where -1 means impossible and 4
// means amazing; values outside the named scale are still ranked as plain
// integers. Uncertain means "I picked a preference but may not make it".
type SelectedOption struct {
	OptionID   string
	Preference int
	Uncertain  bool
}

// Response is one respondent's full set of per-option preferences.
type Response struct {
	Name            *string
	SelectedOptions []SelectedOption
}

// RankTuple holds the five zero-based ranks computed for one option.
// Lower is better in every dimension. Ties share a rank.
type RankTuple struct {
	FewestNos        int `json:"least_nos_rank"`
	FewestNosMaybes  int `json:"least_nos_maybes_rank"`
	BestScore        int `json:"best_score_rank"`
	Overall          int `json:"overall_rank"`
	StrictlySuperior int `json:"strictly_superior_rank"`
}
