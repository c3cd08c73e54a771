// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ranking computes multi-criterion availability rankings for the
candidate dates of an event.

# Inputs and Output

The engine is a pure function over read-only snapshots:

	ranks := ranking.ComputeRankings(options, responses)

It returns one RankTuple per option id, holding five zero-based ranks:
fewest nos, fewest nos and maybes, best weighted score, overall, and
strictly-superior (dominance). It performs no I/O and holds no state, so
concurrent calls need no coordination.

# Criteria

Every criterion is ranked by one shared primitive that stable-sorts and
assigns dense, tie-grouped ranks. Four criteria supply an ordering key
(absent when an option has no selections at all, which sorts it after every
voted option); the dominance criterion supplies a pairwise comparator over
the three component ranks instead.

The overall rank re-ranks options by a positional composite of the three
component ranks. The composite is a weighted positional sum, not a true
lexicographic compare; the label thresholds are calibrated to it.

# Labels

Each option gets exactly one label via a fixed priority cascade:

	Best Overall → Second Best → Most Preferred → Fewest Nos
	→ Fewest Nos and Maybes → Suboptimal → (nothing)

Labels map to fixed glyph and color pairings via Label.Badge. Preference
scale values (-1 impossible .. 4 amazing) map to display metadata via
PreferenceMeta, with an unknown fallback for out-of-scale integers.
*/
package ranking
