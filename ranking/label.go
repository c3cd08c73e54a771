// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

// Label is the single summary badge chosen for an option. LabelNothing
// means no badge is rendered.
type Label string

const (
	LabelNothing         Label = ""
	LabelBestOverall     Label = "best_overall"
	LabelSecondBest      Label = "second_best"
	LabelMostPreferred   Label = "most_preferred"
	LabelFewestNos       Label = "fewest_nos"
	LabelFewestNosMaybes Label = "fewest_nos_maybes"
	LabelSuboptimal      Label = "suboptimal"
)

// LabelFor selects the label for a rank tuple. Rules are evaluated in fixed
// priority order and the first match wins.
func LabelFor(ranks RankTuple, numberOfOptions int) Label {
	switch {
	case ranks.Overall == 0:
		return LabelBestOverall
	case ranks.Overall == 1 && numberOfOptions > 2:
		return LabelSecondBest
	case ranks.BestScore == 0:
		return LabelMostPreferred
	case ranks.FewestNos == 0:
		return LabelFewestNos
	case ranks.FewestNosMaybes == 0:
		return LabelFewestNosMaybes
	case ranks.StrictlySuperior > 0:
		return LabelSuboptimal
	default:
		return LabelNothing
	}
}

// Badge is the fixed display rendering for a label.
type Badge struct {
	Text       string `json:"text"`
	Glyph      string `json:"glyph"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

var badges = map[Label]Badge{
	LabelBestOverall:     {Text: "Best Overall", Glyph: "crown", Background: "#fbbf24", Foreground: "#451a03"},
	LabelSecondBest:      {Text: "Second Best", Glyph: "medal", Background: "#d1d5db", Foreground: "#1f2937"},
	LabelMostPreferred:   {Text: "Most Preferred", Glyph: "heart", Background: "#fda4af", Foreground: "#881337"},
	LabelFewestNos:       {Text: "Fewest Nos", Glyph: "thumbs-up", Background: "#86efac", Foreground: "#14532d"},
	LabelFewestNosMaybes: {Text: "Fewest Nos and Maybes", Glyph: "handshake", Background: "#99f6e4", Foreground: "#134e4a"},
	LabelSuboptimal:      {Text: "Suboptimal", Glyph: "thumbs-down", Background: "#e2e8f0", Foreground: "#475569"},
}

// Badge returns the display badge for a label. The second return is false
// for LabelNothing, which renders as no badge at all.
func (l Label) Badge() (Badge, bool) {
	b, ok := badges[l]
	return b, ok
}

// PreferenceInfo is the display metadata for one preference scale value.
type PreferenceInfo struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
}

var preferenceScale = map[int]PreferenceInfo{
	-1: {Value: -1, Name: "impossible", Glyph: "ban"},
	0:  {Value: 0, Name: "prefer not", Glyph: "meh"},
	1:  {Value: 1, Name: "okay", Glyph: "smile"},
	2:  {Value: 2, Name: "good", Glyph: "grin"},
	3:  {Value: 3, Name: "great", Glyph: "laugh"},
	4:  {Value: 4, Name: "amazing", Glyph: "star-struck"},
}

// PreferenceMeta returns the display metadata for a preference value. The
// scale is closed at exactly -1..4; anything else still ranks as a plain
// integer but renders as unknown.
func PreferenceMeta(value int) PreferenceInfo {
	if info, ok := preferenceScale[value]; ok {
		return info
	}
	return PreferenceInfo{Value: value, Name: "unknown", Glyph: "question"}
}
