package cards

import (
	"slices"
	"strings"
)

// Counts are the aggregate numbers shown next to the table. Human and NonHuman are
// counted over the full record set, not the filtered view.
type Counts struct {
	Total    int `json:"total"`
	Filtered int `json:"filtered"`
	Human    int `json:"human"`
	NonHuman int `json:"nonHuman"`
}

// View is the filtered, optionally sorted, sequence handed to a renderer.
type View struct {
	Rows          []Row       `json:"rows"`
	Counts        Counts      `json:"counts"`
	Filter        FilterState `json:"filter"`
	Sort          SortSpec    `json:"sort"`
	Presets       string      `json:"presets"`
	BannedTalents []string    `json:"bannedTalents"`
}

// BuildView filters entries by f, preserving order, then stable-sorts by s.
func BuildView(entries []Entry, f FilterState, s SortSpec) View {
	rows := make([]Row, 0, len(entries))
	counts := Counts{Total: len(entries)}
	for i, e := range entries {
		switch e.Type {
		case TypeHuman:
			counts.Human++
		case TypeNonHuman:
			counts.NonHuman++
		}
		if Matches(e.Card, f) {
			rows = append(rows, Row{Index: i, Entry: e})
		}
	}
	sortRows(rows, s)
	counts.Filtered = len(rows)

	return View{
		Rows:          rows,
		Counts:        counts,
		Filter:        f,
		Sort:          s,
		Presets:       PresetDescription(f),
		BannedTalents: slices.Clone(f.BannedTalents),
	}
}

// Options are the distinct values available as filter buttons.
type Options struct {
	Elements    []string `json:"elements"`
	HairColors  []string `json:"hairColors"`
	Types       []string `json:"types"`
	TalentTypes []string `json:"talentTypes"`
}

// BuildOptions collects the distinct non-empty values of each filterable field, sorted.
func BuildOptions(entries []Entry) Options {
	return Options{
		Elements:    distinct(entries, func(c Card) string { return c.Element }),
		HairColors:  distinct(entries, func(c Card) string { return c.HairColor }),
		Types:       distinct(entries, func(c Card) string { return c.Type }),
		TalentTypes: distinct(entries, func(c Card) string { return c.TalentType }),
	}
}

func distinct(entries []Entry, field func(Card) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, e := range entries {
		v := strings.TrimSpace(field(e.Card))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
