package cards

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrUnknownField = errors.New("unknown filter field")

// HairMode selects how a hair color rule is compared.
type HairMode string

const (
	HairExact    HairMode = "exact"
	HairContains HairMode = "contains"
)

type HairRule struct {
	Mode  HairMode `json:"mode"`
	Value string   `json:"value"`
}

func (r HairRule) matches(hairColor string) bool {
	switch r.Mode {
	case HairExact:
		return strings.EqualFold(strings.TrimSpace(hairColor), strings.TrimSpace(r.Value))
	case HairContains:
		return strings.Contains(strings.ToLower(hairColor), strings.ToLower(r.Value))
	default:
		return false
	}
}

// Field names a set-valued filter that can be toggled value by value.
type Field string

const (
	FieldElement    Field = "element"
	FieldHuman      Field = "human"
	FieldTalentType Field = "talentType"
)

// FilterState is the composite filter configuration. It is a value: every
// method returns a new state and leaves the receiver untouched.
type FilterState struct {
	Element       []string   `json:"element"`
	Human         []string   `json:"human"`
	HairColor     []HairRule `json:"hairColor"`
	TalentType    []string   `json:"talentType"`
	BannedTalents []string   `json:"bannedTalents"`
	Search        string     `json:"search"`
	StatBand      bool       `json:"statBand"`
	Presets       []PresetID `json:"presets"`
}

// IsZero reports whether the state imposes no constraint at all.
func (f FilterState) IsZero() bool {
	return len(f.Element) == 0 && len(f.Human) == 0 && len(f.HairColor) == 0 &&
		len(f.TalentType) == 0 && len(f.BannedTalents) == 0 && f.Search == "" &&
		!f.StatBand && len(f.Presets) == 0
}

func (f FilterState) clone() FilterState {
	f.Element = slices.Clone(f.Element)
	f.Human = slices.Clone(f.Human)
	f.HairColor = slices.Clone(f.HairColor)
	f.TalentType = slices.Clone(f.TalentType)
	f.BannedTalents = slices.Clone(f.BannedTalents)
	f.Presets = slices.Clone(f.Presets)
	return f
}

// Toggle adds value to the named set or removes it when already present.
func (f FilterState) Toggle(field Field, value string) (FilterState, error) {
	next := f.clone()
	switch field {
	case FieldElement:
		next.Element = toggle(next.Element, value)
	case FieldHuman:
		next.Human = toggle(next.Human, value)
	case FieldTalentType:
		next.TalentType = toggle(next.TalentType, value)
	default:
		return f, fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	return next, nil
}

// ToggleHair adds or removes a hair color rule.
func (f FilterState) ToggleHair(rule HairRule) FilterState {
	next := f.clone()
	if i := slices.Index(next.HairColor, rule); i >= 0 {
		next.HairColor = slices.Delete(next.HairColor, i, i+1)
	} else {
		next.HairColor = append(next.HairColor, rule)
	}
	return next
}

// WithSearch sets the name search. The term is stored lower-cased.
func (f FilterState) WithSearch(search string) FilterState {
	next := f.clone()
	next.Search = strings.ToLower(search)
	return next
}

// BanTalent adds a banned talent substring. Blank input is ignored since an
// empty substring would veto every card.
func (f FilterState) BanTalent(talent string) FilterState {
	talent = strings.TrimSpace(talent)
	if talent == "" || containsFold(f.BannedTalents, talent) {
		return f
	}
	next := f.clone()
	next.BannedTalents = append(next.BannedTalents, talent)
	return next
}

func (f FilterState) UnbanTalent(talent string) FilterState {
	talent = strings.TrimSpace(talent)
	next := f.clone()
	next.BannedTalents = slices.DeleteFunc(next.BannedTalents, func(b string) bool {
		return strings.EqualFold(b, talent)
	})
	return next
}

// Clear returns the empty state.
func (f FilterState) Clear() FilterState {
	return FilterState{}
}

func toggle(set []string, value string) []string {
	if i := slices.Index(set, value); i >= 0 {
		return slices.Delete(set, i, i+1)
	}
	return append(set, value)
}

func union(set []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(set, v) {
			set = append(set, v)
		}
	}
	return set
}

func without(set []string, values ...string) []string {
	return slices.DeleteFunc(set, func(s string) bool {
		return slices.Contains(values, s)
	})
}

func containsFold(set []string, value string) bool {
	return slices.ContainsFunc(set, func(s string) bool {
		return strings.EqualFold(s, value)
	})
}
