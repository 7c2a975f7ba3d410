package cards

import (
	"slices"
	"strings"
)

const (
	statBandMin = 60
	statBandMax = 100
)

// Matches reports whether card passes every clause of f. Set clauses are OR within
// a field and AND across fields; an empty set imposes nothing. Banned talents veto.
func Matches(card Card, f FilterState) bool {
	if len(f.Element) > 0 && !slices.Contains(f.Element, card.Element) {
		return false
	}
	if len(f.Human) > 0 && !slices.Contains(f.Human, card.Type) {
		return false
	}
	if len(f.HairColor) > 0 && !slices.ContainsFunc(f.HairColor, func(r HairRule) bool {
		return r.matches(card.HairColor)
	}) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(card.Name), strings.ToLower(f.Search)) {
		return false
	}
	if len(f.TalentType) > 0 && !slices.Contains(f.TalentType, card.TalentType) {
		return false
	}
	if isBanned(card.Talents, f.BannedTalents) {
		return false
	}
	if f.StatBand && !withinStatBand(card) {
		return false
	}
	return true
}

func isBanned(talents string, banned []string) bool {
	if len(banned) == 0 {
		return false
	}
	talents = strings.ToLower(strings.TrimSpace(talents))
	for _, b := range banned {
		b = strings.ToLower(strings.TrimSpace(b))
		if b != "" && strings.Contains(talents, b) {
			return true
		}
	}
	return false
}

func withinStatBand(card Card) bool {
	for _, s := range card.Stats() {
		if ClassifyStat(s) == StatOutOfBand {
			return false
		}
	}
	return true
}

// StatVerdict classifies a stat against the round 5 band.
type StatVerdict int

const (
	StatNotNumeric StatVerdict = iota
	StatInBand
	StatOutOfBand
)

// ClassifyStat checks s against the [60, 100] band. Unparsable stats are StatNotNumeric.
func ClassifyStat(s Stat) StatVerdict {
	n, ok := s.Int()
	if !ok {
		return StatNotNumeric
	}
	if n > statBandMax || n < statBandMin {
		return StatOutOfBand
	}
	return StatInBand
}
