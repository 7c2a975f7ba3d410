package cards

import (
	"errors"
	"slices"
	"strings"
)

var ErrUnknownPreset = errors.New("unknown round preset")

// PresetID names a round preset.
type PresetID string

const (
	Round5  PresetID = "5"
	Round7  PresetID = "7"
	Round9  PresetID = "9"
	Round10 PresetID = "10"
	Round12 PresetID = "12"
)

// presetOrder is the fixed rank, lowest first.
var presetOrder = []PresetID{Round5, Round7, Round9, Round10, Round12}

// presetRequires lists the lower presets each round builds on, in rank order.
// Round 10 does not build on the round 9 hair restriction. The lists are
// transitively closed.
var presetRequires = map[PresetID][]PresetID{
	Round5:  nil,
	Round7:  {Round5},
	Round9:  {Round5, Round7},
	Round10: {Round5, Round7},
	Round12: {Round5, Round7, Round9, Round10},
}

var (
	round7Elements = []string{"Dark", "Neutral", "Light"}
	round9Rules    = []HairRule{
		{Mode: HairContains, Value: "Brown"},
		{Mode: HairContains, Value: "White"},
	}
)

var presetDescriptions = map[PresetID]string{
	Round5:  "Round 5: Cards with stats above 100 or below 60 are banned",
	Round7:  "Round 7: Only Dark, Neutral and Light elemental cards",
	Round9:  "Round 9: Only Brown and White hair colors",
	Round10: "Round 10: At least 1 Neutral elemental card must be used",
	Round12: "Round 12: Only Human cards allowed",
}

// Presets lists every preset in rank order.
func Presets() []PresetID {
	return slices.Clone(presetOrder)
}

func (p PresetID) Valid() bool {
	return slices.Contains(presetOrder, p)
}

func (p PresetID) Description() string {
	return presetDescriptions[p]
}

func (p PresetID) rank() int {
	return slices.Index(presetOrder, p)
}

// IsActive reports whether preset p is active in f.
func (f FilterState) IsActive(p PresetID) bool {
	return slices.Contains(f.Presets, p)
}

// ApplyPreset activates or deactivates p with its cascade. Activation also activates
// every inactive preset p builds on; deactivation also deactivates every active
// preset that builds on p.
func ApplyPreset(f FilterState, p PresetID, activating bool) (FilterState, error) {
	if !p.Valid() {
		return f, ErrUnknownPreset
	}
	// Use the canonical value so the stored state never aliases caller memory.
	p = presetOrder[p.rank()]
	next := f.clone()
	if activating {
		for _, q := range append(slices.Clone(presetRequires[p]), p) {
			if !next.IsActive(q) {
				next = activate(next, q)
			}
		}
	} else {
		for i := len(presetOrder) - 1; i >= 0; i-- {
			q := presetOrder[i]
			if next.IsActive(q) && (q == p || slices.Contains(presetRequires[q], p)) {
				next = deactivate(next, q)
			}
		}
	}
	return next, nil
}

// TogglePreset flips p: an active preset is deactivated, an inactive one activated.
func TogglePreset(f FilterState, p PresetID) (FilterState, error) {
	return ApplyPreset(f, p, !f.IsActive(p))
}

// PresetDescription joins the descriptions of the active presets in rank order.
func PresetDescription(f FilterState) string {
	var parts []string
	for _, p := range presetOrder {
		if f.IsActive(p) {
			parts = append(parts, p.Description())
		}
	}
	return strings.Join(parts, " + ")
}

func activate(f FilterState, p PresetID) FilterState {
	switch p {
	case Round5:
		f.StatBand = true
	case Round7:
		f.Element = union(f.Element, round7Elements...)
	case Round9:
		for _, r := range round9Rules {
			if !slices.Contains(f.HairColor, r) {
				f.HairColor = append(f.HairColor, r)
			}
		}
	case Round10:
		f.Element = union(f.Element, "Neutral")
	case Round12:
		f.Human = union(f.Human, TypeHuman)
	}
	f.Presets = append(f.Presets, p)
	slices.SortFunc(f.Presets, func(a, b PresetID) int { return a.rank() - b.rank() })
	return f
}

func deactivate(f FilterState, p PresetID) FilterState {
	switch p {
	case Round5:
		f.StatBand = false
	case Round7:
		f.Element = without(f.Element, round7Elements...)
	case Round9:
		f.HairColor = slices.DeleteFunc(f.HairColor, func(r HairRule) bool {
			return slices.Contains(round9Rules, r)
		})
	case Round10:
		f.Element = without(f.Element, "Neutral")
	case Round12:
		f.Human = without(f.Human, TypeHuman)
	}
	f.Presets = slices.DeleteFunc(f.Presets, func(q PresetID) bool { return q == p })
	return f
}
