package models

import (
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
)

// FilterToggleRequest toggles one value of a set filter.
type FilterToggleRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// HairRuleRequest toggles a hair color rule. Mode defaults to exact.
type HairRuleRequest struct {
	Mode  string `json:"mode"`
	Value string `json:"value"`
}

type SearchRequest struct {
	Search string `json:"search"`
}

type BanTalentRequest struct {
	Talent string `json:"talent"`
}

// StateResponse is the caller's filter and sort state.
type StateResponse struct {
	Filter  cards.FilterState `json:"filter"`
	Sort    cards.SortSpec    `json:"sort"`
	Presets string            `json:"presets"`
}

// PresetInfo describes one round preset button.
type PresetInfo struct {
	ID          cards.PresetID `json:"id"`
	Description string         `json:"description"`
	Active      bool           `json:"active"`
}

// OptionsResponse holds the values for the filter buttons.
type OptionsResponse struct {
	cards.Options
	Presets []PresetInfo   `json:"presets"`
	Columns []cards.Column `json:"columns"`
}

type ImportResponse struct {
	Imported int    `json:"imported"`
	Format   string `json:"format"`
}

// MutationResponse is returned by card writes. Saved is false when the store
// rejected the write and the change lives in memory only.
type MutationResponse struct {
	Card  *cards.Entry `json:"card,omitempty"`
	Saved bool         `json:"saved"`
	View  cards.View   `json:"view"`
}
