package models

import (
	"testing"
	"time"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/stretchr/testify/assert"
)

func TestCardRowKeepsEntry(t *testing.T) {
	entry := cards.Entry{ID: 1234, Card: cards.Card{
		Name: "Akari", Element: "Fire", HairColor: "Brown", Type: cards.TypeHuman,
		HP: "80", ATK: "n/a", DEF: "70", SPD: "90", Talents: "Super Heal", TalentType: cards.TalentActive, Notes: "x",
	}}

	row := NewCardRow(entry, 3, time.Unix(0, 0))

	assert.Equal(t, 3, row.Position)
	assert.Equal(t, int64(1234), row.ID)
	assert.Equal(t, entry, row.Entry())
}
