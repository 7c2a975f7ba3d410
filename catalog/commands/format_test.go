package commands

import (
	"strings"
	"testing"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(n int) []cards.Row {
	out := make([]cards.Row, n)
	for i := range out {
		out[i] = cards.Row{Index: i, Entry: cards.Entry{Card: cards.Card{Name: "Card", HP: "80", ATK: "70", DEF: "60", SPD: "90"}}}
	}
	return out
}

func TestApplyOptions(t *testing.T) {
	search := "  AKA "
	st, err := applyOptions(sessions.State{}, cardOptions{
		Search:     &search,
		Element:    "Fire",
		Type:       cards.TypeHuman,
		Sort:       "hp",
		Descending: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "aka", st.Filter.Search)
	assert.Equal(t, []string{"Fire"}, st.Filter.Element)
	assert.Equal(t, []string{cards.TypeHuman}, st.Filter.Human)
	assert.Equal(t, cards.SortSpec{Column: cards.ColumnHP, Direction: cards.Descending}, st.Sort)

	again, err := applyOptions(st, cardOptions{Element: "Fire"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fire"}, again.Filter.Element, "an element already allowed stays allowed")
	assert.Equal(t, "aka", again.Filter.Search, "search is kept when the option is absent")
}

func TestApplyOptionsUnknownColumn(t *testing.T) {
	_, err := applyOptions(sessions.State{}, cardOptions{Sort: "rarity"})
	assert.ErrorIs(t, err, cards.ErrUnknownColumn)
}

func TestPageDescription(t *testing.T) {
	view := cards.View{Rows: rows(23), Presets: "Round 5: x", BannedTalents: []string{"heal"}}

	first := pageDescription(view, 0)
	assert.True(t, strings.HasPrefix(first, "**Round 5: x**\n🚫 Banned: heal\n\n`#1` **Card**"))
	assert.Equal(t, rowsPerPage, strings.Count(first, "**Card**"))

	last := pageDescription(view, 99)
	assert.Equal(t, 3, strings.Count(last, "**Card**"))
	assert.Contains(t, last, "`#23`")
}

func TestPageDescriptionEmpty(t *testing.T) {
	assert.Equal(t, "No cards match your filters.", pageDescription(cards.View{}, 0))
	assert.Equal(t, 1, pageCount(0))
}

func TestFormatRow(t *testing.T) {
	row := cards.Row{Index: 4, Entry: cards.Entry{Card: cards.Card{
		Name: "Akari", Element: "Fire", Type: cards.TypeHuman,
		HP: "80", ATK: "75", DEF: "70", SPD: "90", Talents: "Super Heal", TalentType: cards.TalentActive,
	}}}

	assert.Equal(t, "`#5` **Akari** · Fire · - · Human\nHP 80 / ATK 75 / DEF 70 / SPD 90 · Super Heal (Active)", formatRow(row))
}

func TestFooter(t *testing.T) {
	view := cards.View{Rows: rows(11), Counts: cards.Counts{Total: 40, Filtered: 11, Human: 25, NonHuman: 15}}
	assert.Equal(t, "Page 2/2 • Showing 11 of 40 • Human 25 • Non-Human 15", footer(view, 1))
}

func TestToggleRound(t *testing.T) {
	st, summary, err := toggleRound(sessions.State{}, cards.Round7)
	require.NoError(t, err)
	assert.True(t, st.Filter.IsActive(cards.Round5))
	assert.True(t, st.Filter.IsActive(cards.Round7))
	assert.Contains(t, summary, "Round 7 enabled.")

	st, summary, err = toggleRound(st, cards.Round5)
	require.NoError(t, err)
	assert.Empty(t, st.Filter.Presets)
	assert.Contains(t, summary, "No round presets active.")

	_, _, err = toggleRound(st, cards.PresetID("3"))
	assert.ErrorIs(t, err, cards.ErrUnknownPreset)
}

func TestCommandDefinitions(t *testing.T) {
	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = c.CommandName()
	}
	assert.Equal(t, []string{"cards", "round", "cardsimage"}, names)
	assert.Len(t, presetChoices(), 5)
	assert.Len(t, columnChoices(), 11)
}
