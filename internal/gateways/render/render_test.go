package render

import (
	"strings"
	"testing"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewOf(names ...string) cards.View {
	rows := make([]cards.Row, len(names))
	for i, n := range names {
		rows[i] = cards.Row{Index: i, Entry: cards.Entry{Card: cards.Card{Name: n, HP: "80"}}}
	}
	return cards.View{
		Rows:   rows,
		Counts: cards.Counts{Total: 10, Filtered: len(names), Human: 4, NonHuman: 6},
	}
}

func TestHTMLIncludesRowsAndCounts(t *testing.T) {
	s := NewViewImageService(Config{})
	view := viewOf("Akari", "<b>Boreas</b>")
	view.Presets = "Round 5: stats 60-100"
	view.BannedTalents = []string{"heal", "guard"}

	html, err := s.HTML("Catalog", view)
	require.NoError(t, err)

	assert.Contains(t, html, "<td>Akari</td>")
	assert.Contains(t, html, "&lt;b&gt;Boreas&lt;/b&gt;")
	assert.Contains(t, html, "Showing 2 of 10 cards")
	assert.Contains(t, html, "Round 5: stats 60-100")
	assert.Contains(t, html, "Banned: heal, guard")
	assert.NotContains(t, html, "more</div>")
}

func TestHTMLTruncatesRows(t *testing.T) {
	s := NewViewImageService(Config{MaxRows: 2})

	html, err := s.HTML("Catalog", viewOf("a", "b", "c", "d"))
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(html, "<td>80</td>")+strings.Count(html, `<td class="num">80</td>`))
	assert.Contains(t, html, "+2 more")
}
