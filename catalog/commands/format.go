package commands

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/sessions"
)

const (
	rowsPerPage   = 10
	embedColor    = 0x2B2D31
	maxChoiceSize = 25
)

// cardOptions are the optional arguments of /cards.
type cardOptions struct {
	Search     *string
	Element    string
	Type       string
	Sort       string
	Descending bool
}

// applyOptions folds the command arguments into the caller's state. Element and type
// are added to the existing sets; a sort column replaces the current sort.
func applyOptions(st sessions.State, o cardOptions) (sessions.State, error) {
	var err error
	if o.Search != nil {
		st.Filter = st.Filter.WithSearch(strings.TrimSpace(*o.Search))
	}
	if o.Element != "" && !slices.Contains(st.Filter.Element, o.Element) {
		if st.Filter, err = st.Filter.Toggle(cards.FieldElement, o.Element); err != nil {
			return st, err
		}
	}
	if o.Type != "" && !slices.Contains(st.Filter.Human, o.Type) {
		if st.Filter, err = st.Filter.Toggle(cards.FieldHuman, o.Type); err != nil {
			return st, err
		}
	}
	if o.Sort != "" {
		column, err := cards.ParseColumn(o.Sort)
		if err != nil {
			return st, err
		}
		direction := cards.Ascending
		if o.Descending {
			direction = cards.Descending
		}
		st.Sort = cards.SortSpec{Column: column, Direction: direction}
	}
	return st, nil
}

func pageCount(rows int) int {
	if rows == 0 {
		return 1
	}
	return (rows + rowsPerPage - 1) / rowsPerPage
}

// pageDescription renders one page of rows. Out of range pages are clamped.
func pageDescription(view cards.View, page int) string {
	pages := pageCount(len(view.Rows))
	page = max(0, min(page, pages-1))

	var sb strings.Builder
	if view.Presets != "" {
		fmt.Fprintf(&sb, "**%s**\n", view.Presets)
	}
	if len(view.BannedTalents) > 0 {
		fmt.Fprintf(&sb, "🚫 Banned: %s\n", strings.Join(view.BannedTalents, ", "))
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	if len(view.Rows) == 0 {
		sb.WriteString("No cards match your filters.")
		return sb.String()
	}

	start := page * rowsPerPage
	end := min(start+rowsPerPage, len(view.Rows))
	for _, row := range view.Rows[start:end] {
		sb.WriteString(formatRow(row))
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func formatRow(row cards.Row) string {
	line := fmt.Sprintf("`#%d` **%s** · %s · %s · %s\nHP %s / ATK %s / DEF %s / SPD %s",
		row.Index+1,
		row.Name,
		orDash(row.Element),
		orDash(row.HairColor),
		orDash(row.Type),
		row.HP, row.ATK, row.DEF, row.SPD,
	)
	if row.Talents != "" {
		line += " · " + row.Talents
		if row.TalentType != "" {
			line += " (" + row.TalentType + ")"
		}
	}
	return line
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func footer(view cards.View, page int) string {
	return fmt.Sprintf("Page %d/%d • Showing %d of %d • Human %d • Non-Human %d",
		page+1,
		pageCount(len(view.Rows)),
		view.Counts.Filtered,
		view.Counts.Total,
		view.Counts.Human,
		view.Counts.NonHuman,
	)
}
