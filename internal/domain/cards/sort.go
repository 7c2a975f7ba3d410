package cards

import (
	"errors"
	"slices"
	"strings"
)

var ErrUnknownColumn = errors.New("unknown sort column")

type Column string

const (
	ColumnNone       Column = ""
	ColumnName       Column = "name"
	ColumnElement    Column = "element"
	ColumnHairColor  Column = "hairColor"
	ColumnType       Column = "type"
	ColumnHP         Column = "hp"
	ColumnATK        Column = "atk"
	ColumnDEF        Column = "def"
	ColumnSPD        Column = "spd"
	ColumnTalents    Column = "talents"
	ColumnTalentType Column = "talentType"
	ColumnNotes      Column = "notes"
)

var columns = []Column{
	ColumnName, ColumnElement, ColumnHairColor, ColumnType,
	ColumnHP, ColumnATK, ColumnDEF, ColumnSPD,
	ColumnTalents, ColumnTalentType, ColumnNotes,
}

// Columns lists every sortable column in table order.
func Columns() []Column {
	return slices.Clone(columns)
}

// ParseColumn validates a column name and returns the package constant for it,
// so the result never shares memory with s.
func ParseColumn(s string) (Column, error) {
	i := slices.Index(columns, Column(s))
	if i < 0 {
		return ColumnNone, ErrUnknownColumn
	}
	return columns[i], nil
}

func (c Column) numeric() bool {
	switch c {
	case ColumnHP, ColumnATK, ColumnDEF, ColumnSPD:
		return true
	}
	return false
}

func (c Column) text(card Card) string {
	switch c {
	case ColumnName:
		return card.Name
	case ColumnElement:
		return card.Element
	case ColumnHairColor:
		return card.HairColor
	case ColumnType:
		return card.Type
	case ColumnTalents:
		return card.Talents
	case ColumnTalentType:
		return card.TalentType
	case ColumnNotes:
		return card.Notes
	}
	return ""
}

func (c Column) stat(card Card) Stat {
	switch c {
	case ColumnHP:
		return card.HP
	case ColumnATK:
		return card.ATK
	case ColumnDEF:
		return card.DEF
	case ColumnSPD:
		return card.SPD
	}
	return ""
}

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortSpec is the optional sort column and its direction. The zero value leaves
// the filtered order untouched.
type SortSpec struct {
	Column    Column    `json:"column,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

func (s SortSpec) Active() bool {
	return s.Column != ColumnNone
}

// Click applies a header click: the same column flips direction, a new column
// starts ascending.
func (s SortSpec) Click(c Column) SortSpec {
	if s.Column == c && s.Direction != Descending {
		return SortSpec{Column: c, Direction: Descending}
	}
	return SortSpec{Column: c, Direction: Ascending}
}

func (s SortSpec) compare(a, b Card) int {
	var cmp int
	if s.Column.numeric() {
		x, y := s.Column.stat(a).SortValue(), s.Column.stat(b).SortValue()
		switch {
		case x < y:
			cmp = -1
		case x > y:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(strings.ToLower(s.Column.text(a)), strings.ToLower(s.Column.text(b)))
	}
	if s.Direction == Descending {
		return -cmp
	}
	return cmp
}

// sortRows stable-sorts rows in place. Equal keys keep their filtered order.
func sortRows(rows []Row, s SortSpec) {
	if !s.Active() {
		return
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		return s.compare(a.Card, b.Card)
	})
}
