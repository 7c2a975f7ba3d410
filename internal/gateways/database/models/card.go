package models

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/uptrace/bun"
)

// CardRow is one catalog entry. Position keeps the display order of the record set.
type CardRow struct {
	bun.BaseModel `bun:"table:catalog_cards,alias:cc"`

	ID         int64     `bun:"id,pk"`
	Position   int       `bun:"position,notnull"`
	Name       string    `bun:"name,notnull"`
	Element    string    `bun:"element,notnull,default:''"`
	HairColor  string    `bun:"hair_color,notnull,default:''"`
	Type       string    `bun:"type,notnull,default:''"`
	HP         string    `bun:"hp,notnull,default:''"`
	ATK        string    `bun:"atk,notnull,default:''"`
	DEF        string    `bun:"def,notnull,default:''"`
	SPD        string    `bun:"spd,notnull,default:''"`
	Talents    string    `bun:"talents,notnull,default:''"`
	TalentType string    `bun:"talent_type,notnull,default:''"`
	Notes      string    `bun:"notes,notnull,default:''"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func NewCardRow(e cards.Entry, position int, now time.Time) CardRow {
	return CardRow{
		ID:         int64(e.ID),
		Position:   position,
		Name:       e.Name,
		Element:    e.Element,
		HairColor:  e.HairColor,
		Type:       e.Type,
		HP:         string(e.HP),
		ATK:        string(e.ATK),
		DEF:        string(e.DEF),
		SPD:        string(e.SPD),
		Talents:    e.Talents,
		TalentType: e.TalentType,
		Notes:      e.Notes,
		UpdatedAt:  now,
	}
}

func (r CardRow) Entry() cards.Entry {
	return cards.Entry{
		ID: snowflake.ID(r.ID),
		Card: cards.Card{
			Name:       r.Name,
			Element:    r.Element,
			HairColor:  r.HairColor,
			Type:       r.Type,
			HP:         cards.Stat(r.HP),
			ATK:        cards.Stat(r.ATK),
			DEF:        cards.Stat(r.DEF),
			SPD:        cards.Stat(r.SPD),
			Talents:    r.Talents,
			TalentType: r.TalentType,
			Notes:      r.Notes,
		},
	}
}
