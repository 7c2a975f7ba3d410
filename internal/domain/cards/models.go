package cards

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

const (
	TypeHuman    = "Human"
	TypeNonHuman = "Non-Human"

	TalentPassive = "Passive"
	TalentActive  = "Active"
)

// Card is one catalog record. Field names match the JSON interchange format.
type Card struct {
	Name       string `json:"name" bson:"name"`
	Element    string `json:"element" bson:"element"`
	HairColor  string `json:"hairColor" bson:"hairColor"`
	Type       string `json:"type" bson:"type"`
	HP         Stat   `json:"hp" bson:"hp"`
	ATK        Stat   `json:"atk" bson:"atk"`
	DEF        Stat   `json:"def" bson:"def"`
	SPD        Stat   `json:"spd" bson:"spd"`
	Talents    string `json:"talents" bson:"talents"`
	TalentType string `json:"talentType" bson:"talentType"`
	Notes      string `json:"notes" bson:"notes"`
}

// Stats returns hp, atk, def and spd in that order.
func (c Card) Stats() [4]Stat {
	return [4]Stat{c.HP, c.ATK, c.DEF, c.SPD}
}

// Normalize applies the add/edit form rules: text is trimmed and an empty stat becomes "0".
func (c Card) Normalize() Card {
	c.Name = strings.TrimSpace(c.Name)
	c.Element = strings.TrimSpace(c.Element)
	c.HairColor = strings.TrimSpace(c.HairColor)
	c.Type = strings.TrimSpace(c.Type)
	c.Talents = strings.TrimSpace(c.Talents)
	c.TalentType = strings.TrimSpace(c.TalentType)
	c.Notes = strings.TrimSpace(c.Notes)
	for _, s := range []*Stat{&c.HP, &c.ATK, &c.DEF, &c.SPD} {
		if strings.TrimSpace(string(*s)) == "" {
			*s = "0"
		}
	}
	return c
}

// Stat is a numeric stat kept as text. Values are parsed on demand and may be garbage.
type Stat string

// Int parses the leading integer of the stat the way a lenient form parser would:
// leading whitespace and a sign are allowed and parsing stops at the first non-digit.
func (s Stat) Int() (int, bool) {
	v := strings.TrimLeft(string(s), " \t\r\n")
	end := 0
	if end < len(v) && (v[end] == '+' || v[end] == '-') {
		end++
	}
	digits := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(v[:end])
	if errors.Is(err, strconv.ErrRange) {
		// Too many digits to fit: saturate so the value still sorts and bands by sign.
		if v[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortValue is the parsed value, or 0 when unparsable.
func (s Stat) SortValue() int {
	n, _ := s.Int()
	return n
}

// UnmarshalJSON accepts both "80" and 80.
func (s *Stat) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Stat(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = Stat(num.String())
	return nil
}

// Entry is a card together with its stable identifier.
type Entry struct {
	ID   snowflake.ID `json:"id" bson:"id"`
	Card `bson:",inline"`
}

// Row is an entry as presented in a view. Index is the entry's position in the full record set.
type Row struct {
	Index int `json:"index"`
	Entry
}
