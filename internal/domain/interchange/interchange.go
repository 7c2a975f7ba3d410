package interchange

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
)

// ErrMalformed marks an import payload that was rejected before touching the catalog.
var ErrMalformed = errors.New("malformed import")

const (
	ExtJSON = "json"
	ExtCSV  = "csv"
)

// Header is the CSV column order written by EncodeCSV.
var Header = []string{"Name", "Element", "Talent", "HP", "ATK", "DEF", "Speed", "Talent Type", "Type", "Hair", "Notes"}

// LegacyHeader is the column order of files exported before talents were split out.
var LegacyHeader = []string{"Name", "Element", "Hair Color", "Type", "HP", "ATK", "DEF", "SPD", "Talents", "Notes"}

type column func(*cards.Card) *string

var columns = map[string]column{
	"name":        func(c *cards.Card) *string { return &c.Name },
	"element":     func(c *cards.Card) *string { return &c.Element },
	"talent":      func(c *cards.Card) *string { return &c.Talents },
	"talents":     func(c *cards.Card) *string { return &c.Talents },
	"hp":          func(c *cards.Card) *string { return (*string)(&c.HP) },
	"atk":         func(c *cards.Card) *string { return (*string)(&c.ATK) },
	"def":         func(c *cards.Card) *string { return (*string)(&c.DEF) },
	"speed":       func(c *cards.Card) *string { return (*string)(&c.SPD) },
	"spd":         func(c *cards.Card) *string { return (*string)(&c.SPD) },
	"talent type": func(c *cards.Card) *string { return &c.TalentType },
	"type":        func(c *cards.Card) *string { return &c.Type },
	"hair":        func(c *cards.Card) *string { return &c.HairColor },
	"hair color":  func(c *cards.Card) *string { return &c.HairColor },
	"notes":       func(c *cards.Card) *string { return &c.Notes },
}

// FileName returns the download name for an export made at t, e.g. anime-cards-2024-03-01.json.
func FileName(ext string, t time.Time) string {
	return "anime-cards-" + t.UTC().Format(time.DateOnly) + "." + ext
}

// EncodeJSON writes the cards as an indented JSON array.
func EncodeJSON(w io.Writer, list []cards.Card) error {
	if list == nil {
		list = []cards.Card{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("failed to encode cards: %w", err)
	}
	return nil
}

// DecodeJSON parses a JSON array of cards. Anything else is rejected with ErrMalformed.
func DecodeJSON(data []byte) ([]cards.Card, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of cards", ErrMalformed)
	}
	var list []cards.Card
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if list == nil {
		list = []cards.Card{}
	}
	return list, nil
}

// EncodeCSV writes a header line followed by one fully quoted line per card.
func EncodeCSV(w io.Writer, list []cards.Card) error {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(Header, ","))
	buf.WriteByte('\n')
	for _, c := range list {
		fields := []string{
			c.Name, c.Element, c.Talents,
			string(c.HP), string(c.ATK), string(c.DEF), string(c.SPD),
			c.TalentType, c.Type, c.HairColor, c.Notes,
		}
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
			buf.WriteByte('"')
		}
		buf.WriteByte('\n')
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// DecodeCSV parses a CSV export. Columns are matched by header name, so both the
// current and the legacy layout are accepted.
func DecodeCSV(r io.Reader) ([]cards.Card, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty csv", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	setters := make([]column, len(header))
	known := 0
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if set, ok := columns[name]; ok {
			setters[i] = set
			known++
		}
	}
	if setters[0] == nil || known < 2 {
		return nil, fmt.Errorf("%w: unrecognized csv header %q", ErrMalformed, strings.Join(header, ","))
	}

	list := []cards.Card{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrMalformed, line, len(record), len(header))
		}
		var c cards.Card
		for i, v := range record {
			if setters[i] != nil {
				*setters[i](&c) = v
			}
		}
		list = append(list, c)
	}
	return list, nil
}
