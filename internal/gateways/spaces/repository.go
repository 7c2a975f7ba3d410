package spaces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/logger"
)

const catalogObject = "cards.json"

// Repository keeps the whole record set in a single JSON object.
type Repository struct {
	spaces *SpacesService
}

var _ cards.Repository = (*Repository)(nil)

func NewRepository(spaces *SpacesService) *Repository {
	return &Repository{spaces: spaces}
}

func (r *Repository) Load(ctx context.Context) ([]cards.Entry, error) {
	key := r.spaces.Path(catalogObject)
	l := logger.NewStoreLogger("spaces", "load", key)

	data, err := r.spaces.Get(ctx, key)
	if errors.Is(err, ErrNoSuchObject) {
		l.Log(nil, 0)
		return nil, nil
	}
	if err != nil {
		l.Log(err, 0)
		return nil, err
	}

	var entries []cards.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		err = fmt.Errorf("failed to decode %s: %w", key, err)
		l.Log(err, 0)
		return nil, err
	}
	l.Log(nil, len(entries))
	return entries, nil
}

func (r *Repository) SaveAll(ctx context.Context, entries []cards.Entry) error {
	key := r.spaces.Path(catalogObject)
	l := logger.NewStoreLogger("spaces", "save", key)

	if entries == nil {
		entries = []cards.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		l.Log(err, 0)
		return fmt.Errorf("failed to encode cards: %w", err)
	}
	err = r.spaces.Put(ctx, key, "application/json", data)
	l.Log(err, len(entries))
	return err
}
