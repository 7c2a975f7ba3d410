package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
)

// Repository keeps the record set in process memory. Used for development and tests.
type Repository struct {
	mu      sync.Mutex
	entries []cards.Entry
	saves   int
	failErr error
}

var _ cards.Repository = (*Repository)(nil)

func NewRepository(seed []cards.Entry) *Repository {
	return &Repository{entries: slices.Clone(seed)}
}

func (r *Repository) Load(ctx context.Context) ([]cards.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.entries == nil {
		return nil, nil
	}
	return slices.Clone(r.entries), nil
}

func (r *Repository) SaveAll(ctx context.Context, entries []cards.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.failErr != nil {
		return r.failErr
	}
	r.entries = slices.Clone(entries)
	r.saves++
	return nil
}

// FailWith makes every following save return err. Nil restores normal saves.
func (r *Repository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failErr = err
}

// Saves returns how many saves succeeded.
func (r *Repository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
