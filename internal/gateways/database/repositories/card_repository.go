package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/logger"
	"github.com/pvpfilter/cardcatalog/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

const (
	defaultTimeout = 10 * time.Second
	maxBatchSize   = 1000
)

type cardRepository struct {
	db *bun.DB
}

var _ cards.Repository = &cardRepository{}

func NewCardRepository(db *bun.DB) *cardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Load(ctx context.Context) ([]cards.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	l := logger.NewStoreLogger("postgres", "load", "catalog_cards")
	var rows []models.CardRow
	err := r.db.NewSelect().
		Model(&rows).
		Order("position ASC", "id ASC").
		Scan(ctx)
	if err == sql.ErrNoRows {
		err = nil
	}
	l.Log(err, len(rows))
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	entries := make([]cards.Entry, len(rows))
	for i, row := range rows {
		entries[i] = row.Entry()
	}
	return entries, nil
}

// SaveAll rewrites the whole table in one transaction.
func (r *cardRepository) SaveAll(ctx context.Context, entries []cards.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	l := logger.NewStoreLogger("postgres", "save", "catalog_cards")
	now := time.Now()
	rows := make([]models.CardRow, len(entries))
	for i, e := range entries {
		rows[i] = models.NewCardRow(e, i, now)
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.CardRow)(nil)).
			Where("TRUE").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to clear cards: %w", err)
		}

		for start := 0; start < len(rows); start += maxBatchSize {
			end := min(start+maxBatchSize, len(rows))
			batch := rows[start:end]
			if _, err := tx.NewInsert().
				Model(&batch).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert cards %d-%d: %w", start, end, err)
			}
		}
		return nil
	})
	l.Log(err, len(rows))
	return err
}
