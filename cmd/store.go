package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pvpfilter/cardcatalog/catalog"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/interchange"
	"github.com/pvpfilter/cardcatalog/internal/gateways/database"
	"github.com/pvpfilter/cardcatalog/internal/gateways/database/repositories"
	"github.com/pvpfilter/cardcatalog/internal/gateways/documentstore"
	"github.com/pvpfilter/cardcatalog/internal/gateways/memory"
	"github.com/pvpfilter/cardcatalog/internal/gateways/spaces"
)

const disconnectTimeout = 10 * time.Second

// openRepository connects to the named store backend. The returned func releases the connection.
func openRepository(ctx context.Context, cfg *catalog.Config, backend string) (cards.Repository, func(), error) {
	start := time.Now()
	switch backend {
	case catalog.BackendMongo:
		client, coll, err := documentstore.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Connected to document store",
			slog.String("type", "store"),
			slog.String("database", cfg.Mongo.Database),
			slog.String("collection", cfg.Mongo.Collection),
			slog.Duration("took", time.Since(start)))
		return documentstore.NewRepository(coll), func() {
			ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				slog.Error("Failed to disconnect from document store", slog.Any("error", err))
			}
		}, nil

	case catalog.BackendPostgres:
		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitializeSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repositories.NewCardRepository(db.BunDB()), db.Close, nil

	case catalog.BackendSpaces:
		svc, err := spaces.NewSpacesService(ctx, cfg.Spaces)
		if err != nil {
			return nil, nil, err
		}
		return spaces.NewRepository(svc), func() {}, nil

	case catalog.BackendMemory:
		slog.Warn("Using in-memory store, changes are lost on exit", slog.String("type", "store"))
		return memory.NewRepository(nil), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", backend)
}

// loadDefaults reads the JSON export used to seed an empty store. No path means no defaults.
func loadDefaults(path string) ([]cards.Card, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults: %w", err)
	}
	list, err := interchange.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode defaults %s: %w", path, err)
	}
	return list, nil
}
