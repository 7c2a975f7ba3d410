package documentstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	snapshotID     = "cards"
)

type Config struct {
	URI        string `toml:"uri" env:"URI"`
	Database   string `toml:"database" env:"DATABASE"`
	Collection string `toml:"collection" env:"COLLECTION"`
}

// snapshot is the single document holding the whole record set.
type snapshot struct {
	ID        string        `bson:"_id"`
	Cards     []cards.Entry `bson:"cards"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

// Repository stores the record set as one document that is replaced on every save.
type Repository struct {
	coll *mongo.Collection
}

var _ cards.Repository = (*Repository)(nil)

func NewRepository(coll *mongo.Collection) *Repository {
	return &Repository{coll: coll}
}

// Connect opens a client and pings the primary.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Collection, error) {
	start := time.Now()
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(defaultTimeout).
		SetServerSelectionTimeout(defaultTimeout))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	slog.Info("Document store connected",
		slog.String("type", "store"),
		slog.String("database", cfg.Database),
		slog.String("collection", cfg.Collection),
		slog.Duration("took", time.Since(start)))
	return client, client.Database(cfg.Database).Collection(cfg.Collection), nil
}

func (r *Repository) Load(ctx context.Context) ([]cards.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	l := logger.NewStoreLogger("mongo", "load", r.coll.Name())
	var doc snapshot
	err := r.coll.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		l.Log(nil, 0)
		return nil, nil
	}
	if err != nil {
		l.Log(err, 0)
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	l.Log(nil, len(doc.Cards))
	return doc.Cards, nil
}

func (r *Repository) SaveAll(ctx context.Context, entries []cards.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	l := logger.NewStoreLogger("mongo", "save", r.coll.Name())
	if entries == nil {
		entries = []cards.Entry{}
	}
	doc := snapshot{ID: snapshotID, Cards: entries, UpdatedAt: time.Now().UTC()}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": snapshotID}, doc, options.Replace().SetUpsert(true))
	l.Log(err, len(entries))
	if err != nil {
		return fmt.Errorf("failed to save cards: %w", err)
	}
	return nil
}
