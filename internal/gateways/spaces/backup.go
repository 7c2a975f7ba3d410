package spaces

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/interchange"
	"golang.org/x/sync/errgroup"
)

// BackupService uploads dated JSON and CSV exports of the catalog.
type BackupService struct {
	spaces *SpacesService
	now    func() time.Time
}

type BackupResult struct {
	Keys  []string `json:"keys"`
	Cards int      `json:"cards"`
}

func NewBackupService(spaces *SpacesService) *BackupService {
	return &BackupService{spaces: spaces, now: time.Now}
}

// Backup writes both export formats concurrently. Either failure fails the backup.
func (b *BackupService) Backup(ctx context.Context, list []cards.Card) (BackupResult, error) {
	start := b.now()
	jsonKey := b.spaces.Path("backups/" + interchange.FileName(interchange.ExtJSON, start))
	csvKey := b.spaces.Path("backups/" + interchange.FileName(interchange.ExtCSV, start))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var buf bytes.Buffer
		if err := interchange.EncodeJSON(&buf, list); err != nil {
			return err
		}
		return b.spaces.Put(ctx, jsonKey, "application/json", buf.Bytes())
	})
	g.Go(func() error {
		var buf bytes.Buffer
		if err := interchange.EncodeCSV(&buf, list); err != nil {
			return err
		}
		return b.spaces.Put(ctx, csvKey, "text/csv", buf.Bytes())
	})
	if err := g.Wait(); err != nil {
		return BackupResult{}, fmt.Errorf("backup failed: %w", err)
	}

	slog.Info("Catalog backup uploaded",
		slog.String("type", "store"),
		slog.String("bucket", b.spaces.GetBucket()),
		slog.Int("cards", len(list)),
		slog.Duration("took", time.Since(start)))
	return BackupResult{Keys: []string{jsonKey, csvKey}, Cards: len(list)}, nil
}
