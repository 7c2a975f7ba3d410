package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pvpfilter/cardcatalog/catalog"
	"github.com/pvpfilter/cardcatalog/catalog/logger"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/gateways/database"
	"github.com/spf13/cobra"
)

var (
	migrateReset bool
	migrateFrom  string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Prepare the postgres schema and copy the catalog between stores",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		start := time.Now()

		if cfg.Store.Backend == catalog.BackendPostgres || migrateReset {
			db, err := database.New(ctx, cfg.DB)
			if err != nil {
				slog.Error("Failed to connect to database", slog.Any("error", err))
				return err
			}
			defer db.Close()

			if err := db.InitializeSchema(ctx); err != nil {
				return err
			}
			if migrateReset {
				if err := db.ResetTables(ctx); err != nil {
					return err
				}
			}
			slog.Info("Database schema ready", slog.String("type", "store"), logger.Elapsed(start))
		}

		if migrateFrom == "" {
			return nil
		}
		if migrateFrom == cfg.Store.Backend {
			return fmt.Errorf("source and target store are both %q", migrateFrom)
		}

		src, closeSrc, err := openRepository(ctx, cfg, migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open source store: %w", err)
		}
		defer closeSrc()

		dst, closeDst, err := openRepository(ctx, cfg, cfg.Store.Backend)
		if err != nil {
			return fmt.Errorf("failed to open target store: %w", err)
		}
		defer closeDst()

		// Loading through the service gives stored entries without an id a fresh one.
		source := cards.NewService(src, nil)
		if err := source.Load(ctx); err != nil {
			return fmt.Errorf("failed to read %s store: %w", migrateFrom, err)
		}
		entries := source.Entries()
		if err := dst.SaveAll(ctx, entries); err != nil {
			return fmt.Errorf("failed to write %s store: %w", cfg.Store.Backend, err)
		}

		slog.Info("Migration completed successfully!",
			slog.String("type", "store"),
			slog.String("from", migrateFrom),
			slog.String("to", cfg.Store.Backend),
			slog.Int("cards", len(entries)),
			logger.Elapsed(start))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateReset, "reset", false, "truncate the postgres card table first")
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "copy the catalog from this store backend into the configured one")
	rootCmd.AddCommand(migrateCmd)
}
