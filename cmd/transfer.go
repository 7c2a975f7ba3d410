package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pvpfilter/cardcatalog/catalog/logger"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/interchange"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored catalog with a JSON or CSV export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := args[0]
		list, err := decodeFile(path)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		repo, closeRepo, err := openRepository(ctx, cfg, cfg.Store.Backend)
		if err != nil {
			return err
		}
		defer closeRepo()

		start := time.Now()
		svc := cards.NewService(repo, nil)
		if err := svc.Load(ctx); err != nil {
			return err
		}
		if err := svc.Import(ctx, list); err != nil {
			return err
		}

		slog.Info("Catalog imported",
			slog.String("type", "sys"),
			slog.String("file", path),
			slog.Int("cards", len(list)),
			logger.Elapsed(start))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored catalog as JSON or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		encode, err := encoderFor(exportFormat)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		repo, closeRepo, err := openRepository(ctx, cfg, cfg.Store.Backend)
		if err != nil {
			return err
		}
		defer closeRepo()

		svc := cards.NewService(repo, nil)
		if err := svc.Load(ctx); err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if exportOutput != "" {
			name := exportOutput
			if info, err := os.Stat(name); err == nil && info.IsDir() {
				name = filepath.Join(name, interchange.FileName(exportFormat, time.Now()))
			}
			f, err := os.Create(name)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", name, err)
			}
			defer f.Close()
			w := bufio.NewWriter(f)
			defer w.Flush()
			out = w
			slog.Info("Exporting catalog",
				slog.String("type", "sys"),
				slog.String("file", name),
				slog.Int("cards", len(svc.Entries())))
		}
		return encode(out, svc.Export())
	},
}

func encoderFor(format string) (func(io.Writer, []cards.Card) error, error) {
	switch strings.ToLower(format) {
	case interchange.ExtJSON:
		return interchange.EncodeJSON, nil
	case interchange.ExtCSV:
		return interchange.EncodeCSV, nil
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// decodeFile picks the decoder from the file extension; anything but .csv is read as JSON.
func decodeFile(path string) ([]cards.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), "."+interchange.ExtCSV) {
		return interchange.DecodeCSV(bytes.NewReader(data))
	}
	return interchange.DecodeJSON(data)
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", interchange.ExtJSON, "json or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file or directory (default stdout)")
	rootCmd.AddCommand(importCmd, exportCmd)
}
