package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pvpfilter/cardcatalog/backend/config"
	webmodels "github.com/pvpfilter/cardcatalog/backend/models"
	"github.com/pvpfilter/cardcatalog/backend/utils"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/interchange"
)

const viewImageTitle = "PvP Card Catalog"

// ExportJSON downloads the whole catalog as a JSON array
func ExportJSON(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return export(c, webApp, interchange.ExtJSON, interchange.EncodeJSON)
	}
}

// ExportCSV downloads the whole catalog as CSV
func ExportCSV(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return export(c, webApp, interchange.ExtCSV, interchange.EncodeCSV)
	}
}

func export(c *fiber.Ctx, webApp *WebApp, ext string, encode func(io.Writer, []cards.Card) error) error {
	if !webApp.Catalog.Loaded() {
		return utils.SendCatalogError(c, cards.ErrNotLoaded, nil)
	}

	var buf bytes.Buffer
	if err := encode(&buf, webApp.Catalog.Export()); err != nil {
		return utils.SendCatalogError(c, fmt.Errorf("failed to encode export: %w", err), nil)
	}

	c.Attachment(interchange.FileName(ext, time.Now()))
	return c.Send(buf.Bytes())
}

// ImportCards replaces the catalog with an uploaded JSON or CSV file. The body is
// either the raw file or a multipart form with a "file" field.
func ImportCards(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, name, err := readImport(c)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, webmodels.CodeImportRejected, err.Error(), nil)
		}

		format := importFormat(c, name, data)
		var list []cards.Card
		switch format {
		case interchange.ExtCSV:
			list, err = interchange.DecodeCSV(bytes.NewReader(data))
		default:
			list, err = interchange.DecodeJSON(data)
		}
		if err != nil {
			return utils.SendCatalogError(c, err, nil)
		}

		err = webApp.Catalog.Import(c.UserContext(), list)
		resp := webmodels.ImportResponse{Imported: len(list), Format: format}
		if err != nil {
			return utils.SendCatalogError(c, err, resp)
		}

		slog.Info("Cards imported",
			slog.String("type", "http"),
			slog.String("format", format),
			slog.Int("count", len(list)),
			slog.String("session", utils.SessionID(c)))
		return utils.SendSuccess(c, resp, fmt.Sprintf("Successfully imported %d cards", len(list)))
	}
}

func readImport(c *fiber.Ctx) ([]byte, string, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		file, err := c.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("missing file: %w", err)
		}
		if file.Size > config.MaxImportSize {
			return nil, "", fmt.Errorf("file too large (max %d bytes)", config.MaxImportSize)
		}
		src, err := file.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open file: %w", err)
		}
		defer src.Close()

		data, err := io.ReadAll(io.LimitReader(src, config.MaxImportSize))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read file: %w", err)
		}
		return data, file.Filename, nil
	}

	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, "", fmt.Errorf("empty import")
	}
	if len(body) > config.MaxImportSize {
		return nil, "", fmt.Errorf("import too large (max %d bytes)", config.MaxImportSize)
	}
	return bytes.Clone(body), "", nil
}

// importFormat picks the decoder from ?format=, then the file extension, then the
// content type, then the first byte.
func importFormat(c *fiber.Ctx, name string, data []byte) string {
	if f := strings.ToLower(c.Query("format")); f == interchange.ExtJSON || f == interchange.ExtCSV {
		return f
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case "." + interchange.ExtJSON:
		return interchange.ExtJSON
	case "." + interchange.ExtCSV:
		return interchange.ExtCSV
	}
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(ct, fiber.MIMEApplicationJSON):
		return interchange.ExtJSON
	case strings.HasPrefix(ct, "text/csv"):
		return interchange.ExtCSV
	}
	if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '[' {
		return interchange.ExtJSON
	}
	return interchange.ExtCSV
}

// ResetCards replaces the catalog with the configured default cards
func ResetCards(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := webApp.Catalog.ResetToDefaults(c.UserContext())
		var data interface{}
		if err == nil || isSaveError(err) {
			data = webApp.view(webApp.state(c))
		}
		if err != nil {
			return utils.SendCatalogError(c, err, data)
		}
		return utils.SendSuccess(c, data, "Catalog reset to defaults")
	}
}

func CreateBackup(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if webApp.Backups == nil {
			return utils.SendError(c, fiber.StatusServiceUnavailable, webmodels.CodeUnavailable, "Backups are not configured", nil)
		}
		if !webApp.Catalog.Loaded() {
			return utils.SendCatalogError(c, cards.ErrNotLoaded, nil)
		}

		result, err := webApp.Backups.Backup(c.UserContext(), webApp.Catalog.Export())
		if err != nil {
			return utils.SendCatalogError(c, err, nil)
		}
		return utils.SendCreated(c, result, "Backup uploaded")
	}
}

// ViewImage renders the caller's view to PNG
func ViewImage(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if webApp.Images == nil {
			return utils.SendError(c, fiber.StatusServiceUnavailable, webmodels.CodeUnavailable, "Image rendering is not configured", nil)
		}

		image, err := webApp.Images.Render(c.UserContext(), viewImageTitle, webApp.view(webApp.state(c)))
		if err != nil {
			return utils.SendCatalogError(c, err, nil)
		}

		c.Type("png")
		return c.Send(image)
	}
}
