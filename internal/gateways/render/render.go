package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
)

const (
	DefaultMaxRows = 50
	DefaultTimeout = 15 * time.Second
)

//go:embed templates/view.html
var viewTemplate string

var tmpl = template.Must(template.New("view").Parse(viewTemplate))

type Config struct {
	MaxRows        int `toml:"max_rows" env:"MAX_ROWS"`
	TimeoutSeconds int `toml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
}

type viewData struct {
	Title   string
	Counts  cards.Counts
	Presets string
	Banned  string
	Rows    []cards.Row
	Hidden  int
}

// ViewImageService renders a catalog view to a PNG through headless Chrome.
type ViewImageService struct {
	logger  *slog.Logger
	maxRows int
	timeout time.Duration
}

func NewViewImageService(cfg Config) *ViewImageService {
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = DefaultMaxRows
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ViewImageService{
		logger:  slog.With(slog.String("service", "view_image")),
		maxRows: cfg.MaxRows,
		timeout: timeout,
	}
}

// HTML returns the page that Render screenshots. Rows past the limit are summarized.
func (s *ViewImageService) HTML(title string, view cards.View) (string, error) {
	data := viewData{
		Title:   title,
		Counts:  view.Counts,
		Presets: view.Presets,
		Banned:  strings.Join(view.BannedTalents, ", "),
		Rows:    view.Rows,
	}
	if len(data.Rows) > s.maxRows {
		data.Hidden = len(data.Rows) - s.maxRows
		data.Rows = data.Rows[:s.maxRows]
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (s *ViewImageService) Render(ctx context.Context, title string, view cards.View) ([]byte, error) {
	start := time.Now()
	html, err := s.HTML(title, view)
	if err != nil {
		return nil, err
	}

	chromedpCtx, cancel := chromedp.NewContext(ctx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()
	chromedpCtx, cancel = context.WithTimeout(chromedpCtx, s.timeout)
	defer cancel()

	var image []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("data:text/html;charset=utf-8,"+url.PathEscape(html)),
		chromedp.WaitVisible("#view-container", chromedp.ByID),
		chromedp.Screenshot("#view-container", &image, chromedp.ByID),
	)
	if err != nil {
		s.logger.Error("Failed to render view image",
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("failed to render view image: %w", err)
	}

	s.logger.Info("View image rendered",
		slog.Int("rows", len(view.Rows)),
		slog.Int("image_size", len(image)),
		slog.Duration("elapsed", time.Since(start)))
	return image, nil
}
