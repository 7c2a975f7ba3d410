package backend

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pvpfilter/cardcatalog/backend/config"
	"github.com/pvpfilter/cardcatalog/backend/handlers"
	"github.com/pvpfilter/cardcatalog/backend/middleware"
	"github.com/pvpfilter/cardcatalog/backend/utils"
)

const shutdownTimeout = 15 * time.Second

// Server is the catalog HTTP API
type Server struct {
	App     *fiber.App
	Limiter *middleware.RateLimiter
	address string
}

// NewServer builds the fiber app with middleware and routes
func NewServer(webApp *handlers.WebApp) *Server {
	origins := webApp.Config.Web.AllowOrigins
	if origins == "" {
		origins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               "PvP Card Catalog API",
		ServerHeader:          "CardCatalog",
		ErrorHandler:          middleware.CustomErrorHandler,
		BodyLimit:             config.MaxImportSize + 64*1024,
		Immutable:             true,
		DisableStartupMessage: !webApp.Config.Debug,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,X-Requested-With,Cookie",
		AllowCredentials: origins != "*",
	}))
	app.Use(middleware.Session(webApp.Config.SecureCookies()))
	app.Use(middleware.LoggingMiddleware())

	limiter := middleware.NewRateLimiter(config.MutationsPerMinute, time.Minute)
	SetupRoutes(app, webApp, limiter)

	return &Server{
		App:     app,
		Limiter: limiter,
		address: webApp.Config.Web.Address(),
	}
}

func SetupRoutes(app *fiber.App, webApp *handlers.WebApp, limiter *middleware.RateLimiter) {
	app.Get("/health", handlers.HealthCheck(webApp))

	api := app.Group("/api", middleware.MutationRateLimit(limiter))

	api.Get("/cards", handlers.CardsAPI(webApp))
	api.Get("/cards/:id", handlers.CardsDetail(webApp))
	api.Post("/cards", handlers.CardsCreate(webApp))
	api.Put("/cards/:id", handlers.CardsUpdate(webApp))
	api.Delete("/cards/:id", handlers.CardsDelete(webApp))

	api.Get("/options", handlers.OptionsAPI(webApp))
	api.Get("/suggest", handlers.SuggestAPI(webApp))

	state := api.Group("/state")
	state.Get("/", handlers.StateAPI(webApp))
	state.Post("/filters", handlers.ToggleFilter(webApp))
	state.Post("/hair", handlers.ToggleHair(webApp))
	state.Post("/search", handlers.SetSearch(webApp))
	state.Post("/presets/:id", handlers.TogglePreset(webApp))
	state.Post("/banned", handlers.BanTalent(webApp))
	state.Delete("/banned/:talent", handlers.UnbanTalent(webApp))
	state.Post("/sort/:column", handlers.SortBy(webApp))
	state.Post("/clear", handlers.ClearState(webApp))

	api.Get("/export.json", handlers.ExportJSON(webApp))
	api.Get("/export.csv", handlers.ExportCSV(webApp))
	api.Post("/import", handlers.ImportCards(webApp))
	api.Post("/reset", handlers.ResetCards(webApp))
	api.Post("/backups", handlers.CreateBackup(webApp))
	api.Get("/view.png", handlers.ViewImage(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()))
		return utils.SendNotFound(c, "Route not found")
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	go s.Limiter.Run(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting web server",
			slog.String("type", "sys"),
			slog.String("address", s.address))
		errCh <- s.App.Listen(s.address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down web server", slog.String("type", "sys"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.App.ShutdownWithContext(shutdownCtx)
}
