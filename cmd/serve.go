package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/pvpfilter/cardcatalog/backend"
	webconfig "github.com/pvpfilter/cardcatalog/backend/config"
	webhandlers "github.com/pvpfilter/cardcatalog/backend/handlers"
	"github.com/pvpfilter/cardcatalog/catalog"
	"github.com/pvpfilter/cardcatalog/catalog/commands"
	"github.com/pvpfilter/cardcatalog/catalog/handlers"
	"github.com/pvpfilter/cardcatalog/catalog/logger"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/sessions"
	"github.com/pvpfilter/cardcatalog/internal/gateways/render"
	"github.com/pvpfilter/cardcatalog/internal/gateways/spaces"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var syncCommands bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the Discord bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("Starting PvP card catalog",
			slog.String("type", "sys"),
			slog.String("version", version),
			slog.String("commit", commit))

		repo, closeRepo, err := openRepository(ctx, cfg, cfg.Store.Backend)
		if err != nil {
			return fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
		}
		defer closeRepo()

		defaults, err := loadDefaults(cfg.Store.DefaultsFile)
		if err != nil {
			return err
		}

		catalogService := cards.NewService(repo, defaults)
		start := time.Now()
		// The catalog stays empty and the API reports LOAD_FAILED until a restart.
		if err := catalogService.Load(ctx); err != nil {
			slog.Error("Catalog load failed, serving an empty catalog",
				slog.String("type", "store"),
				slog.Any("error", err),
				logger.Elapsed(start))
		}

		sessionStore, err := sessions.NewStore(cfg.Sessions.Size)
		if err != nil {
			return err
		}
		images := render.NewViewImageService(cfg.Render)

		if !cfg.Web.Enabled && !cfg.Bot.Enabled {
			return errors.New("nothing to serve: web and bot are both disabled")
		}

		var web runner
		if cfg.Web.Enabled {
			webApp := &webhandlers.WebApp{
				Config:   webconfig.NewWebAppConfig(cfg.Web, version, commit),
				Catalog:  catalogService,
				Sessions: sessionStore,
				Images:   images,
			}
			if cfg.Spaces.Bucket != "" {
				svc, err := spaces.NewSpacesService(ctx, cfg.Spaces)
				if err != nil {
					return err
				}
				webApp.Backups = spaces.NewBackupService(svc)
			}
			web = backend.NewServer(webApp)
		}

		var openBot func(context.Context) (func(), error)
		if cfg.Bot.Enabled {
			openBot = func(ctx context.Context) (func(), error) {
				b, err := startBot(ctx, cfg, catalogService, sessionStore, images)
				if err != nil {
					return nil, err
				}
				return func() {
					closeCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
					defer cancel()
					b.Client.Close(closeCtx)
				}, nil
			}
		}

		if err := runAll(ctx, web, openBot); err != nil {
			return err
		}
		slog.Info("Shutdown complete", slog.String("type", "sys"))
		return nil
	},
}

type runner interface {
	Run(ctx context.Context) error
}

// runAll serves web and the bot until ctx is done or one of them fails. A bot
// that cannot start stops the web server before the error is returned.
func runAll(ctx context.Context, web runner, openBot func(context.Context) (func(), error)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if web != nil {
		g.Go(func() error {
			return web.Run(ctx)
		})
	}

	if openBot != nil {
		closeBot, err := openBot(ctx)
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			<-ctx.Done()
			closeBot()
			return nil
		})
	}

	slog.Info("Catalog is now running. Press CTRL-C to exit.", slog.String("type", "sys"))
	return g.Wait()
}

func startBot(ctx context.Context, cfg *catalog.Config, svc *cards.Service, store *sessions.Store, images *render.ViewImageService) (*catalog.Bot, error) {
	b := catalog.New(*cfg, version, commit)
	b.Catalog = svc
	b.Sessions = store
	b.Images = images

	h := handler.New()
	h.Command("/cards", handlers.WrapWithLogging("cards", commands.CardsHandler(b)))
	h.Autocomplete("/cards", commands.CardsAutocomplete(b))
	h.Command("/round", handlers.WrapWithLogging("round", commands.RoundHandler(b)))
	h.Command("/cardsimage", handlers.WrapWithLogging("cardsimage", commands.CardsImageHandler(b)))

	if err := b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		return nil, fmt.Errorf("failed to set up bot: %w", err)
	}

	if syncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err := handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands", slog.Any("error", err))
		}
	}

	if err := b.Client.OpenGateway(ctx); err != nil {
		return nil, fmt.Errorf("failed to open gateway: %w", err)
	}
	return b, nil
}

func init() {
	serveCmd.Flags().BoolVar(&syncCommands, "sync-commands", false, "sync slash commands to discord on startup")
	rootCmd.AddCommand(serveCmd)
}
