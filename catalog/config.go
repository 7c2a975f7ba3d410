package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/pvpfilter/cardcatalog/internal/gateways/database"
	"github.com/pvpfilter/cardcatalog/internal/gateways/documentstore"
	"github.com/pvpfilter/cardcatalog/internal/gateways/render"
	"github.com/pvpfilter/cardcatalog/internal/gateways/spaces"
)

const EnvPrefix = "CATALOG_"

const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendSpaces   = "spaces"
	BackendMemory   = "memory"
)

// LoadConfig reads the TOML file at path and then applies CATALOG_* environment
// overrides. A missing file is not an error; defaults and the environment are used.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("Config file not found, using defaults and environment",
			slog.String("type", "sys"),
			slog.String("path", path))
	case err != nil:
		return nil, fmt.Errorf("failed to open config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: slog.LevelInfo},
		Web: WebConfig{
			Enabled:      true,
			Host:         "0.0.0.0",
			Port:         8080,
			AllowOrigins: "http://localhost:3000,http://localhost:8080",
			Environment:  "development",
		},
		Store: StoreConfig{Backend: BackendMongo},
		Mongo: documentstore.Config{
			URI:        "mongodb://localhost:27017",
			Database:   "pvp",
			Collection: "catalog",
		},
		DB: database.DBConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Database: "catalog",
			PoolSize: 5,
		},
		Spaces:   spaces.Config{Region: "nyc3", Root: "catalog"},
		Sessions: SessionConfig{Size: 1024},
		Render:   render.Config{MaxRows: render.DefaultMaxRows, TimeoutSeconds: 15},
	}
}

type Config struct {
	Log      LogConfig            `toml:"log" envPrefix:"LOG_"`
	Web      WebConfig            `toml:"web" envPrefix:"WEB_"`
	Bot      BotConfig            `toml:"bot" envPrefix:"BOT_"`
	Store    StoreConfig          `toml:"store" envPrefix:"STORE_"`
	Mongo    documentstore.Config `toml:"mongo" envPrefix:"MONGO_"`
	DB       database.DBConfig    `toml:"db" envPrefix:"DB_"`
	Spaces   spaces.Config        `toml:"spaces" envPrefix:"SPACES_"`
	Sessions SessionConfig        `toml:"sessions" envPrefix:"SESSIONS_"`
	Render   render.Config        `toml:"render" envPrefix:"RENDER_"`
}

// Validate rejects combinations that cannot start.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMongo, BackendPostgres, BackendMemory:
	case BackendSpaces:
		if c.Spaces.Bucket == "" {
			return fmt.Errorf("store backend %q needs spaces.bucket", c.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web port %d", c.Web.Port)
	}
	return nil
}

type LogConfig struct {
	Level     slog.Level `toml:"level" env:"LEVEL"`
	AddSource bool       `toml:"add_source" env:"ADD_SOURCE"`
}

type WebConfig struct {
	Enabled      bool   `toml:"enabled" env:"ENABLED"`
	Host         string `toml:"host" env:"HOST"`
	Port         int    `toml:"port" env:"PORT"`
	AllowOrigins string `toml:"allow_origins" env:"ALLOW_ORIGINS"`
	Environment  string `toml:"environment" env:"ENVIRONMENT"`
}

func (w WebConfig) Address() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

type BotConfig struct {
	Enabled   bool           `toml:"enabled" env:"ENABLED"`
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token" env:"TOKEN"`
}

type StoreConfig struct {
	Backend string `toml:"backend" env:"BACKEND"`
	// DefaultsFile is a JSON export used to seed an empty store.
	DefaultsFile string `toml:"defaults_file" env:"DEFAULTS_FILE"`
}

type SessionConfig struct {
	Size int `toml:"size" env:"SIZE"`
}
