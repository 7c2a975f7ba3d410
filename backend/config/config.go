package config

import (
	"strings"

	"github.com/pvpfilter/cardcatalog/catalog"
)

const (
	// MaxImportSize bounds import bodies and uploaded files.
	MaxImportSize = 10 * 1024 * 1024
	// MutationsPerMinute bounds writes per session.
	MutationsPerMinute = 120
)

// WebAppConfig contains web-specific configuration
type WebAppConfig struct {
	Web         catalog.WebConfig
	Debug       bool
	Environment string
	Version     string
	Commit      string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg catalog.WebConfig, version, commit string) *WebAppConfig {
	environment := strings.ToLower(cfg.Environment)
	if environment == "" {
		environment = "production"
	}
	return &WebAppConfig{
		Web:         cfg,
		Debug:       environment != "production",
		Environment: environment,
		Version:     version,
		Commit:      commit,
	}
}

// SecureCookies reports whether cookies must only travel over HTTPS.
func (w *WebAppConfig) SecureCookies() bool {
	return w.Environment == "production"
}
