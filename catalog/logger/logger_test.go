package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter("Catalog", slog.LevelDebug, &buf))

	log.Info("Cards saved", slog.String("type", "store"), slog.Int("count", 3), slog.String("took", "4ms"))

	line := buf.String()
	assert.Contains(t, line, "[Catalog]")
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "[STORE] Cards saved (took 4ms) count=3")
	assert.NotContains(t, line, "type=")
}

func TestHandlerErrorDetails(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter("Catalog", slog.LevelInfo, &buf))

	log.Error("Failed to save cards", slog.Any("error", errors.New("timeout")))

	line := buf.String()
	assert.Contains(t, line, "[ERR] Failed to save cards (logger_test.go:")
	assert.Contains(t, line, "): timeout")
}

func TestHandlerCommandSuffix(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter("Catalog", slog.LevelInfo, &buf)).
		With(slog.String("type", "cmd"))

	log.Info("Command completed", slog.String("name", "cards"), slog.String("user_name", "mika"), slog.String("status", "success"))

	assert.Contains(t, buf.String(), "[CMD] Command completed [cards by mika] [Status: success]")
}

func TestHandlerLevelAndSkips(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter("Catalog", slog.LevelInfo, &buf))

	log.Debug("hidden")
	log.Info("sending heartbeat")
	log.Warn("visible")

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "WARN")
}
