package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/pvpfilter/cardcatalog/backend/models"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/interchange"
)

const sessionLocal = "session"

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusOK, models.NewSuccessResponse(data, message))
}

// SendCreated sends a created resource JSON response
func SendCreated(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusCreated, models.NewSuccessResponse(data, message))
}

// SendError sends an error JSON response
func SendError(c *fiber.Ctx, statusCode int, code, message string, details map[string]string) error {
	return SendJSON(c, statusCode, models.NewErrorResponse(code, message, details))
}

// SendBadRequest sends a bad request error response
func SendBadRequest(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusBadRequest, models.CodeInvalidRequest, message, details)
}

// SendNotFound sends a not found error response
func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, models.CodeNotFound, message, nil)
}

// SendCatalogError maps a catalog error onto a status and error code. data, when
// not nil, is attached so callers still see the state after a failed save.
func SendCatalogError(c *fiber.Ctx, err error, data interface{}) error {
	status, code, message := http.StatusInternalServerError, models.CodeInternal, "Internal Server Error"

	var saveErr *cards.SaveError
	var loadErr *cards.LoadError
	switch {
	case errors.Is(err, cards.ErrNotFound):
		status, code, message = http.StatusNotFound, models.CodeCardNotFound, "Card not found"
	case errors.Is(err, cards.ErrNotLoaded), errors.As(err, &loadErr):
		status, code, message = http.StatusServiceUnavailable, models.CodeLoadFailed, "The catalog could not be loaded"
	case errors.As(err, &saveErr):
		status, code, message = http.StatusBadGateway, models.CodeSaveFailed, "Saved in memory only, the store rejected the write"
	case errors.Is(err, cards.ErrUnknownPreset):
		status, code, message = http.StatusBadRequest, models.CodeUnknownPreset, "Unknown round preset"
	case errors.Is(err, cards.ErrUnknownColumn):
		status, code, message = http.StatusBadRequest, models.CodeUnknownColumn, "Unknown sort column"
	case errors.Is(err, cards.ErrUnknownField):
		status, code, message = http.StatusBadRequest, models.CodeInvalidRequest, "Unknown filter field"
	case errors.Is(err, interchange.ErrMalformed):
		status, code, message = http.StatusBadRequest, models.CodeImportRejected, "Import rejected"
	case errors.Is(err, cards.ErrNoDefaults):
		status, code, message = http.StatusConflict, models.CodeNoDefaults, "No default cards configured"
	}

	if status >= http.StatusInternalServerError {
		slog.Error("Catalog request failed",
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("code", code),
			slog.Any("error", err))
	}

	resp := models.NewErrorResponse(code, message, map[string]string{"error": err.Error()})
	resp.Data = data
	return SendJSON(c, status, resp)
}

// SetSessionID stores the caller's session id for later handlers.
func SetSessionID(c *fiber.Ctx, id string) {
	c.Locals(sessionLocal, id)
}

// SessionID returns the caller's session id, or "" outside the session middleware.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocal).(string)
	return id
}

// GetIPAddress extracts the client IP address
func GetIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.IP()
}

// GetUserAgent extracts the user agent
func GetUserAgent(c *fiber.Ctx) string {
	return c.Get("User-Agent")
}
