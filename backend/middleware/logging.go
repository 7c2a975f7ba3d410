package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pvpfilter/cardcatalog/backend/utils"
)

// LoggingMiddleware logs HTTP requests in a structured format
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Run the error handler now so the logged status is the one sent
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		statusCode := c.Response().StatusCode()
		logLevel := slog.LevelInfo
		if statusCode >= 400 && statusCode < 500 {
			logLevel = slog.LevelWarn
		} else if statusCode >= 500 {
			logLevel = slog.LevelError
		}

		attrs := []slog.Attr{
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", statusCode),
			slog.Duration("took", time.Since(start)),
			slog.String("ip", utils.GetIPAddress(c)),
			slog.Int("size", len(c.Response().Body())),
		}
		if ua := utils.GetUserAgent(c); ua != "" {
			attrs = append(attrs, slog.String("user_agent", ua))
		}
		if q := c.Request().URI().QueryArgs().String(); q != "" {
			attrs = append(attrs, slog.String("query", q))
		}
		if session := utils.SessionID(c); session != "" {
			attrs = append(attrs, slog.String("session", session))
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		message := "HTTP request processed"
		if err != nil {
			message = "HTTP request failed"
		}
		slog.LogAttrs(c.UserContext(), logLevel, message, attrs...)

		return nil
	}
}
