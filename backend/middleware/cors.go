package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pvpfilter/cardcatalog/backend/models"
	"github.com/pvpfilter/cardcatalog/backend/utils"
)

// CustomErrorHandler renders errors that escaped the handlers as the JSON envelope
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	errCode := models.CodeInternal
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
		switch {
		case code == fiber.StatusNotFound:
			errCode = models.CodeNotFound
		case code == fiber.StatusRequestEntityTooLarge:
			errCode = models.CodeImportRejected
		case code < fiber.StatusInternalServerError:
			errCode = models.CodeInvalidRequest
		}
	}

	return utils.SendError(c, code, errCode, message, nil)
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		c.Set("Content-Security-Policy", "default-src 'none'; img-src 'self' data:; frame-ancestors 'none'")

		return c.Next()
	}
}
