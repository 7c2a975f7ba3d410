package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/pvpfilter/cardcatalog/backend/utils"
)

const (
	SessionCookie = "catalog_session"
	sessionMaxAge = 30 * 24 * time.Hour
)

// Session gives every browser a stable id for its filter and sort state.
// The id carries no privileges; it only selects a state slot.
func Session(secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The id outlives the request, so it must not point into fiber's buffer.
		id := fiberutils.CopyString(c.Cookies(SessionCookie))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			Expires:  time.Now().Add(sessionMaxAge),
			Secure:   secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		utils.SetSessionID(c, id)

		return c.Next()
	}
}
