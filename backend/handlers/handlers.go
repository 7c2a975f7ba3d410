package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/disgoorg/snowflake/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/pvpfilter/cardcatalog/backend/config"
	webmodels "github.com/pvpfilter/cardcatalog/backend/models"
	"github.com/pvpfilter/cardcatalog/backend/utils"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/sessions"
	"github.com/pvpfilter/cardcatalog/internal/gateways/spaces"
)

// BackupService uploads catalog snapshots. Nil disables POST /api/backups.
type BackupService interface {
	Backup(ctx context.Context, list []cards.Card) (spaces.BackupResult, error)
}

// ImageRenderer renders a view to PNG. Nil disables GET /api/view.png.
type ImageRenderer interface {
	Render(ctx context.Context, title string, view cards.View) ([]byte, error)
}

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config   *config.WebAppConfig
	Catalog  *cards.Service
	Sessions *sessions.Store
	Backups  BackupService
	Images   ImageRenderer
}

// SessionKey is the view-state key of a browser session.
func SessionKey(c *fiber.Ctx) string {
	return "web:" + utils.SessionID(c)
}

func (w *WebApp) state(c *fiber.Ctx) sessions.State {
	return w.Sessions.Get(SessionKey(c))
}

func (w *WebApp) view(st sessions.State) cards.View {
	return w.Catalog.View(st.Filter, st.Sort)
}

func parseCardID(c *fiber.Ctx) (snowflake.ID, error) {
	return snowflake.Parse(c.Params("id"))
}

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := webmodels.NewHealthCheck(webApp.Config.Version, webApp.Config.Commit)

		if webApp.Catalog.Loaded() {
			health.AddComponent("catalog", "healthy", "", map[string]interface{}{
				"cards":    len(webApp.Catalog.Entries()),
				"revision": webApp.Catalog.Revision(),
			})
		} else {
			health.AddComponent("catalog", "unhealthy", "catalog not loaded", nil)
		}
		health.AddComponent("sessions", "healthy", "", map[string]interface{}{
			"active": webApp.Sessions.Len(),
		})

		status := http.StatusOK
		if health.Status != "healthy" {
			status = http.StatusServiceUnavailable
		}
		return utils.SendJSON(c, status, webmodels.NewSuccessResponse(health, "Health check completed"))
	}
}

// =============================================================================
// CARDS
// =============================================================================

// CardsAPI returns the caller's current view
func CardsAPI(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !webApp.Catalog.Loaded() {
			return utils.SendCatalogError(c, cards.ErrNotLoaded, nil)
		}
		return utils.SendSuccess(c, webApp.view(webApp.state(c)), "")
	}
}

func CardsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCardID(c)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", map[string]string{"card_id": c.Params("id")})
		}

		entry, err := webApp.Catalog.Get(id)
		if err != nil {
			return utils.SendCatalogError(c, err, nil)
		}
		return utils.SendSuccess(c, entry, "")
	}
}

func CardsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var card cards.Card
		if err := c.BodyParser(&card); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{"error": err.Error()})
		}

		entry, err := webApp.Catalog.Add(c.UserContext(), card)
		resp := webApp.mutation(c, &entry, err)
		if err != nil {
			return utils.SendCatalogError(c, err, resp)
		}
		return utils.SendCreated(c, resp, "Card created successfully")
	}
}

func CardsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCardID(c)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", map[string]string{"card_id": c.Params("id")})
		}

		var card cards.Card
		if err := c.BodyParser(&card); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{"error": err.Error()})
		}

		entry, err := webApp.Catalog.Update(c.UserContext(), id, card)
		resp := webApp.mutation(c, &entry, err)
		if err != nil {
			return utils.SendCatalogError(c, err, resp)
		}
		return utils.SendSuccess(c, resp, "Card updated successfully")
	}
}

func CardsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseCardID(c)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid card ID", map[string]string{"card_id": c.Params("id")})
		}

		err = webApp.Catalog.Delete(c.UserContext(), id)
		resp := webApp.mutation(c, nil, err)
		if err != nil {
			return utils.SendCatalogError(c, err, resp)
		}
		return utils.SendSuccess(c, resp, "Card deleted successfully")
	}
}

// mutation builds the write response. Only a failed save still changed the
// catalog, so other errors carry no data.
func (w *WebApp) mutation(c *fiber.Ctx, entry *cards.Entry, err error) interface{} {
	if err != nil && !isSaveError(err) {
		return nil
	}
	return webmodels.MutationResponse{
		Card:  entry,
		Saved: err == nil,
		View:  w.view(w.state(c)),
	}
}

func OptionsAPI(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := webApp.state(c)
		presets := make([]webmodels.PresetInfo, 0, len(cards.Presets()))
		for _, p := range cards.Presets() {
			presets = append(presets, webmodels.PresetInfo{
				ID:          p,
				Description: p.Description(),
				Active:      st.Filter.IsActive(p),
			})
		}

		return utils.SendSuccess(c, webmodels.OptionsResponse{
			Options: webApp.Catalog.Options(),
			Presets: presets,
			Columns: cards.Columns(),
		}, "")
	}
}

// SuggestAPI ranks card names for the search box
func SuggestAPI(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 10)
		if limit > 50 {
			limit = 50
		}
		names := webApp.Catalog.Suggest(c.Query("q"), limit)
		if names == nil {
			names = []string{}
		}
		return utils.SendSuccess(c, names, "")
	}
}

func isSaveError(err error) bool {
	var saveErr *cards.SaveError
	return errors.As(err, &saveErr)
}
