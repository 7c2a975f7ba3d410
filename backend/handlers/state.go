package handlers

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	webmodels "github.com/pvpfilter/cardcatalog/backend/models"
	"github.com/pvpfilter/cardcatalog/backend/utils"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/sessions"
)

func StateAPI(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := webApp.state(c)
		return utils.SendSuccess(c, webmodels.StateResponse{
			Filter:  st.Filter,
			Sort:    st.Sort,
			Presets: cards.PresetDescription(st.Filter),
		}, "")
	}
}

// updateState applies fn to the caller's state and answers with the recomputed view.
// fn errors leave the state untouched.
func (w *WebApp) updateState(c *fiber.Ctx, fn func(sessions.State) (sessions.State, error)) error {
	var fnErr error
	st := w.Sessions.Update(SessionKey(c), func(cur sessions.State) sessions.State {
		next, err := fn(cur)
		if err != nil {
			fnErr = err
			return cur
		}
		return next
	})
	if fnErr != nil {
		return utils.SendCatalogError(c, fnErr, nil)
	}
	return utils.SendSuccess(c, w.view(st), "")
}

// ToggleFilter flips one value of the element, human or talent type filter
func ToggleFilter(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.FilterToggleRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{"error": err.Error()})
		}
		if req.Value == "" {
			return utils.SendBadRequest(c, "Filter value is required", nil)
		}

		return webApp.updateState(c, func(st sessions.State) (sessions.State, error) {
			f, err := st.Filter.Toggle(cards.Field(req.Field), req.Value)
			st.Filter = f
			return st, err
		})
	}
}

func ToggleHair(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.HairRuleRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{"error": err.Error()})
		}

		mode := cards.HairMode(strings.ToLower(req.Mode))
		if mode == "" {
			mode = cards.HairExact
		}
		if mode != cards.HairExact && mode != cards.HairContains {
			return utils.SendBadRequest(c, "Unknown hair mode", map[string]string{"mode": req.Mode})
		}
		if strings.TrimSpace(req.Value) == "" {
			return utils.SendBadRequest(c, "Hair color is required", nil)
		}

		return webApp.updateState(c, func(st sessions.State) (sessions.State, error) {
			st.Filter = st.Filter.ToggleHair(cards.HairRule{Mode: mode, Value: req.Value})
			return st, nil
		})
	}
}

func SetSearch(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.SearchRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{"error": err.Error()})
		}

		return webApp.updateState(c, func(st sessions.State) (sessions.State, error) {
			st.Filter = st.Filter.WithSearch(req.Search)
			return st, nil
		})
	}
}

// TogglePreset flips a round preset, cascading through lower or higher rounds
func TogglePreset(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := cards.PresetID(c.Params("id"))
		return webApp.updateState(c, func(st sessions.State) (sessions.State, error) {
			f, err := cards.TogglePreset(st.Filter, id)
			st.Filter = f
			return st, err
		})
	}
}

func BanTalent(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.BanTalentRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", map[string]string{"error": err.Error()})
		}

		return webApp.updateState(c, func(st sessions.State) (sessions.State, error) {
			st.Filter = st.Filter.BanTalent(req.Talent)
			return st, nil
		})
	}
}

func UnbanTalent(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		talent, err := url.PathUnescape(c.Params("talent"))
		if err != nil {
			return utils.SendBadRequest(c, "Invalid talent", map[string]string{"talent": c.Params("talent")})
		}

		return webApp.updateState(c, func(st sessions.State) (sessions.State, error) {
			st.Filter = st.Filter.UnbanTalent(talent)
			return st, nil
		})
	}
}

// SortBy clicks a column header: the active column flips direction, a new one sorts ascending
func SortBy(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return webApp.updateState(c, func(st sessions.State) (sessions.State, error) {
			col, err := cards.ParseColumn(c.Params("column"))
			if err != nil {
				return st, err
			}
			st.Sort = st.Sort.Click(col)
			return st, nil
		})
	}
}

// ClearState drops every filter and the sort
func ClearState(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return webApp.updateState(c, func(sessions.State) (sessions.State, error) {
			return sessions.State{}, nil
		})
	}
}
