package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/pvpfilter/cardcatalog/catalog"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/sessions"
)

var Cards = discord.SlashCommandCreate{
	Name:        "cards",
	Description: "Browse the PvP card catalog with your filters",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "search",
			Description:  "Card name contains",
			Required:     false,
			Autocomplete: true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "element",
			Description: "Also allow this element",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "type",
			Description: "Also allow this type",
			Required:    false,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: cards.TypeHuman, Value: cards.TypeHuman},
				{Name: cards.TypeNonHuman, Value: cards.TypeNonHuman},
			},
		},
		discord.ApplicationCommandOptionString{
			Name:        "sort",
			Description: "Sort by column",
			Required:    false,
			Choices:     columnChoices(),
		},
		discord.ApplicationCommandOptionBool{
			Name:        "descending",
			Description: "Sort descending",
			Required:    false,
		},
		discord.ApplicationCommandOptionBool{
			Name:        "reset",
			Description: "Clear your filters and sort first",
			Required:    false,
		},
	},
}

func columnChoices() []discord.ApplicationCommandOptionChoiceString {
	columns := cards.Columns()
	choices := make([]discord.ApplicationCommandOptionChoiceString, len(columns))
	for i, c := range columns {
		choices[i] = discord.ApplicationCommandOptionChoiceString{Name: string(c), Value: string(c)}
	}
	return choices
}

func CardsHandler(b *catalog.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.Catalog.Loaded() {
			return e.CreateMessage(ephemeral("The catalog is not loaded yet, try again later."))
		}

		data := e.SlashCommandInteractionData()
		opts := cardOptions{
			Element:    strings.TrimSpace(data.String("element")),
			Type:       data.String("type"),
			Sort:       data.String("sort"),
			Descending: data.Bool("descending"),
		}
		if search, ok := data.OptString("search"); ok {
			opts.Search = &search
		}

		key := catalog.SessionKey(e.User().ID.String())
		if data.Bool("reset") {
			b.Sessions.Reset(key)
		}

		var applyErr error
		state := b.Sessions.Update(key, func(st sessions.State) sessions.State {
			next, err := applyOptions(st, opts)
			if err != nil {
				applyErr = err
				return st
			}
			return next
		})
		if applyErr != nil {
			return e.CreateMessage(ephemeral(fmt.Sprintf("Invalid option: %s", applyErr)))
		}

		view := b.Catalog.View(state.Filter, state.Sort)
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.
					SetTitle("PvP Card Catalog").
					SetDescription(pageDescription(view, page)).
					SetColor(embedColor).
					SetFooter(footer(view, page), "")
			},
			Pages:      pageCount(len(view.Rows)),
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

// CardsAutocomplete suggests card names for the search option.
func CardsAutocomplete(b *catalog.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		focused := e.Data.Focused()
		if focused.Name != "search" {
			return e.AutocompleteResult(nil)
		}

		query := ""
		if focused.Value != nil {
			if err := json.Unmarshal(focused.Value, &query); err != nil {
				slog.Error("Failed to unmarshal focused value",
					slog.String("type", "cmd"),
					slog.Any("error", err))
				return e.AutocompleteResult(nil)
			}
		}

		names := b.Catalog.Suggest(strings.TrimSpace(query), maxChoiceSize)
		choices := make([]discord.AutocompleteChoice, 0, len(names))
		for _, name := range names {
			choices = append(choices, discord.AutocompleteChoiceString{
				Name:  name,
				Value: name,
			})
		}
		return e.AutocompleteResult(choices)
	}
}
