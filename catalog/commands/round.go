package commands

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/pvpfilter/cardcatalog/catalog"
	"github.com/pvpfilter/cardcatalog/internal/domain/cards"
	"github.com/pvpfilter/cardcatalog/internal/domain/sessions"
)

var Round = discord.SlashCommandCreate{
	Name:        "round",
	Description: "Toggle a tournament round preset on your filters",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "preset",
			Description: "Round preset",
			Required:    true,
			Choices:     presetChoices(),
		},
	},
}

func presetChoices() []discord.ApplicationCommandOptionChoiceString {
	presets := cards.Presets()
	choices := make([]discord.ApplicationCommandOptionChoiceString, len(presets))
	for i, p := range presets {
		choices[i] = discord.ApplicationCommandOptionChoiceString{
			Name:  "Round " + string(p),
			Value: string(p),
		}
	}
	return choices
}

// toggleRound flips the preset and describes the result.
func toggleRound(st sessions.State, id cards.PresetID) (sessions.State, string, error) {
	filter, err := cards.TogglePreset(st.Filter, id)
	if err != nil {
		return st, "", err
	}
	st.Filter = filter

	verb := "disabled"
	if filter.IsActive(id) {
		verb = "enabled"
	}
	summary := fmt.Sprintf("Round %s %s.", id, verb)
	if desc := cards.PresetDescription(filter); desc != "" {
		summary += "\nActive: " + desc
	} else {
		summary += "\nNo round presets active."
	}
	return st, summary, nil
}

func RoundHandler(b *catalog.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		id := cards.PresetID(e.SlashCommandInteractionData().String("preset"))
		key := catalog.SessionKey(e.User().ID.String())

		var (
			summary   string
			toggleErr error
		)
		state := b.Sessions.Update(key, func(st sessions.State) sessions.State {
			next, s, err := toggleRound(st, id)
			summary, toggleErr = s, err
			return next
		})
		if toggleErr != nil {
			return e.CreateMessage(ephemeral(fmt.Sprintf("Unknown round %q.", id)))
		}

		view := b.Catalog.View(state.Filter, state.Sort)
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{discord.NewEmbedBuilder().
				SetTitle("Round presets").
				SetDescription(summary).
				SetColor(embedColor).
				SetFooter(footer(view, 0), "").
				Build()},
			Flags: discord.MessageFlagEphemeral,
		})
	}
}
