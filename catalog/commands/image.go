package commands

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/pvpfilter/cardcatalog/catalog"
)

var CardsImage = discord.SlashCommandCreate{
	Name:        "cardsimage",
	Description: "Post your current catalog view as an image",
}

func CardsImageHandler(b *catalog.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		st := b.Sessions.Get(catalog.SessionKey(e.User().ID.String()))
		view := b.Catalog.View(st.Filter, st.Sort)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		image, err := b.Images.Render(ctx, "PvP Card Catalog", view)
		if err != nil {
			slog.Error("Failed to render catalog image",
				slog.String("type", "cmd"),
				slog.String("name", "cardsimage"),
				slog.Any("error", err))
			_, err = e.CreateFollowupMessage(discord.MessageCreate{
				Content: "Failed to render the catalog image. Please try again later.",
			})
			return err
		}

		_, err = e.CreateFollowupMessage(discord.MessageCreate{
			Content: footer(view, 0),
			Files: []*discord.File{
				{
					Name:   "catalog.png",
					Reader: bytes.NewReader(image),
				},
			},
		})
		return err
	}
}
