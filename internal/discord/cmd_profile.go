package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// ProfileCommand returns the profile command definition and handler
func ProfileCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "profile",
		Description: "View your exp bars and token balance",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		profile, err := client.GetProfile(user.ID)
		if err != nil {
			slog.Error("Failed to get profile", "error", err, "discord_id", user.ID)
			respondFriendlyError(s, i, err.Error())
			return
		}

		fields := make([]*discordgo.MessageEmbedField, 0, len(domain.ExpBarNames)+1)
		for _, name := range domain.ExpBarNames {
			bar := profile.Bars[name]
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   name,
				Value:  fmt.Sprintf("Lv %d (%d/%d)", bar.Level, bar.ProgressToNext, bar.RequiredForNext),
				Inline: true,
			})
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Taiko Tokens",
			Value:  fmt.Sprintf("🪙 %d", profile.Balances[domain.CurrencyTaikoTokens]),
			Inline: false,
		})

		embed := &discordgo.MessageEmbed{
			Title: fmt.Sprintf("%s's Profile", user.Username),
			Color: 0x3498db,
			Thumbnail: &discordgo.MessageEmbedThumbnail{
				URL: user.AvatarURL(""),
			},
			Fields: fields,
			Footer: &discordgo.MessageEmbedFooter{
				Text: FooterTaikoBot,
			},
		}

		sendEmbed(s, i, embed)
	}

	return cmd, handler
}
