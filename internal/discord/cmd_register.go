package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// RegisterCommand returns the register command definition and handler
func RegisterCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "register",
		Description: "Link your osu! account to start earning exp",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "osu_id",
				Description: "Your osu! user ID (the number in your profile URL)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "username",
				Description: "Your osu! username",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		options := getOptions(i)
		if len(options) < 2 {
			respondError(s, i, "Missing osu_id or username.")
			return
		}

		osuID := int(options[0].IntValue())
		username := options[1].StringValue()

		registered, err := client.RegisterUser(user.ID, osuID, username)
		if err != nil {
			slog.Error("Failed to register user", "error", err, "discord_id", user.ID)
			respondFriendlyError(s, i, err.Error())
			return
		}

		msg := fmt.Sprintf("Linked to osu! account **%s** (#%d).\nUse `/submit` after playing to earn exp and tokens!",
			registered.Username, registered.OsuID)
		sendEmbed(s, i, createEmbed("🥁 Registered", msg, 0x2ecc71, ""))
	}

	return cmd, handler
}
