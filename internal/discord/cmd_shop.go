package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ShopCommand returns the shop command definition and handler
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "shop",
		Description: "Browse upgrades and your current levels",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		listings, err := client.ListUpgrades(user.ID)
		if err != nil {
			slog.Error("Failed to list upgrades", "error", err, "discord_id", user.ID)
			respondFriendlyError(s, i, err.Error())
			return
		}

		var sb strings.Builder
		for _, listing := range listings {
			if listing.Level >= listing.MaxLevel {
				sb.WriteString(fmt.Sprintf("**%s** `%s` — Lv %d/%d (maxed)\n%s\n\n",
					listing.Name, listing.UpgradeID, listing.Level, listing.MaxLevel, listing.Description))
				continue
			}
			sb.WriteString(fmt.Sprintf("**%s** `%s` — Lv %d/%d, next: 🪙 %d\n%s\n\n",
				listing.Name, listing.UpgradeID, listing.Level, listing.MaxLevel,
				listing.NextCost, listing.Description))
		}
		sb.WriteString("Buy with `/buy <upgrade> [times]`")

		sendEmbed(s, i, createEmbed("🛒 Upgrade Shop", sb.String(), 0xf39c12, ""))
	}

	return cmd, handler
}

// BuyCommand returns the buy command definition and handler
func BuyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "buy",
		Description: "Buy upgrade levels with taiko tokens",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "upgrade",
				Description: "Upgrade ID from /shop",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "times",
				Description: "How many levels to buy (default: 1)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		options := getOptions(i)
		if len(options) == 0 {
			respondError(s, i, "Missing required upgrade argument.")
			return
		}

		upgradeID := options[0].StringValue()
		times := 1
		if len(options) > 1 {
			times = int(options[1].IntValue())
		}

		result, err := client.BuyUpgrade(user.ID, upgradeID, times)
		if err != nil {
			slog.Error("Failed to buy upgrade", "error", err,
				"discord_id", user.ID, "upgrade_id", upgradeID)
			respondFriendlyError(s, i, err.Error())
			return
		}

		msg := fmt.Sprintf("Bought **%d** level(s) of **%s** for 🪙 %d.\nNow at level **%d**. Balance: 🪙 %d",
			result.LevelsBought, result.Name, result.TotalCost, result.NewLevel, result.Balance)
		if result.Stopped != "" {
			msg += fmt.Sprintf("\n⚠️ Stopped early: %s", formatFriendlyError(result.Stopped))
		}

		sendEmbed(s, i, createEmbed("💰 Purchase Complete", msg, 0x2ecc71, ""))
	}

	return cmd, handler
}
