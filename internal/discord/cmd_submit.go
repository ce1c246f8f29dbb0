package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/submission"
)

// maxScoreLines caps how many per-score lines one embed shows.
const maxScoreLines = 10

// SubmitCommand returns the submit command definition and handler
func SubmitCommand(defaultLimit int) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "submit",
		Description: "Submit your recent taiko scores for exp and tokens",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "limit",
				Description: "How many recent scores to check (default: all recent)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		limit := defaultLimit
		if options := getOptions(i); len(options) > 0 {
			limit = int(options[0].IntValue())
		}

		batch, err := client.SubmitRecent(user.ID, limit)
		if err != nil {
			slog.Error("Failed to submit scores", "error", err, "discord_id", user.ID)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendEmbed(s, i, buildBatchEmbed(batch))
	}

	return cmd, handler
}

// buildBatchEmbed renders a submission batch as one embed.
func buildBatchEmbed(batch *submission.BatchResult) *discordgo.MessageEmbed {
	if batch.Processed == 0 {
		return createEmbed("🥁 No Scores Found",
			"No recent taiko scores to submit. Go play a map first!", 0x95a5a6, "")
	}

	var sb strings.Builder
	shown := 0
	for _, result := range batch.Results {
		if shown >= maxScoreLines {
			sb.WriteString(fmt.Sprintf("…and %d more\n", batch.Processed-shown))
			break
		}
		sb.WriteString(formatScoreLine(result))
		shown++
	}

	title := fmt.Sprintf("🥁 Submitted %d/%d Scores", batch.Accepted, batch.Processed)
	color := 0x2ecc71
	if batch.Accepted == 0 {
		color = 0xe67e22
	}
	return createEmbed(title, sb.String(), color, "")
}

// formatScoreLine renders one score result as a single embed line.
func formatScoreLine(result submission.ScoreResult) string {
	name := fmt.Sprintf("**%s - %s** [%s]",
		result.Score.Artist, result.Score.Title, result.Score.DifficultyName)

	if !result.Accepted {
		reason := result.Rejection
		if reason == "" {
			reason = result.Retryable
		}
		return fmt.Sprintf("❌ %s — %s\n", name, reason)
	}

	var gains []string
	for _, track := range domain.ExpBarNames {
		if exp := result.TrackGains[track]; exp > 0 {
			gains = append(gains, fmt.Sprintf("%s +%d", track, exp))
		}
	}
	if tokens := result.CurrencyGains[domain.CurrencyTaikoTokens]; tokens > 0 {
		gains = append(gains, fmt.Sprintf("🪙 +%d", tokens))
	}

	return fmt.Sprintf("✅ %s (%.2f%%) — %s\n", name, result.Score.Accuracy, strings.Join(gains, ", "))
}
