package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestCommandsEqual(t *testing.T) {
	base := func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
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
	}

	t.Run("Identical Commands", func(t *testing.T) {
		assert.True(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			[]*discordgo.ApplicationCommand{base()},
		))
	})

	t.Run("Different Description", func(t *testing.T) {
		changed := base()
		changed.Description = "Something else"
		assert.False(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			[]*discordgo.ApplicationCommand{changed},
		))
	})

	t.Run("Different Option Required", func(t *testing.T) {
		changed := base()
		changed.Options[0].Required = true
		assert.False(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			[]*discordgo.ApplicationCommand{changed},
		))
	})

	t.Run("Missing Command", func(t *testing.T) {
		assert.False(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			[]*discordgo.ApplicationCommand{},
		))
	})
}

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	cmd, handler := PingCommand()
	registry.Register(cmd, handler)

	assert.Contains(t, registry.Commands, "ping")
	assert.Contains(t, registry.Handlers, "ping")
}
