package main

import (
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/jarvisgaming/TaikoBot_Go/internal/discord"
)

// Default values for optional configuration
const (
	DefaultHealthPort  = "8082"
	DefaultAPIURL      = "http://localhost:8080"
	DefaultRecentLimit = 25
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Setup logging
	setupLogger()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	// Create bot
	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	// Start internal health endpoint
	healthPort := os.Getenv("DISCORD_HEALTH_PORT")
	if healthPort == "" {
		healthPort = DefaultHealthPort
	}

	httpServer := discord.NewHTTPServer(healthPort, bot)
	httpServer.Start()
	defer httpServer.Stop()

	// Register all commands
	registerCommands(bot, getCommandFactories(cfg))

	// Register with Discord API
	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	// Run bot
	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger configures structured logging to stdout.
func setupLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
}

// loadConfig loads and validates Discord bot configuration from environment variables.
// Returns error if required variables are missing.
func loadConfig() (discord.Config, error) {
	// Load required environment variables
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return discord.Config{}, errors.New("DISCORD_TOKEN is required")
	}

	appID := os.Getenv("DISCORD_APP_ID")
	if appID == "" {
		return discord.Config{}, errors.New("DISCORD_APP_ID is required")
	}

	// Load optional environment variables with defaults
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	slog.Info("Configured API URL", "url", apiURL)

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		slog.Warn("API_KEY not set, discord bot requests may fail")
	}

	recentLimit := DefaultRecentLimit
	if v := os.Getenv("RECENT_SCORE_LIMIT"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return discord.Config{}, errors.New("RECENT_SCORE_LIMIT must be an integer")
		}
		recentLimit = parsed
	}

	return discord.Config{
		Token:       token,
		AppID:       appID,
		APIURL:      apiURL,
		APIKey:      apiKey,
		RecentLimit: recentLimit,
	}, nil
}

// getCommandFactories returns a list of all available Discord command factories.
// This provides a single place to see and manage all registered commands.
func getCommandFactories(cfg discord.Config) []CommandFactory {
	return []CommandFactory{
		discord.PingCommand,
		discord.RegisterCommand,
		discord.ProfileCommand,
		discord.ShopCommand,
		discord.BuyCommand,
		func() (*discordgo.ApplicationCommand, discord.CommandHandler) {
			return discord.SubmitCommand(cfg.RecentLimit)
		},
	}
}

// registerCommands registers all provided command factories with the bot's registry.
// Each factory is called to create the command and handler, then registered.
func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}
