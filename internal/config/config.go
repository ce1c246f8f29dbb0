package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	LogDir     string
	APIKey     string // API key for authentication

	TrustedProxies []string // proxy IPs allowed to set X-Forwarded-For

	OsuClientID     int    // osu! OAuth client ID
	OsuClientSecret string // osu! OAuth client secret
	OsuAPIBaseURL   string
	OsuTokenURL     string

	RecentScoreLimit int // how many recent scores one submission pulls
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		ServiceName:     getEnv("SERVICE_NAME", "taiko-bot"),
		Version:         getEnv("VERSION", "dev"),
		Environment:     getEnv("ENVIRONMENT", "dev"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", "taikobot"),
		LogDir:          getEnv("LOG_DIR", "logs"),
		APIKey:          getEnv("API_KEY", ""),
		OsuClientSecret: getEnv("OSU_CLIENT_SECRET", ""),
		OsuAPIBaseURL:   getEnv("OSU_API_BASE_URL", DefaultOsuAPIBaseURL),
		OsuTokenURL:     getEnv("OSU_TOKEN_URL", DefaultOsuTokenURL),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	clientIDStr := getEnv("OSU_CLIENT_ID", "0")
	clientID, err := strconv.Atoi(clientIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OSU_CLIENT_ID value: %w", err)
	}
	cfg.OsuClientID = clientID

	limitStr := getEnv("RECENT_SCORE_LIMIT", strconv.Itoa(DefaultRecentScoreLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RECENT_SCORE_LIMIT value: %w", err)
	}
	cfg.RecentScoreLimit = limit

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
