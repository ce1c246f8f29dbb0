package config

const (
	// osu! API v2 endpoints
	DefaultOsuAPIBaseURL = "https://osu.ppy.sh/api/v2"
	DefaultOsuTokenURL   = "https://osu.ppy.sh/oauth/token"

	// DefaultRecentScoreLimit caps how many recent scores a single
	// submission pulls from the osu! API.
	DefaultRecentScoreLimit = 25
)
