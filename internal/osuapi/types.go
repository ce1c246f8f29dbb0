package osuapi

// Wire types for the osu! v2 API. Only the fields the bot consumes are
// declared; everything else in the payload is ignored.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type apiMod struct {
	Acronym  string                 `json:"acronym"`
	Settings map[string]interface{} `json:"settings,omitempty"`
}

type apiStatistics struct {
	Great int `json:"great"`
	Ok    int `json:"ok"`
	Miss  int `json:"miss"`
}

type apiBeatmap struct {
	ID               int     `json:"id"`
	URL              string  `json:"url"`
	Mode             string  `json:"mode"`
	Checksum         string  `json:"checksum"`
	Version          string  `json:"version"`
	DifficultyRating float64 `json:"difficulty_rating"`
	CountCircles     int     `json:"count_circles"`
	CountSliders     int     `json:"count_sliders"`
	CountSpinners    int     `json:"count_spinners"`
	HitLength        int     `json:"hit_length"`
	Status           string  `json:"status"`
	Convert          bool    `json:"convert"`
}

type apiBeatmapset struct {
	ID      int    `json:"id"`
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Creator string `json:"creator"`
}

type apiUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type apiScore struct {
	ID         int64         `json:"id"`
	UserID     int           `json:"user_id"`
	Accuracy   float64       `json:"accuracy"` // fraction, 0-1
	Rank       string        `json:"rank"`
	MaxCombo   int           `json:"max_combo"`
	TotalScore int64         `json:"total_score"`
	Passed     bool          `json:"passed"`
	EndedAt    string        `json:"ended_at"`
	Mods       []apiMod      `json:"mods"`
	Statistics apiStatistics `json:"statistics"`
	Beatmap    apiBeatmap    `json:"beatmap"`
	Beatmapset apiBeatmapset `json:"beatmapset"`
	User       apiUser       `json:"user"`
}

type apiAttributes struct {
	Attributes struct {
		StarRating float64 `json:"star_rating"`
	} `json:"attributes"`
}
