package domain

import "time"

// AllowedMods is the fixed allow-list for submitted scores. A score carrying
// any mod outside this set is rejected before it reaches the reward pipeline.
var AllowedMods = []string{
	"NF", "EZ", "HD", "HR", "FL", "DT", "NC", "HT", "DC", "SD", "PF", "CL", "AC", "SG", "MU",
}

// ModSettingSpeedChange is the mod settings key that marks a non-default
// DT/NC/HT/DC rate. Default rates omit the key entirely.
const ModSettingSpeedChange = "speed_change"

// Mod is a gameplay rule toggle attached to a score.
// Settings is nil when the mod runs with its defaults.
type Mod struct {
	Acronym  string                 `json:"acronym"`
	Settings map[string]interface{} `json:"settings,omitempty"`
}

// Beatmap holds the per-difficulty map metadata the reward formulas consume.
// StarRating is the value after the score's rate mods, not the listing value.
type Beatmap struct {
	ID             int     `json:"id"`
	URL            string  `json:"url"`
	Mode           string  `json:"mode"`
	Checksum       string  `json:"checksum"`
	DifficultyName string  `json:"difficulty_name"`
	StarRating     float64 `json:"star_rating"`
	NumNotes       int     `json:"num_notes"`
	NumSliders     int     `json:"num_sliders"`
	NumSpinners    int     `json:"num_spinners"`
	DrainTime      int     `json:"drain_time"` // seconds
	Status         string  `json:"status"`
}

// Beatmapset identifies the set a difficulty belongs to.
type Beatmapset struct {
	ID      int    `json:"id"`
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Creator string `json:"creator"`
}

// Score is a raw taiko score as returned by the score source, before any
// reward evaluation.
type Score struct {
	Username string `json:"username"`
	OsuID    int    `json:"osu_id"`
	ScoreID  int64  `json:"score_id"`

	N300s    int     `json:"n300s"`
	N100s    int     `json:"n100s"`
	Misses   int     `json:"misses"`
	Accuracy float64 `json:"accuracy"` // percentage, 0-100
	Rank     string  `json:"rank"`
	MaxCombo int     `json:"max_combo"`
	Mods     []Mod   `json:"mods"`

	Timestamp  time.Time `json:"timestamp"`
	TotalScore int64     `json:"total_score"`
	IsPass     bool      `json:"is_pass"`
	IsConvert  bool      `json:"is_convert"`

	Beatmap    Beatmap    `json:"beatmap"`
	Beatmapset Beatmapset `json:"beatmapset"`
}

// NoteHits returns the number of notes the player actually hit.
func (s Score) NoteHits() int {
	return s.N300s + s.N100s
}

// HasMod reports whether any of the given acronyms appear in the score.
func (s Score) HasMod(acronyms ...string) bool {
	for _, mod := range s.Mods {
		for _, a := range acronyms {
			if mod.Acronym == a {
				return true
			}
		}
	}
	return false
}

// HasDisallowedMods reports whether the score uses a mod outside AllowedMods.
func (s Score) HasDisallowedMods() bool {
	for _, mod := range s.Mods {
		allowed := false
		for _, a := range AllowedMods {
			if mod.Acronym == a {
				allowed = true
				break
			}
		}
		if !allowed {
			return true
		}
	}
	return false
}

// HasCustomRate reports whether a rate mod runs at a non-default speed.
// Default DT/NC/HT/DC carry no speed_change setting.
func (s Score) HasCustomRate() bool {
	for _, mod := range s.Mods {
		switch mod.Acronym {
		case "DT", "NC", "HT", "DC":
			if mod.Settings != nil {
				if _, ok := mod.Settings[ModSettingSpeedChange]; ok {
					return true
				}
			}
		}
	}
	return false
}

// AFKAccuracyThreshold is the accuracy below which a play is treated as AFK.
const AFKAccuracyThreshold = 50.0

// IsAFK reports whether the accuracy is low enough to assume the player
// wasn't actually playing the map.
func (s Score) IsAFK() bool {
	return s.Accuracy < AFKAccuracyThreshold
}

// ModsHumanReadable returns the mod acronyms joined for display.
func (s Score) ModsHumanReadable() string {
	out := ""
	for i, mod := range s.Mods {
		if i > 0 {
			out += " "
		}
		out += mod.Acronym
	}
	return out
}
