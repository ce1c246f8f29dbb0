package domain

import "time"

// User represents a verified player account linking a Discord identity to an
// osu! identity.
type User struct {
	ID        string    `json:"id"`
	DiscordID string    `json:"discord_id"`
	OsuID     int       `json:"osu_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// LedgerEntry identifies one accepted score submission. The full tuple is the
// uniqueness key that prevents double-crediting.
type LedgerEntry struct {
	OsuID        int       `json:"osu_id"`
	BeatmapID    int       `json:"beatmap_id"`
	BeatmapsetID int       `json:"beatmapset_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// ProfileSnapshot is a point-in-time view of a user's progression state.
// Snapshots are value copies; mutating one never affects another.
type ProfileSnapshot struct {
	Bars          ExpBars        `json:"bars"`
	Balances      Balances       `json:"balances"`
	UpgradeLevels map[string]int `json:"upgrade_levels"`
}

// Clone returns an independent copy of the snapshot.
func (p ProfileSnapshot) Clone() ProfileSnapshot {
	levels := make(map[string]int, len(p.UpgradeLevels))
	for id, lvl := range p.UpgradeLevels {
		levels[id] = lvl
	}
	return ProfileSnapshot{
		Bars:          p.Bars.Clone(),
		Balances:      p.Balances.Clone(),
		UpgradeLevels: levels,
	}
}
