package domain

import "time"

// ScoreFacts are the immutable per-submission facts derived from a raw score.
// Everything the reward pipeline and upgrade effects need is captured here so
// effects can declare a single input struct instead of reaching back into the
// raw score.
type ScoreFacts struct {
	Username     string
	OsuID        int
	BeatmapID    int
	BeatmapsetID int
	Timestamp    time.Time

	N300s    int
	N100s    int
	Misses   int
	NoteHits int
	Accuracy float64
	MaxCombo int

	StarRating float64
	DrainTime  int // seconds

	// Completion is (300s+100s+misses)/total notes; CompleteRun iff exactly 1.
	Completion  float64
	CompleteRun bool

	// ActiveTracks lists the exp bars fed by the score's mods, one entry per
	// matching mod in mod order. Empty means all exp routes to NM.
	ActiveTracks []string

	BaseOverallExp int
	BaseTokens     int
}
