package reward

import (
	"fmt"
	"math"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// Formula holds the constants of the base exp gain formula. Earlier revisions
// of the economy shipped different exponents and scales; the live values are
// defined once here instead of being hard-coded at each call site.
type Formula struct {
	HitWeight300 float64
	HitWeight100 float64
	MissWeight   float64
	GainExponent float64
	StarCap      float64
	StarExponent float64
	GainScale    float64
}

// DefaultFormula returns the live formula:
// floor(max(3*n300 + 0.75*n100 - 3*miss, 0)^0.6 * min(sr+1, 11)^1.2 * 0.05)
func DefaultFormula() Formula {
	return Formula{
		HitWeight300: 3,
		HitWeight100: 0.75,
		MissWeight:   3,
		GainExponent: 0.6,
		StarCap:      11,
		StarExponent: 1.2,
		GainScale:    0.05,
	}
}

// DeriveFacts computes the immutable per-submission facts from a raw score.
// Returns domain.ErrMalformedMap for a zero-note map, which would otherwise
// divide by zero in the completion ratio.
func DeriveFacts(score domain.Score, formula Formula) (domain.ScoreFacts, error) {
	totalNotes := score.Beatmap.NumNotes
	if totalNotes <= 0 {
		return domain.ScoreFacts{}, fmt.Errorf("%w: beatmap %d", domain.ErrMalformedMap, score.Beatmap.ID)
	}

	completion := float64(score.N300s+score.N100s+score.Misses) / float64(totalNotes)
	completeRun := completion == 1.0

	gain := baseOverallExp(score, formula)
	if !completeRun {
		// Punish incomplete scores according to how much of the map was
		// played. At completion=1 the factor is exactly 1 and is skipped to
		// avoid floating rounding.
		gain *= math.Log2(completion + 1)
	}

	return domain.ScoreFacts{
		Username:     score.Username,
		OsuID:        score.OsuID,
		BeatmapID:    score.Beatmap.ID,
		BeatmapsetID: score.Beatmapset.ID,
		Timestamp:    score.Timestamp,

		N300s:    score.N300s,
		N100s:    score.N100s,
		Misses:   score.Misses,
		NoteHits: score.NoteHits(),
		Accuracy: score.Accuracy,
		MaxCombo: score.MaxCombo,

		StarRating: score.Beatmap.StarRating,
		DrainTime:  score.Beatmap.DrainTime,

		Completion:  completion,
		CompleteRun: completeRun,

		ActiveTracks: activeTracks(score),

		BaseOverallExp: int(gain),
		BaseTokens:     score.NoteHits() / domain.NoteHitsPerToken,
	}, nil
}

// baseOverallExp evaluates the gain formula before the completion penalty.
func baseOverallExp(score domain.Score, f Formula) float64 {
	hitValue := f.HitWeight300*float64(score.N300s) + f.HitWeight100*float64(score.N100s) - f.MissWeight*float64(score.Misses)
	hitValue = math.Max(hitValue, 0)

	starFactor := math.Min(score.Beatmap.StarRating+1, f.StarCap)

	return math.Pow(hitValue, f.GainExponent) * math.Pow(starFactor, f.StarExponent) * f.GainScale
}

// activeTracks returns the exp bar fed by each tracked mod on the score, in
// mod order. NC and DC count under DT and HT.
func activeTracks(score domain.Score) []string {
	var tracks []string
	for _, mod := range score.Mods {
		if track, ok := domain.TrackForMod[mod.Acronym]; ok {
			tracks = append(tracks, track)
		}
	}
	return tracks
}
