package submission

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jarvisgaming/TaikoBot_Go/internal/concurrency"
	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/logger"
	"github.com/jarvisgaming/TaikoBot_Go/internal/metrics"
	"github.com/jarvisgaming/TaikoBot_Go/internal/repository"
	"github.com/jarvisgaming/TaikoBot_Go/internal/reward"
)

// DefaultRecentLimit is used when a submission request does not cap how many
// recent scores to fetch.
const DefaultRecentLimit = 25

// ScoreSource supplies a user's recent scores. Implemented by the osu! API
// client; faked in tests.
type ScoreSource interface {
	RecentScores(ctx context.Context, osuID, limit int) ([]domain.Score, error)
}

// Service defines the interface for score submission operations
type Service interface {
	// SubmitRecent fetches the user's recent scores and applies each one to
	// their progression, oldest first. Individual rejections are reported in
	// the batch result; only infrastructure errors fail the call outright.
	SubmitRecent(ctx context.Context, discordID string, limit int) (*BatchResult, error)

	// GetProfile returns the user's current progression snapshot.
	GetProfile(ctx context.Context, discordID string) (*domain.ProfileSnapshot, error)
}

// ScoreSummary carries the display fields of one evaluated score.
type ScoreSummary struct {
	Artist         string  `json:"artist"`
	Title          string  `json:"title"`
	DifficultyName string  `json:"difficulty_name"`
	StarRating     float64 `json:"star_rating"`
	Accuracy       float64 `json:"accuracy"`
	Mods           string  `json:"mods"`
}

// ScoreResult is the outcome of one score within a batch.
type ScoreResult struct {
	Score    ScoreSummary `json:"score"`
	Accepted bool         `json:"accepted"`
	// Rejection holds the user-facing reason when the score was rejected by
	// a validation gate. Retryable holds a diagnostic when persistence
	// failed; the score can be resubmitted.
	Rejection string `json:"rejection,omitempty"`
	Retryable string `json:"retryable,omitempty"`

	TrackGains    map[string]int `json:"track_gains,omitempty"`
	CurrencyGains map[string]int `json:"currency_gains,omitempty"`

	Before *domain.ProfileSnapshot `json:"before,omitempty"`
	After  *domain.ProfileSnapshot `json:"after,omitempty"`
}

// BatchResult is the outcome of a whole submission run.
type BatchResult struct {
	Username  string        `json:"username"`
	Processed int           `json:"processed"`
	Accepted  int           `json:"accepted"`
	Results   []ScoreResult `json:"results"`
}

type service struct {
	repo     repository.Submission
	source   ScoreSource
	pipeline *reward.Pipeline
	formula  reward.Formula
	locks    *concurrency.LockManager
}

// NewService creates a new submission service
func NewService(repo repository.Submission, source ScoreSource, pipeline *reward.Pipeline, formula reward.Formula) Service {
	return &service{
		repo:     repo,
		source:   source,
		pipeline: pipeline,
		formula:  formula,
		locks:    concurrency.NewLockManager(),
	}
}

func (s *service) GetProfile(ctx context.Context, discordID string) (*domain.ProfileSnapshot, error) {
	user, err := s.repo.GetUserByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, user.ID)
}

func (s *service) SubmitRecent(ctx context.Context, discordID string, limit int) (*BatchResult, error) {
	log := logger.FromContext(ctx)
	log.Info("SubmitRecent called", "discordID", discordID, "limit", limit)

	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	user, err := s.repo.GetUserByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	scores, err := s.source.RecentScores(ctx, user.OsuID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent scores: %w", err)
	}

	// Level-dependent multipliers make application order-sensitive, so
	// scores always apply oldest first regardless of fetch order.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Timestamp.Before(scores[j].Timestamp)
	})

	// Serialize against concurrent submissions by the same user: the
	// duplicate check and the ledger write must not interleave.
	lock := s.locks.GetLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	current := profile.Clone()

	batch := &BatchResult{Username: user.Username}

	for _, score := range scores {
		// Each score commits independently; cancellation between scores
		// leaves already-committed entries intact.
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		result := s.processOneScore(ctx, user, score, &current)
		batch.Results = append(batch.Results, result)
		batch.Processed++
		if result.Accepted {
			batch.Accepted++
		}
	}

	return batch, nil
}

// processOneScore validates, evaluates and commits a single score against the
// running snapshot. On acceptance the snapshot is advanced so the next score
// in the batch sees the new levels.
func (s *service) processOneScore(ctx context.Context, user *domain.User, score domain.Score, current *domain.ProfileSnapshot) ScoreResult {
	log := logger.FromContext(ctx)
	result := ScoreResult{Score: summarize(score)}

	if err := s.validateScore(ctx, score); err != nil {
		if domain.IsValidationRejection(err) {
			log.Info("Score rejected", "user", user.Username, "beatmap", score.Beatmap.ID, "reason", err)
			metrics.ScoresRejected.WithLabelValues(rejectionLabel(err)).Inc()
			result.Rejection = err.Error()
			return result
		}
		log.Error("Score validation failed", "user", user.Username, "beatmap", score.Beatmap.ID, "error", err)
		result.Retryable = err.Error()
		return result
	}

	facts, err := reward.DeriveFacts(score, s.formula)
	if err != nil {
		// Malformed map data; surface the diagnostic, keep the batch going.
		log.Error("Failed to derive score facts", "user", user.Username, "beatmap", score.Beatmap.ID, "error", err)
		metrics.ScoresRejected.WithLabelValues(metrics.RejectReasonMalformed).Inc()
		result.Rejection = err.Error()
		return result
	}

	res := s.pipeline.Evaluate(facts, current.UpgradeLevels, current.Bars)

	before := current.Clone()
	after := before.Clone()
	for name, gain := range res.TrackGains {
		bar := after.Bars[name]
		bar.AddExp(gain)
		after.Bars[name] = bar
	}
	for id, gain := range res.CurrencyGains {
		after.Balances[id] += gain
	}

	entry := domain.LedgerEntry{
		OsuID:        score.OsuID,
		BeatmapID:    score.Beatmap.ID,
		BeatmapsetID: score.Beatmapset.ID,
		Timestamp:    score.Timestamp,
	}

	if err := s.repo.ApplyScore(ctx, user.ID, entry, after.Bars, after.Balances); err != nil {
		if errors.Is(err, domain.ErrAlreadySubmitted) {
			// The ledger's uniqueness constraint is the last line of defense
			// against a duplicate racing past the earlier check.
			metrics.ScoresRejected.WithLabelValues(metrics.RejectReasonDuplicate).Inc()
			result.Rejection = err.Error()
			return result
		}
		log.Error("Failed to apply score", "user", user.Username, "beatmap", score.Beatmap.ID, "error", err)
		result.Retryable = fmt.Sprintf("failed to apply score: %v", err)
		return result
	}

	metrics.ScoresAccepted.Inc()
	for name, gain := range res.TrackGains {
		if gain > 0 {
			metrics.ExpAwarded.WithLabelValues(name).Add(float64(gain))
		}
	}
	metrics.TokensAwarded.Add(float64(res.CurrencyGains[domain.CurrencyTaikoTokens]))

	result.Accepted = true
	result.TrackGains = res.TrackGains
	result.CurrencyGains = res.CurrencyGains
	result.Before = &before
	result.After = &after

	*current = after.Clone()
	return result
}

func summarize(score domain.Score) ScoreSummary {
	return ScoreSummary{
		Artist:         score.Beatmapset.Artist,
		Title:          score.Beatmapset.Title,
		DifficultyName: score.Beatmap.DifficultyName,
		StarRating:     score.Beatmap.StarRating,
		Accuracy:       score.Accuracy,
		Mods:           score.ModsHumanReadable(),
	}
}

func rejectionLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadySubmitted):
		return metrics.RejectReasonDuplicate
	case errors.Is(err, domain.ErrConvertMap):
		return metrics.RejectReasonConvert
	case errors.Is(err, domain.ErrDisallowedMod):
		return metrics.RejectReasonDisallowedMod
	case errors.Is(err, domain.ErrCustomRate):
		return metrics.RejectReasonCustomRate
	case errors.Is(err, domain.ErrAFKScore):
		return metrics.RejectReasonAFK
	default:
		return metrics.RejectReasonOther
	}
}
