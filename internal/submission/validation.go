package submission

import (
	"context"
	"fmt"
	"strings"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// validateScore runs the submission gates in order. The first failing gate
// short-circuits; a gate error means the score contributes nothing, but the
// batch carries on. Each gate maps to its own sentinel error so callers can
// report the exact reason.
func (s *service) validateScore(ctx context.Context, score domain.Score) error {
	entry := domain.LedgerEntry{
		OsuID:        score.OsuID,
		BeatmapID:    score.Beatmap.ID,
		BeatmapsetID: score.Beatmapset.ID,
		Timestamp:    score.Timestamp,
	}

	submitted, err := s.repo.IsSubmitted(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to check ledger: %w", err)
	}
	if submitted {
		return domain.ErrAlreadySubmitted
	}

	if score.IsConvert {
		return domain.ErrConvertMap
	}

	if score.HasDisallowedMods() {
		return fmt.Errorf("%w: the only allowed mods are %s", domain.ErrDisallowedMod, strings.Join(domain.AllowedMods, ", "))
	}

	if score.HasCustomRate() {
		return fmt.Errorf("%w: DT must be x1.5 speed and HT must be x0.75 speed", domain.ErrCustomRate)
	}

	if score.IsAFK() {
		return fmt.Errorf("%w: %.2f%%", domain.ErrAFKScore, score.Accuracy)
	}

	return nil
}
