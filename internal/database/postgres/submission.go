package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// SubmissionRepository implements repository.Submission for PostgreSQL.
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	return getUserByDiscordID(ctx, r.db, discordID)
}

func (r *SubmissionRepository) GetProfile(ctx context.Context, userID string) (*domain.ProfileSnapshot, error) {
	return getProfile(ctx, r.db, userID)
}

func (r *SubmissionRepository) IsSubmitted(ctx context.Context, entry domain.LedgerEntry) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM submitted_scores
			WHERE osu_id = $1 AND beatmap_id = $2 AND beatmapset_id = $3 AND score_timestamp = $4
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, entry.OsuID, entry.BeatmapID, entry.BeatmapsetID, entry.Timestamp).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check submitted scores: %w", err)
	}
	return exists, nil
}

// ApplyScore commits one accepted score atomically: the ledger insert and the
// full bar/balance state it produced. The ledger's unique constraint makes
// the insert the serialization point; a conflict means another writer already
// credited this score and nothing is written.
func (r *SubmissionRepository) ApplyScore(ctx context.Context, userID string, entry domain.LedgerEntry, bars domain.ExpBars, balances domain.Balances) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	insert := `
		INSERT INTO submitted_scores (user_id, osu_id, beatmap_id, beatmapset_id, score_timestamp)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (osu_id, beatmap_id, beatmapset_id, score_timestamp) DO NOTHING
	`
	tag, err := tx.Exec(ctx, insert, userID, entry.OsuID, entry.BeatmapID, entry.BeatmapsetID, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadySubmitted
	}

	barUpsert := `
		INSERT INTO exp_bars (user_id, bar_name, total_exp)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, bar_name) DO UPDATE SET total_exp = EXCLUDED.total_exp
	`
	for name, bar := range bars {
		if _, err := tx.Exec(ctx, barUpsert, userID, name, bar.TotalExp); err != nil {
			return fmt.Errorf("failed to upsert exp bar %s: %w", name, err)
		}
	}

	balanceUpsert := `
		INSERT INTO currency_balances (user_id, currency_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, currency_id) DO UPDATE SET balance = EXCLUDED.balance
	`
	for id, balance := range balances {
		if _, err := tx.Exec(ctx, balanceUpsert, userID, id, balance); err != nil {
			return fmt.Errorf("failed to upsert balance %s: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
