package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// UserRepository implements repository.User for PostgreSQL.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// RegisterUser upserts the account row and seeds the progression tables so
// later reads never have to special-case a brand-new user.
func (r *UserRepository) RegisterUser(ctx context.Context, discordID string, osuID int, username string) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	upsert := `
		INSERT INTO users (discord_id, osu_id, username)
		VALUES ($1, $2, $3)
		ON CONFLICT (discord_id) DO UPDATE SET osu_id = EXCLUDED.osu_id, username = EXCLUDED.username, updated_at = NOW()
		RETURNING user_id, discord_id, osu_id, username, created_at
	`
	var user domain.User
	err = tx.QueryRow(ctx, upsert, discordID, osuID, username).Scan(&user.ID, &user.DiscordID, &user.OsuID, &user.Username, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	barSeed := `
		INSERT INTO exp_bars (user_id, bar_name, total_exp)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id, bar_name) DO NOTHING
	`
	for _, name := range domain.ExpBarNames {
		if _, err := tx.Exec(ctx, barSeed, user.ID, name); err != nil {
			return nil, fmt.Errorf("failed to seed exp bar %s: %w", name, err)
		}
	}

	currencySeed := `
		INSERT INTO currency_balances (user_id, currency_id, balance)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id, currency_id) DO NOTHING
	`
	for _, id := range domain.CurrencyIDs {
		if _, err := tx.Exec(ctx, currencySeed, user.ID, id); err != nil {
			return nil, fmt.Errorf("failed to seed balance %s: %w", id, err)
		}
	}

	upgradeSeed := `
		INSERT INTO user_upgrades (user_id, upgrade_id, level)
		SELECT $1, upgrade_id, 0 FROM upgrade_definitions
		ON CONFLICT (user_id, upgrade_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, upgradeSeed, user.ID); err != nil {
		return nil, fmt.Errorf("failed to seed upgrades: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	return getUserByDiscordID(ctx, r.db, discordID)
}
