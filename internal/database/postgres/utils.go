package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// getUserByDiscordID is the shared user lookup used by every repository.
func getUserByDiscordID(ctx context.Context, db *pgxpool.Pool, discordID string) (*domain.User, error) {
	query := `
		SELECT user_id, discord_id, osu_id, username, created_at
		FROM users
		WHERE discord_id = $1
	`

	var user domain.User
	err := db.QueryRow(ctx, query, discordID).Scan(&user.ID, &user.DiscordID, &user.OsuID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// getProfile loads the full progression snapshot. Exp bars and balances fall
// back to zeroed defaults for any name the user has no row for yet; upgrade
// levels come from the definitions table so every known upgrade is present.
func getProfile(ctx context.Context, db *pgxpool.Pool, userID string) (*domain.ProfileSnapshot, error) {
	profile := domain.ProfileSnapshot{
		Bars:          domain.NewExpBars(),
		Balances:      domain.NewBalances(),
		UpgradeLevels: make(map[string]int),
	}

	barRows, err := db.Query(ctx, `SELECT bar_name, total_exp FROM exp_bars WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exp bars: %w", err)
	}
	defer barRows.Close()
	for barRows.Next() {
		var name string
		var total int
		if err := barRows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("failed to scan exp bar: %w", err)
		}
		profile.Bars[name] = domain.NewExpBar(total)
	}
	if err := barRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exp bars: %w", err)
	}

	balanceRows, err := db.Query(ctx, `SELECT currency_id, balance FROM currency_balances WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	defer balanceRows.Close()
	for balanceRows.Next() {
		var id string
		var balance int
		if err := balanceRows.Scan(&id, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		profile.Balances[id] = balance
	}
	if err := balanceRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read balances: %w", err)
	}

	levelQuery := `
		SELECT d.upgrade_id, COALESCE(u.level, 0)
		FROM upgrade_definitions d
		LEFT JOIN user_upgrades u ON u.upgrade_id = d.upgrade_id AND u.user_id = $1
	`
	levelRows, err := db.Query(ctx, levelQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get upgrade levels: %w", err)
	}
	defer levelRows.Close()
	for levelRows.Next() {
		var id string
		var level int
		if err := levelRows.Scan(&id, &level); err != nil {
			return nil, fmt.Errorf("failed to scan upgrade level: %w", err)
		}
		profile.UpgradeLevels[id] = level
	}
	if err := levelRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read upgrade levels: %w", err)
	}

	return &profile, nil
}
