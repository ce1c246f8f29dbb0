package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// ShopRepository implements repository.Shop for PostgreSQL.
type ShopRepository struct {
	db *pgxpool.Pool
}

// NewShopRepository creates a new ShopRepository
func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	return getUserByDiscordID(ctx, r.db, discordID)
}

func (r *ShopRepository) GetProfile(ctx context.Context, userID string) (*domain.ProfileSnapshot, error) {
	return getProfile(ctx, r.db, userID)
}

// PurchaseUpgrade deducts the cost and writes the new level in one
// transaction. The guarded UPDATE is the funds check: zero rows affected
// means the balance no longer covers the cost.
func (r *ShopRepository) PurchaseUpgrade(ctx context.Context, userID, upgradeID, currency string, cost, newLevel int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	deduct := `
		UPDATE currency_balances
		SET balance = balance - $1
		WHERE user_id = $2 AND currency_id = $3 AND balance >= $1
	`
	tag, err := tx.Exec(ctx, deduct, cost, userID, currency)
	if err != nil {
		return fmt.Errorf("failed to deduct balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}

	setLevel := `
		INSERT INTO user_upgrades (user_id, upgrade_id, level)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, upgrade_id) DO UPDATE SET level = EXCLUDED.level
	`
	if _, err := tx.Exec(ctx, setLevel, userID, upgradeID, newLevel); err != nil {
		return fmt.Errorf("failed to set upgrade level: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *ShopRepository) ListKnownUpgradeIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT upgrade_id FROM upgrade_definitions ORDER BY upgrade_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list upgrade definitions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan upgrade id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read upgrade ids: %w", err)
	}
	return ids, nil
}
