package repository

import (
	"context"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// Submission defines the persistence interface for score submission and
// progression state.
type Submission interface {
	GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error)

	// GetProfile returns the user's exp bars, balances and upgrade levels as
	// one snapshot. The returned value is owned by the caller.
	GetProfile(ctx context.Context, userID string) (*domain.ProfileSnapshot, error)

	// IsSubmitted reports whether the ledger already holds the entry.
	IsSubmitted(ctx context.Context, entry domain.LedgerEntry) (bool, error)

	// ApplyScore commits one accepted score in a single transaction: the
	// ledger insert, the updated exp bars, and the updated balances. Returns
	// domain.ErrAlreadySubmitted when the ledger entry already exists; in
	// that case nothing is written.
	ApplyScore(ctx context.Context, userID string, entry domain.LedgerEntry, bars domain.ExpBars, balances domain.Balances) error
}

// Shop defines the persistence interface for upgrade purchases.
type Shop interface {
	GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.ProfileSnapshot, error)

	// PurchaseUpgrade deducts cost from the currency balance and sets the
	// upgrade to newLevel in a single transaction. Returns
	// domain.ErrInsufficientFunds if the balance no longer covers the cost.
	PurchaseUpgrade(ctx context.Context, userID, upgradeID, currency string, cost, newLevel int) error

	// ListKnownUpgradeIDs returns the upgrade IDs the schema knows about,
	// for the startup sync check against the registry.
	ListKnownUpgradeIDs(ctx context.Context) ([]string, error)
}
