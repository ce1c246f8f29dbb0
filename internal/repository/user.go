package repository

import (
	"context"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// User defines the persistence interface for account registration.
type User interface {
	// RegisterUser creates the user (or refreshes osu_id/username for an
	// existing discord ID) and seeds zeroed progression rows.
	RegisterUser(ctx context.Context, discordID string, osuID int, username string) (*domain.User, error)

	GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error)
}
