package submission

import (
	"context"
	"fmt"
	"sync"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Submission for integration-style unit tests. It mirrors the
// real store's guarantees: ApplyScore is atomic under the internal mutex and
// enforces ledger uniqueness.
type FakeRepository struct {
	mu       sync.Mutex
	users    map[string]*domain.User // keyed by discord ID
	profiles map[string]domain.ProfileSnapshot
	ledger   map[string]bool

	// ApplyErr, when set, is returned by ApplyScore to simulate a
	// persistence failure.
	ApplyErr error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		users:    make(map[string]*domain.User),
		profiles: make(map[string]domain.ProfileSnapshot),
		ledger:   make(map[string]bool),
	}
}

// AddUser registers a user with a zeroed profile.
func (f *FakeRepository) AddUser(user domain.User, levels map[string]int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[user.DiscordID] = &user
	if levels == nil {
		levels = map[string]int{}
	}
	f.profiles[user.ID] = domain.ProfileSnapshot{
		Bars:          domain.NewExpBars(),
		Balances:      domain.NewBalances(),
		UpgradeLevels: levels,
	}
}

// SetProfile replaces a user's stored profile.
func (f *FakeRepository) SetProfile(userID string, profile domain.ProfileSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[userID] = profile.Clone()
}

func (f *FakeRepository) GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[discordID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *FakeRepository) GetProfile(ctx context.Context, userID string) (*domain.ProfileSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	profile, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := profile.Clone()
	return &copied, nil
}

func (f *FakeRepository) IsSubmitted(ctx context.Context, entry domain.LedgerEntry) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ledger[ledgerKey(entry)], nil
}

func (f *FakeRepository) ApplyScore(ctx context.Context, userID string, entry domain.LedgerEntry, bars domain.ExpBars, balances domain.Balances) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ApplyErr != nil {
		return f.ApplyErr
	}

	key := ledgerKey(entry)
	if f.ledger[key] {
		return domain.ErrAlreadySubmitted
	}

	profile, ok := f.profiles[userID]
	if !ok {
		return domain.ErrUserNotFound
	}

	f.ledger[key] = true
	profile.Bars = bars.Clone()
	profile.Balances = balances.Clone()
	f.profiles[userID] = profile
	return nil
}

// LedgerSize reports how many entries the ledger holds.
func (f *FakeRepository) LedgerSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ledger)
}

func ledgerKey(entry domain.LedgerEntry) string {
	return fmt.Sprintf("%d:%d:%d:%d", entry.OsuID, entry.BeatmapID, entry.BeatmapsetID, entry.Timestamp.UnixNano())
}
