package shop

import (
	"context"
	"sync"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of repository.Shop
// for integration-style unit tests. PurchaseUpgrade re-checks the balance
// under the mutex like the real transactional store does.
type FakeRepository struct {
	mu       sync.Mutex
	users    map[string]*domain.User // keyed by discord ID
	profiles map[string]domain.ProfileSnapshot

	// PurchaseErr, when set, is returned by PurchaseUpgrade to simulate a
	// persistence failure.
	PurchaseErr error

	knownUpgradeIDs []string
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		users:    make(map[string]*domain.User),
		profiles: make(map[string]domain.ProfileSnapshot),
	}
}

// AddUser registers a user with the given upgrade levels and balance.
func (f *FakeRepository) AddUser(user domain.User, levels map[string]int, tokens int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[user.DiscordID] = &user
	if levels == nil {
		levels = map[string]int{}
	}
	balances := domain.NewBalances()
	balances[domain.CurrencyTaikoTokens] = tokens
	f.profiles[user.ID] = domain.ProfileSnapshot{
		Bars:          domain.NewExpBars(),
		Balances:      balances,
		UpgradeLevels: levels,
	}
}

// SetKnownUpgradeIDs seeds the schema ID list for sync checks.
func (f *FakeRepository) SetKnownUpgradeIDs(ids []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.knownUpgradeIDs = ids
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

func (f *FakeRepository) PurchaseUpgrade(ctx context.Context, userID, upgradeID, currency string, cost, newLevel int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.PurchaseErr != nil {
		return f.PurchaseErr
	}

	profile, ok := f.profiles[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if profile.Balances[currency] < cost {
		return domain.ErrInsufficientFunds
	}

	updated := profile.Clone()
	updated.Balances[currency] -= cost
	updated.UpgradeLevels[upgradeID] = newLevel
	f.profiles[userID] = updated
	return nil
}

func (f *FakeRepository) ListKnownUpgradeIDs(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.knownUpgradeIDs...), nil
}
