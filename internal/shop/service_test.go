package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/upgrade"
)

func testUser() domain.User {
	return domain.User{
		ID:        "user-1",
		DiscordID: "discord-1",
		OsuID:     4171323,
		Username:  "jarvis",
	}
}

func newTestService(repo *FakeRepository) Service {
	return NewService(repo, upgrade.NewDefaultRegistry())
}

func TestBuyUpgrade_SingleLevel(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	repo.AddUser(testUser(), nil, 100)
	svc := newTestService(repo)

	// Level 1 of the overall multiplier costs 15
	result, err := svc.BuyUpgrade(ctx, "discord-1", upgrade.IDOverallExpMultiplier, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.LevelsBought)
	assert.Equal(t, 1, result.NewLevel)
	assert.Equal(t, 15, result.TotalCost)
	assert.Equal(t, 85, result.Balance)
	assert.Empty(t, result.Stopped)

	profile, err := repo.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.UpgradeLevels[upgrade.IDOverallExpMultiplier])
	assert.Equal(t, 85, profile.Balances[domain.CurrencyTaikoTokens])
}

func TestBuyUpgrade_MultipleLevelsChargeEscalatingCosts(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	repo.AddUser(testUser(), nil, 1000)
	svc := newTestService(repo)

	// Levels 1-3 cost 15 + 30 + 45 = 90
	result, err := svc.BuyUpgrade(ctx, "discord-1", upgrade.IDOverallExpMultiplier, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, result.LevelsBought)
	assert.Equal(t, 3, result.NewLevel)
	assert.Equal(t, 90, result.TotalCost)
	assert.Equal(t, 910, result.Balance)
}

func TestBuyUpgrade_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	repo.AddUser(testUser(), nil, 10)
	svc := newTestService(repo)

	result, err := svc.BuyUpgrade(ctx, "discord-1", upgrade.IDOverallExpMultiplier, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Nil(t, result)

	// Nothing was deducted
	profile, err := repo.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, profile.Balances[domain.CurrencyTaikoTokens])
	assert.Equal(t, 0, profile.UpgradeLevels[upgrade.IDOverallExpMultiplier])
}

func TestBuyUpgrade_PartialPurchaseStopsAtFunds(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	// Enough for levels 1 and 2 (15+30=45) but not level 3 (45 more)
	repo.AddUser(testUser(), nil, 50)
	svc := newTestService(repo)

	result, err := svc.BuyUpgrade(ctx, "discord-1", upgrade.IDOverallExpMultiplier, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, result.LevelsBought)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, 45, result.TotalCost)
	assert.Equal(t, 5, result.Balance)
	assert.Equal(t, domain.ErrMsgInsufficientFunds, result.Stopped)
}

func TestBuyUpgrade_MaxLevel(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	levels := map[string]int{upgrade.IDNoModExpMultiplier: 5} // max level 5
	repo.AddUser(testUser(), levels, 100000)
	svc := newTestService(repo)

	result, err := svc.BuyUpgrade(ctx, "discord-1", upgrade.IDNoModExpMultiplier, 1)
	require.ErrorIs(t, err, domain.ErrUpgradeMaxed)
	assert.Nil(t, result)
}

func TestBuyUpgrade_PartialPurchaseStopsAtMaxLevel(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRepository()
	levels := map[string]int{upgrade.IDNoModExpMultiplier: 4}
	repo.AddUser(testUser(), levels, 100000)
	svc := newTestService(repo)

	result, err := svc.BuyUpgrade(ctx, "discord-1", upgrade.IDNoModExpMultiplier, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, result.LevelsBought)
	assert.Equal(t, 5, result.NewLevel)
	assert.Equal(t, 200*5*5, result.TotalCost)
	assert.Equal(t, domain.ErrMsgUpgradeMaxed, result.Stopped)
}

func TestBuyUpgrade_UnknownUpgrade(t *testing.T) {
	repo := NewFakeRepository()
	repo.AddUser(testUser(), nil, 100)
	svc := newTestService(repo)

	_, err := svc.BuyUpgrade(context.Background(), "discord-1", "no_such_upgrade", 1)
	assert.ErrorIs(t, err, domain.ErrUpgradeNotFound)
}

func TestBuyUpgrade_UserNotFound(t *testing.T) {
	repo := NewFakeRepository()
	svc := newTestService(repo)

	_, err := svc.BuyUpgrade(context.Background(), "nobody", upgrade.IDOverallExpMultiplier, 1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListUpgrades(t *testing.T) {
	ctx := context.Background()
	registry := upgrade.NewDefaultRegistry()
	repo := NewFakeRepository()
	levels := map[string]int{
		upgrade.IDOverallExpMultiplier: 2,
		upgrade.IDNoModExpMultiplier:   5,
	}
	repo.AddUser(testUser(), levels, 100)
	svc := NewService(repo, registry)

	listings, err := svc.ListUpgrades(ctx, "discord-1")
	require.NoError(t, err)
	require.Len(t, listings, len(registry.All()))

	byID := make(map[string]Listing)
	for _, l := range listings {
		byID[l.UpgradeID] = l
	}

	overall := byID[upgrade.IDOverallExpMultiplier]
	assert.Equal(t, 2, overall.Level)
	assert.Equal(t, 45, overall.NextCost, "level 3 costs 15*3")

	// Maxed upgrade shows no next cost
	nomod := byID[upgrade.IDNoModExpMultiplier]
	assert.Equal(t, 5, nomod.Level)
	assert.Equal(t, 5, nomod.MaxLevel)
	assert.Equal(t, 0, nomod.NextCost)

	// Catalog order is preserved
	assert.Equal(t, upgrade.IDExpLengthBonus, listings[0].UpgradeID)
}
