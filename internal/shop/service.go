package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/jarvisgaming/TaikoBot_Go/internal/concurrency"
	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/logger"
	"github.com/jarvisgaming/TaikoBot_Go/internal/metrics"
	"github.com/jarvisgaming/TaikoBot_Go/internal/repository"
	"github.com/jarvisgaming/TaikoBot_Go/internal/upgrade"
)

// Service defines the interface for shop operations
type Service interface {
	// BuyUpgrade purchases up to times levels of the upgrade. Purchasing
	// stops early at max level or when funds run out; if at least one level
	// was bought the partial result is returned without an error.
	BuyUpgrade(ctx context.Context, discordID, upgradeID string, times int) (*PurchaseResult, error)

	// ListUpgrades returns the catalog annotated with the user's current
	// levels and next costs, in catalog order.
	ListUpgrades(ctx context.Context, discordID string) ([]Listing, error)
}

// PurchaseResult reports the outcome of one BuyUpgrade call.
type PurchaseResult struct {
	UpgradeID    string `json:"upgrade_id"`
	Name         string `json:"name"`
	LevelsBought int    `json:"levels_bought"`
	NewLevel     int    `json:"new_level"`
	TotalCost    int    `json:"total_cost"`
	// Stopped carries the reason fewer levels than requested were bought.
	Stopped string `json:"stopped,omitempty"`
	Balance int    `json:"balance"`
}

// Listing is one catalog entry annotated with the user's progress on it.
type Listing struct {
	UpgradeID   string `json:"upgrade_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int    `json:"level"`
	MaxLevel    int    `json:"max_level"`
	// NextCost is zero when the upgrade is maxed.
	NextCost int    `json:"next_cost"`
	Currency string `json:"currency"`
}

type service struct {
	repo     repository.Shop
	registry *upgrade.Registry
	locks    *concurrency.LockManager
}

// NewService creates a new shop service
func NewService(repo repository.Shop, registry *upgrade.Registry) Service {
	return &service{
		repo:     repo,
		registry: registry,
		locks:    concurrency.NewLockManager(),
	}
}

func (s *service) ListUpgrades(ctx context.Context, discordID string) ([]Listing, error) {
	user, err := s.repo.GetUserByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}
	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	listings := make([]Listing, 0, len(s.registry.All()))
	for _, def := range s.registry.All() {
		level := profile.UpgradeLevels[def.ID]
		listing := Listing{
			UpgradeID:   def.ID,
			Name:        def.Name,
			Description: def.Description,
			Level:       level,
			MaxLevel:    def.MaxLevel,
			Currency:    def.CostCurrency,
		}
		if level < def.MaxLevel {
			listing.NextCost = def.Cost(level + 1)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

func (s *service) BuyUpgrade(ctx context.Context, discordID, upgradeID string, times int) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info("BuyUpgrade called", "discordID", discordID, "upgrade", upgradeID, "times", times)

	if times < 1 {
		times = 1
	}

	def := s.registry.Get(upgradeID)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpgradeNotFound, upgradeID)
	}

	user, err := s.repo.GetUserByDiscordID(ctx, discordID)
	if err != nil {
		return nil, err
	}

	// Serialize purchases per user so the read-check-deduct sequence cannot
	// interleave with a concurrent purchase or submission payout.
	lock := s.locks.GetLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	level := profile.UpgradeLevels[def.ID]
	balance := profile.Balances[def.CostCurrency]

	result := &PurchaseResult{
		UpgradeID: def.ID,
		Name:      def.Name,
		NewLevel:  level,
		Balance:   balance,
	}

	for bought := 0; bought < times; bought++ {
		if level >= def.MaxLevel {
			if result.LevelsBought == 0 {
				return nil, fmt.Errorf("%w: %s", domain.ErrUpgradeMaxed, def.Name)
			}
			result.Stopped = domain.ErrMsgUpgradeMaxed
			break
		}

		cost := def.Cost(level + 1)
		if balance < cost {
			if result.LevelsBought == 0 {
				return nil, fmt.Errorf("%w: %s costs %d %s, you have %d", domain.ErrInsufficientFunds, def.Name, cost, def.CostCurrency, balance)
			}
			result.Stopped = domain.ErrMsgInsufficientFunds
			break
		}

		if err := s.repo.PurchaseUpgrade(ctx, user.ID, def.ID, def.CostCurrency, cost, level+1); err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) && result.LevelsBought > 0 {
				result.Stopped = domain.ErrMsgInsufficientFunds
				break
			}
			return nil, fmt.Errorf("failed to purchase upgrade: %w", err)
		}

		level++
		balance -= cost
		result.LevelsBought++
		result.NewLevel = level
		result.TotalCost += cost
		result.Balance = balance

		metrics.UpgradesPurchased.WithLabelValues(def.ID).Inc()
		metrics.TokensSpent.Add(float64(cost))
	}

	log.Info("Upgrade purchased", "user", user.Username, "upgrade", def.ID,
		"levels", result.LevelsBought, "newLevel", result.NewLevel, "cost", result.TotalCost)
	return result, nil
}
