package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jarvisgaming/TaikoBot_Go/internal/domain"
	"github.com/jarvisgaming/TaikoBot_Go/internal/shop"
	"github.com/jarvisgaming/TaikoBot_Go/internal/submission"
)

// Shared test mocks for handler tests

// MockSubmissionService is a mock implementation of submission.Service
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) SubmitRecent(ctx context.Context, discordID string, limit int) (*submission.BatchResult, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*submission.BatchResult), args.Error(1)
}

func (m *MockSubmissionService) GetProfile(ctx context.Context, discordID string) (*domain.ProfileSnapshot, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileSnapshot), args.Error(1)
}

// MockShopService is a mock implementation of shop.Service
type MockShopService struct {
	mock.Mock
}

func (m *MockShopService) BuyUpgrade(ctx context.Context, discordID, upgradeID string, times int) (*shop.PurchaseResult, error) {
	args := m.Called(ctx, discordID, upgradeID, times)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.PurchaseResult), args.Error(1)
}

func (m *MockShopService) ListUpgrades(ctx context.Context, discordID string) ([]shop.Listing, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.Listing), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.User
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, discordID string, osuID int, username string) (*domain.User, error) {
	args := m.Called(ctx, discordID, osuID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
