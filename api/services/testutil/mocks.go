package testutil

import (
	"context"
	"testing"
	"time"

	"riftrewind/api/dto"
	accountfetcher "riftrewind/fetcher/data/account"
	"riftrewind/pkg/database/models"
	"riftrewind/pkg/regions"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// Recap repository mock implementation.
type MockRecapRepository struct {
	mock.Mock
}

func (m *MockRecapRepository) GetByUniqueId(ctx context.Context, uniqueId string) (*models.PlayerRecap, error) {
	args := m.Called(ctx, uniqueId)
	recap, _ := args.Get(0).(*models.PlayerRecap)
	return recap, args.Error(1)
}

func (m *MockRecapRepository) Upsert(ctx context.Context, recap *models.PlayerRecap) error {
	args := m.Called(ctx, recap)
	return args.Error(0)
}

func (m *MockRecapRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// Recap cache mock implementation.
type MockRecapCache struct {
	mock.Mock
}

func (m *MockRecapCache) GetRecap(ctx context.Context, uniqueId string) (*dto.Recap, error) {
	args := m.Called(ctx, uniqueId)
	recap, _ := args.Get(0).(*dto.Recap)
	return recap, args.Error(1)
}

func (m *MockRecapCache) SetRecap(ctx context.Context, recap *dto.Recap, ttl time.Duration) error {
	args := m.Called(ctx, recap, ttl)
	return args.Error(0)
}

func (m *MockRecapCache) AcquireLock(ctx context.Context, uniqueId string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, uniqueId, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecapCache) ReleaseLock(ctx context.Context, uniqueId string) error {
	args := m.Called(ctx, uniqueId)
	return args.Error(0)
}

// Riot API mock implementation.
type MockRiotFetcher struct {
	mock.Mock
}

func (m *MockRiotFetcher) GetAccount(ctx context.Context, region regions.MainRegion, gameName string, tagLine string) (*accountfetcher.Account, error) {
	args := m.Called(ctx, region, gameName, tagLine)
	account, _ := args.Get(0).(*accountfetcher.Account)
	return account, args.Error(1)
}

func (m *MockRiotFetcher) GetMatchList(ctx context.Context, region regions.MainRegion, puuid string, count int) ([]string, error) {
	args := m.Called(ctx, region, puuid, count)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockRiotFetcher) GetMatchData(ctx context.Context, region regions.MainRegion, matchId string) ([]byte, error) {
	args := m.Called(ctx, region, matchId)
	payload, _ := args.Get(0).([]byte)
	return payload, args.Error(1)
}

// Logger mock accepting any call.
type MockLogger struct {
	mock.Mock
}

// NewMockLogger creates a logger mock where every call is optional.
func NewMockLogger() *MockLogger {
	logger := new(MockLogger)
	logger.On("Infof", mock.Anything, mock.Anything).Maybe()
	logger.On("Warnf", mock.Anything, mock.Anything).Maybe()
	logger.On("Errorf", mock.Anything, mock.Anything).Maybe()
	return logger
}

func (m *MockLogger) Infof(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warnf(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Errorf(format string, args ...any) {
	m.Called(format, args)
}
