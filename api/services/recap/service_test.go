package recapservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"riftrewind/api/dto"
	recaprepo "riftrewind/api/repositories/recap"
	"riftrewind/api/services/testutil"
	accountfetcher "riftrewind/fetcher/data/account"
	"riftrewind/pkg/database/models"
	"riftrewind/pkg/matchstats"
	"riftrewind/pkg/regions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

const (
	uniqueId      = "faker_kr1_kr"
	databaseError = "database error occurred"
)

func TestGetRecapNilFilter(t *testing.T) {
	service, _, _, _ := setupTestService(t)

	recap, err := service.GetRecap(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, recap)
}

func TestGetRecapFromCache(t *testing.T) {
	service, mockRepo, mockCache, mockRiot := setupTestService(t)

	cached := &dto.Recap{UniqueID: uniqueId, Summary: &matchstats.Summary{TotalGames: 3}}
	mockCache.On("GetRecap", mock.Anything, uniqueId).Return(cached, nil).Once()

	recap, err := service.GetRecap(context.Background(), testFilter(t))
	require.NoError(t, err)
	assert.Same(t, cached, recap)

	mockRepo.AssertNotCalled(t, "GetByUniqueId", mock.Anything, mock.Anything)
	testutil.VerifyAllMocks(t, mockRepo, mockCache, mockRiot)
}

func TestGetRecapFromDatabase(t *testing.T) {
	service, mockRepo, mockCache, mockRiot := setupTestService(t)

	updatedAt := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	stored := &models.PlayerRecap{
		UniqueID:   uniqueId,
		Puuid:      testPuuid,
		GameName:   "Faker",
		TagLine:    "KR1",
		Region:     "kr",
		TotalGames: 2,
		Summary:    datatypes.JSON(`{"total_games":2,"wins":1,"losses":1}`),
		UpdatedAt:  updatedAt,
	}

	// A cache failure falls through to the database.
	mockCache.On("GetRecap", mock.Anything, uniqueId).Return(nil, errors.New("redis down")).Once()
	mockRepo.On("GetByUniqueId", mock.Anything, uniqueId).Return(stored, nil).Once()
	mockCache.On("SetRecap", mock.Anything, mock.AnythingOfType("*dto.Recap"), time.Hour).Return(nil).Once()

	recap, err := service.GetRecap(context.Background(), testFilter(t))
	require.NoError(t, err)
	assert.Equal(t, testPuuid, recap.Puuid)
	assert.Equal(t, 2, recap.Summary.TotalGames)
	assert.Equal(t, 1, recap.Summary.Wins)
	assert.Equal(t, updatedAt, recap.GeneratedAt)

	mockCache.AssertNotCalled(t, "AcquireLock", mock.Anything, mock.Anything, mock.Anything)
	testutil.VerifyAllMocks(t, mockRepo, mockCache, mockRiot)
}

func TestGetRecapDatabaseError(t *testing.T) {
	service, mockRepo, mockCache, _ := setupTestService(t)

	mockCache.On("GetRecap", mock.Anything, uniqueId).Return(nil, nil).Once()
	mockRepo.On("GetByUniqueId", mock.Anything, uniqueId).Return(nil, errors.New(databaseError)).Once()

	recap, err := service.GetRecap(context.Background(), testFilter(t))
	assert.ErrorContains(t, err, databaseError)
	assert.Nil(t, recap)
}

func TestGetRecapInProgress(t *testing.T) {
	service, mockRepo, mockCache, mockRiot := setupTestService(t)

	mockCache.On("GetRecap", mock.Anything, uniqueId).Return(nil, nil).Once()
	mockRepo.On("GetByUniqueId", mock.Anything, uniqueId).Return(nil, recaprepo.ErrRecapNotFound).Once()
	mockCache.On("AcquireLock", mock.Anything, uniqueId, time.Minute).Return(false, nil).Once()

	recap, err := service.GetRecap(context.Background(), testFilter(t))
	assert.ErrorIs(t, err, ErrRecapInProgress)
	assert.Nil(t, recap)

	mockRiot.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockCache.AssertNotCalled(t, "ReleaseLock", mock.Anything, mock.Anything)
	testutil.VerifyAllMocks(t, mockRepo, mockCache, mockRiot)
}

func TestGetRecapPlayerNotFound(t *testing.T) {
	service, mockRepo, mockCache, mockRiot := setupTestService(t)

	mockCache.On("GetRecap", mock.Anything, uniqueId).Return(nil, nil).Once()
	mockRepo.On("GetByUniqueId", mock.Anything, uniqueId).Return(nil, recaprepo.ErrRecapNotFound).Once()
	mockCache.On("AcquireLock", mock.Anything, uniqueId, time.Minute).Return(true, nil).Once()
	mockRiot.On("GetAccount", mock.Anything, regions.MainRegion("asia"), "Faker", "KR1").
		Return(nil, accountfetcher.ErrPlayerNotFound).Once()
	mockCache.On("ReleaseLock", mock.Anything, uniqueId).Return(nil).Once()

	recap, err := service.GetRecap(context.Background(), testFilter(t))
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Nil(t, recap)

	mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	testutil.VerifyAllMocks(t, mockRepo, mockCache, mockRiot)
}

func TestGetRecapGenerated(t *testing.T) {
	service, mockRepo, mockCache, mockRiot := setupTestService(t)
	region := regions.MainRegion("asia")

	matchIds := []string{"KR_5", "KR_4", "KR_3", "KR_2", "KR_1"}

	mockCache.On("GetRecap", mock.Anything, uniqueId).Return(nil, nil).Once()
	mockRepo.On("GetByUniqueId", mock.Anything, uniqueId).Return(nil, recaprepo.ErrRecapNotFound).Once()
	mockCache.On("AcquireLock", mock.Anything, uniqueId, time.Minute).Return(true, nil).Once()
	mockRiot.On("GetAccount", mock.Anything, region, "Faker", "KR1").
		Return(&accountfetcher.Account{Puuid: testPuuid, GameName: "Hide on bush", TagLine: "KR1"}, nil).Once()
	mockRiot.On("GetMatchList", mock.Anything, region, testPuuid, 100).Return(matchIds, nil).Once()

	mockRiot.On("GetMatchData", mock.Anything, region, "KR_5").Return(matchPayload(t, "KR_5", testPuuid, "Ahri", true), nil).Once()
	mockRiot.On("GetMatchData", mock.Anything, region, "KR_4").Return(matchPayload(t, "KR_4", testPuuid, "Ahri", false), nil).Once()
	mockRiot.On("GetMatchData", mock.Anything, region, "KR_3").Return(nil, errors.New("API returned status code 500")).Once()
	mockRiot.On("GetMatchData", mock.Anything, region, "KR_2").Return(matchPayload(t, "KR_2", "someone-else", "Zed", true), nil).Once()
	mockRiot.On("GetMatchData", mock.Anything, region, "KR_1").Return(matchPayload(t, "KR_1", testPuuid, "Syndra", true), nil).Once()

	var upserted *models.PlayerRecap
	mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.PlayerRecap")).
		Run(func(args mock.Arguments) { upserted = args.Get(1).(*models.PlayerRecap) }).
		Return(nil).Once()
	mockCache.On("SetRecap", mock.Anything, mock.AnythingOfType("*dto.Recap"), time.Hour).Return(nil).Once()
	mockCache.On("ReleaseLock", mock.Anything, uniqueId).Return(nil).Once()

	recap, err := service.GetRecap(context.Background(), testFilter(t))
	require.NoError(t, err)

	assert.Equal(t, uniqueId, recap.UniqueID)
	assert.Equal(t, "Hide on bush", recap.GameName)
	assert.Equal(t, "kr", recap.Region)
	assert.Equal(t, 2, recap.SkippedMatches)
	assert.Equal(t, 3, recap.Summary.TotalGames)
	assert.Equal(t, 2, recap.Summary.Wins)
	assert.Equal(t, []string{"Ahri", "Syndra"}, recap.Summary.ChampionRanking)

	require.NotNil(t, upserted)
	assert.Equal(t, uniqueId, upserted.UniqueID)
	assert.Equal(t, 3, upserted.TotalGames)
	assert.Contains(t, string(upserted.Summary), `"total_games":3`)

	testutil.VerifyAllMocks(t, mockRepo, mockCache, mockRiot)
}

func TestGetRecapStoreFailuresStillReturn(t *testing.T) {
	service, mockRepo, mockCache, mockRiot := setupTestService(t)
	region := regions.MainRegion("asia")

	mockCache.On("GetRecap", mock.Anything, uniqueId).Return(nil, nil).Once()
	mockRepo.On("GetByUniqueId", mock.Anything, uniqueId).Return(nil, recaprepo.ErrRecapNotFound).Once()
	mockCache.On("AcquireLock", mock.Anything, uniqueId, time.Minute).Return(true, nil).Once()
	mockRiot.On("GetAccount", mock.Anything, region, "Faker", "KR1").Return(&accountfetcher.Account{Puuid: testPuuid}, nil).Once()
	mockRiot.On("GetMatchList", mock.Anything, region, testPuuid, 100).Return([]string{}, nil).Once()
	mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New(databaseError)).Once()
	mockCache.On("SetRecap", mock.Anything, mock.Anything, time.Hour).Return(errors.New("redis down")).Once()
	mockCache.On("ReleaseLock", mock.Anything, uniqueId).Return(nil).Once()

	recap, err := service.GetRecap(context.Background(), testFilter(t))
	require.NoError(t, err)

	// The names fall back to the request.
	assert.Equal(t, "Faker", recap.GameName)
	assert.Equal(t, 0, recap.Summary.TotalGames)
	testutil.VerifyAllMocks(t, mockRepo, mockCache, mockRiot)
}

func TestFetchPayloadsCanceled(t *testing.T) {
	service, _, _, mockRiot := setupTestService(t)
	service.config.BatchDelay = time.Hour
	region := regions.MainRegion("asia")

	mockRiot.On("GetMatchData", mock.Anything, region, mock.Anything).Return([]byte(`{}`), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// The first batch runs, the delay before the second is interrupted.
	payloads, err := service.fetchPayloads(ctx, region, []string{"KR_1", "KR_2", "KR_3"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, payloads)
	mockRiot.AssertNumberOfCalls(t, "GetMatchData", 2)
}

func TestFetchPayloadsOrder(t *testing.T) {
	service, _, _, mockRiot := setupTestService(t)
	region := regions.MainRegion("asia")

	ids := []string{"KR_1", "KR_2", "KR_3", "KR_4", "KR_5"}
	for _, id := range ids {
		mockRiot.On("GetMatchData", mock.Anything, region, id).Return([]byte(id), nil).Once()
	}

	payloads, err := service.fetchPayloads(context.Background(), region, ids)
	require.NoError(t, err)
	require.Len(t, payloads, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, string(payloads[i]))
	}
}
