package recapservice

import (
	"encoding/json"
	"testing"
	"time"

	"riftrewind/api/filters"
	"riftrewind/api/services/testutil"
	"riftrewind/pkg/config"

	"github.com/stretchr/testify/require"
)

const testPuuid = "faker-puuid"

var testConfig = config.RecapConfiguration{
	MinGames:      1,
	TopChampions:  10,
	TimezoneLabel: "ET",
	MaxMatches:    100,
	BatchSize:     2,
	CacheTTL:      time.Hour,
	LockDuration:  time.Minute,
}

// Helper to initialize the mocks.
func setupTestService(t *testing.T) (
	*RecapService,
	*testutil.MockRecapRepository,
	*testutil.MockRecapCache,
	*testutil.MockRiotFetcher,
) {
	t.Helper()

	location, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	mockRepo := new(testutil.MockRecapRepository)
	mockCache := new(testutil.MockRecapCache)
	mockRiot := new(testutil.MockRiotFetcher)

	service := NewRecapService(&RecapServiceDeps{
		Repository: mockRepo,
		Cache:      mockCache,
		Riot:       mockRiot,
		Logger:     testutil.NewMockLogger(),
		Config:     testConfig,
		Location:   location,
	})

	return service, mockRepo, mockCache, mockRiot
}

func testFilter(t *testing.T) *filters.RecapFilter {
	t.Helper()

	filter, err := filters.NewRecapFilter(filters.RecapParams{Region: "kr", GameName: "Faker", GameTag: "KR1"})
	require.NoError(t, err)
	return filter
}

// Build a minimal match payload of the player.
func matchPayload(t *testing.T, matchId string, puuid string, champion string, win bool) []byte {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"metadata": map[string]any{"matchId": matchId},
		"info": map[string]any{
			"gameDuration":       1800,
			"gameStartTimestamp": 1709251200000,
			"participants": []any{
				map[string]any{
					"puuid":                puuid,
					"championName":         champion,
					"teamPosition":         "MIDDLE",
					"win":                  win,
					"kills":                5,
					"deaths":               2,
					"assists":              7,
					"totalMinionsKilled":   200,
					"neutralMinionsKilled": 10,
				},
			},
		},
	})
	require.NoError(t, err)

	return payload
}
