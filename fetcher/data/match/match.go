package matchfetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"riftrewind/fetcher/requests"
	"riftrewind/pkg/regions"
)

// 100 is the maximum allowed count.
const MaxMatchCount = 100

// The match fetcher with it's client and region.
type MatchFetcher struct {
	client *requests.Client
	region regions.MainRegion
}

// Create a instance of the match fetcher.
func CreateMatchFetcher(client *requests.Client, region regions.MainRegion) *MatchFetcher {
	return &MatchFetcher{
		client: client,
		region: region,
	}
}

// Get a players match list, most recent first.
// The match type can be empty to list every type.
func (m *MatchFetcher) GetMatchList(ctx context.Context, puuid string, start int, count int, matchType string) ([]string, error) {
	if count <= 0 || count > MaxMatchCount {
		count = MaxMatchCount
	}

	params := map[string]string{
		"start": strconv.Itoa(start),
		"count": strconv.Itoa(count),
	}
	if matchType != "" {
		params["type"] = matchType
	}

	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids", puuid)
	body, err := m.client.Get(ctx, m.client.URL(string(m.region), path, params))
	if err != nil {
		return nil, err
	}

	// Parse the matches list.
	var matches []string
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	return matches, nil
}

// Get a given match payload, undecoded.
func (m *MatchFetcher) GetMatchData(ctx context.Context, matchId string) ([]byte, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/%s", matchId)
	return m.client.Get(ctx, m.client.URL(string(m.region), path, nil))
}
