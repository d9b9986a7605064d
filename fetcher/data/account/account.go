package accountfetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"riftrewind/fetcher/requests"
	"riftrewind/pkg/regions"
)

// ErrPlayerNotFound is returned when the Riot ID doesn't exist.
var ErrPlayerNotFound = errors.New("player not found")

// Return of the account endpoint.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// The account fetcher with it's client and region.
type AccountFetcher struct {
	client *requests.Client
	region regions.MainRegion
}

// Create a account fetcher.
func CreateAccountFetcher(client *requests.Client, region regions.MainRegion) *AccountFetcher {
	return &AccountFetcher{
		client: client,
		region: regions.AccountRouting(region),
	}
}

// Get the account of a Riot ID.
func (a *AccountFetcher) GetByRiotId(ctx context.Context, gameName string, tagLine string) (*Account, error) {
	path := fmt.Sprintf(
		"/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName),
		url.PathEscape(tagLine),
	)

	body, err := a.client.Get(ctx, a.client.URL(string(a.region), path, nil))
	if err != nil {
		if errors.Is(err, requests.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	var account Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}

	if account.Puuid == "" {
		return nil, ErrPlayerNotFound
	}

	return &account, nil
}
