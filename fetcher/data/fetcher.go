package data

import (
	"context"

	accountfetcher "riftrewind/fetcher/data/account"
	matchfetcher "riftrewind/fetcher/data/match"
	"riftrewind/fetcher/requests"
	"riftrewind/pkg/regions"
)

// Fetchers of a single routing value.
type RegionFetcher struct {
	Account *accountfetcher.AccountFetcher
	Match   *matchfetcher.MatchFetcher
}

// Create the fetchers of a region sharing the client and it's limiter.
func CreateRegionFetcher(client *requests.Client, region regions.MainRegion) *RegionFetcher {
	return &RegionFetcher{
		Account: accountfetcher.CreateAccountFetcher(client, region),
		Match:   matchfetcher.CreateMatchFetcher(client, region),
	}
}

// Riot resolves the fetchers per region on each call.
// All the regions share the client and it's limiter.
type Riot struct {
	client *requests.Client
}

// Create the Riot fetcher.
func NewRiot(client *requests.Client) *Riot {
	return &Riot{client: client}
}

// GetAccount returns the account of a Riot ID.
func (r *Riot) GetAccount(ctx context.Context, region regions.MainRegion, gameName string, tagLine string) (*accountfetcher.Account, error) {
	return CreateRegionFetcher(r.client, region).Account.GetByRiotId(ctx, gameName, tagLine)
}

// GetMatchList returns the most recent match ids of a player.
func (r *Riot) GetMatchList(ctx context.Context, region regions.MainRegion, puuid string, count int) ([]string, error) {
	return CreateRegionFetcher(r.client, region).Match.GetMatchList(ctx, puuid, 0, count, "")
}

// GetMatchData returns the raw match payload.
func (r *Riot) GetMatchData(ctx context.Context, region regions.MainRegion, matchId string) ([]byte, error) {
	return CreateRegionFetcher(r.client, region).Match.GetMatchData(ctx, matchId)
}
