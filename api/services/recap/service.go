package recapservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"riftrewind/api/cache"
	"riftrewind/api/dto"
	"riftrewind/api/filters"
	recaprepo "riftrewind/api/repositories/recap"
	accountfetcher "riftrewind/fetcher/data/account"
	"riftrewind/pkg/config"
	"riftrewind/pkg/database/models"
	"riftrewind/pkg/matchstats"
	"riftrewind/pkg/messages"
	"riftrewind/pkg/metrics"
	"riftrewind/pkg/regions"

	"golang.org/x/sync/errgroup"
)

var (
	ErrRecapInProgress = errors.New(messages.OperationInProgress)
	ErrPlayerNotFound  = errors.New(messages.PlayerNotFound)
)

// RiotFetcher is the Riot API access used to build a recap.
type RiotFetcher interface {
	GetAccount(ctx context.Context, region regions.MainRegion, gameName string, tagLine string) (*accountfetcher.Account, error)
	GetMatchList(ctx context.Context, region regions.MainRegion, puuid string, count int) ([]string, error)
	GetMatchData(ctx context.Context, region regions.MainRegion, matchId string) ([]byte, error)
}

// Logger used by the service.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// RecapService serves the recaps from the cache, the database or builds them from the Riot API.
type RecapService struct {
	repository recaprepo.RecapRepository
	cache      cache.RecapCache
	riot       RiotFetcher
	items      matchstats.ItemNamer
	logger     Logger
	metrics    *metrics.Metrics
	config     config.RecapConfiguration
	location   *time.Location
}

// RecapServiceDeps are the dependencies of the recap service.
// Items and Metrics are optional.
type RecapServiceDeps struct {
	Repository recaprepo.RecapRepository
	Cache      cache.RecapCache
	Riot       RiotFetcher
	Items      matchstats.ItemNamer
	Logger     Logger
	Metrics    *metrics.Metrics
	Config     config.RecapConfiguration
	Location   *time.Location
}

// NewRecapService creates a service for handling the recaps.
func NewRecapService(deps *RecapServiceDeps) *RecapService {
	return &RecapService{
		repository: deps.Repository,
		cache:      deps.Cache,
		riot:       deps.Riot,
		items:      deps.Items,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		config:     deps.Config,
		location:   deps.Location,
	}
}

// GetRecap returns the recap of a player, building it when it doesn't exist yet.
func (rs *RecapService) GetRecap(ctx context.Context, filter *filters.RecapFilter) (*dto.Recap, error) {
	if filter == nil {
		return nil, errors.New(messages.FiltersNotNil)
	}

	start := time.Now()
	uniqueId := filter.UniqueID()

	// Cache errors only cost a database read.
	cached, err := rs.cache.GetRecap(ctx, uniqueId)
	if err != nil {
		rs.logger.Warnf("couldn't read the cached recap of %s: %v", uniqueId, err)
	}
	if cached != nil {
		rs.metrics.RecapServed(metrics.SourceCache, time.Since(start))
		return cached, nil
	}

	stored, err := rs.repository.GetByUniqueId(ctx, uniqueId)
	switch {
	case err == nil:
		recap, err := recapFromModel(stored)
		if err != nil {
			rs.metrics.RecapServed(metrics.SourceError, time.Since(start))
			return nil, err
		}

		rs.cacheRecap(ctx, recap)
		rs.metrics.RecapServed(metrics.SourceDatabase, time.Since(start))
		return recap, nil
	case !errors.Is(err, recaprepo.ErrRecapNotFound):
		rs.metrics.RecapServed(metrics.SourceError, time.Since(start))
		return nil, fmt.Errorf("couldn't get the stored recap: %w", err)
	}

	// Only one generation per player at a time.
	acquired, err := rs.cache.AcquireLock(ctx, uniqueId, rs.config.LockDuration)
	if err != nil {
		rs.metrics.RecapServed(metrics.SourceError, time.Since(start))
		return nil, err
	}
	if !acquired {
		rs.metrics.RecapServed(metrics.SourceInProgress, time.Since(start))
		return nil, ErrRecapInProgress
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := rs.cache.ReleaseLock(releaseCtx, uniqueId); err != nil {
			rs.logger.Errorf("couldn't release the recap lock of %s: %v", uniqueId, err)
		}
	}()

	recap, err := rs.generate(ctx, filter)
	if err != nil {
		rs.metrics.RecapServed(metrics.SourceError, time.Since(start))
		return nil, err
	}

	rs.persist(ctx, recap)
	rs.cacheRecap(ctx, recap)
	rs.metrics.RecapServed(metrics.SourceGenerated, time.Since(start))

	rs.logger.Infof("generated the recap of %s with %d games in %s", uniqueId, recap.Summary.TotalGames, time.Since(start))
	return recap, nil
}

// Build the recap from the Riot API.
func (rs *RecapService) generate(ctx context.Context, filter *filters.RecapFilter) (*dto.Recap, error) {
	account, err := rs.riot.GetAccount(ctx, filter.Routing, filter.GameName, filter.GameTag)
	if err != nil {
		if errors.Is(err, accountfetcher.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("couldn't get the player account: %w", err)
	}

	matchIds, err := rs.riot.GetMatchList(ctx, filter.Routing, account.Puuid, rs.config.MaxMatches)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the match list: %w", err)
	}

	payloads, err := rs.fetchPayloads(ctx, filter.Routing, matchIds)
	if err != nil {
		return nil, err
	}

	aggregator := matchstats.NewAggregator(matchstats.Options{
		Logger:        rs.logger,
		Location:      rs.location,
		TimezoneLabel: rs.config.TimezoneLabel,
		MinGames:      rs.config.MinGames,
		TopN:          rs.config.TopChampions,
	})
	normalizer := matchstats.NewNormalizer(rs.logger, rs.items)

	// Aggregation is sequential, in the order of the match list.
	skipped := 0
	for _, payload := range payloads {
		if payload == nil {
			skipped++
			continue
		}

		record, ok := normalizer.Normalize(payload, account.Puuid)
		rs.metrics.MatchNormalized(ok)
		if !ok {
			skipped++
			continue
		}
		aggregator.Add(record)
	}

	gameName, tagLine := account.GameName, account.TagLine
	if gameName == "" {
		gameName, tagLine = filter.GameName, filter.GameTag
	}

	summary := aggregator.Summarize()
	return &dto.Recap{
		UniqueID:       filter.UniqueID(),
		Puuid:          account.Puuid,
		GameName:       gameName,
		TagLine:        tagLine,
		Region:         filter.Region,
		SkippedMatches: skipped + aggregator.Skipped(),
		GeneratedAt:    time.Now().UTC(),
		Summary:        &summary,
	}, nil
}

// Fetch the payloads in concurrent batches, waiting the batch delay between them.
// A failed fetch leaves a nil payload.
func (rs *RecapService) fetchPayloads(ctx context.Context, region regions.MainRegion, matchIds []string) ([][]byte, error) {
	payloads := make([][]byte, len(matchIds))

	batchSize := max(rs.config.BatchSize, 1)
	for start := 0; start < len(matchIds); start += batchSize {
		if start > 0 && rs.config.BatchDelay > 0 {
			timer := time.NewTimer(rs.config.BatchDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		end := min(start+batchSize, len(matchIds))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				payload, err := rs.riot.GetMatchData(gctx, region, matchIds[i])
				rs.metrics.MatchFetched(err == nil)
				if err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return ctxErr
					}

					rs.logger.Warnf("couldn't fetch the match %s: %v", matchIds[i], err)
					return nil
				}

				payloads[i] = payload
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return payloads, nil
}

// Save the recap on the database.
func (rs *RecapService) persist(ctx context.Context, recap *dto.Recap) {
	summary, err := json.Marshal(recap.Summary)
	if err != nil {
		rs.logger.Errorf("couldn't encode the recap of %s: %v", recap.UniqueID, err)
		return
	}

	err = rs.repository.Upsert(ctx, &models.PlayerRecap{
		UniqueID:       recap.UniqueID,
		Puuid:          recap.Puuid,
		GameName:       recap.GameName,
		TagLine:        recap.TagLine,
		Region:         recap.Region,
		TotalGames:     recap.Summary.TotalGames,
		SkippedMatches: recap.SkippedMatches,
		Summary:        summary,
	})
	if err != nil {
		rs.logger.Errorf("couldn't store the recap of %s: %v", recap.UniqueID, err)
	}
}

// Save the recap on the cache.
func (rs *RecapService) cacheRecap(ctx context.Context, recap *dto.Recap) {
	if err := rs.cache.SetRecap(ctx, recap, rs.config.CacheTTL); err != nil {
		rs.logger.Warnf("couldn't cache the recap of %s: %v", recap.UniqueID, err)
	}
}

// Convert the stored recap.
func recapFromModel(stored *models.PlayerRecap) (*dto.Recap, error) {
	var summary matchstats.Summary
	if err := json.Unmarshal(stored.Summary, &summary); err != nil {
		return nil, fmt.Errorf("couldn't parse the stored recap: %w", err)
	}

	return &dto.Recap{
		UniqueID:       stored.UniqueID,
		Puuid:          stored.Puuid,
		GameName:       stored.GameName,
		TagLine:        stored.TagLine,
		Region:         stored.Region,
		SkippedMatches: stored.SkippedMatches,
		GeneratedAt:    stored.UpdatedAt,
		Summary:        &summary,
	}, nil
}
