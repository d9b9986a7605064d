package main

import (
	"context"
	"os"
	"time"

	"riftrewind/fetcher/assets"
	"riftrewind/pkg/config"
	"riftrewind/pkg/logger"
	"riftrewind/pkg/redis"
	"riftrewind/scheduler/jobs"

	"github.com/rs/zerolog/log"
)

// Load the env and revalidate the shared item cache once.
// Meant for deploys, the scheduler keeps it fresh afterwards.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't initialize the configuration")
	}

	logs, err := logger.CreateLogger(cfg.LogLevel, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't create the logger")
	}
	defer logs.Close()

	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Couldn't reach redis")
	}

	items := assets.NewItemCache(assets.ItemCacheDeps{
		Store:  redisClient,
		Logger: logs,
		TTL:    cfg.Recap.ItemsTTL,
	})

	if err := jobs.RefreshItems(items, logs); err != nil {
		log.Fatal().Err(err).Msg("Couldn't fetch the data from the ddragon to revalidate the item cache")
	}
}
