package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	recaprepo "riftrewind/api/repositories/recap"
	"riftrewind/fetcher/assets"
	"riftrewind/pkg/config"
	"riftrewind/pkg/database"
	"riftrewind/pkg/logger"
	"riftrewind/pkg/redis"
	"riftrewind/scheduler/jobs"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

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

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't connect to the database")
	}

	// Runs the migrations.
	rawDb, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't get raw db connection")
	}
	defer rawDb.Close()

	if err := database.RunMigrations(cfg.Database, rawDb); err != nil && !errors.Is(err, database.ErrMigrationsLocked) {
		log.Fatal().Err(err).Msg("Couldn't run the migrations")
	}

	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	items := assets.NewItemCache(assets.ItemCacheDeps{
		Store:  redisClient,
		Logger: logs,
		TTL:    cfg.Recap.ItemsTTL,
	})
	repository := recaprepo.NewRecapRepository(db)

	logs.Infof("Starting scheduler.")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	// Item cache revalidation, once per day at 4:00 AM.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(4, 0, 0),
			),
		),
		gocron.NewTask(
			jobs.RefreshItems,
			items,
			logs,
		),
		gocron.WithName("item-revalidation"),
		gocron.WithTags("cache"),
		gocron.JobOption(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create item job")
	}

	// Expired recap purge, once per day at 3:00 AM.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(
			jobs.PurgeRecaps,
			repository,
			cfg.Database.Retention,
			logs,
		),
		gocron.WithName("recap-purge"),
		gocron.WithTags("recap"),
		gocron.JobOption(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create recap purge job")
	}

	// Log shipping, every hour.
	_, err = s.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(
			jobs.UploadLogs,
			logs,
			cfg.Bucket,
			"scheduler",
		),
		gocron.WithName("log-upload"),
		gocron.WithTags("logs"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create log upload job")
	}

	// Start the scheduler.
	s.Start()

	defer func() {
		// Shutdown the scheduler when main() exits.
		if err := s.Shutdown(); err != nil {
			logs.Errorf("Error shutting down scheduler: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for termination signal.
	<-sigChan
	logs.Infof("Shutting down scheduler...")
}
