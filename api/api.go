package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "riftrewind/api/grpc"
	"riftrewind/api/modules"
	"riftrewind/api/routes"
	"riftrewind/fetcher/assets"
	"riftrewind/fetcher/data"
	"riftrewind/fetcher/requests"
	"riftrewind/pkg/config"
	"riftrewind/pkg/database"
	"riftrewind/pkg/logger"
	"riftrewind/pkg/metrics"
	"riftrewind/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
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

	if err := run(cfg, logs); err != nil {
		logs.Errorf("API stopped: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logs *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return err
	}

	// Runs the migrations.
	rawDb, err := db.DB()
	if err != nil {
		return fmt.Errorf("couldn't get raw db connection: %w", err)
	}
	defer rawDb.Close()

	if err := database.RunMigrations(cfg.Database, rawDb); err != nil {
		if !errors.Is(err, database.ErrMigrationsLocked) {
			return err
		}
		logs.Warnf("Migrations are running on another instance")
	}

	redisClient := redis.NewClient(cfg.Redis)
	defer redisClient.Close()

	// The items are optional, the recaps are still built without them.
	items := assets.NewItemCache(assets.ItemCacheDeps{
		Store:  redisClient,
		Logger: logs,
		TTL:    cfg.Recap.ItemsTTL,
	})
	if err := items.Refresh(ctx); err != nil {
		logs.Warnf("Couldn't load the items: %v", err)
	}

	// Spread the recap batches over the key limits.
	limiter := requests.NewRateLimiter(cfg.Riot.Limits)
	client := requests.NewClient(cfg.Riot.APIKey, requests.DefaultHostFormat, limiter)

	module, err := modules.NewModule(&modules.ModuleDependencies{
		DB:      db,
		Redis:   redisClient,
		Riot:    data.NewRiot(client),
		Items:   items,
		Logger:  logs,
		Metrics: metrics.New(prometheus.DefaultRegisterer),
		Config:  cfg,
	})
	if err != nil {
		return fmt.Errorf("couldn't start the api module: %w", err)
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router)
	router.SetupRoutes(
		module.RecapHandler,
		module.HealthHandler,
	)
	router.SetupMetrics()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.HTTPPort,
		Handler:      router.Engine,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Minute,
	}

	grpcServer := grpcapi.NewServer(module.RecapService, logs)
	lis, err := net.Listen("tcp", ":"+cfg.Server.GRPCPort)
	if err != nil {
		return fmt.Errorf("couldn't listen on the gRPC port: %w", err)
	}

	errs := make(chan error, 2)
	go func() {
		logs.Infof("gRPC server listening on %s", lis.Addr())
		errs <- grpcServer.Serve(lis)
	}()
	go func() {
		logs.Infof("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case <-ctx.Done():
		logs.Infof("Shutting down the API")
	case err = <-errs:
		logs.Errorf("Server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logs.Errorf("Couldn't stop the HTTP server: %v", shutdownErr)
	}
	grpcServer.GracefulStop()

	if cfg.Bucket.LogBucket != "" {
		key := fmt.Sprintf("api/%s.log", time.Now().UTC().Format("2006-01-02T15-04-05"))
		if uploadErr := logs.UploadToS3Bucket(shutdownCtx, cfg.Bucket, key); uploadErr != nil {
			logs.Errorf("Couldn't upload the log: %v", uploadErr)
		}
	}

	return err
}
