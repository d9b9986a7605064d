package modules

import (
	"errors"
	"slices"
	"time"

	"riftrewind/api/handlers"
	recapservice "riftrewind/api/services/recap"
	"riftrewind/pkg/config"
	"riftrewind/pkg/matchstats"
	"riftrewind/pkg/metrics"
	"riftrewind/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies shared by the handlers.
type ModuleDependencies struct {
	DB      *gorm.DB
	Redis   *redis.RedisClient
	Riot    recapservice.RiotFetcher
	Items   matchstats.ItemNamer
	Logger  recapservice.Logger
	Metrics *metrics.Metrics
	Config  *config.Config
}

// Module containing the necessary handlers.
type Module struct {
	Router        *gin.Engine
	RecapService  *recapservice.RecapService
	RecapHandler  *handlers.RecapHandler
	HealthHandler *handlers.HealthHandler
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) (*Module, error) {
	if deps == nil || deps.DB == nil || deps.Redis == nil || deps.Config == nil {
		return nil, errors.New("the database, redis and config are required")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(deps.Config.Server.AllowedOrigins)))

	recapService := initializeRecapService(deps)

	return &Module{
		Router:        router,
		RecapService:  recapService,
		RecapHandler:  handlers.NewRecapHandler(&handlers.RecapHandlerDependencies{RecapService: recapService}),
		HealthHandler: initializeHealthHandler(deps),
	}, nil
}

// CORS settings, a wildcard or an empty list allows every origin.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	return cfg
}
