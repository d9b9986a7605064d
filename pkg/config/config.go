package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Riot API configuration.
type RiotConfiguration struct {
	APIKey string
	Limits LimitsConfiguration
}

// Single rate limit window.
type LimitConfiguration struct {
	Count         int           `validate:"min=1"`
	ResetInterval time.Duration `validate:"min=1"`
}

// Rate limit windows of the key.
type LimitsConfiguration struct {
	Lower  LimitConfiguration
	Higher LimitConfiguration
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string `validate:"required"`
	Port     string `validate:"required"`
	Password string
}

// Database configuration struct.
type DatabaseConfiguration struct {
	DSN            string
	Database       string
	MigrationsPath string
	Retention      time.Duration `validate:"min=0"`
}

// Bucket used to store the service logs.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// Recap generation settings.
type RecapConfiguration struct {
	MinGames      int           `validate:"min=1"`
	TopChampions  int           `validate:"min=1"`
	Timezone      string        `validate:"required"`
	TimezoneLabel string        `validate:"required"`
	MaxMatches    int           `validate:"min=1,max=100"`
	BatchSize     int           `validate:"min=1"`
	BatchDelay    time.Duration `validate:"min=0"`
	CacheTTL      time.Duration `validate:"min=0"`
	LockDuration  time.Duration `validate:"min=1"`
	ItemsTTL      time.Duration `validate:"min=1"`
}

// Ports exposed by the API.
type ServerConfiguration struct {
	HTTPPort       string `validate:"required"`
	GRPCPort       string `validate:"required"`
	AllowedOrigins []string
}

// Config is the full service configuration.
type Config struct {
	Environment string
	LogLevel    string `validate:"oneof=trace debug info warn error"`
	Riot        RiotConfiguration
	Redis       RedisConfiguration
	Database    DatabaseConfiguration
	Bucket      BucketConfiguration
	Recap       RecapConfiguration
	Server      ServerConfiguration
}

// Load the variables.
// The .env file is only read outside of docker, where the variables are already set.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("couldn't load the .env file: %w", err)
		}
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Riot: RiotConfiguration{
			APIKey: os.Getenv("RIOT_API_KEY"),
			Limits: LimitsConfiguration{
				Lower: LimitConfiguration{
					Count:         getIntEnv("RIOT_LIMIT_LOWER_COUNT", 20),
					ResetInterval: getDurationEnv("RIOT_LIMIT_LOWER_INTERVAL", time.Second),
				},
				Higher: LimitConfiguration{
					Count:         getIntEnv("RIOT_LIMIT_HIGHER_COUNT", 100),
					ResetInterval: getDurationEnv("RIOT_LIMIT_HIGHER_INTERVAL", 2*time.Minute),
				},
			},
		},
		Redis: RedisConfiguration{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Database: DatabaseConfiguration{
			DSN:            os.Getenv("DATABASE_DSN"),
			Database:       getEnv("POSTGRES_DB", "riftrewind"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
			Retention:      getDurationEnv("RECAP_RETENTION", 30*24*time.Hour),
		},
		Bucket: BucketConfiguration{
			Region:       getEnv("BUCKET_REGION", "us-east-1"),
			Endpoint:     os.Getenv("BUCKET_ENDPOINT"),
			AccessKey:    os.Getenv("BUCKET_ACCESS_KEY"),
			AccessSecret: os.Getenv("BUCKET_ACCESS_SECRET"),
			LogBucket:    os.Getenv("BUCKET_LOG_BUCKET"),
		},
		Recap: RecapConfiguration{
			MinGames:      getIntEnv("RECAP_MIN_GAMES", 5),
			TopChampions:  getIntEnv("RECAP_TOP_CHAMPIONS", 10),
			Timezone:      getEnv("RECAP_TIMEZONE", "America/New_York"),
			TimezoneLabel: getEnv("RECAP_TIMEZONE_LABEL", "ET"),
			MaxMatches:    getIntEnv("RECAP_MAX_MATCHES", 100),
			BatchSize:     getIntEnv("RECAP_BATCH_SIZE", 5),
			BatchDelay:    getDurationEnv("RECAP_BATCH_DELAY", 10*time.Second),
			CacheTTL:      getDurationEnv("RECAP_CACHE_TTL", 24*time.Hour),
			LockDuration:  getDurationEnv("RECAP_LOCK_DURATION", 5*time.Minute),
			ItemsTTL:      getDurationEnv("ITEMS_TTL", 24*time.Hour),
		},
		Server: ServerConfiguration{
			HTTPPort:       getEnv("HTTP_PORT", "8080"),
			GRPCPort:       getEnv("GRPC_PORT", "50051"),
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := time.LoadLocation(c.Recap.Timezone); err != nil {
		return fmt.Errorf("invalid recap timezone %q: %w", c.Recap.Timezone, err)
	}

	return nil
}

// Location returns the reference timezone of the recaps.
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.Recap.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

// Get the variable or the default value if it's not set.
func getEnv(key string, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// Get the variable as a int, falling back to the default if it's unset or invalid.
func getIntEnv(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// Get the variable as a duration, falling back to the default if it's unset or invalid.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// Get a comma separated list, empty entries are dropped.
func getListEnv(key string, defaultValue []string) []string {
	var values []string
	for _, value := range strings.Split(os.Getenv(key), ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}

	if len(values) == 0 {
		return defaultValue
	}
	return values
}
