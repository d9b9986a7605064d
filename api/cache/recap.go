package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"riftrewind/api/dto"
	"riftrewind/pkg/redis"
)

const (
	recapKey         = "recap:%s"
	recapLockKey     = "recap:lock:%s"
	memoryCacheTTL   = time.Minute
	memoryCleanupTTL = 5 * time.Minute
)

// RecapCache is the public interface for the recap cache and the generation locks.
type RecapCache interface {
	GetRecap(ctx context.Context, uniqueId string) (*dto.Recap, error)
	SetRecap(ctx context.Context, recap *dto.Recap, ttl time.Duration) error
	AcquireLock(ctx context.Context, uniqueId string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, uniqueId string) error
}

// Redis backed cache with a short lived memory layer.
type recapCache struct {
	redis  *redis.RedisClient
	memory *MemCache[*dto.Recap]
}

// NewRecapCache creates a new instance of the recap cache.
func NewRecapCache(redis *redis.RedisClient) RecapCache {
	return &recapCache{
		redis:  redis,
		memory: NewMemCache[*dto.Recap](memoryCleanupTTL),
	}
}

// GetRecap returns the cached recap, nil when missing.
func (rc *recapCache) GetRecap(ctx context.Context, uniqueId string) (*dto.Recap, error) {
	key := fmt.Sprintf(recapKey, uniqueId)
	if recap, ok := rc.memory.Get(key); ok {
		return recap, nil
	}

	value, err := rc.redis.Get(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}

	var recap dto.Recap
	if err := json.Unmarshal([]byte(value), &recap); err != nil {
		return nil, fmt.Errorf("couldn't parse the cached recap: %w", err)
	}

	rc.memory.Set(key, &recap, memoryCacheTTL)
	return &recap, nil
}

// SetRecap saves a recap.
func (rc *recapCache) SetRecap(ctx context.Context, recap *dto.Recap, ttl time.Duration) error {
	j, err := json.Marshal(recap)
	if err != nil {
		return err
	}

	key := fmt.Sprintf(recapKey, recap.UniqueID)
	memoryTTL := memoryCacheTTL
	if ttl > 0 && ttl < memoryTTL {
		memoryTTL = ttl
	}
	rc.memory.Set(key, recap, memoryTTL)

	return rc.redis.Set(ctx, key, string(j), ttl)
}

// AcquireLock takes the generation lock of a player.
func (rc *recapCache) AcquireLock(ctx context.Context, uniqueId string, ttl time.Duration) (bool, error) {
	acquired, err := rc.redis.Acquire(ctx, fmt.Sprintf(recapLockKey, uniqueId), ttl)
	if err != nil {
		return false, fmt.Errorf("couldn't check the lock on redis: %w", err)
	}
	return acquired, nil
}

// ReleaseLock frees the generation lock of a player.
func (rc *recapCache) ReleaseLock(ctx context.Context, uniqueId string) error {
	return rc.redis.Release(ctx, fmt.Sprintf(recapLockKey, uniqueId))
}
