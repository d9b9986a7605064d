package cache

import (
	"context"
	"sync"
	"time"
)

// In-memory cache with small TTL to minimize Redis calls.
type MemCache[V any] struct {
	memoryCache   sync.Map
	cleanupTicker *time.Ticker
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

type memCacheItem[V any] struct {
	value     V
	expiresAt time.Time
}

// NewMemCache creates a memory cache, expired keys are removed every cleanup interval.
func NewMemCache[V any](cleanupInterval time.Duration) *MemCache[V] {
	ctx, cancel := context.WithCancel(context.Background())
	mc := &MemCache[V]{
		cancel:        cancel,
		cleanupTicker: time.NewTicker(cleanupInterval),
	}

	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		for {
			select {
			case <-mc.cleanupTicker.C:
				mc.cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()

	return mc
}

// cleanup go through each key and clean any expired key.
func (mc *MemCache[V]) cleanup() {
	now := time.Now()
	mc.memoryCache.Range(func(key, value any) bool {
		if now.After(value.(*memCacheItem[V]).expiresAt) {
			mc.memoryCache.Delete(key)
		}
		return true
	})
}

// Close shutdown the memory cache worker.
func (mc *MemCache[V]) Close() {
	mc.cancel()
	mc.cleanupTicker.Stop()
	mc.wg.Wait()
}

// Get returns the value of a key that hasn't expired.
func (mc *MemCache[V]) Get(key string) (V, bool) {
	var zero V

	value, exists := mc.memoryCache.Load(key)
	if !exists {
		return zero, false
	}

	item := value.(*memCacheItem[V])
	if time.Now().After(item.expiresAt) {
		mc.memoryCache.Delete(key)
		return zero, false
	}

	return item.value, true
}

// Set a given key on the cache.
func (mc *MemCache[V]) Set(key string, value V, ttl time.Duration) {
	mc.memoryCache.Store(key, &memCacheItem[V]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
}

// Delete a key.
func (mc *MemCache[V]) Delete(key string) {
	mc.memoryCache.Delete(key)
}
