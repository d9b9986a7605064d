package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"riftrewind/fetcher/requests"
	"riftrewind/pkg/models/item"
)

// Store where the items are shared between the services.
// Implemented by the redis client.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Logger used by the cache.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Dependencies of the item cache.
// Only the store and logger are optional.
type ItemCacheDeps struct {
	Store    Store
	Logger   Logger
	DDragon  string
	Language string
	TTL      time.Duration
}

// ItemCache resolves item ids to their names.
// The items are refreshed from the Data Dragon once the TTL expires.
type ItemCache struct {
	mu       sync.RWMutex
	items    map[int]item.Item
	version  string
	loadedAt time.Time

	store    Store
	logger   Logger
	ddragon  string
	language string
	ttl      time.Duration

	refreshing atomic.Bool
	lookupWait time.Duration
}

// Create the item cache.
func NewItemCache(deps ItemCacheDeps) *ItemCache {
	cache := &ItemCache{
		items:      map[int]item.Item{},
		store:      deps.Store,
		logger:     deps.Logger,
		ddragon:    deps.DDragon,
		language:   deps.Language,
		ttl:        deps.TTL,
		lookupWait: 2 * time.Second,
	}

	if cache.ddragon == "" {
		cache.ddragon = DefaultDDragon
	}
	if cache.language == "" {
		cache.language = DefaultLanguage
	}
	if cache.ttl <= 0 {
		cache.ttl = DefaultItemsTTL
	}

	return cache
}

// Refresh loads the items of the latest version.
func (c *ItemCache) Refresh(ctx context.Context) error {
	version, err := c.fetchLatestVersion(ctx)
	if err != nil {
		return err
	}

	items, err := c.fetchItems(ctx, version)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = items
	c.version = version
	c.loadedAt = time.Now()
	c.mu.Unlock()

	if c.store != nil {
		if err := c.save(ctx, version, items); err != nil {
			// The memory copy is still valid.
			c.errorf("couldn't share the items on the store: %v", err)
		}
	}

	c.infof("loaded %d items of version %s", len(items), version)
	return nil
}

// Name of the item, empty for a empty slot or a unknown id.
func (c *ItemCache) Name(id int) string {
	if id == 0 {
		return ""
	}

	if found, ok := c.Item(id); ok {
		return found.Name
	}
	return ""
}

// Item returns the full item data.
func (c *ItemCache) Item(id int) (item.Item, bool) {
	c.refreshIfStale()

	c.mu.RLock()
	found, ok := c.items[id]
	c.mu.RUnlock()
	if ok {
		return found, true
	}

	return c.lookup(id)
}

// Version currently loaded.
func (c *ItemCache) Version() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.version
}

// Len is the number of loaded items.
func (c *ItemCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Start a background refresh once the items expired.
// Only one refresh runs at a time.
func (c *ItemCache) refreshIfStale() {
	c.mu.RLock()
	stale := time.Since(c.loadedAt) > c.ttl
	c.mu.RUnlock()

	if !stale || !c.refreshing.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer c.refreshing.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := c.Refresh(ctx); err != nil {
			c.errorf("couldn't refresh the items: %v", err)

			// Retry after a minute instead of on every access.
			c.mu.Lock()
			c.loadedAt = time.Now().Add(time.Minute - c.ttl)
			c.mu.Unlock()
		}
	}()
}

// Look for a item another instance has shared.
func (c *ItemCache) lookup(id int) (item.Item, bool) {
	if c.store == nil {
		return item.Item{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.lookupWait)
	defer cancel()

	value, err := c.store.Get(ctx, itemPrefix+strconv.Itoa(id))
	if err != nil {
		return item.Item{}, false
	}

	var found item.Item
	if err := json.Unmarshal([]byte(value), &found); err != nil {
		return item.Item{}, false
	}

	c.mu.Lock()
	c.items[id] = found
	c.mu.Unlock()

	return found, true
}

// Fetch the item.json of a version.
func (c *ItemCache) fetchItems(ctx context.Context, version string) (map[int]item.Item, error) {
	url := fmt.Sprintf("%scdn/%s/data/%s/item.json", c.ddragon, version, c.language)
	resp, err := requests.Request(ctx, url, http.MethodGet)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("items returned status code %d", resp.StatusCode)
	}

	var itemData fullItem
	if err := json.NewDecoder(resp.Body).Decode(&itemData); err != nil {
		return nil, fmt.Errorf("couldn't convert the body to json: %w", err)
	}

	items := make(map[int]item.Item, len(itemData.Data))
	for itemKey, data := range itemData.Data {
		id, err := strconv.Atoi(itemKey)
		if err != nil {
			continue
		}

		newItem := item.Item{
			ID:        itemKey,
			Name:      getStringOrDefault(data, "name"),
			Plaintext: getStringOrDefault(data, "plaintext"),
		}

		if imgData, ok := data["image"].(map[string]any); ok {
			newItem.Image = mapToImage(imgData)
		}

		if goldData, ok := data["gold"].(map[string]any); ok {
			newItem.Gold = item.Gold{
				Base:        uint16(getNumberOrDefault(goldData, "base")),
				Total:       uint16(getNumberOrDefault(goldData, "total")),
				Sell:        uint16(getNumberOrDefault(goldData, "sell")),
				Purchasable: goldData["purchasable"] == true,
			}
		}

		items[id] = newItem
	}

	return items, nil
}

// Share the items on the store.
func (c *ItemCache) save(ctx context.Context, version string, items map[int]item.Item) error {
	for id, found := range items {
		itemJson, err := json.Marshal(found)
		if err != nil {
			return fmt.Errorf("can't convert the item back to json: %w", err)
		}

		if err := c.store.Set(ctx, itemPrefix+strconv.Itoa(id), itemJson, c.ttl); err != nil {
			return fmt.Errorf("can't set the item json: %w", err)
		}
	}

	return c.store.Set(ctx, versionKey, version, c.ttl)
}

func (c *ItemCache) infof(format string, args ...any) {
	if c.logger != nil {
		c.logger.Infof(format, args...)
	}
}

func (c *ItemCache) errorf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Errorf(format, args...)
	}
}
