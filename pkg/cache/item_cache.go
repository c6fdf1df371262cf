package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the denormalized item read model stored in Redis.
// Fields are stored as a Redis hash. RequestID is zero when the item
// was not listed against a request.
type CachedItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	RequestID   int64  `json:"request_id"`
}

// ItemCache provides structured read/write operations for item cache entries.
// Key format: "item:{itemID}"
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by id.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID int64) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	ownerID, err := strconv.ParseInt(vals["owner_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse owner_id: %w", err)
	}
	available, err := strconv.ParseBool(vals["available"])
	if err != nil {
		return nil, fmt.Errorf("cache parse available: %w", err)
	}
	requestID, err := strconv.ParseInt(vals["request_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse request_id: %w", err)
	}

	return &CachedItem{
		ID:          id,
		Name:        vals["name"],
		Description: vals["description"],
		Available:   available,
		OwnerID:     ownerID,
		RequestID:   requestID,
	}, nil
}

// Set writes a cached item as a Redis hash with a 1-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := c.key(item.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", strconv.FormatInt(item.ID, 10),
		"name", item.Name,
		"description", item.Description,
		"available", strconv.FormatBool(item.Available),
		"owner_id", strconv.FormatInt(item.OwnerID, 10),
		"request_id", strconv.FormatInt(item.RequestID, 10),
	)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item. Called on every item mutation so stale
// availability is never served.
func (c *ItemCache) Delete(ctx context.Context, itemID int64) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "item:{itemID}"
func (c *ItemCache) key(itemID int64) string {
	return fmt.Sprintf("%s:%d", itemCacheKeyPrefix, itemID)
}
