package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// BaleCacheTTL is the time-to-live for a cached warehouse listing.
	BaleCacheTTL = 24 * time.Hour

	baleCacheKeyPrefix = "bales"
)

// CachedBale is the denormalized read model stored in Redis, one hash field per bale.
type CachedBale struct {
	ID              uuid.UUID `json:"id"`
	WarehouseID     string    `json:"warehouse_id"`
	CodeNumber      string    `json:"code_number"`
	VehicleNumber   string    `json:"vehicle_number"`
	WarehouseNumber string    `json:"warehouse_number"`
	ArrivalDate     time.Time `json:"arrival_date"`
	Supplier        string    `json:"supplier"`
	TotalWeight     float64   `json:"total_weight"`
	BaleCount       int       `json:"bale_count"`
	ContainerNumber string    `json:"container_number"`
	X               float64   `json:"x"`
	Y               float64   `json:"y"`
	Z               float64   `json:"z"`
	Orientation     string    `json:"orientation"`
	Seq             int       `json:"seq"` // load order, restored on read
}

// BaleCache caches the bale listing of a warehouse.
// Key format: "bales:{warehouseID}", field = bale ID, value = JSON CachedBale.
type BaleCache struct {
	client *RedisClient
}

// NewBaleCache creates a new BaleCache backed by the given RedisClient.
func NewBaleCache(r *RedisClient) *BaleCache {
	return &BaleCache{client: r}
}

// Get returns the cached listing in load order.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *BaleCache) Get(ctx context.Context, warehouseID string) ([]CachedBale, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(warehouseID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	out := make([]CachedBale, 0, len(vals))
	for field, raw := range vals {
		var b CachedBale
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, fmt.Errorf("cache parse bale %s: %w", field, err)
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// Set replaces the cached listing and refreshes the TTL.
// Uses a transaction pipeline so readers never see a partial listing.
func (c *BaleCache) Set(ctx context.Context, warehouseID string, bales []CachedBale) error {
	key := c.key(warehouseID)
	fields := make([]any, 0, len(bales)*2)
	for i, b := range bales {
		b.Seq = i
		raw, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("cache encode bale %s: %w", b.ID, err)
		}
		fields = append(fields, b.ID.String(), string(raw))
	}

	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields...)
		pipe.Expire(ctx, key, BaleCacheTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete drops the cached listing of a warehouse.
func (c *BaleCache) Delete(ctx context.Context, warehouseID string) error {
	if err := c.client.Client().Del(ctx, c.key(warehouseID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "bales:{warehouseID}"
func (c *BaleCache) key(warehouseID string) string {
	return fmt.Sprintf("%s:%s", baleCacheKeyPrefix, warehouseID)
}
