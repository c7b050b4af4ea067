package cache

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func TestBaleCache_Key(t *testing.T) {
	c := &BaleCache{}
	if got := c.key("WH-1"); got != "bales:WH-1" {
		t.Fatalf("unexpected key %q", got)
	}
}

// Integration test: skipped unless REDIS_URL is set.
func TestBaleCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	c := NewBaleCache(rc)
	warehouse := "test-" + uuid.NewString()
	defer c.Delete(ctx, warehouse) //nolint:errcheck

	if _, err := c.Get(ctx, warehouse); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil on miss, got %v", err)
	}

	in := []CachedBale{
		{ID: uuid.New(), WarehouseID: warehouse, CodeNumber: "B-2", Orientation: "vertical"},
		{ID: uuid.New(), WarehouseID: warehouse, CodeNumber: "A-1", Orientation: "horizontal"},
	}
	if err := c.Set(ctx, warehouse, in); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	out, err := c.Get(ctx, warehouse)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(out) != 2 || out[0].ID != in[0].ID || out[1].ID != in[1].ID {
		t.Fatalf("listing order not preserved: %+v", out)
	}

	if err := c.Delete(ctx, warehouse); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := c.Get(ctx, warehouse); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}
