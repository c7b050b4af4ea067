package cache

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/baleyard/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{RedisURL: url, ServiceName: "baleyard-test"}
}

func TestClientOptions(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		poolSize int
		wantAddr string
		wantDB   int
		wantPool int
	}{
		{"defaults", "redis://localhost:6379", 0, "localhost:6379", 0, defaultPoolSize},
		{"configured pool", "redis://cache:6380/2", 25, "cache:6380", 2, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(tt.url)
			cfg.RedisPoolSize = tt.poolSize

			opts, err := clientOptions(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, opts.Addr)
			assert.Equal(t, tt.wantDB, opts.DB)
			assert.Equal(t, tt.wantPool, opts.PoolSize)
			assert.Equal(t, "baleyard-test", opts.ClientName)
			assert.Equal(t, 2, opts.MinIdleConns)
		})
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), newTestConfig("not-a-valid-url"))
	require.Error(t, err)
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(context.Background(), newTestConfig("redis://localhost:19999"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "localhost:19999")
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
	require.NoError(t, err)

	require.NoError(t, rc.Ping(context.Background()))
	require.NotNil(t, rc.Client())
	require.NoError(t, rc.Close())
}
