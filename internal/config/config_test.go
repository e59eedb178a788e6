package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "feed.messages", cfg.Feed.Topic)
	assert.Equal(t, 1000, cfg.Feed.HistoryLimit)
	assert.Equal(t, ":8080", cfg.GetHTTPAddr())
	assert.Equal(t, ":9090", cfg.GetGRPCAddr())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LIVEFEED_HTTP_PORT", "9999")
	t.Setenv("LIVEFEED_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad http port", func(c *Config) { c.HTTPPort = 0 }},
		{"bad grpc port", func(c *Config) { c.GRPCPort = 70000 }},
		{"bad backend", func(c *Config) { c.Backend = "kafka" }},
		{"redis without addr", func(c *Config) { c.Backend = BackendRedis; c.Redis.Addr = "" }},
		{"empty topic", func(c *Config) { c.Feed.Topic = "" }},
		{"zero history limit", func(c *Config) { c.Feed.HistoryLimit = 0 }},
		{"zero max message size", func(c *Config) { c.Feed.MaxMessageBytes = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
