package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Backend names for the event bus and message history.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds all configuration for the livefeed server
type Config struct {
	// Server configuration
	HTTPPort int    `env:"LIVEFEED_HTTP_PORT" envDefault:"8080"`
	GRPCPort int    `env:"LIVEFEED_GRPC_PORT" envDefault:"9090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Backend selects the event bus and history implementation
	Backend string `env:"LIVEFEED_BACKEND" envDefault:"memory"`

	// Feed configuration
	Feed FeedConfig

	// Redis configuration (used when Backend is redis)
	Redis RedisConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// FeedConfig holds feed behavior configuration
type FeedConfig struct {
	// Topic is the event bus topic messages are published on
	Topic string `env:"LIVEFEED_TOPIC" envDefault:"feed.messages"`

	// HistoryLimit bounds the stored message history
	HistoryLimit int `env:"LIVEFEED_HISTORY_LIMIT" envDefault:"1000"`

	// MaxMessageBytes bounds a single published payload
	MaxMessageBytes int `env:"LIVEFEED_MAX_MESSAGE_BYTES" envDefault:"65536"`

	// SubscriberBuffer is the per-connection frame buffer; full buffers
	// drop frames rather than block the bus
	SubscriberBuffer int `env:"LIVEFEED_SUBSCRIBER_BUFFER" envDefault:"64"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASS"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// Connection pool settings
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	WriteTimeout    time.Duration `env:"TIMEOUT_WS_WRITE" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server ports
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}

	// Validate backend selection
	if c.Backend != BackendMemory && c.Backend != BackendRedis {
		return fmt.Errorf("unsupported backend: %s (must be %s or %s)", c.Backend, BackendMemory, BackendRedis)
	}
	if c.Backend == BackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required for the redis backend")
	}

	// Validate feed config
	if c.Feed.Topic == "" {
		return fmt.Errorf("feed topic is required")
	}
	if c.Feed.HistoryLimit < 1 {
		return fmt.Errorf("history limit must be at least 1")
	}
	if c.Feed.MaxMessageBytes < 1 {
		return fmt.Errorf("max message size must be at least 1 byte")
	}
	if c.Feed.SubscriberBuffer < 1 {
		return fmt.Errorf("subscriber buffer must be at least 1")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}
