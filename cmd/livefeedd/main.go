package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aescanero/livefeed/internal/application/publisher"
	"github.com/aescanero/livefeed/internal/config"
	eventsmemory "github.com/aescanero/livefeed/pkg/adapters/events/memory"
	eventsredis "github.com/aescanero/livefeed/pkg/adapters/events/redis"
	"github.com/aescanero/livefeed/pkg/adapters/metrics/prometheus"
	storagememory "github.com/aescanero/livefeed/pkg/adapters/storage/memory"
	storageredis "github.com/aescanero/livefeed/pkg/adapters/storage/redis"
	"github.com/aescanero/livefeed/pkg/api/grpc"
	"github.com/aescanero/livefeed/pkg/api/http"
	"github.com/aescanero/livefeed/pkg/api/websocket"
	"github.com/aescanero/livefeed/pkg/ports"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting livefeed server",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("backend", cfg.Backend))

	// Initialize adapters
	var (
		eventBus    ports.EventBus
		store       ports.MessageStore
		redisClient *goredis.Client
	)

	switch cfg.Backend {
	case config.BackendRedis:
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

		eventBus, err = eventsredis.NewStreamsEventBus(
			redisClient,
			"livefeed-subscribers",
			fmt.Sprintf("livefeed-%d", os.Getpid()),
			logger,
		)
		if err != nil {
			logger.Fatal("failed to create event bus", zap.Error(err))
		}

		store = storageredis.NewMessageStore(redisClient, cfg.Feed.HistoryLimit, logger)

	default:
		eventBus = eventsmemory.NewInMemoryEventBus()
		store = storagememory.NewInMemoryMessageStore(cfg.Feed.HistoryLimit)
	}

	metricsCollector := prometheus.NewCollector()

	// Initialize application components
	validator := publisher.NewValidator(cfg.Feed.MaxMessageBytes)

	pub := publisher.NewPublisher(
		eventBus,
		store,
		metricsCollector,
		validator,
		logger,
		cfg.Feed.Topic,
	)

	// Initialize API servers
	httpServer := http.NewServer(&http.Config{
		Port:      cfg.HTTPPort,
		Publisher: pub,
		Logger:    logger,
	})

	// Add the feed push handler to the HTTP server
	wsHandler := websocket.NewHandler(eventBus, metricsCollector, logger, websocket.Config{
		Topic:            cfg.Feed.Topic,
		SubscriberBuffer: cfg.Feed.SubscriberBuffer,
		WriteTimeout:     cfg.Timeouts.WriteTimeout,
	})
	httpServer.SetupWebSocket(wsHandler)

	grpcServer, err := grpc.NewServer(&grpc.Config{
		Port:   cfg.GRPCPort,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("failed to create gRPC server", zap.Error(err))
	}

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			logger.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	logger.Info("livefeed server started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.String("topic", cfg.Feed.Topic))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	// Shutdown components
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := grpcServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("gRPC server shutdown error", zap.Error(err))
	}

	if err := eventBus.Close(); err != nil {
		logger.Error("event bus close error", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}

	logger.Info("livefeed server shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
