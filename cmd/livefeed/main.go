package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aescanero/livefeed/internal/feed"
	"github.com/aescanero/livefeed/pkg/client"
)

func main() {
	host := flag.String("host", "localhost:8080", "feed server host (host or host:port)")
	handshakeTimeout := flag.Duration("handshake-timeout", client.DefaultHandshakeTimeout, "WebSocket handshake timeout")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	// Messages render on stdout; diagnostics go to stderr.
	logger := initLogger(*logLevel)
	defer logger.Sync()

	f := feed.New(feed.NewWriterContainer(os.Stdout), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl+C closes the connection and ends the read loop
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cli, err := client.Dial(ctx, &client.Config{
		Host:             *host,
		HandshakeTimeout: *handshakeTimeout,
		Feed:             f,
		Logger:           logger,
	})
	if err != nil {
		logger.Fatal("failed to connect", zap.Error(err))
	}
	defer cli.Close()

	err = cli.Run(ctx)

	stats := f.Stats()
	logger.Info("feed ended",
		zap.Uint64("received", stats.Received),
		zap.Uint64("rendered", stats.Appended),
		zap.Uint64("dropped", stats.Dropped))

	if err != nil && !errors.Is(err, context.Canceled) {
		os.Exit(1)
	}
}

// initLogger builds a console logger on stderr so stdout carries only
// rendered messages
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
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
