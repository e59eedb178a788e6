package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aescanero/livefeed/internal/feed"
)

// EndpointPath is the fixed path of the feed endpoint on the server.
const EndpointPath = "/websocket"

// DefaultHandshakeTimeout bounds the opening handshake.
const DefaultHandshakeTimeout = 8 * time.Second

// Config holds client configuration.
type Config struct {
	// Host is the server host (host or host:port). Scheme and path are
	// fixed: the endpoint is always ws://<host>/websocket.
	Host string

	// HandshakeTimeout bounds the opening handshake. Zero means
	// DefaultHandshakeTimeout.
	HandshakeTimeout time.Duration

	Feed   *feed.Feed
	Logger *zap.Logger
}

// Client owns one WebSocket connection for its lifetime. Once the
// connection ends, the client is done; there is no reconnection.
type Client struct {
	conn   *websocket.Conn
	feed   *feed.Feed
	logger *zap.Logger
}

// Endpoint returns the feed endpoint URL for a host.
func Endpoint(host string) string {
	u := url.URL{Scheme: "ws", Host: host, Path: EndpointPath}
	return u.String()
}

// Dial opens the feed connection. A dial failure is returned to the
// caller and never retried.
func Dial(ctx context.Context, cfg *Config) (*Client, error) {
	if cfg.Feed == nil {
		return nil, fmt.Errorf("feed is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.HandshakeTimeout
	if timeout == 0 {
		timeout = DefaultHandshakeTimeout
	}

	endpoint := Endpoint(cfg.Host)
	dialer := &websocket.Dialer{HandshakeTimeout: timeout}

	conn, resp, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s failed: %w (status %s)", endpoint, err, resp.Status)
		}
		return nil, fmt.Errorf("dial %s failed: %w", endpoint, err)
	}

	logger.Info("connected", zap.String("endpoint", endpoint))

	return &Client{
		conn:   conn,
		feed:   cfg.Feed,
		logger: logger,
	}, nil
}

// Run reads frames until the connection ends, handing each one to the
// feed synchronously so arrival order is preserved. A read error is
// reported through the feed's error path and ends the loop; normal
// closure ends the loop silently. Cancelling ctx closes the connection.
func (c *Client) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = c.conn.Close()
		case <-done:
		}
	}()

	for {
		messageType, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info("connection closed by server")
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.feed.OnError(err)
			return err
		}

		c.feed.OnMessage(feed.FrameFromMessage(messageType, payload))
	}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
