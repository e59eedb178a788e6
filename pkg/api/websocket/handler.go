package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aescanero/livefeed/pkg/domain"
	"github.com/aescanero/livefeed/pkg/ports"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // page and feed are served from the same host
	},
}

// Config holds WebSocket handler configuration
type Config struct {
	// Topic is the event bus topic to forward
	Topic string

	// SubscriberBuffer is the per-connection frame buffer; a full buffer
	// drops frames rather than block the bus
	SubscriberBuffer int

	// WriteTimeout bounds a single frame write
	WriteTimeout time.Duration
}

// Handler pushes published feed messages to WebSocket clients
type Handler struct {
	eventBus ports.EventBus
	metrics  ports.MetricsCollector
	logger   *zap.Logger
	cfg      Config
}

// NewHandler creates a new WebSocket push handler
func NewHandler(eventBus ports.EventBus, metrics ports.MetricsCollector, logger *zap.Logger, cfg Config) *Handler {
	if cfg.SubscriberBuffer < 1 {
		cfg.SubscriberBuffer = 64
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	return &Handler{
		eventBus: eventBus,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

// HandleFeed upgrades the connection and forwards every published
// message as one frame: text messages as text frames, binary messages as
// binary frames. Messages are written in the order the bus delivers
// them.
func (h *Handler) HandleFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	h.metrics.IncConnections()
	defer h.metrics.DecConnections()

	h.logger.Info("feed connection established",
		zap.String("client", c.ClientIP()))

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Clients never send application frames; the read loop only detects
	// disconnects and answers control frames.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	msgChan := make(chan domain.Message, h.cfg.SubscriberBuffer)
	if err := h.eventBus.Subscribe(ctx, h.cfg.Topic, func(ctx context.Context, msg domain.Message) error {
		select {
		case msgChan <- msg:
		case <-ctx.Done():
			return ctx.Err()
		default:
			// Channel full, skip message
			h.metrics.IncFramesDropped("slow_client")
			h.logger.Warn("subscriber buffer full, dropping frame",
				zap.String("message_id", msg.ID),
				zap.String("client", c.ClientIP()))
		}
		return nil
	}); err != nil {
		h.logger.Error("failed to subscribe to feed",
			zap.String("topic", h.cfg.Topic),
			zap.Error(err))
		return
	}

	// Forward messages to the client
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("feed connection closed",
				zap.String("client", c.ClientIP()))
			return
		case msg := <-msgChan:
			if err := h.writeFrame(conn, msg); err != nil {
				h.logger.Error("failed to write frame",
					zap.String("message_id", msg.ID),
					zap.Error(err))
				return
			}
			h.metrics.IncFramesDelivered(string(msg.Kind))
		}
	}
}

// writeFrame writes one message as a single frame of the matching type
func (h *Handler) writeFrame(conn *websocket.Conn, msg domain.Message) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout)); err != nil {
		return err
	}

	if msg.Kind == domain.KindBinary {
		return conn.WriteMessage(websocket.BinaryMessage, msg.Data)
	}
	return conn.WriteMessage(websocket.TextMessage, []byte(msg.Text))
}
