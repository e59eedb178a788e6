package http

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultHistoryLimit = 100

// MessagePublishRequest represents a text message publication
type MessagePublishRequest struct {
	Text string `json:"text" binding:"required"`
}

// MessagePublishResponse represents a publication response
type MessagePublishResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	PublishedAt string `json:"published_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// handleIndex serves the feed page
func (s *Server) handleIndex(c *gin.Context) {
	s.serveStatic(c, "static/index.html", "text/html; charset=utf-8")
}

// handleScript serves the feed script
func (s *Server) handleScript(c *gin.Context) {
	s.serveStatic(c, "static/main.js", "text/javascript; charset=utf-8")
}

// handleStylesheet serves the feed stylesheet
func (s *Server) handleStylesheet(c *gin.Context) {
	s.serveStatic(c, "static/stylesheet.css", "text/css; charset=utf-8")
}

func (s *Server) serveStatic(c *gin.Context, name, contentType string) {
	data, err := staticFS.ReadFile(name)
	if err != nil {
		s.logger.Error("missing embedded asset", zap.String("asset", name), zap.Error(err))
		c.Status(http.StatusNotFound)
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.publisher.Count(c.Request.Context())
	status := "ok"
	if err != nil {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": gin.H{
			"history": status,
		},
		"messages": count,
	})
}

// handlePublishMessage handles message publication. A JSON body publishes
// a text message; an application/octet-stream body publishes a binary
// one, which connected feed clients drop by design.
func (s *Server) handlePublishMessage(c *gin.Context) {
	if c.ContentType() == "application/octet-stream" {
		s.publishBinary(c)
		return
	}

	var req MessagePublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Error("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	msg, err := s.publisher.PublishText(c.Request.Context(), req.Text)
	if err != nil {
		s.logger.Error("failed to publish message", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{
				Code:    "PUBLICATION_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, MessagePublishResponse{
		ID:          msg.ID,
		Kind:        string(msg.Kind),
		PublishedAt: msg.CreatedAt.Format(time.RFC3339Nano),
	})
}

// publishBinary publishes the raw request body as a binary message
func (s *Server) publishBinary(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	msg, err := s.publisher.PublishBinary(c.Request.Context(), data)
	if err != nil {
		s.logger.Error("failed to publish binary message", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{
				Code:    "PUBLICATION_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, MessagePublishResponse{
		ID:          msg.ID,
		Kind:        string(msg.Kind),
		PublishedAt: msg.CreatedAt.Format(time.RFC3339Nano),
	})
}

// handleListMessages returns recent history, oldest first
func (s *Server) handleListMessages(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "limit must be a positive integer",
				},
			})
			return
		}
		limit = parsed
	}

	msgs, err := s.publisher.Recent(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "HISTORY_UNAVAILABLE",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": msgs,
		"total":    len(msgs),
		"limit":    limit,
	})
}
