package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aescanero/livefeed/internal/application/publisher"
	eventsmemory "github.com/aescanero/livefeed/pkg/adapters/events/memory"
	storagememory "github.com/aescanero/livefeed/pkg/adapters/storage/memory"
	"github.com/aescanero/livefeed/pkg/ports"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	bus := eventsmemory.NewInMemoryEventBus()
	store := storagememory.NewInMemoryMessageStore(100)
	pub := publisher.NewPublisher(bus, store, ports.NopMetrics{}, publisher.NewValidator(1024), zap.NewNop(), "feed.messages")

	return NewServer(&Config{
		Port:      8080,
		Publisher: pub,
		Logger:    zap.NewNop(),
	})
}

func doRequest(t *testing.T, srv *Server, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServeFeedPage(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `id="message_container"`)
}

func TestServeScriptAndStylesheet(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/script", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/websocket")

	rec = doRequest(t, srv, http.MethodGet, "/stylesheet", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestPublishTextMessage(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/messages",
		"application/json", []byte(`{"text":"hello"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp MessagePublishResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "text", resp.Kind)
}

func TestPublishBinaryMessage(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/messages",
		"application/octet-stream", []byte{1, 2, 3, 4})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp MessagePublishResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "binary", resp.Kind)
}

func TestPublishRejectsMissingText(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/messages",
		"application/json", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublishRejectsOversizedPayload(t *testing.T) {
	srv := newTestServer(t)

	payload, err := json.Marshal(map[string]string{"text": strings.Repeat("x", 2048)})
	require.NoError(t, err)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/messages",
		"application/json", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListMessages(t *testing.T) {
	srv := newTestServer(t)

	for _, text := range []string{"a", "b", "c"} {
		payload, err := json.Marshal(map[string]string{"text": text})
		require.NoError(t, err)

		rec := doRequest(t, srv, http.MethodPost, "/api/v1/messages",
			"application/json", payload)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/messages?limit=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Messages []struct {
			Text string `json:"text"`
		} `json:"messages"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Total)
	assert.Equal(t, "b", body.Messages[0].Text)
	assert.Equal(t, "c", body.Messages[1].Text)
}

func TestListMessagesRejectsBadLimit(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/messages?limit=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
