package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aescanero/livefeed/internal/feed"
)

var testUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// frameSpec describes one frame the test server pushes before closing.
type frameSpec struct {
	messageType int
	payload     []byte
}

func newFeedServer(t *testing.T, frames []frameSpec) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != EndpointPath {
			http.NotFound(w, r)
			return
		}

		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer func() { _ = conn.Close() }()

		for _, f := range frames {
			require.NoError(t, conn.WriteMessage(f.messageType, f.payload))
		}

		require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	}))
}

func serverHost(srv *httptest.Server) string {
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "ws://example.com/websocket", Endpoint("example.com"))
	assert.Equal(t, "ws://localhost:8080/websocket", Endpoint("localhost:8080"))
}

func TestClientMirrorsTextFramesInOrder(t *testing.T) {
	srv := newFeedServer(t, []frameSpec{
		{websocket.TextMessage, []byte("a")},
		{websocket.TextMessage, []byte("b")},
		{websocket.TextMessage, []byte("c")},
	})
	defer srv.Close()

	container := feed.NewMemoryContainer()
	f := feed.New(container, zap.NewNop())

	cli, err := Dial(context.Background(), &Config{
		Host: serverHost(srv),
		Feed: f,
	})
	require.NoError(t, err)
	defer cli.Close()

	require.NoError(t, cli.Run(context.Background()))
	assert.Equal(t, []string{"a", "b", "c"}, container.Entries())
}

func TestClientDropsBinaryFrames(t *testing.T) {
	srv := newFeedServer(t, []frameSpec{
		{websocket.TextMessage, []byte("hello")},
		{websocket.BinaryMessage, []byte{1, 2, 3, 4}},
		{websocket.TextMessage, []byte("world")},
	})
	defer srv.Close()

	core, logs := observer.New(zap.DebugLevel)
	container := feed.NewMemoryContainer()
	f := feed.New(container, zap.New(core))

	cli, err := Dial(context.Background(), &Config{
		Host: serverHost(srv),
		Feed: f,
	})
	require.NoError(t, err)
	defer cli.Close()

	require.NoError(t, cli.Run(context.Background()))

	assert.Equal(t, []string{"hello", "world"}, container.Entries())

	entries := logs.FilterMessage("dropping non-text frame").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "binary", entries[0].ContextMap()["kind"])
}

func TestClientReportsAbruptClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("one")))

		// tear the TCP connection down without a close handshake
		_ = conn.UnderlyingConn().Close()
	}))
	defer srv.Close()

	core, logs := observer.New(zap.DebugLevel)
	container := feed.NewMemoryContainer()
	f := feed.New(container, zap.New(core))

	cli, err := Dial(context.Background(), &Config{
		Host: serverHost(srv),
		Feed: f,
	})
	require.NoError(t, err)
	defer cli.Close()

	err = cli.Run(context.Background())
	require.Error(t, err)

	// message before the failure was rendered, the error logged once,
	// and no reconnection was attempted
	assert.Equal(t, []string{"one"}, container.Entries())
	assert.Len(t, logs.FilterMessage("transport error").All(), 1)
}

func TestClientDialFailure(t *testing.T) {
	f := feed.New(feed.NewMemoryContainer(), zap.NewNop())

	_, err := Dial(context.Background(), &Config{
		Host:             "127.0.0.1:1",
		HandshakeTimeout: 500 * time.Millisecond,
		Feed:             f,
	})
	require.Error(t, err)
}

func TestClientRequiresFeed(t *testing.T) {
	_, err := Dial(context.Background(), &Config{Host: "localhost:8080"})
	require.Error(t, err)
}

func TestClientContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer func() { _ = conn.Close() }()

		// hold the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	f := feed.New(feed.NewMemoryContainer(), zap.NewNop())

	cli, err := Dial(context.Background(), &Config{
		Host: serverHost(srv),
		Feed: f,
	})
	require.NoError(t, err)
	defer cli.Close()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- cli.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
