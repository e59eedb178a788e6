package feed

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedFeed(container Container) (*Feed, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return New(container, zap.New(core)), logs
}

func TestFeedAppendsTextFrame(t *testing.T) {
	container := NewMemoryContainer()
	f, _ := observedFeed(container)

	f.OnMessage(TextFrame("hello"))

	require.Equal(t, 1, container.Len())
	assert.Equal(t, []string{"hello"}, container.Entries())
}

func TestFeedPreservesArrivalOrder(t *testing.T) {
	container := NewMemoryContainer()
	f, _ := observedFeed(container)

	for _, text := range []string{"a", "b", "c"} {
		f.OnMessage(TextFrame(text))
	}

	assert.Equal(t, []string{"a", "b", "c"}, container.Entries())

	stats := f.Stats()
	assert.Equal(t, uint64(3), stats.Received)
	assert.Equal(t, uint64(3), stats.Appended)
	assert.Equal(t, uint64(0), stats.Dropped)
}

func TestFeedDropsBinaryFrame(t *testing.T) {
	container := NewMemoryContainer()
	f, logs := observedFeed(container)

	f.OnMessage(BinaryFrame([]byte{1, 2, 3, 4}))

	assert.Equal(t, 0, container.Len())

	entries := logs.FilterMessage("dropping non-text frame").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "binary", entries[0].ContextMap()["kind"])

	stats := f.Stats()
	assert.Equal(t, uint64(1), stats.Received)
	assert.Equal(t, uint64(1), stats.Dropped)
}

func TestFeedPayloadKeptVerbatim(t *testing.T) {
	container := NewMemoryContainer()
	f, _ := observedFeed(container)

	f.OnMessage(TextFrame("  spaced  \n"))
	f.OnMessage(TextFrame("<b>not parsed</b>"))

	assert.Equal(t, []string{"  spaced  \n", "<b>not parsed</b>"}, container.Entries())
}

func TestFeedNilContainer(t *testing.T) {
	f, logs := observedFeed(nil)

	assert.NotPanics(t, func() {
		f.OnMessage(TextFrame("hello"))
		f.OnMessage(BinaryFrame([]byte{0xff}))
		f.OnError(errors.New("boom"))
	})

	// diagnostics still flow with no container
	assert.Len(t, logs.FilterMessage("dropping non-text frame").All(), 1)
	assert.Len(t, logs.FilterMessage("transport error").All(), 1)

	stats := f.Stats()
	assert.Equal(t, uint64(2), stats.Received)
	assert.Equal(t, uint64(0), stats.Appended)
}

func TestFeedErrorLeavesContainerUntouched(t *testing.T) {
	container := NewMemoryContainer()
	f, logs := observedFeed(container)

	f.OnMessage(TextFrame("before"))
	f.OnError(errors.New("connection reset"))

	assert.Equal(t, []string{"before"}, container.Entries())

	entries := logs.FilterMessage("transport error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "connection reset", entries[0].ContextMap()["error"])
}

func TestWriterContainerRendersParagraphs(t *testing.T) {
	var buf bytes.Buffer
	f := New(NewWriterContainer(&buf), zap.NewNop())

	f.OnMessage(TextFrame("first"))
	f.OnMessage(TextFrame("second"))

	assert.Equal(t, "first\nsecond\n", buf.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "binary", KindBinary.String())
	assert.Equal(t, "ping", KindPing.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
