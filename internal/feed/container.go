package feed

import (
	"fmt"
	"io"
	"sync"
)

// Container accumulates rendered messages in arrival order. It is the
// analogue of the page element the original feed appended paragraphs to.
type Container interface {
	// Append adds text as the container's last entry.
	Append(text string)
}

// MemoryContainer is an ordered, append-only, in-memory container.
// Entries are never mutated or evicted; growth is unbounded for the
// container's lifetime.
type MemoryContainer struct {
	mu      sync.RWMutex
	entries []string
}

// NewMemoryContainer creates an empty in-memory container.
func NewMemoryContainer() *MemoryContainer {
	return &MemoryContainer{}
}

// Append adds text as the last entry.
func (c *MemoryContainer) Append(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, text)
}

// Entries returns a copy of all entries, oldest first.
func (c *MemoryContainer) Entries() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *MemoryContainer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// WriterContainer renders each appended message as its own paragraph
// (line) on an io.Writer. Write errors are ignored; rendering is
// best-effort.
type WriterContainer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterContainer creates a container rendering to w.
func NewWriterContainer(w io.Writer) *WriterContainer {
	return &WriterContainer{w: w}
}

// Append writes text followed by a newline.
func (c *WriterContainer) Append(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = fmt.Fprintln(c.w, text)
}
