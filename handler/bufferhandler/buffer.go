package bufferhandler

import (
	"sync"

	"go.uber.org/multierr"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
)

// BufferConfig holds configuration for BufferHandler.
type BufferConfig struct {
	// Handler receives the buffered entries on flush (required)
	Handler handler.Handler
	// BufferLimit caps the number of buffered entries (0 = unlimited)
	BufferLimit int
	// Level is the minimum level buffered
	Level core.Level
	// FlushOnOverflow flushes the buffer when the limit is reached
	// instead of discarding the oldest entry
	FlushOnOverflow bool
}

// BufferHandler holds entries in memory and forwards them to the wrapped
// handler on Flush or Close.
type BufferHandler struct {
	handler.Base
	mu              sync.Mutex
	inner           handler.Handler
	limit           int
	flushOnOverflow bool
	buffer          []*core.Entry
	stats           *handler.Stats
	closed          bool
}

// NewBufferHandler wraps cfg.Handler.
func NewBufferHandler(cfg BufferConfig) *BufferHandler {
	return &BufferHandler{
		Base:            handler.NewBase(cfg.Level, true),
		inner:           cfg.Handler,
		limit:           cfg.BufferLimit,
		flushOnOverflow: cfg.FlushOnOverflow,
		stats:           handler.NewStats(),
	}
}

// Handle buffers a clone of entry.
func (h *BufferHandler) Handle(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return forward(h.inner, []*core.Entry{entry})
	}

	var err error
	if h.limit > 0 && len(h.buffer) >= h.limit {
		if h.flushOnOverflow {
			err = h.flushLocked()
		} else {
			h.stats.IncrementDropped(h.buffer[0].Level)
			h.buffer[0] = nil
			h.buffer = h.buffer[1:]
		}
	}
	h.buffer = append(h.buffer, entry.Clone())
	h.stats.IncrementProcessed()
	return err
}

// Flush forwards all buffered entries to the wrapped handler.
func (h *BufferHandler) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flushLocked()
}

func (h *BufferHandler) flushLocked() error {
	if len(h.buffer) == 0 {
		return nil
	}
	entries := h.buffer
	h.buffer = nil
	return forward(h.inner, entries)
}

// Buffered returns the number of entries waiting for a flush.
func (h *BufferHandler) Buffered() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.buffer)
}

// Inner returns the wrapped handler.
func (h *BufferHandler) Inner() handler.Handler {
	return h.inner
}

// Stats returns a snapshot of the current statistics
func (h *BufferHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close flushes the buffer and closes the wrapped handler.
func (h *BufferHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	err := h.flushLocked()
	return multierr.Append(err, h.inner.Close())
}

// forward hands entries to inner, honoring its level when it has one.
func forward(inner handler.Handler, entries []*core.Entry) error {
	l, leveled := inner.(handler.Leveled)
	var err error
	for _, e := range entries {
		if leveled && !l.IsHandling(e.Level) {
			continue
		}
		err = multierr.Append(err, inner.Handle(e))
	}
	return err
}
