package bufferhandler

import (
	"sync"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
)

// FingersCrossedConfig holds configuration for FingersCrossedHandler.
type FingersCrossedConfig struct {
	// Handler receives the buffer once activated (required)
	Handler handler.Handler
	// ActionLevel activates the handler (default: WarnLevel)
	ActionLevel core.Level
	// BufferSize caps the buffered entries, dropping the oldest (0 = unlimited)
	BufferSize int
	// StopBuffering keeps passing entries straight through after
	// activation; when false the handler goes back to buffering
	StopBuffering bool
}

// FingersCrossedHandler buffers every entry until one at or above the
// action level arrives, then flushes the buffer to the wrapped handler.
type FingersCrossedHandler struct {
	handler.Base
	mu            sync.Mutex
	inner         handler.Handler
	actionLevel   core.Level
	bufferSize    int
	stopBuffering bool
	buffering     bool
	buffer        []*core.Entry
	closed        bool
}

// NewFingersCrossedHandler wraps cfg.Handler.
func NewFingersCrossedHandler(cfg FingersCrossedConfig) *FingersCrossedHandler {
	return &FingersCrossedHandler{
		Base:          handler.NewBase(core.DebugLevel, true),
		inner:         cfg.Handler,
		actionLevel:   cfg.ActionLevel,
		bufferSize:    cfg.BufferSize,
		stopBuffering: cfg.StopBuffering,
		buffering:     true,
	}
}

// ActionLevel returns the level that triggers a flush.
func (h *FingersCrossedHandler) ActionLevel() core.Level {
	return h.actionLevel
}

// Handle buffers entry or, once activated, forwards it.
func (h *FingersCrossedHandler) Handle(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.buffering || h.closed {
		return forward(h.inner, []*core.Entry{entry})
	}

	if h.bufferSize > 0 && len(h.buffer) >= h.bufferSize {
		h.buffer[0] = nil
		h.buffer = h.buffer[1:]
	}
	h.buffer = append(h.buffer, entry.Clone())

	if entry.Level >= h.actionLevel {
		return h.activateLocked()
	}
	return nil
}

// Activate flushes the buffer as if an action-level entry had arrived.
func (h *FingersCrossedHandler) Activate() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.activateLocked()
}

func (h *FingersCrossedHandler) activateLocked() error {
	if h.stopBuffering {
		h.buffering = false
	}
	entries := h.buffer
	h.buffer = nil
	return forward(h.inner, entries)
}

// Reset discards the buffer and resumes buffering.
func (h *FingersCrossedHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buffer = nil
	h.buffering = true
}

// Inner returns the wrapped handler.
func (h *FingersCrossedHandler) Inner() handler.Handler {
	return h.inner
}

// Close discards entries still buffered and closes the wrapped handler.
func (h *FingersCrossedHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.buffer = nil
	return h.inner.Close()
}
