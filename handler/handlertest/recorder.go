// Package handlertest provides an in-memory handler for tests.
package handlertest

import (
	"sync"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
)

// Recorder keeps a clone of every entry it handles.
type Recorder struct {
	handler.Base
	mu      sync.Mutex
	entries []*core.Entry
	closed  int
}

// NewRecorder creates a recorder that accepts every level and bubbles.
func NewRecorder() *Recorder {
	return &Recorder{Base: handler.NewBase(core.DebugLevel, true)}
}

// Handle records a clone of entry.
func (r *Recorder) Handle(entry *core.Entry) error {
	r.mu.Lock()
	r.entries = append(r.entries, entry.Clone())
	r.mu.Unlock()
	return nil
}

// Close counts close calls.
func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closed++
	r.mu.Unlock()
	return nil
}

// Entries returns the recorded entries in order.
func (r *Recorder) Entries() []*core.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*core.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Message
	}
	return out
}

// Closed returns how many times Close was called.
func (r *Recorder) Closed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
