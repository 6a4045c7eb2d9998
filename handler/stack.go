package handler

import (
	"reflect"

	"go.uber.org/multierr"

	"github.com/philipp01105/nlogconf/core"
)

// Stack dispatches entries to an ordered list of handlers. Handlers that
// implement Leveled are skipped below their level, and a handler that
// does not bubble stops dispatch after handling the entry.
type Stack struct {
	handlers []Handler
}

// NewStack creates a stack over handlers in dispatch order.
func NewStack(handlers ...Handler) *Stack {
	hs := make([]Handler, len(handlers))
	copy(hs, handlers)
	return &Stack{handlers: hs}
}

// Handlers returns a copy of the handler list in dispatch order.
func (s *Stack) Handlers() []Handler {
	out := make([]Handler, len(s.handlers))
	copy(out, s.handlers)
	return out
}

// Len returns the number of handlers.
func (s *Stack) Len() int {
	return len(s.handlers)
}

// IsHandling reports whether any handler accepts level.
func (s *Stack) IsHandling(level core.Level) bool {
	for _, h := range s.handlers {
		if l, ok := h.(Leveled); !ok || l.IsHandling(level) {
			return true
		}
	}
	return false
}

// Handle dispatches entry down the stack. All handlers that accept the
// entry are attempted until one stops bubbling; their errors are combined.
func (s *Stack) Handle(entry *core.Entry) error {
	var err error
	for _, h := range s.handlers {
		l, leveled := h.(Leveled)
		if leveled && !l.IsHandling(entry.Level) {
			continue
		}
		err = multierr.Append(err, h.Handle(entry))
		if leveled && !l.Bubbles() {
			break
		}
	}
	return err
}

// Close closes every handler once, even when the same handler appears
// more than once.
func (s *Stack) Close() error {
	return CloseAll(s.handlers)
}

// CloseAll closes each distinct handler in hs and combines the errors.
// Handlers whose dynamic type is not comparable cannot be told apart and
// are closed every time they appear.
func CloseAll(hs []Handler) error {
	seen := make(map[Handler]struct{}, len(hs))
	var err error
	for _, h := range hs {
		if h == nil {
			continue
		}
		if reflect.TypeOf(h).Comparable() {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
		}
		err = multierr.Append(err, h.Close())
	}
	return err
}
