package multihandler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
)

// GroupHandler sends log entries to every child handler that accepts
// the entry's level. Child bubble flags are ignored; the group's own
// flag decides whether the entry continues past the group.
type GroupHandler struct {
	handler.Base
	handlers []handler.Handler
}

// NewGroupHandler creates a group over handlers. The slice is copied.
func NewGroupHandler(handlers ...handler.Handler) *GroupHandler {
	hs := make([]handler.Handler, len(handlers))
	copy(hs, handlers)
	return &GroupHandler{
		Base:     handler.NewBase(core.DebugLevel, true),
		handlers: hs,
	}
}

// Handlers returns a copy of the children.
func (g *GroupHandler) Handlers() []handler.Handler {
	out := make([]handler.Handler, len(g.handlers))
	copy(out, g.handlers)
	return out
}

// IsHandling reports whether any child accepts level.
func (g *GroupHandler) IsHandling(level core.Level) bool {
	if !g.Base.IsHandling(level) {
		return false
	}
	for _, h := range g.handlers {
		if l, ok := h.(handler.Leveled); !ok || l.IsHandling(level) {
			return true
		}
	}
	return false
}

// Handle processes a log entry by sending it to all accepting handlers.
func (g *GroupHandler) Handle(entry *core.Entry) error {
	var err error
	for _, h := range g.handlers {
		if l, ok := h.(handler.Leveled); ok && !l.IsHandling(entry.Level) {
			continue
		}
		err = multierr.Append(err, h.Handle(entry))
	}
	return err
}

// Close closes all handlers
func (g *GroupHandler) Close() error {
	return handler.CloseAll(g.handlers)
}
