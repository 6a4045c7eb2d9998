package handler

import "github.com/philipp01105/nlogconf/core"

// Handler defines the interface for log handlers.
//
// Handle must not retain entry after it returns; the caller recycles it.
// Handlers that queue or buffer records keep entry.Clone() instead.
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// Leveled is implemented by handlers that filter on a minimum level and
// decide whether a handled record continues down the stack.
type Leveled interface {
	IsHandling(level core.Level) bool
	Bubbles() bool
}

// LevelSetter is implemented by handlers whose minimum level can be set
// after construction.
type LevelSetter interface {
	SetLevel(level core.Level)
}

// BubbleSetter is implemented by handlers whose bubble flag can be set
// after construction.
type BubbleSetter interface {
	SetBubble(bubble bool)
}

// Base carries the level and bubble settings shared by all built-in
// handlers. Embed it to get Leveled, LevelSetter and BubbleSetter.
// The zero value handles every level and bubbles. Settings are applied
// before the handler is attached to a logger and are read-only after.
type Base struct {
	level    core.Level
	noBubble bool
}

// NewBase returns a Base with the given settings.
func NewBase(level core.Level, bubble bool) Base {
	return Base{level: level, noBubble: !bubble}
}

// Level returns the minimum level handled.
func (b *Base) Level() core.Level {
	return b.level
}

// SetLevel sets the minimum level handled.
func (b *Base) SetLevel(level core.Level) {
	b.level = level
}

// SetBubble controls whether records handled here continue to the next
// handler in the stack.
func (b *Base) SetBubble(bubble bool) {
	b.noBubble = !bubble
}

// Bubbles reports whether handled records continue down the stack.
func (b *Base) Bubbles() bool {
	return !b.noBubble
}

// IsHandling reports whether level passes the handler's threshold.
func (b *Base) IsHandling(level core.Level) bool {
	return level >= b.Level()
}
