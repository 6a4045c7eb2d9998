package handler

import "github.com/philipp01105/nlogconf/core"

// NullHandler swallows every record at or above its level. Combined with
// bubble=false it silences the rest of a stack.
type NullHandler struct {
	Base
}

// NewNullHandler creates a null handler.
func NewNullHandler(level core.Level) *NullHandler {
	return &NullHandler{Base: NewBase(level, true)}
}

// Handle discards the entry.
func (h *NullHandler) Handle(*core.Entry) error {
	return nil
}

// Close is a no-op.
func (h *NullHandler) Close() error {
	return nil
}
