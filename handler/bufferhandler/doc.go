// Package bufferhandler provides handlers that hold entries in memory
// before passing them to a wrapped handler.
//
// BufferHandler forwards its buffer on Flush or Close. FingersCrossedHandler
// keeps recent entries and releases them only when an entry at or above
// its action level arrives, so debug context is written only for requests
// that went wrong.
//
// Both handlers store clones; the entry passed to Handle can be recycled
// by the caller as soon as Handle returns.
package bufferhandler
