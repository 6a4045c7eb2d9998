// Package asynchandler wraps a handler with a bounded queue drained by a
// background goroutine.
//
// When the queue is full, the OverflowPolicy for the entry's level
// decides what happens: DropNewest discards the new entry, DropOldest
// evicts the oldest queued entry, and Block waits up to BlockTimeout
// before writing synchronously. Close drains what is left within
// DrainTimeout and closes the wrapped handler.
package asynchandler
