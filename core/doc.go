// Package core defines the shared types used across NLog.
//
// It provides the Level type and its symbolic name table, the Entry type
// that represents a single log event, and the Field type for structured
// key-value pairs.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and return it with PutEntry once every handler has consumed
// it. A handler that needs the entry after Handle returns (buffering,
// async queues) keeps a Clone instead.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary types but will cause an allocation.
package core
