// Package handler provides the Handler interface and the pieces shared by
// the built-in handlers.
//
// Handlers embed Base to carry a minimum level and a bubble flag. A
// Stack dispatches an entry to its handlers in order, skipping handlers
// whose level is above the entry's and stopping after a handler that
// does not bubble. Loggers and group handlers are both built on Stack.
//
// Built-in handlers live in subpackages:
//
//   - consolehandler writes to stdout or stderr, optionally coloured.
//   - filehandler writes to a stream or file, and rotates dated files.
//   - bufferhandler buffers records (plain or fingers-crossed).
//   - multihandler fans out to a group of handlers.
//   - asynchandler moves another handler behind a bounded queue with a
//     per-level OverflowPolicy.
//   - couchdbhandler, sqlhandler and bridgehandler ship records to
//     CouchDB, SQL databases and other logging libraries.
//   - sloghandler adapts NLog to log/slog.
//
// Queueing handlers track dropped, blocked, and processed counts via the
// Stats type, which can be queried at runtime for monitoring.
package handler
