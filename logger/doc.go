// Package logger is the public API of NLog. Most users only need to
// import this package.
//
// A Logger is immutable after construction. Its name, handlers,
// processors, fields and level are set once via the Builder and never
// modified, so Logger is safe for concurrent use without locking on the
// read path.
//
// Every entry carries the logger's name as its channel. Processors run
// in the order they were added, then the entry goes down the handler
// stack: handlers below their level are skipped and a handler that does
// not bubble ends dispatch.
//
//	log := logger.NewBuilder().
//	    WithName("api").
//	    AddHandler(consoleHandler).
//	    AddProcessor(processor.NewHostnameProcessor()).
//	    WithLevel(logger.DebugLevel).
//	    Build()
//
// Derive starts a builder from an existing logger under a new name. The
// derived logger shares the handler and processor instances, and new
// additions go after the inherited ones:
//
//	audit := log.Derive("audit").AddHandler(auditFile).Build()
//
// The package initializes a default Logger (InfoLevel, text format to
// stdout). The package-level functions Info, Error, Debugf, etc. delegate
// to it. RegisterErrorSink replaces it and also routes log/slog and the
// standard log package to a chosen logger.
//
// Level checks happen before any allocation, so filtered-out
// messages cost only a single integer comparison.
package logger
