// Package sloghandler adapts NLog sinks to log/slog.Handler, so a built
// channel can serve as the backend of the standard library's structured
// logger (see logger.RegisterErrorSink).
package sloghandler
