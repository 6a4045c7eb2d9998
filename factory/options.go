package factory

import (
	"go.uber.org/zap"

	"github.com/philipp01105/nlogconf/logger"
	"github.com/philipp01105/nlogconf/registry"
)

// Option configures a Factory.
type Option func(*Factory)

// WithDiagnostics logs channel builds, cache hits and component
// construction at debug level.
func WithDiagnostics(l *zap.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.diag = l
		}
	}
}

// WithTarget registers an additional target, replacing a built-in one
// with the same identifier.
func WithTarget(t registry.Target) Option {
	return func(f *Factory) {
		f.registry.Register(t)
	}
}

// WithErrorSink replaces what happens to channels that set
// register_error_handler. The default is logger.RegisterErrorSink.
func WithErrorSink(sink func(*logger.Logger)) Option {
	return func(f *Factory) {
		if sink != nil {
			f.errorSink = sink
		}
	}
}
