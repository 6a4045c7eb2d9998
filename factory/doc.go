// Package factory builds NLog loggers from a declarative document.
//
// The document has three sections. Channels name loggers, handlers and
// processors name components. A channel may extend another channel and
// inherits its handler and processor instances; its own components go
// after the inherited ones. Every document needs a "default" channel:
// channels that are requested but not declared extend it.
//
//	channels:
//	  default:
//	    handlers: [console]
//	  audit:
//	    extends: default
//	    use_microseconds: false
//	    handlers:
//	      - type: stream
//	        file: /var/log/audit.log
//	        level: warning
//	handlers:
//	  console:
//	    type: console
//	    level: info
//
// A component definition names its target with type (handlers only,
// "rotating_file" becomes nlog.RotatingFileHandler) or class. Its other
// keys bind to the target's parameters by name; an arguments key passes
// a positional list or a replacement mapping instead. Parameters called
// handler or handlers are resolved as nested handler references.
//
// Named references are templates: each channel that names a handler gets
// its own instance. Loggers are cached, so GetLogger returns the same
// *logger.Logger for a name until Close.
//
// Every failure is a *ConfigError. Match its kind with errors.Is against
// ErrConfigLoad, ErrMissingDefaultChannel, ErrCyclicInheritance,
// ErrUndefinedReference, ErrMissingTarget or ErrComponentConstruction.
package factory
