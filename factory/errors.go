package factory

import (
	"errors"
	"fmt"

	"github.com/philipp01105/nlogconf/config"
)

// Error kinds. Every error returned while building a channel is a
// *ConfigError whose kind matches one of these with errors.Is.
var (
	// ErrConfigLoad is config.ErrLoad: no readable document.
	ErrConfigLoad = config.ErrLoad
	// ErrMissingDefaultChannel reports a document without a default channel.
	ErrMissingDefaultChannel = errors.New("default channel is not defined")
	// ErrCyclicInheritance reports channels that extend each other, or a
	// named handler that reaches itself through nested handler references.
	ErrCyclicInheritance = errors.New("cyclic channel inheritance")
	// ErrUndefinedReference reports a name that resolves to nothing: a
	// handler or processor definition, or a target identifier.
	ErrUndefinedReference = errors.New("undefined reference")
	// ErrMissingTarget reports a definition with neither type nor class.
	ErrMissingTarget = errors.New("missing target")
	// ErrComponentConstruction reports a constructor or setter failure.
	ErrComponentConstruction = errors.New("component construction failed")
)

// ConfigError is a configuration failure annotated with the channel being
// built and a dump of the whole document.
type ConfigError struct {
	Kind    error
	Channel string
	Msg     string
	Dump    string
	Err     error
}

// Error renders "<channel>: <message> config:<document dump>".
func (e *ConfigError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s: %s config:%s", e.Channel, msg, e.Dump)
}

// Unwrap returns the kind and the cause, so both match errors.Is and
// errors.As.
func (e *ConfigError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// buildContext carries the state of one GetLogger call through
// resolution.
type buildContext struct {
	channel string
	dump    func() string

	// resolving holds the named handlers currently being constructed.
	resolving map[string]bool
}

func (c *buildContext) fail(kind error, cause error, format string, args ...interface{}) error {
	var ce *ConfigError
	if cause != nil && errors.As(cause, &ce) {
		return cause
	}
	return &ConfigError{
		Kind:    kind,
		Channel: c.channel,
		Msg:     fmt.Sprintf(format, args...),
		Dump:    c.dump(),
		Err:     cause,
	}
}
