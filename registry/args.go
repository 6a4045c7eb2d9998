package registry

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/philipp01105/nlogconf/core"
)

// Args holds the values bound for a target's parameters. Values line up
// positionally with the target's Params; a short Args means binding
// stopped before the remaining parameters.
type Args struct {
	params []Param
	values []interface{}
}

// NewArgs pairs positional values with the parameter table. Values
// beyond the declared parameters are kept and reachable via At.
func NewArgs(params []Param, values []interface{}) Args {
	return Args{params: params, values: values}
}

// Len returns the number of bound values.
func (a Args) Len() int {
	return len(a.values)
}

// Values returns the bound values in order.
func (a Args) Values() []interface{} {
	out := make([]interface{}, len(a.values))
	copy(out, a.values)
	return out
}

// At returns the value at position i.
func (a Args) At(i int) (interface{}, bool) {
	if i < 0 || i >= len(a.values) {
		return nil, false
	}
	return a.values[i], true
}

// Value returns the value bound for the named parameter.
func (a Args) Value(name string) (interface{}, bool) {
	for i, p := range a.params {
		if p.Name == name {
			return a.At(i)
		}
	}
	return nil, false
}

// String returns the named argument as a string, or def when unbound.
func (a Args) String(name, def string) (string, error) {
	v, ok := a.Value(name)
	if !ok || v == nil {
		return def, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("argument %s: %w", name, err)
	}
	return s, nil
}

// RequiredString returns the named argument as a non-empty string.
func (a Args) RequiredString(name string) (string, error) {
	s, err := a.String(name, "")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("argument %s is required", name)
	}
	return s, nil
}

// Int returns the named argument as an int, or def when unbound.
func (a Args) Int(name string, def int) (int, error) {
	v, ok := a.Value(name)
	if !ok || v == nil {
		return def, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("argument %s: %w", name, err)
	}
	return n, nil
}

// Bool returns the named argument as a bool, or def when unbound.
func (a Args) Bool(name string, def bool) (bool, error) {
	v, ok := a.Value(name)
	if !ok || v == nil {
		return def, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, fmt.Errorf("argument %s: %w", name, err)
	}
	return b, nil
}

// Duration returns the named argument as a duration. Bare numbers are
// read as milliseconds.
func (a Args) Duration(name string, def time.Duration) (time.Duration, error) {
	v, ok := a.Value(name)
	if !ok || v == nil {
		return def, nil
	}
	switch v.(type) {
	case int, int64, uint64, float64:
		ms, err := cast.ToInt64E(v)
		if err != nil {
			return 0, fmt.Errorf("argument %s: %w", name, err)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		return 0, fmt.Errorf("argument %s: %w", name, err)
	}
	return d, nil
}

// Level returns the named argument as a level, or def when unbound.
func (a Args) Level(name string, def core.Level) (core.Level, error) {
	v, ok := a.Value(name)
	if !ok || v == nil {
		return def, nil
	}
	l, err := ToLevel(v)
	if err != nil {
		return 0, fmt.Errorf("argument %s: %w", name, err)
	}
	return l, nil
}

// Strings returns the named argument as a string slice. A single string
// is treated as a one-element list.
func (a Args) Strings(name string, def []string) ([]string, error) {
	v, ok := a.Value(name)
	if !ok || v == nil {
		return def, nil
	}
	if s, isString := v.(string); isString {
		return []string{s}, nil
	}
	out, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("argument %s: %w", name, err)
	}
	return out, nil
}

// StringMap returns the named argument as a mapping.
func (a Args) StringMap(name string) (map[string]interface{}, error) {
	v, ok := a.Value(name)
	if !ok || v == nil {
		return map[string]interface{}{}, nil
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil, fmt.Errorf("argument %s: %w", name, err)
	}
	return m, nil
}

// As returns the named argument asserted to T. Constructors use it for
// already-constructed dependencies such as wrapped handlers.
func As[T any](a Args, name string) (T, error) {
	var zero T
	v, ok := a.Value(name)
	if !ok || v == nil {
		return zero, fmt.Errorf("argument %s is required", name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("argument %s: unexpected %T", name, v)
	}
	return t, nil
}

// ToLevel converts a configuration value to a level: a symbolic name
// (case-insensitive), an ordinal, or a core.Level.
func ToLevel(v interface{}) (core.Level, error) {
	switch l := v.(type) {
	case core.Level:
		return l, nil
	case string:
		if lvl, ok := core.LookupLevel(l); ok {
			return lvl, nil
		}
		return 0, fmt.Errorf("unknown level %q", l)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("invalid level %v", v)
	}
	if n < int(core.DebugLevel) || n > int(core.PanicLevel) {
		return 0, fmt.Errorf("level ordinal %d out of range", n)
	}
	return core.Level(n), nil
}
