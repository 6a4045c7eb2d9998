package couchdbhandler

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/philipp01105/nlogconf/registry"
)

// Target describes CouchDBHandler for configuration-driven construction.
// The handler receives the complete handler definition as its single
// options argument; keys other than the connection settings are ignored.
func Target() registry.Target {
	return registry.Target{
		Name:   "nlog.CouchDBHandler",
		Params: []registry.Param{registry.Optional("options", map[string]interface{}{})},
		New: func(args registry.Args) (interface{}, error) {
			raw, err := args.StringMap("options")
			if err != nil {
				return nil, err
			}
			opts, err := OptionsFromMap(raw)
			if err != nil {
				return nil, err
			}
			return NewCouchDBHandler(opts), nil
		},
	}
}

// OptionsFromMap reads connection settings from a configuration mapping.
func OptionsFromMap(m map[string]interface{}) (Options, error) {
	var opts Options
	var err error
	str := func(key string) string {
		if err != nil {
			return ""
		}
		v, ok := m[key]
		if !ok || v == nil {
			return ""
		}
		var s string
		if s, err = cast.ToStringE(v); err != nil {
			err = fmt.Errorf("couchdb option %s: %w", key, err)
		}
		return s
	}

	opts.Protocol = str("protocol")
	opts.Host = str("host")
	opts.DBName = str("dbname")
	opts.Username = str("username")
	opts.Password = str("password")
	if err != nil {
		return opts, err
	}
	if v, ok := m["port"]; ok && v != nil {
		if opts.Port, err = cast.ToIntE(v); err != nil {
			return opts, fmt.Errorf("couchdb option port: %w", err)
		}
	}
	if v, ok := m["timeout"]; ok && v != nil {
		if opts.Timeout, err = cast.ToDurationE(v); err != nil {
			return opts, fmt.Errorf("couchdb option timeout: %w", err)
		}
	}
	if v, ok := m["retryMax"]; ok && v != nil {
		if opts.RetryMax, err = cast.ToIntE(v); err != nil {
			return opts, fmt.Errorf("couchdb option retryMax: %w", err)
		}
	} else {
		opts.RetryMax = 3
	}
	return opts, nil
}
