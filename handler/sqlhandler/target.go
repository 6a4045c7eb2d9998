package sqlhandler

import (
	"context"
	"time"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/registry"
)

// Target describes SQLHandler for configuration-driven construction.
func Target() registry.Target {
	return registry.Target{
		Name: "nlog.SqlHandler",
		Params: []registry.Param{
			registry.Required("driver"),
			registry.Required("dsn"),
			registry.Optional("table", "logs"),
			registry.Optional("level", core.DebugLevel),
			registry.Optional("bubble", true),
		},
		New: func(args registry.Args) (interface{}, error) {
			var cfg SQLConfig
			var err error
			if cfg.Driver, err = args.RequiredString("driver"); err != nil {
				return nil, err
			}
			if cfg.DSN, err = args.RequiredString("dsn"); err != nil {
				return nil, err
			}
			if cfg.Table, err = args.String("table", "logs"); err != nil {
				return nil, err
			}
			if cfg.Level, err = args.Level("level", core.DebugLevel); err != nil {
				return nil, err
			}
			bubble, err := args.Bool("bubble", true)
			if err != nil {
				return nil, err
			}
			cfg.Timeout = 5 * time.Second
			h, err := NewSQLHandler(context.Background(), cfg)
			if err != nil {
				return nil, err
			}
			h.SetBubble(bubble)
			return h, nil
		},
	}
}
