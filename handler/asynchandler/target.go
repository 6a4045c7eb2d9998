package asynchandler

import (
	"time"

	"github.com/philipp01105/nlogconf/handler"
	"github.com/philipp01105/nlogconf/registry"
)

// Target describes AsyncHandler for configuration-driven construction.
// An empty overflowPolicy keeps the per-level default; a named policy
// applies to every level.
func Target() registry.Target {
	return registry.Target{
		Name: "nlog.AsyncHandler",
		Params: []registry.Param{
			registry.Required("handler"),
			registry.Optional("bufferSize", 1024),
			registry.Optional("overflowPolicy", ""),
			registry.Optional("blockTimeout", 100*time.Millisecond),
			registry.Optional("drainTimeout", 5*time.Second),
		},
		New: func(args registry.Args) (interface{}, error) {
			inner, err := registry.As[handler.Handler](args, "handler")
			if err != nil {
				return nil, err
			}
			cfg := AsyncConfig{Handler: inner}
			if cfg.BufferSize, err = args.Int("bufferSize", 1024); err != nil {
				return nil, err
			}
			name, err := args.String("overflowPolicy", "")
			if err != nil {
				return nil, err
			}
			if name != "" {
				p, err := handler.ParseOverflowPolicy(name)
				if err != nil {
					return nil, err
				}
				cfg.OverflowPolicy = handler.UniformPolicy(p)
			}
			if cfg.BlockTimeout, err = args.Duration("blockTimeout", 100*time.Millisecond); err != nil {
				return nil, err
			}
			if cfg.DrainTimeout, err = args.Duration("drainTimeout", 5*time.Second); err != nil {
				return nil, err
			}
			return NewAsyncHandler(cfg), nil
		},
	}
}
