package bufferhandler

import (
	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
	"github.com/philipp01105/nlogconf/registry"
)

// BufferTarget describes BufferHandler for configuration-driven construction.
func BufferTarget() registry.Target {
	return registry.Target{
		Name: "nlog.BufferHandler",
		Params: []registry.Param{
			registry.Required("handler"),
			registry.Optional("bufferLimit", 0),
			registry.Optional("level", core.DebugLevel),
			registry.Optional("bubble", true),
			registry.Optional("flushOnOverflow", false),
		},
		New: func(args registry.Args) (interface{}, error) {
			inner, err := registry.As[handler.Handler](args, "handler")
			if err != nil {
				return nil, err
			}
			limit, err := args.Int("bufferLimit", 0)
			if err != nil {
				return nil, err
			}
			level, err := args.Level("level", core.DebugLevel)
			if err != nil {
				return nil, err
			}
			bubble, err := args.Bool("bubble", true)
			if err != nil {
				return nil, err
			}
			flush, err := args.Bool("flushOnOverflow", false)
			if err != nil {
				return nil, err
			}
			h := NewBufferHandler(BufferConfig{Handler: inner, BufferLimit: limit, Level: level, FlushOnOverflow: flush})
			h.SetBubble(bubble)
			return h, nil
		},
	}
}

// FingersCrossedTarget describes FingersCrossedHandler for
// configuration-driven construction.
func FingersCrossedTarget() registry.Target {
	return registry.Target{
		Name: "nlog.FingersCrossedHandler",
		Params: []registry.Param{
			registry.Required("handler"),
			registry.Optional("actionLevel", core.WarnLevel),
			registry.Optional("bufferSize", 0),
			registry.Optional("bubble", true),
			registry.Optional("stopBuffering", true),
		},
		New: func(args registry.Args) (interface{}, error) {
			inner, err := registry.As[handler.Handler](args, "handler")
			if err != nil {
				return nil, err
			}
			action, err := args.Level("actionLevel", core.WarnLevel)
			if err != nil {
				return nil, err
			}
			size, err := args.Int("bufferSize", 0)
			if err != nil {
				return nil, err
			}
			bubble, err := args.Bool("bubble", true)
			if err != nil {
				return nil, err
			}
			stop, err := args.Bool("stopBuffering", true)
			if err != nil {
				return nil, err
			}
			h := NewFingersCrossedHandler(FingersCrossedConfig{
				Handler:       inner,
				ActionLevel:   action,
				BufferSize:    size,
				StopBuffering: stop,
			})
			h.SetBubble(bubble)
			return h, nil
		},
	}
}
