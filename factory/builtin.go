package factory

import (
	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
	"github.com/philipp01105/nlogconf/handler/asynchandler"
	"github.com/philipp01105/nlogconf/handler/bridgehandler"
	"github.com/philipp01105/nlogconf/handler/bufferhandler"
	"github.com/philipp01105/nlogconf/handler/consolehandler"
	"github.com/philipp01105/nlogconf/handler/couchdbhandler"
	"github.com/philipp01105/nlogconf/handler/filehandler"
	"github.com/philipp01105/nlogconf/handler/multihandler"
	"github.com/philipp01105/nlogconf/handler/sqlhandler"
	"github.com/philipp01105/nlogconf/processor"
	"github.com/philipp01105/nlogconf/registry"
)

func nullTarget() registry.Target {
	return registry.Target{
		Name:   "nlog.NullHandler",
		Params: []registry.Param{registry.Optional("level", core.DebugLevel)},
		New: func(args registry.Args) (interface{}, error) {
			level, err := args.Level("level", core.DebugLevel)
			if err != nil {
				return nil, err
			}
			return handler.NewNullHandler(level), nil
		},
	}
}

// Builtins returns every target the factory knows without options.
func Builtins() []registry.Target {
	targets := []registry.Target{
		nullTarget(),
		consolehandler.Target(),
		filehandler.StreamTarget(),
		filehandler.RotatingTarget(),
		bufferhandler.BufferTarget(),
		bufferhandler.FingersCrossedTarget(),
		multihandler.Target(),
		asynchandler.Target(),
		couchdbhandler.Target(),
		sqlhandler.Target(),
	}
	targets = append(targets, bridgehandler.Targets()...)
	return append(targets, processor.Targets()...)
}
