package bridgehandler

import (
	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/registry"
)

// Targets describes the bridge handlers for configuration-driven
// construction.
func Targets() []registry.Target {
	return []registry.Target{
		{
			Name: "nlog.ZapHandler",
			Params: []registry.Param{
				registry.Optional("outputPaths", []string{"stdout"}),
				registry.Optional("encoding", "json"),
				registry.Optional("level", core.DebugLevel),
				registry.Optional("bubble", true),
			},
			New: newZapFromArgs,
		},
		{
			Name: "nlog.ZerologHandler",
			Params: []registry.Param{
				registry.Optional("file", "stdout"),
				registry.Optional("level", core.DebugLevel),
				registry.Optional("bubble", true),
			},
			New: newZerologFromArgs,
		},
		{
			Name: "nlog.LogrusHandler",
			Params: []registry.Param{
				registry.Optional("file", "stdout"),
				registry.Optional("format", "text"),
				registry.Optional("level", core.DebugLevel),
				registry.Optional("bubble", true),
			},
			New: newLogrusFromArgs,
		},
	}
}

func levelAndBubble(args registry.Args) (core.Level, bool, error) {
	level, err := args.Level("level", core.DebugLevel)
	if err != nil {
		return 0, false, err
	}
	bubble, err := args.Bool("bubble", true)
	return level, bubble, err
}

func newZapFromArgs(args registry.Args) (interface{}, error) {
	paths, err := args.Strings("outputPaths", []string{"stdout"})
	if err != nil {
		return nil, err
	}
	encoding, err := args.String("encoding", "json")
	if err != nil {
		return nil, err
	}
	level, bubble, err := levelAndBubble(args)
	if err != nil {
		return nil, err
	}
	h, err := NewZapHandler(ZapConfig{OutputPaths: paths, Encoding: encoding, Level: level})
	if err != nil {
		return nil, err
	}
	h.SetBubble(bubble)
	return h, nil
}

func newZerologFromArgs(args registry.Args) (interface{}, error) {
	file, err := args.String("file", "stdout")
	if err != nil {
		return nil, err
	}
	level, bubble, err := levelAndBubble(args)
	if err != nil {
		return nil, err
	}
	w, closer, err := openOutput(file)
	if err != nil {
		return nil, err
	}
	h := NewZerologHandler(w)
	h.closer = closer
	h.SetLevel(level)
	h.SetBubble(bubble)
	return h, nil
}

func newLogrusFromArgs(args registry.Args) (interface{}, error) {
	file, err := args.String("file", "stdout")
	if err != nil {
		return nil, err
	}
	format, err := args.String("format", "text")
	if err != nil {
		return nil, err
	}
	level, bubble, err := levelAndBubble(args)
	if err != nil {
		return nil, err
	}
	w, closer, err := openOutput(file)
	if err != nil {
		return nil, err
	}
	h, err := NewLogrusHandler(w, format)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	h.closer = closer
	h.SetLevel(level)
	h.SetBubble(bubble)
	return h, nil
}
