package consolehandler

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/formatter"
	"github.com/philipp01105/nlogconf/registry"
)

// Target describes ConsoleHandler for configuration-driven construction.
func Target() registry.Target {
	return registry.Target{
		Name: "nlog.ConsoleHandler",
		Params: []registry.Param{
			registry.Optional("output", "stdout"),
			registry.Optional("level", core.DebugLevel),
			registry.Optional("bubble", true),
			registry.Optional("formatter", "text"),
			registry.Optional("color", "auto"),
		},
		New: newFromArgs,
	}
}

func newFromArgs(args registry.Args) (interface{}, error) {
	output, err := args.String("output", "stdout")
	if err != nil {
		return nil, err
	}
	var w io.Writer
	switch strings.ToLower(output) {
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		return nil, fmt.Errorf("console output must be stdout or stderr, got %q", output)
	}

	level, err := args.Level("level", core.DebugLevel)
	if err != nil {
		return nil, err
	}
	bubble, err := args.Bool("bubble", true)
	if err != nil {
		return nil, err
	}
	name, err := args.String("formatter", "text")
	if err != nil {
		return nil, err
	}
	f, err := formatter.ByName(name, formatter.Config{})
	if err != nil {
		return nil, err
	}
	colorName, err := args.String("color", "auto")
	if err != nil {
		return nil, err
	}
	color, err := ParseColorMode(colorName)
	if err != nil {
		return nil, err
	}

	h := NewConsoleHandler(ConsoleConfig{Writer: w, Formatter: f, Level: level, Color: color})
	h.SetBubble(bubble)
	return h, nil
}
