package filehandler

import (
	"os"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/formatter"
	"github.com/philipp01105/nlogconf/registry"
)

// StreamTarget describes StreamHandler for configuration-driven construction.
func StreamTarget() registry.Target {
	return registry.Target{
		Name: "nlog.StreamHandler",
		Params: []registry.Param{
			registry.Required("file"),
			registry.Optional("level", core.DebugLevel),
			registry.Optional("bubble", true),
			registry.Optional("filePermission", int(DefaultFilePermission)),
			registry.Optional("useLocking", false),
			registry.Optional("formatter", "text"),
		},
		New: newStreamFromArgs,
	}
}

// RotatingTarget describes RotatingFileHandler for configuration-driven
// construction.
func RotatingTarget() registry.Target {
	return registry.Target{
		Name: "nlog.RotatingFileHandler",
		Params: []registry.Param{
			registry.Required("filename"),
			registry.Optional("maxFiles", 0),
			registry.Optional("level", core.DebugLevel),
			registry.Optional("bubble", true),
			registry.Optional("filePermission", int(DefaultFilePermission)),
			registry.Optional("useLocking", false),
			registry.Optional("formatter", "text"),
		},
		New: newRotatingFromArgs,
	}
}

func fileConfigFromArgs(args registry.Args, pathParam string) (FileConfig, bool, error) {
	var cfg FileConfig
	var err error
	if cfg.Filename, err = args.RequiredString(pathParam); err != nil {
		return cfg, false, err
	}
	if cfg.Level, err = args.Level("level", core.DebugLevel); err != nil {
		return cfg, false, err
	}
	bubble, err := args.Bool("bubble", true)
	if err != nil {
		return cfg, false, err
	}
	perm, err := args.Int("filePermission", int(DefaultFilePermission))
	if err != nil {
		return cfg, false, err
	}
	cfg.FilePermission = os.FileMode(perm)
	if cfg.UseLocking, err = args.Bool("useLocking", false); err != nil {
		return cfg, false, err
	}
	name, err := args.String("formatter", "text")
	if err != nil {
		return cfg, false, err
	}
	if cfg.Formatter, err = formatter.ByName(name, formatter.Config{}); err != nil {
		return cfg, false, err
	}
	return cfg, bubble, nil
}

func newStreamFromArgs(args registry.Args) (interface{}, error) {
	cfg, bubble, err := fileConfigFromArgs(args, "file")
	if err != nil {
		return nil, err
	}
	h, err := NewStreamHandler(cfg)
	if err != nil {
		return nil, err
	}
	h.SetBubble(bubble)
	return h, nil
}

func newRotatingFromArgs(args registry.Args) (interface{}, error) {
	cfg, bubble, err := fileConfigFromArgs(args, "filename")
	if err != nil {
		return nil, err
	}
	maxFiles, err := args.Int("maxFiles", 0)
	if err != nil {
		return nil, err
	}
	h, err := NewRotatingFileHandler(RotatingConfig{FileConfig: cfg, MaxFiles: maxFiles})
	if err != nil {
		return nil, err
	}
	h.SetBubble(bubble)
	return h, nil
}
