package processor

import "github.com/philipp01105/nlogconf/registry"

// Targets describes the built-in processors for configuration-driven
// construction.
func Targets() []registry.Target {
	return []registry.Target{
		{
			Name:   "nlog.UidProcessor",
			Params: []registry.Param{registry.Optional("length", 7)},
			New: func(args registry.Args) (interface{}, error) {
				n, err := args.Int("length", 7)
				if err != nil {
					return nil, err
				}
				return NewUIDProcessor(n)
			},
		},
		{
			Name:   "nlog.TagProcessor",
			Params: []registry.Param{registry.Optional("tags", []string{})},
			New: func(args registry.Args) (interface{}, error) {
				tags, err := args.Strings("tags", nil)
				if err != nil {
					return nil, err
				}
				return NewTagProcessor(tags...), nil
			},
		},
		{
			Name: "nlog.HostnameProcessor",
			New: func(registry.Args) (interface{}, error) {
				return NewHostnameProcessor(), nil
			},
		},
		{
			Name: "nlog.ProcessIdProcessor",
			New: func(registry.Args) (interface{}, error) {
				return NewProcessIDProcessor(), nil
			},
		},
		{
			Name:   "nlog.MemoryUsageProcessor",
			Params: []registry.Param{registry.Optional("useFormatting", true)},
			New: func(args registry.Args) (interface{}, error) {
				format, err := args.Bool("useFormatting", true)
				if err != nil {
					return nil, err
				}
				return NewMemoryUsageProcessor(format), nil
			},
		},
		{
			Name: "nlog.PsrLogMessageProcessor",
			Params: []registry.Param{
				registry.Optional("dateFormat", ""),
				registry.Optional("removeUsedContextFields", false),
			},
			New: func(args registry.Args) (interface{}, error) {
				layout, err := args.String("dateFormat", "")
				if err != nil {
					return nil, err
				}
				remove, err := args.Bool("removeUsedContextFields", false)
				if err != nil {
					return nil, err
				}
				return NewPSRLogMessageProcessor(layout, remove), nil
			},
		},
	}
}
