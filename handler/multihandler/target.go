package multihandler

import (
	"fmt"

	"github.com/philipp01105/nlogconf/handler"
	"github.com/philipp01105/nlogconf/registry"
)

// Target describes GroupHandler for configuration-driven construction.
func Target() registry.Target {
	return registry.Target{
		Name: "nlog.GroupHandler",
		Params: []registry.Param{
			registry.Required("handlers"),
			registry.Optional("bubble", true),
		},
		New: func(args registry.Args) (interface{}, error) {
			v, _ := args.Value("handlers")
			list, ok := v.([]interface{})
			if !ok {
				return nil, fmt.Errorf("argument handlers: expected a list, got %T", v)
			}
			hs := make([]handler.Handler, 0, len(list))
			for i, item := range list {
				h, ok := item.(handler.Handler)
				if !ok {
					return nil, fmt.Errorf("argument handlers[%d]: unexpected %T", i, item)
				}
				hs = append(hs, h)
			}
			bubble, err := args.Bool("bubble", true)
			if err != nil {
				return nil, err
			}
			g := NewGroupHandler(hs...)
			g.SetBubble(bubble)
			return g, nil
		},
	}
}
