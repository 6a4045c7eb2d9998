package factory

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/philipp01105/nlogconf/config"
	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
	"github.com/philipp01105/nlogconf/registry"
)

// levelParams are bound through the level table.
var levelParams = map[string]string{
	"level":        "level",
	"minLevel":     "min_level",
	"min_level":    "minLevel",
	"actionLevel":  "action_level",
	"action_level": "actionLevel",
}

// lookupLevel finds a level-like parameter under either spelling.
func lookupLevel(source map[string]interface{}, name string) (interface{}, bool) {
	if v, ok := source[name]; ok && v != nil {
		return v, true
	}
	if v, ok := source[levelParams[name]]; ok && v != nil {
		return v, true
	}
	return nil, false
}

// binding is the result of binding one definition.
type binding struct {
	args registry.Args
	// nested holds handlers constructed while binding; they are closed
	// again if the outer component cannot be built.
	nested []handler.Handler
}

func (b *binding) release() {
	if len(b.nested) > 0 {
		_ = handler.CloseAll(b.nested)
	}
}

// bind computes the argument list for target from def. typ is the
// definition's lowercased type key, empty for class-based definitions.
func (f *Factory) bind(ctx *buildContext, target registry.Target, typ string, def config.Definition) (*binding, error) {
	b := &binding{}

	// The couchdb variant takes the whole record as its only argument
	if typ == "couchdb" {
		record := make(map[string]interface{}, len(def))
		for k, v := range def {
			record[k] = v
		}
		b.args = registry.NewArgs(target.Params, []interface{}{record})
		return b, nil
	}

	source := map[string]interface{}(def)
	var listed []interface{}
	if raw, ok := def["arguments"]; ok && raw != nil {
		switch a := raw.(type) {
		case []interface{}:
			listed = make([]interface{}, len(a))
			copy(listed, a)
		case map[string]interface{}:
			source = a
		default:
			return nil, ctx.fail(ErrComponentConstruction, nil,
				"%s: arguments must be a list or a mapping, got %T", target.Name, raw)
		}
	}

	if typ == "stream" && !suppliesFile(target, source, listed) {
		return nil, ctx.fail(ErrComponentConstruction, nil, "stream handler requires a file")
	}
	if listed != nil {
		b.args = registry.NewArgs(target.Params, listed)
		return b, nil
	}

	values := make([]interface{}, 0, len(target.Params))
	for _, p := range target.Params {
		if _, ok := levelParams[p.Name]; ok {
			level, err := f.bindLevel(ctx, target, p, source)
			if err != nil {
				b.release()
				return nil, err
			}
			values = append(values, level)
			continue
		}

		v, present := source[p.Name]
		present = present && v != nil

		switch {
		case p.Name == "handler" && present:
			h, err := f.resolveHandler(ctx, v)
			if err != nil {
				b.release()
				return nil, err
			}
			b.nested = append(b.nested, h)
			values = append(values, h)
			continue
		case p.Name == "handlers" && present:
			refs, ok := v.([]interface{})
			if !ok {
				b.release()
				return nil, ctx.fail(ErrComponentConstruction, nil,
					"%s: handlers must be a list, got %T", target.Name, v)
			}
			hs := make([]interface{}, 0, len(refs))
			for _, ref := range refs {
				h, err := f.resolveHandler(ctx, ref)
				if err != nil {
					b.release()
					return nil, err
				}
				b.nested = append(b.nested, h)
				hs = append(hs, h)
			}
			values = append(values, hs)
			continue
		case present:
			values = append(values, v)
			continue
		case p.HasDefault:
			values = append(values, p.Default)
			continue
		}
		// No value and no default: later parameters cannot be positioned
		break
	}

	b.args = registry.NewArgs(target.Params, values)
	return b, nil
}

// suppliesFile reports whether the file parameter has a value, taken
// positionally from listed when arguments is a list and from source
// otherwise.
func suppliesFile(target registry.Target, source map[string]interface{}, listed []interface{}) bool {
	if listed != nil {
		for i, p := range target.Params {
			if p.Name == "file" {
				return i < len(listed) && listed[i] != nil
			}
		}
		return false
	}
	v, ok := source["file"]
	return ok && v != nil
}

func (f *Factory) bindLevel(ctx *buildContext, target registry.Target, p registry.Param, source map[string]interface{}) (core.Level, error) {
	if v, ok := lookupLevel(source, p.Name); ok {
		level, err := registry.ToLevel(v)
		if err != nil {
			return 0, ctx.fail(ErrComponentConstruction, err, "%s: %s", target.Name, p.Name)
		}
		return level, nil
	}
	if p.HasDefault {
		level, err := registry.ToLevel(p.Default)
		if err != nil {
			return 0, ctx.fail(ErrComponentConstruction, err, "%s: default %s", target.Name, p.Name)
		}
		return level, nil
	}
	return core.DebugLevel, nil
}

// handlerLevel is the level applied through SetLevel after construction:
// the definition's level, then an arguments mapping's level, then the
// target's declared default, then debug.
func handlerLevel(target registry.Target, def config.Definition) (core.Level, error) {
	if v, ok := lookupLevel(def, "level"); ok {
		return registry.ToLevel(v)
	}
	if m, ok := def["arguments"].(map[string]interface{}); ok {
		if v, ok := lookupLevel(m, "level"); ok {
			return registry.ToLevel(v)
		}
	}
	if p, ok := target.Param("level"); ok && p.HasDefault {
		return registry.ToLevel(p.Default)
	}
	return core.DebugLevel, nil
}

// filenameFormatter is implemented by rotating file handlers.
type filenameFormatter interface {
	SetFilenameFormat(filenameFormat, dateFormat string) error
}

// applySetters applies bubble, level and the rotating filename format.
func applySetters(target registry.Target, def config.Definition, h handler.Handler) error {
	bubble, err := def.Bool("bubble", true)
	if err != nil {
		return err
	}
	if s, ok := h.(handler.BubbleSetter); ok {
		s.SetBubble(bubble)
	}

	level, err := handlerLevel(target, def)
	if err != nil {
		return fmt.Errorf("level: %w", err)
	}
	if s, ok := h.(handler.LevelSetter); ok {
		s.SetLevel(level)
	}

	if def.Has("filenameFormat") || def.Has("dateFormat") {
		if s, ok := h.(filenameFormatter); ok {
			filenameFormat, _ := def.String("filenameFormat")
			dateFormat, _ := def.String("dateFormat")
			if err := s.SetFilenameFormat(filenameFormat, dateFormat); err != nil {
				return err
			}
		}
	}
	return nil
}

// conventionTarget maps a handler type to its target identifier:
// "rotating_file" becomes "nlog.RotatingFileHandler".
func conventionTarget(typ string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	b.WriteString("nlog.")
	for _, part := range strings.FieldsFunc(typ, func(r rune) bool { return r == '_' || r == '-' }) {
		b.WriteString(title.String(part))
	}
	b.WriteString("Handler")
	return b.String()
}
