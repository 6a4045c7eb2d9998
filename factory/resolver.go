package factory

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/philipp01105/nlogconf/config"
	"github.com/philipp01105/nlogconf/handler"
	"github.com/philipp01105/nlogconf/processor"
	"github.com/philipp01105/nlogconf/registry"
)

// definition resolves a reference: a name in section, or an inline
// mapping. Inline definitions are never shared.
func (f *Factory) definition(ctx *buildContext, section config.Section, ref interface{}) (config.Definition, string, error) {
	switch r := ref.(type) {
	case string:
		def, ok := f.doc.Lookup(section, r)
		if !ok {
			return nil, "", ctx.fail(ErrUndefinedReference, nil,
				"%s - %s was referred to in the configuration but was not defined", section, r)
		}
		return def, r, nil
	case map[string]interface{}:
		def := make(config.Definition, len(r))
		for k, v := range r {
			def[k] = v
		}
		return def, "inline", nil
	default:
		return nil, "", ctx.fail(ErrComponentConstruction, nil,
			"%s reference must be a name or a mapping, got %T", section, ref)
	}
}

// target finds the registry entry for def. Handlers may name a type,
// which takes precedence over class; processors use class only.
func (f *Factory) target(ctx *buildContext, section config.Section, label string, def config.Definition) (registry.Target, string, error) {
	var id, typ string
	if section == config.Handlers {
		if t, ok := def.String("type"); ok && t != "" {
			typ = strings.ToLower(t)
			id = conventionTarget(t)
		}
	}
	if id == "" {
		if class, ok := def.String("class"); ok && class != "" {
			id = class
		}
	}
	if id == "" {
		return registry.Target{}, "", ctx.fail(ErrMissingTarget, nil,
			"%s - %s defines neither type nor class", section, label)
	}

	t, ok := f.registry.Lookup(id)
	if !ok {
		return registry.Target{}, "", ctx.fail(ErrUndefinedReference, nil,
			"%s - %s refers to unknown target %s", section, label, id)
	}
	return t, typ, nil
}

// construct binds and calls the target constructor.
func (f *Factory) construct(ctx *buildContext, section config.Section, ref interface{}) (interface{}, registry.Target, config.Definition, *binding, error) {
	def, label, err := f.definition(ctx, section, ref)
	if err != nil {
		return nil, registry.Target{}, nil, nil, err
	}
	t, typ, err := f.target(ctx, section, label, def)
	if err != nil {
		return nil, t, nil, nil, err
	}
	b, err := f.bind(ctx, t, typ, def)
	if err != nil {
		return nil, t, nil, nil, err
	}

	inst, err := t.New(b.args)
	if err != nil {
		b.release()
		return nil, t, nil, nil, ctx.fail(ErrComponentConstruction, err, "%s - %s: cannot construct %s", section, label, t.Name)
	}
	f.diag.Debug("constructed component",
		zap.String("channel", ctx.channel),
		zap.String("section", string(section)),
		zap.String("name", label),
		zap.String("target", t.Name),
		zap.Int("args", b.args.Len()),
	)
	return inst, t, def, b, nil
}

// resolveHandler builds a new handler for ref.
func (f *Factory) resolveHandler(ctx *buildContext, ref interface{}) (handler.Handler, error) {
	if name, ok := ref.(string); ok {
		if ctx.resolving[name] {
			return nil, ctx.fail(ErrCyclicInheritance, nil,
				"%s - %s refers back to itself through nested handlers", config.Handlers, name)
		}
		if ctx.resolving == nil {
			ctx.resolving = make(map[string]bool)
		}
		ctx.resolving[name] = true
		defer delete(ctx.resolving, name)
	}

	inst, t, def, b, err := f.construct(ctx, config.Handlers, ref)
	if err != nil {
		return nil, err
	}
	h, ok := inst.(handler.Handler)
	if !ok {
		b.release()
		if c, ok := inst.(interface{ Close() error }); ok {
			_ = c.Close()
		}
		return nil, ctx.fail(ErrComponentConstruction, nil, "%s built %T, which is not a handler", t.Name, inst)
	}
	if err := applySetters(t, def, h); err != nil {
		_ = h.Close()
		return nil, ctx.fail(ErrComponentConstruction, err, "%s: setter failed", t.Name)
	}
	return h, nil
}

// resolveProcessor builds a new processor for ref.
func (f *Factory) resolveProcessor(ctx *buildContext, ref interface{}) (processor.Processor, error) {
	inst, t, _, b, err := f.construct(ctx, config.Processors, ref)
	if err != nil {
		return nil, err
	}
	p, ok := inst.(processor.Processor)
	if !ok {
		b.release()
		return nil, ctx.fail(ErrComponentConstruction, nil,
			"%s built %T, which is not a processor", t.Name, inst)
	}
	return p, nil
}

func describeRef(ref interface{}) string {
	if s, ok := ref.(string); ok {
		return s
	}
	return fmt.Sprintf("inline %T", ref)
}
