package factory

import (
	"sync"

	"go.uber.org/zap"

	"github.com/philipp01105/nlogconf/config"
	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
	"github.com/philipp01105/nlogconf/logger"
	"github.com/philipp01105/nlogconf/registry"
)

// DefaultChannel is built for an empty name and is the implicit parent
// of channels the document does not declare.
const DefaultChannel = "default"

type buildState uint8

const (
	unvisited buildState = iota
	building
	built
)

// Factory builds loggers from a configuration document and caches them
// per channel name. It is safe for concurrent use.
type Factory struct {
	doc       *config.Document
	registry  *registry.Registry
	diag      *zap.Logger
	errorSink func(*logger.Logger)

	mu     sync.Mutex
	states map[string]buildState
	cache  map[string]*logger.Logger
	order  []string
}

// New creates a factory over doc with the built-in targets.
func New(doc *config.Document, opts ...Option) *Factory {
	f := &Factory{
		doc:      doc,
		registry: registry.New(Builtins()...),
		diag:     zap.NewNop(),
		errorSink: func(l *logger.Logger) {
			logger.RegisterErrorSink(l)
		},
		states: make(map[string]buildState),
		cache:  make(map[string]*logger.Logger),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewFromFiles loads primary, or fallback when primary does not exist,
// and creates a factory over it. Load failures are *ConfigError values of
// kind ErrConfigLoad.
func NewFromFiles(primary, fallback string, opts ...Option) (*Factory, error) {
	doc, err := config.Load(primary, fallback)
	if err != nil {
		ctx := &buildContext{channel: DefaultChannel, dump: func() string { return "" }}
		return nil, ctx.fail(ErrConfigLoad, err, "cannot load configuration")
	}
	return New(doc, opts...), nil
}

// Document returns the configuration document.
func (f *Factory) Document() *config.Document {
	return f.doc
}

// Registry returns the target registry.
func (f *Factory) Registry() *registry.Registry {
	return f.registry
}

// Channels returns the declared channel names.
func (f *Factory) Channels() []string {
	return f.doc.Channels()
}

// GetLogger returns the logger for the named channel, building it on
// first use. An empty name means the default channel. The document must
// declare a default channel whatever name is requested.
func (f *Factory) GetLogger(name string) (*logger.Logger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if name == "" {
		name = DefaultChannel
	}
	if _, ok := f.doc.Lookup(config.Channels, DefaultChannel); !ok {
		ctx := f.context(name)
		return nil, ctx.fail(ErrMissingDefaultChannel, nil, "channel %q is not defined", DefaultChannel)
	}
	return f.build(name)
}

func (f *Factory) context(channel string) *buildContext {
	return &buildContext{channel: channel, dump: f.doc.Dump}
}

// build runs with f.mu held.
func (f *Factory) build(name string) (l *logger.Logger, err error) {
	ctx := f.context(name)

	switch f.states[name] {
	case built:
		f.diag.Debug("channel cache hit", zap.String("channel", name))
		return f.cache[name], nil
	case building:
		return nil, ctx.fail(ErrCyclicInheritance, nil, "channel %s extends itself through its parents", name)
	}

	f.states[name] = building
	var attached []handler.Handler
	defer func() {
		if err != nil {
			delete(f.states, name)
			if len(attached) > 0 {
				_ = handler.CloseAll(attached)
			}
		}
	}()

	def, ok := f.doc.Lookup(config.Channels, name)
	if !ok {
		if name == DefaultChannel {
			return nil, ctx.fail(ErrMissingDefaultChannel, nil, "channel %q is not defined", DefaultChannel)
		}
		def = config.Definition{"extends": DefaultChannel}
	}
	f.diag.Debug("building channel", zap.String("channel", name), zap.Bool("declared", ok))

	var b *logger.Builder
	if parent, ok := def.String("extends"); ok && parent != "" {
		p, err := f.build(parent)
		if err != nil {
			return nil, err
		}
		b = p.Derive(name)
	} else {
		b = logger.NewBuilder().WithName(name).WithLevel(core.DebugLevel)
	}

	if def.Has("use_microseconds") {
		micro, err := def.Bool("use_microseconds", true)
		if err != nil {
			return nil, ctx.fail(ErrComponentConstruction, err, "invalid channel option")
		}
		b.WithMicroseconds(micro)
	}
	registerSink, err := def.Bool("register_error_handler", false)
	if err != nil {
		return nil, ctx.fail(ErrComponentConstruction, err, "invalid channel option")
	}

	refs, err := def.List("handlers")
	if err != nil {
		return nil, ctx.fail(ErrComponentConstruction, err, "invalid channel definition")
	}
	for _, ref := range refs {
		h, err := f.resolveHandler(ctx, ref)
		if err != nil {
			return nil, err
		}
		attached = append(attached, h)
		b.AddHandler(h)
		f.diag.Debug("attached handler", zap.String("channel", name), zap.String("ref", describeRef(ref)))
	}

	refs, err = def.List("processors")
	if err != nil {
		return nil, ctx.fail(ErrComponentConstruction, err, "invalid channel definition")
	}
	for _, ref := range refs {
		p, err := f.resolveProcessor(ctx, ref)
		if err != nil {
			return nil, err
		}
		b.AddProcessor(p)
		f.diag.Debug("attached processor", zap.String("channel", name), zap.String("ref", describeRef(ref)))
	}

	l = b.Build()
	if registerSink {
		f.errorSink(l)
		f.diag.Debug("registered error sink", zap.String("channel", name))
	}

	f.states[name] = built
	f.cache[name] = l
	f.order = append(f.order, name)
	f.diag.Debug("built channel",
		zap.String("channel", name),
		zap.Int("handlers", len(l.Handlers())),
		zap.Int("processors", len(l.Processors())),
	)
	return l, nil
}

// Close closes every distinct handler of every built channel once and
// forgets the built channels. Later GetLogger calls build afresh.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var hs []handler.Handler
	for _, name := range f.order {
		hs = append(hs, f.cache[name].Handlers()...)
	}
	err := handler.CloseAll(hs)

	f.states = make(map[string]buildState)
	f.cache = make(map[string]*logger.Logger)
	f.order = nil
	return err
}
