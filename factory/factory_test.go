package factory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/philipp01105/nlogconf/config"
	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
	"github.com/philipp01105/nlogconf/handler/bufferhandler"
	"github.com/philipp01105/nlogconf/handler/filehandler"
	"github.com/philipp01105/nlogconf/handler/handlertest"
	"github.com/philipp01105/nlogconf/logger"
	"github.com/philipp01105/nlogconf/registry"
)

// counting registers "test.Recorder" and counts constructions.
type counting struct {
	mu    sync.Mutex
	built []*handlertest.Recorder
	args  []registry.Args
}

func (c *counting) target() registry.Target {
	return registry.Target{
		Name: "test.Recorder",
		Params: []registry.Param{
			registry.Optional("label", "none"),
			registry.Optional("level", core.DebugLevel),
		},
		New: func(args registry.Args) (interface{}, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			level, err := args.Level("level", core.DebugLevel)
			if err != nil {
				return nil, err
			}
			r := handlertest.NewRecorder()
			r.SetLevel(level)
			c.built = append(c.built, r)
			c.args = append(c.args, args)
			return r, nil
		},
	}
}

// index returns the construction order of h, or -1.
func (c *counting) index(h handler.Handler) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, r := range c.built {
		if handler.Handler(r) == h {
			return i
		}
	}
	return -1
}

func (c *counting) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.built)
}

func parse(t *testing.T, src string) *config.Document {
	t.Helper()
	doc, err := config.Parse([]byte(src), config.YAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func newFactory(t *testing.T, src string, opts ...Option) (*Factory, *counting) {
	t.Helper()
	c := &counting{}
	opts = append([]Option{WithTarget(c.target()), WithErrorSink(func(*logger.Logger) {})}, opts...)
	f := New(parse(t, src), opts...)
	t.Cleanup(func() { _ = f.Close() })
	return f, c
}

func mustLogger(t *testing.T, f *Factory, name string) *logger.Logger {
	t.Helper()
	l, err := f.GetLogger(name)
	if err != nil {
		t.Fatalf("GetLogger(%q): %v", name, err)
	}
	return l
}

func TestGetLogger_CachedIdentity(t *testing.T) {
	f, c := newFactory(t, `
channels:
  default:
    handlers: [rec]
  app:
    handlers: [rec]
handlers:
  rec:
    class: test.Recorder
`)

	first := mustLogger(t, f, "app")
	second := mustLogger(t, f, "app")
	if first != second {
		t.Error("expected the same logger for repeated calls")
	}
	if def := mustLogger(t, f, ""); def != mustLogger(t, f, "default") {
		t.Error("empty name should return the default channel")
	}
	if got := c.count(); got != 2 {
		t.Errorf("constructions = %d, want 2 (default and app)", got)
	}
}

func TestGetLogger_InheritanceOrder(t *testing.T) {
	f, c := newFactory(t, `
channels:
  default:
    handlers:
      - {class: test.Recorder, label: d}
  b:
    extends: default
    handlers:
      - {class: test.Recorder, label: b}
  a:
    extends: b
    handlers:
      - {class: test.Recorder, label: a}
`)

	a := mustLogger(t, f, "a")
	if a.Name() != "a" {
		t.Errorf("Name() = %q, want a", a.Name())
	}
	var labels []string
	for _, h := range a.Handlers() {
		label, _ := c.args[c.index(h)].String("label", "")
		labels = append(labels, label)
	}
	if got := strings.Join(labels, ","); got != "d,b,a" {
		t.Errorf("handler order = %s, want d,b,a", got)
	}

	a.Info("hello")
	for i, h := range a.Handlers() {
		entries := h.(*handlertest.Recorder).Entries()
		if len(entries) != 1 || entries[0].Channel != "a" {
			t.Errorf("handler %d saw %d entries, want one on channel a", i, len(entries))
		}
	}

	// Parents were built and cached on the way.
	if got := len(mustLogger(t, f, "b").Handlers()); got != 2 {
		t.Errorf("b has %d handlers, want 2", got)
	}
	if c.count() != 3 {
		t.Errorf("constructions = %d, want 3", c.count())
	}
}

func TestGetLogger_CyclicInheritance(t *testing.T) {
	f, c := newFactory(t, `
channels:
  default: {}
  a:
    extends: b
    handlers: [rec]
  b:
    extends: a
    handlers: [rec]
handlers:
  rec:
    class: test.Recorder
`)

	_, err := f.GetLogger("a")
	if !errors.Is(err, ErrCyclicInheritance) {
		t.Fatalf("err = %v, want ErrCyclicInheritance", err)
	}
	if c.count() != 0 {
		t.Errorf("constructed %d handlers before detecting the cycle", c.count())
	}

	// The failed build leaves nothing behind.
	if _, err := f.GetLogger("b"); !errors.Is(err, ErrCyclicInheritance) {
		t.Errorf("second attempt: err = %v, want ErrCyclicInheritance", err)
	}
}

func TestGetLogger_MissingDefault(t *testing.T) {
	f, _ := newFactory(t, `
channels:
  app:
    handlers: []
`)

	for _, name := range []string{"", "default", "app", "other"} {
		_, err := f.GetLogger(name)
		if !errors.Is(err, ErrMissingDefaultChannel) {
			t.Errorf("GetLogger(%q): err = %v, want ErrMissingDefaultChannel", name, err)
		}
	}
}

func TestGetLogger_UndeclaredExtendsDefault(t *testing.T) {
	f, _ := newFactory(t, `
channels:
  default:
    handlers: [rec]
handlers:
  rec:
    class: test.Recorder
`)

	def := mustLogger(t, f, "default")
	foo := mustLogger(t, f, "foo")
	if foo == def {
		t.Fatal("undeclared channel should be a distinct logger")
	}
	if foo.Name() != "foo" {
		t.Errorf("Name() = %q, want foo", foo.Name())
	}
	if len(foo.Handlers()) != 1 || foo.Handlers()[0] != def.Handlers()[0] {
		t.Error("undeclared channel should share the default handlers")
	}
}

func TestGetLogger_StreamBinding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	f, _ := newFactory(t, fmt.Sprintf(`
channels:
  default:
    handlers: [file]
handlers:
  file:
    type: stream
    file: %q
    level: warning
    bubble: false
`, path))

	l := mustLogger(t, f, "default")
	h, ok := l.Handlers()[0].(*filehandler.StreamHandler)
	if !ok {
		t.Fatalf("handler is %T, want *filehandler.StreamHandler", l.Handlers()[0])
	}
	if h.Path() != path {
		t.Errorf("Path() = %q, want %q", h.Path(), path)
	}
	if h.Level() != core.WarnLevel {
		t.Errorf("Level() = %v, want WARN", h.Level())
	}
	if h.Bubbles() {
		t.Error("bubble: false was not applied")
	}
}

func TestGetLogger_StreamRequiresFile(t *testing.T) {
	f, _ := newFactory(t, `
channels:
  default:
    handlers:
      - type: stream
        level: info
`)

	_, err := f.GetLogger("")
	if !errors.Is(err, ErrComponentConstruction) {
		t.Fatalf("err = %v, want ErrComponentConstruction", err)
	}
}

func TestGetLogger_StreamFileFromArguments(t *testing.T) {
	dir := t.TempDir()
	mapped := filepath.Join(dir, "mapped.log")
	listed := filepath.Join(dir, "listed.log")
	f, _ := newFactory(t, fmt.Sprintf(`
channels:
  default:
    handlers: [mapped, listed]
handlers:
  mapped:
    type: stream
    arguments:
      file: %q
  listed:
    type: stream
    arguments: [%q]
`, mapped, listed))

	l := mustLogger(t, f, "")
	for i, want := range []string{mapped, listed} {
		h, ok := l.Handlers()[i].(*filehandler.StreamHandler)
		if !ok {
			t.Fatalf("handler %d is %T, want *filehandler.StreamHandler", i, l.Handlers()[i])
		}
		if h.Path() != want {
			t.Errorf("handler %d: Path() = %q, want %q", i, h.Path(), want)
		}
	}

	// An arguments mapping replaces the definition as the value source.
	f, _ = newFactory(t, fmt.Sprintf(`
channels:
  default:
    handlers:
      - type: stream
        file: %q
        arguments:
          level: info
`, mapped))
	if _, err := f.GetLogger(""); !errors.Is(err, ErrComponentConstruction) {
		t.Errorf("err = %v, want ErrComponentConstruction", err)
	}
}

func TestGetLogger_BufferResolvesInnerHandler(t *testing.T) {
	f, c := newFactory(t, `
channels:
  default:
    handlers: [buffered]
handlers:
  buffered:
    type: buffer
    handler: rec
    bufferLimit: 10
  rec:
    class: test.Recorder
    level: error
`)

	l := mustLogger(t, f, "")
	b, ok := l.Handlers()[0].(*bufferhandler.BufferHandler)
	if !ok {
		t.Fatalf("handler is %T, want *bufferhandler.BufferHandler", l.Handlers()[0])
	}
	inner, ok := b.Inner().(*handlertest.Recorder)
	if !ok || c.count() != 1 || inner != c.built[0] {
		t.Fatalf("inner handler was not resolved from its definition")
	}
	if inner.Level() != core.ErrorLevel {
		t.Errorf("inner level = %v, want ERROR", inner.Level())
	}

	l.Error("boom")
	if len(inner.Messages()) != 0 {
		t.Fatal("buffer forwarded before flushing")
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := inner.Messages(); len(got) != 1 || got[0] != "boom" {
		t.Errorf("inner saw %v, want [boom]", got)
	}
}

func TestGetLogger_NestedHandlerCycle(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "self reference",
			src: `
channels:
  default:
    handlers: [a]
handlers:
  a:
    type: buffer
    handler: a
`,
		},
		{
			name: "two handler loop",
			src: `
channels:
  default:
    handlers: [a]
handlers:
  a:
    type: group
    handlers: [rec, b]
  b:
    type: buffer
    handler: a
  rec:
    class: test.Recorder
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, c := newFactory(t, tt.src)
			_, err := f.GetLogger("")
			if !errors.Is(err, ErrCyclicInheritance) {
				t.Fatalf("err = %v, want ErrCyclicInheritance", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err is %T, want *ConfigError", err)
			}
			if ce.Channel != "default" {
				t.Errorf("Channel = %q, want default", ce.Channel)
			}
			if !strings.Contains(ce.Msg, "handlers - a refers back to itself") {
				t.Errorf("Msg = %q, want it to name handler a", ce.Msg)
			}
			for i, r := range c.built {
				if r.Closed() != 1 {
					t.Errorf("recorder %d closed %d times, want 1", i, r.Closed())
				}
			}
		})
	}
}

func TestGetLogger_RepeatedSiblingIsNotACycle(t *testing.T) {
	f, c := newFactory(t, `
channels:
  default:
    handlers: [pair]
handlers:
  pair:
    type: group
    handlers: [rec, rec]
  rec:
    class: test.Recorder
`)

	mustLogger(t, f, "")
	if c.count() != 2 {
		t.Errorf("constructions = %d, want 2", c.count())
	}
}

func TestGetLogger_BindingStopsAtUnresolvableParam(t *testing.T) {
	var got []registry.Args
	strict := registry.Target{
		Name: "test.Strict",
		Params: []registry.Param{
			registry.Required("a"),
			registry.Optional("b", "x"),
		},
		New: func(args registry.Args) (interface{}, error) {
			got = append(got, args)
			return handlertest.NewRecorder(), nil
		},
	}
	f, _ := newFactory(t, `
channels:
  default:
    handlers:
      - class: test.Strict
        b: set
`, WithTarget(strict))

	mustLogger(t, f, "")
	if len(got) != 1 {
		t.Fatalf("constructions = %d, want 1", len(got))
	}
	if got[0].Len() != 0 {
		t.Errorf("Len() = %d, want 0", got[0].Len())
	}
	if v, ok := got[0].Value("b"); ok {
		t.Errorf("b bound to %v after a was left unresolved", v)
	}
}

func TestGetLogger_NamedRefsAreTemplates(t *testing.T) {
	f, c := newFactory(t, `
channels:
  default:
    handlers: [rec]
  one:
    handlers: [rec]
  two:
    handlers: [rec]
  child:
    extends: one
handlers:
  rec:
    class: test.Recorder
`)

	one := mustLogger(t, f, "one")
	two := mustLogger(t, f, "two")
	if one.Handlers()[0] == two.Handlers()[0] {
		t.Error("channels naming the same handler should get independent instances")
	}
	child := mustLogger(t, f, "child")
	if child.Handlers()[0] != one.Handlers()[0] {
		t.Error("inherited handlers should be shared with the parent")
	}
	if c.count() != 2 {
		t.Errorf("constructions = %d, want 2", c.count())
	}
}

func TestGetLogger_ExplicitArguments(t *testing.T) {
	f, c := newFactory(t, `
channels:
  default:
    handlers:
      - class: test.Recorder
        arguments: [listed, error]
      - class: test.Recorder
        label: ignored
        arguments:
          label: mapped
`)

	l := mustLogger(t, f, "")
	if len(l.Handlers()) != 2 {
		t.Fatalf("got %d handlers, want 2", len(l.Handlers()))
	}

	listed := c.args[0]
	if listed.Len() != 2 {
		t.Errorf("list arguments: Len() = %d, want 2", listed.Len())
	}
	if got, _ := listed.String("label", ""); got != "listed" {
		t.Errorf("list arguments: label = %q, want listed", got)
	}
	if c.built[0].Level() != core.DebugLevel {
		// The setter level comes from the definition, not the list.
		t.Errorf("list arguments: level = %v, want DEBUG", c.built[0].Level())
	}

	mapped := c.args[1]
	if got, _ := mapped.String("label", ""); got != "mapped" {
		t.Errorf("mapping arguments: label = %q, want mapped", got)
	}
	if got, _ := mapped.Level("level", core.InfoLevel); got != core.DebugLevel {
		t.Errorf("mapping arguments: level = %v, want the declared default", got)
	}
}

func TestGetLogger_ErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "missing target",
			src: `
channels:
  default:
    handlers:
      - level: info
`,
			want: ErrMissingTarget,
		},
		{
			name: "undefined handler",
			src: `
channels:
  default:
    handlers: [nowhere]
`,
			want: ErrUndefinedReference,
		},
		{
			name: "undefined processor",
			src: `
channels:
  default:
    processors: [nowhere]
`,
			want: ErrUndefinedReference,
		},
		{
			name: "unknown type",
			src: `
channels:
  default:
    handlers:
      - type: carrier_pigeon
`,
			want: ErrUndefinedReference,
		},
		{
			name: "constructor failure",
			src: `
channels:
  default:
    handlers:
      - type: console
        output: printer
`,
			want: ErrComponentConstruction,
		},
		{
			name: "bad level",
			src: `
channels:
  default:
    handlers:
      - class: nlog.NullHandler
        level: loud
`,
			want: ErrComponentConstruction,
		},
		{
			name: "level ordinal out of range",
			src: `
channels:
  default:
    handlers:
      - class: nlog.NullHandler
        level: 258
`,
			want: ErrComponentConstruction,
		},
		{
			name: "processor used as handler",
			src: `
channels:
  default:
    handlers:
      - class: nlog.HostnameProcessor
`,
			want: ErrComponentConstruction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newFactory(t, tt.src)
			_, err := f.GetLogger("")
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err is %T, want *ConfigError", err)
			}
			if ce.Channel != "default" {
				t.Errorf("Channel = %q, want default", ce.Channel)
			}
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	f, _ := newFactory(t, `
channels:
  default:
    handlers: [ghost]
`)

	_, err := f.GetLogger("")
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "default: handlers - ghost was referred to in the configuration but was not defined config:") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "ghost") || !strings.HasSuffix(msg, f.Document().Dump()) {
		t.Errorf("message should end with the document dump: %s", msg)
	}
}

func TestConfigError_KeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	f, _ := newFactory(t, `
channels:
  default:
    handlers:
      - class: test.Broken
`, WithTarget(registry.Target{
		Name: "test.Broken",
		New: func(registry.Args) (interface{}, error) {
			return nil, cause
		},
	}))

	_, err := f.GetLogger("")
	if !errors.Is(err, cause) || !errors.Is(err, ErrComponentConstruction) {
		t.Fatalf("err = %v, want both the kind and the cause", err)
	}
}

func TestGetLogger_FailureClosesNestedHandlers(t *testing.T) {
	f, c := newFactory(t, `
channels:
  default:
    handlers:
      - rec
      - type: buffer
        handler: rec
        bufferLimit: oops
handlers:
  rec:
    class: test.Recorder
`)

	if _, err := f.GetLogger(""); !errors.Is(err, ErrComponentConstruction) {
		t.Fatalf("err = %v, want ErrComponentConstruction", err)
	}
	if c.count() != 2 {
		t.Fatalf("constructions = %d, want 2", c.count())
	}
	for i, r := range c.built {
		if r.Closed() != 1 {
			t.Errorf("recorder %d closed %d times, want 1", i, r.Closed())
		}
	}
}

func TestGetLogger_Microseconds(t *testing.T) {
	f, _ := newFactory(t, `
channels:
  default:
    handlers: [rec]
  coarse:
    use_microseconds: false
handlers:
  rec:
    class: test.Recorder
`)

	if !mustLogger(t, f, "").UsesMicroseconds() {
		t.Error("default channel should keep microseconds")
	}
	if mustLogger(t, f, "coarse").UsesMicroseconds() {
		t.Error("use_microseconds: false was not applied")
	}
}

func TestGetLogger_RegisterErrorHandler(t *testing.T) {
	var sunk []string
	f, _ := newFactory(t, `
channels:
  default:
    handlers: [rec]
  errors:
    register_error_handler: true
  quiet: {}
handlers:
  rec:
    class: test.Recorder
`, WithErrorSink(func(l *logger.Logger) { sunk = append(sunk, l.Name()) }))

	mustLogger(t, f, "errors")
	mustLogger(t, f, "quiet")
	mustLogger(t, f, "errors")
	if strings.Join(sunk, ",") != "errors" {
		t.Errorf("error sink saw %v, want [errors]", sunk)
	}
}

func TestGetLogger_Processors(t *testing.T) {
	f, c := newFactory(t, `
channels:
  default:
    handlers: [rec]
    processors:
      - uid
      - class: nlog.TagProcessor
        tags: [web]
processors:
  uid:
    class: nlog.UidProcessor
    length: 12
handlers:
  rec:
    class: test.Recorder
`)

	l := mustLogger(t, f, "")
	if len(l.Processors()) != 2 {
		t.Fatalf("got %d processors, want 2", len(l.Processors()))
	}
	l.Info("tagged")

	fields := c.built[0].Entries()[0].Fields
	uid, ok := core.FindField(fields, "uid")
	if !ok || len(uid.StringValue()) != 12 {
		t.Errorf("uid field = %+v, want 12 hex characters", uid)
	}
	if _, ok := core.FindField(fields, "tags"); !ok {
		t.Error("tags field missing")
	}
}

func TestClose(t *testing.T) {
	f, c := newFactory(t, `
channels:
  default:
    handlers: [rec]
  child: {}
handlers:
  rec:
    class: test.Recorder
`)

	first := mustLogger(t, f, "child")
	mustLogger(t, f, "default")
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if c.built[0].Closed() != 1 {
		t.Errorf("shared handler closed %d times, want 1", c.built[0].Closed())
	}

	if mustLogger(t, f, "child") == first {
		t.Error("Close should forget built channels")
	}
}

func TestNewFromFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := NewFromFiles(filepath.Join(dir, "nlog.yaml"), filepath.Join(dir, "nlog.dist.yaml"))
	if !errors.Is(err, ErrConfigLoad) {
		t.Fatalf("err = %v, want ErrConfigLoad", err)
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("err is %T, want *ConfigError", err)
	}

	fallback := filepath.Join(dir, "nlog.dist.yaml")
	if err := os.WriteFile(fallback, []byte("channels:\n  default: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := NewFromFiles(filepath.Join(dir, "nlog.yaml"), fallback)
	if err != nil {
		t.Fatalf("NewFromFiles: %v", err)
	}
	if _, err := f.GetLogger(""); err != nil {
		t.Errorf("GetLogger: %v", err)
	}
}

func TestChannels(t *testing.T) {
	f, _ := newFactory(t, `
channels:
  default: {}
  web: {}
  api: {}
`)
	if got := strings.Join(f.Channels(), ","); got != "api,default,web" {
		t.Errorf("Channels() = %s", got)
	}
}

func TestConventionTarget(t *testing.T) {
	tests := map[string]string{
		"stream":          "nlog.StreamHandler",
		"rotating_file":   "nlog.RotatingFileHandler",
		"fingers_crossed": "nlog.FingersCrossedHandler",
		"fingers-crossed": "nlog.FingersCrossedHandler",
		"couchdb":         "nlog.CouchdbHandler",
		"sql":             "nlog.SqlHandler",
	}
	for typ, want := range tests {
		if got := conventionTarget(typ); got != want {
			t.Errorf("conventionTarget(%q) = %q, want %q", typ, got, want)
		}
	}

	// Every builtin handler type resolves through the convention.
	r := registry.New(Builtins()...)
	for _, typ := range []string{"stream", "rotating_file", "console", "buffer", "fingers_crossed", "group", "async", "null", "couchdb", "sql", "zap", "zerolog", "logrus"} {
		if _, ok := r.Lookup(conventionTarget(typ)); !ok {
			t.Errorf("type %q has no builtin target", typ)
		}
	}
}
