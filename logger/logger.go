package logger

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
	"github.com/philipp01105/nlogconf/handler/sloghandler"
	"github.com/philipp01105/nlogconf/processor"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// Logger is the main logging interface (immutable). Every entry carries
// the logger's name as its channel, passes through the processors in
// order and is dispatched down the handler stack.
type Logger struct {
	name          string
	stack         *handler.Stack
	processors    []processor.Processor
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	clock         clock
}

// clock selects the timestamp source.
type clock uint8

const (
	preciseClock clock = iota
	coarseClock
	secondsClock
)

func (c clock) now() time.Time {
	switch c {
	case coarseClock:
		return core.CoarseNow()
	case secondsClock:
		return core.SecondsNow()
	default:
		return time.Now()
	}
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	name          string
	handlers      []handler.Handler
	processors    []processor.Processor
	level         core.Level
	fields        []core.Field
	includeCaller bool
	callerSkip    int
	clock         clock
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel, // Default level
		callerSkip: 3,              // Default skip for getCaller
	}
}

// WithName sets the channel name stamped on every entry.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithHandler replaces the handler stack with h.
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handlers = []handler.Handler{h}
	return b
}

// AddHandler appends h to the handler stack. Entries reach handlers in
// the order they were added.
func (b *Builder) AddHandler(h handler.Handler) *Builder {
	b.handlers = append(b.handlers, h)
	return b
}

// AddProcessor appends p to the processor chain.
func (b *Builder) AddProcessor(p processor.Processor) *Builder {
	b.processors = append(b.processors, p)
	return b
}

// WithLevel sets the log level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCoarseClock stamps entries from the shared millisecond clock
// instead of calling time.Now for each entry.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	if enabled {
		core.StartCoarseClock()
		b.clock = coarseClock
	} else if b.clock == coarseClock {
		b.clock = preciseClock
	}
	return b
}

// WithMicroseconds selects sub-second timestamps (the default). When
// disabled, timestamps are truncated to whole seconds.
func (b *Builder) WithMicroseconds(enabled bool) *Builder {
	if !enabled {
		b.clock = secondsClock
	} else if b.clock == secondsClock {
		b.clock = preciseClock
	}
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	fields := make([]core.Field, len(b.fields))
	copy(fields, b.fields)
	processors := make([]processor.Processor, len(b.processors))
	copy(processors, b.processors)

	return &Logger{
		name:          b.name,
		stack:         handler.NewStack(b.handlers...),
		processors:    processors,
		level:         b.level,
		fields:        fields,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		clock:         b.clock,
	}
}

// Derive returns a builder preloaded with this logger's configuration
// under a new name. The derived logger shares the handler and processor
// instances but owns its lists: additions to the builder never reach l.
func (l *Logger) Derive(name string) *Builder {
	fields := make([]core.Field, len(l.fields))
	copy(fields, l.fields)
	processors := make([]processor.Processor, len(l.processors))
	copy(processors, l.processors)

	return &Builder{
		name:          name,
		handlers:      l.stack.Handlers(),
		processors:    processors,
		level:         l.level,
		fields:        fields,
		includeCaller: l.includeCaller,
		callerSkip:    l.callerSkip,
		clock:         l.clock,
	}
}

// Name returns the channel name.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the minimum level logged.
func (l *Logger) Level() core.Level {
	return l.level
}

// Handlers returns the handler stack in dispatch order.
func (l *Logger) Handlers() []handler.Handler {
	return l.stack.Handlers()
}

// Processors returns the processor chain in order.
func (l *Logger) Processors() []processor.Processor {
	out := make([]processor.Processor, len(l.processors))
	copy(out, l.processors)
	return out
}

// UsesMicroseconds reports whether timestamps keep sub-second precision.
func (l *Logger) UsesMicroseconds() bool {
	return l.clock != secondsClock
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &Logger{
		name:          l.name,
		stack:         l.stack,
		processors:    l.processors,
		level:         l.level,
		fields:        newFields,
		includeCaller: l.includeCaller,
		callerSkip:    l.callerSkip,
		clock:         l.clock,
	}
}

// Handle runs an externally built entry through the processors and
// handlers, stamping the channel when it is unset. The entry remains
// owned by the caller.
func (l *Logger) Handle(entry *core.Entry) error {
	if entry.Level < l.level {
		return nil
	}
	if entry.Channel == "" {
		entry.Channel = l.name
	}
	if entry.Time.IsZero() {
		entry.Time = l.clock.now()
	} else if l.clock == secondsClock {
		entry.Time = entry.Time.Truncate(time.Second)
	}
	return l.dispatch(entry)
}

func (l *Logger) dispatch(entry *core.Entry) error {
	for _, p := range l.processors {
		p.Process(entry)
	}
	return l.stack.Handle(entry)
}

// Slog returns a log/slog logger writing through l.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(sloghandler.New(l, l.level))
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	// Level check optimization - exit early BEFORE any allocations
	if level < l.level {
		return
	}

	l.log(level, msg, fields)
}

// log is the internal logging method that takes a pre-allocated slice
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	// Handler check - exit if no handler (avoid any work)
	if l.stack.Len() == 0 {
		return
	}

	// Get entry from pool AFTER level check
	entry := core.GetEntry()
	entry.Time = l.clock.now()
	entry.Level = level
	entry.Channel = l.name
	entry.Message = msg

	// Add logger's default fields
	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}

	// Add provided fields
	if len(fields) > 0 {
		entry.Fields = append(entry.Fields, fields...)
	}

	if l.includeCaller {
		entry.Caller = core.GetCaller(l.callerSkip)
	}

	// Handlers never retain the entry, so it always goes back to the pool
	_ = l.dispatch(entry)
	core.PutEntry(entry)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Fatal logs a fatal message and exits the program with os.Exit(1)
func (l *Logger) Fatal(msg string, fields ...core.Field) {
	l.log(core.FatalLevel, msg, fields)
	osExit(1)
}

// Panic logs a panic message and panics
func (l *Logger) Panic(msg string, fields ...core.Field) {
	l.log(core.PanicLevel, msg, fields)
	panic(msg)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a fatal message with formatting and exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(core.FatalLevel, fmt.Sprintf(format, args...), nil)
	osExit(1)
}

// Panicf logs a panic message with formatting and panics
func (l *Logger) Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.log(core.PanicLevel, msg, nil)
	panic(msg)
}

// Close closes the logger's handlers. Handlers shared with derived
// loggers are closed for them too.
func (l *Logger) Close() error {
	return l.stack.Close()
}
