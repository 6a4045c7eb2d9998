package sloghandler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/nlogconf/core"
)

// Sink receives the converted entries. Both handler.Handler and
// *logger.Logger satisfy it.
type Sink interface {
	Handle(entry *core.Entry) error
}

// Handler is an adapter that implements slog.Handler on top of a Sink.
type Handler struct {
	sink  Sink
	level core.Level
	attrs []core.Field
	group string
}

// New creates a new slog.Handler adapter wrapping the given sink.
func New(sink Sink, level core.Level) *Handler {
	return &Handler{
		sink:  sink,
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return LevelFromSlog(level) >= s.level
}

// Handle converts a slog.Record to a core.Entry and passes it to the sink.
func (s *Handler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	defer core.PutEntry(entry)

	entry.Time = record.Time
	entry.Level = LevelFromSlog(record.Level)
	entry.Message = record.Message

	if len(s.attrs) > 0 {
		entry.Fields = append(entry.Fields, s.attrs...)
	}
	record.Attrs(func(a slog.Attr) bool {
		entry.Fields = appendAttr(entry.Fields, s.group, a)
		return true
	})

	return s.sink.Handle(entry)
}

// WithAttrs returns a new Handler with additional attributes.
func (s *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, s.group, a)
	}
	return &Handler{
		sink:  s.sink,
		level: s.level,
		attrs: newAttrs,
		group: s.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (s *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &Handler{
		sink:  s.sink,
		level: s.level,
		attrs: s.attrs,
		group: newGroup,
	}
}

// LevelFromSlog converts a slog.Level to a core.Level.
func LevelFromSlog(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr converts a to fields, flattening groups into dotted keys.
func appendAttr(dst []core.Field, group string, a slog.Attr) []core.Field {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindString:
		return append(dst, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(dst, core.Field{Key: key, Type: core.Int64Type, Int64: int64(a.Value.Uint64())})
	case slog.KindFloat64:
		return append(dst, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(dst, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(dst, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(dst, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		prefix := key
		if a.Key == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, prefix, ga)
		}
		return dst
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(dst, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(dst, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}
