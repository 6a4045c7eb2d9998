package bridgehandler

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
)

// ZerologHandler forwards entries to a zerolog logger. Fatal and panic
// entries are written without terminating the process.
type ZerologHandler struct {
	handler.Base
	logger zerolog.Logger
	closer io.Closer
}

// NewZerologHandler writes JSON lines to w.
func NewZerologHandler(w io.Writer) *ZerologHandler {
	return &ZerologHandler{
		Base:   handler.NewBase(core.DebugLevel, true),
		logger: zerolog.New(w).Level(zerolog.TraceLevel),
	}
}

// ZerologLevel maps a level to its zerolog equivalent.
func ZerologLevel(l core.Level) zerolog.Level {
	switch l {
	case core.DebugLevel:
		return zerolog.DebugLevel
	case core.InfoLevel:
		return zerolog.InfoLevel
	case core.WarnLevel:
		return zerolog.WarnLevel
	case core.ErrorLevel:
		return zerolog.ErrorLevel
	case core.FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.PanicLevel
	}
}

// Handle writes entry as one zerolog event.
func (h *ZerologHandler) Handle(entry *core.Entry) error {
	ev := h.logger.WithLevel(ZerologLevel(entry.Level))
	if ev == nil {
		return nil
	}
	ev = ev.Time(zerolog.TimestampFieldName, entry.Time)
	if entry.Channel != "" {
		ev = ev.Str("channel", entry.Channel)
	}
	for _, f := range entry.Fields {
		switch f.Type {
		case core.StringType, core.ErrorType:
			ev = ev.Str(f.Key, f.Str)
		case core.IntType, core.Int64Type:
			ev = ev.Int64(f.Key, f.Int64)
		case core.Float64Type:
			ev = ev.Float64(f.Key, f.Float64)
		case core.BoolType:
			ev = ev.Bool(f.Key, f.Int64 == 1)
		default:
			ev = ev.Interface(f.Key, f.Value())
		}
	}
	ev.Msg(entry.Message)
	return nil
}

// Close closes the output file, if the handler opened one.
func (h *ZerologHandler) Close() error {
	if h.closer == nil {
		return nil
	}
	c := h.closer
	h.closer = nil
	return c.Close()
}
