package bridgehandler

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/handler"
)

// LogrusHandler forwards entries to a logrus logger. Panic entries are
// written at fatal level since logrus panics on its panic level; neither
// terminates the process.
type LogrusHandler struct {
	handler.Base
	logger *logrus.Logger
	closer io.Closer
}

// NewLogrusHandler writes to w using the named format, "text" or "json".
func NewLogrusHandler(w io.Writer, format string) (*LogrusHandler, error) {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.TraceLevel)
	switch format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown logrus format %q", format)
	}
	return &LogrusHandler{
		Base:   handler.NewBase(core.DebugLevel, true),
		logger: l,
	}, nil
}

// LogrusLevel maps a level to its logrus equivalent.
func LogrusLevel(l core.Level) logrus.Level {
	switch l {
	case core.DebugLevel:
		return logrus.DebugLevel
	case core.InfoLevel:
		return logrus.InfoLevel
	case core.WarnLevel:
		return logrus.WarnLevel
	case core.ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.FatalLevel
	}
}

// Handle writes entry as one logrus entry.
func (h *LogrusHandler) Handle(entry *core.Entry) error {
	fields := make(logrus.Fields, len(entry.Fields)+1)
	if entry.Channel != "" {
		fields["channel"] = entry.Channel
	}
	for _, f := range entry.Fields {
		fields[f.Key] = f.Value()
	}
	logrus.NewEntry(h.logger).
		WithTime(entry.Time).
		WithFields(fields).
		Log(LogrusLevel(entry.Level), entry.Message)
	return nil
}

// Close closes the output file, if the handler opened one.
func (h *LogrusHandler) Close() error {
	if h.closer == nil {
		return nil
	}
	c := h.closer
	h.closer = nil
	return c.Close()
}
