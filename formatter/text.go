package formatter

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/philipp01105/nlogconf/core"
)

// TextFormatter writes one line per record:
//
//	[2026-01-15T12:00:00Z] app.INFO: message {"key":"value"}
//
// The context object is left out when the record has no fields.
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a line formatter.
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	return &TextFormatter{Config: cfg}
}

func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	return render(entry, f.FormatEntry), nil
}

func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	return renderTo(entry, w, f.FormatEntry)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// FormatEntry appends the record and a trailing newline to buf.
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	buf.WriteByte('[')
	buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteString("] ")

	if entry.Channel != "" {
		buf.WriteString(entry.Channel)
		buf.WriteByte('.')
	}
	buf.WriteString(entry.Level.String())
	buf.WriteString(": ")

	if f.AllowInlineLineBreaks || strings.IndexAny(entry.Message, "\r\n") < 0 {
		buf.WriteString(entry.Message)
	} else {
		lineBreaks.WriteString(buf, entry.Message)
	}

	if f.IncludeCaller && entry.Caller.Defined {
		buf.WriteString(" (")
		buf.WriteString(entry.Caller.ShortFile)
		buf.WriteByte(':')
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
		buf.WriteByte(')')
	}

	if len(entry.Fields) > 0 {
		buf.WriteByte(' ')
		appendContext(buf, entry.Fields)
	}

	buf.WriteByte('\n')
}
