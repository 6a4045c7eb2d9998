package formatter

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/philipp01105/nlogconf/core"
)

// JSONFormatter writes one JSON document per record:
//
//	{"datetime":"...","channel":"app","level":"INFO","message":"...","context":{...}}
//
// context is always present so document stores see a stable shape.
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSONFormatter{Config: cfg}
}

func (f *JSONFormatter) Format(entry *core.Entry) ([]byte, error) {
	return render(entry, f.FormatEntry), nil
}

func (f *JSONFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	return renderTo(entry, w, f.FormatEntry)
}

// FormatEntry appends the record and a trailing newline to buf.
func (f *JSONFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	buf.WriteString(`{"datetime":"`)
	buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteString(`","channel":`)
	appendQuoted(buf, entry.Channel)
	buf.WriteString(`,"level":"`)
	buf.WriteString(entry.Level.String())
	buf.WriteString(`","message":`)
	appendQuoted(buf, entry.Message)
	buf.WriteString(`,"context":`)
	appendContext(buf, entry.Fields)

	if f.IncludeCaller && entry.Caller.Defined {
		buf.WriteString(`,"caller":{"file":`)
		appendQuoted(buf, entry.Caller.ShortFile)
		buf.WriteString(`,"line":`)
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
		if entry.Caller.Function != "" {
			buf.WriteString(`,"function":`)
			appendQuoted(buf, entry.Caller.Function)
		}
		buf.WriteByte('}')
	}

	buf.WriteString("}\n")
}
