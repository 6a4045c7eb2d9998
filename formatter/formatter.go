package formatter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/philipp01105/nlogconf/core"
)

// Formatter turns a record into bytes.
type Formatter interface {
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is implemented by formatters that can write a record
// straight to a writer.
type WriterFormatter interface {
	FormatTo(entry *core.Entry, w io.Writer) error
}

// BufferFormatter is implemented by formatters that can append a record
// to a caller-owned buffer. Handlers that keep their own buffer prefer it.
type BufferFormatter interface {
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds the options shared by the built-in formatters.
type Config struct {
	// IncludeCaller adds the call site when the record carries one.
	IncludeCaller bool
	// TimestampFormat is a Go layout for the record time. Empty selects
	// RFC3339 for text and RFC3339Nano for JSON.
	TimestampFormat string
	// AllowInlineLineBreaks keeps newlines in text messages. Otherwise
	// they are replaced by spaces so every record stays on one line.
	AllowInlineLineBreaks bool
}

const maxPooledBuffer = 64 * 1024

var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	bufferPool.Put(buf)
}

// render runs fn into a pooled buffer and returns a copy of the result.
func render(entry *core.Entry, fn func(*core.Entry, *bytes.Buffer)) []byte {
	buf := getBuffer()
	defer putBuffer(buf)
	fn(entry, buf)
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

// renderTo runs fn into a pooled buffer and writes the result to w.
func renderTo(entry *core.Entry, w io.Writer, fn func(*core.Entry, *bytes.Buffer)) error {
	buf := getBuffer()
	fn(entry, buf)
	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// ByName returns the formatter for a configuration name: "text" (or
// "line") and "json". An empty name selects text.
func ByName(name string, cfg Config) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "line":
		return NewTextFormatter(cfg), nil
	case "json":
		return NewJSONFormatter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown formatter %q", name)
	}
}
