package consolehandler

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/formatter"
	"github.com/philipp01105/nlogconf/handler"
)

// ColorMode controls ANSI colouring of console output.
type ColorMode int

const (
	// ColorAuto colours output only when the writer is a terminal.
	ColorAuto ColorMode = iota
	// ColorNever disables colouring.
	ColorNever
	// ColorAlways colours output regardless of the writer.
	ColorAlways
)

// ParseColorMode converts "auto", "never"/"false" or "always"/"true".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "never", "false", "off":
		return ColorNever, nil
	case "always", "true", "on":
		return ColorAlways, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q", s)
	}
}

const colorReset = "\x1b[0m"

var levelColors = [...]string{
	core.DebugLevel: "\x1b[90m",
	core.InfoLevel:  "\x1b[36m",
	core.WarnLevel:  "\x1b[33m",
	core.ErrorLevel: "\x1b[31m",
	core.FatalLevel: "\x1b[1;31m",
	core.PanicLevel: "\x1b[1;31m",
}

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the handler to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// isTerminal reports whether w is a terminal, including cygwin ptys.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Level is the minimum level written (default: DebugLevel)
	Level core.Level
	// Color controls ANSI colouring (default: ColorAuto)
	Color ColorMode
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

// ConsoleHandler writes formatted entries to a console stream.
type ConsoleHandler struct {
	handler.Base
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	concurrentSafe  bool
	color           bool
	stats           *handler.Stats
	mu              sync.Mutex // protects syncBuf and serializes unsafe writers
	syncBuf         bytes.Buffer
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}

	h := &ConsoleHandler{
		Base:           handler.NewBase(cfg.Level, true),
		writer:         cfg.Writer,
		formatter:      cfg.Formatter,
		concurrentSafe: cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer),
		stats:          handler.NewStats(),
	}
	switch cfg.Color {
	case ColorAlways:
		h.color = true
	case ColorAuto:
		h.color = isTerminal(cfg.Writer)
	}

	// Cache BufferFormatter for the handler-owned buffer path
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if h.bufferFormatter != nil {
		h.syncBuf.Grow(256)
	}
	return h
}

// Handle formats and writes an entry.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if h.bufferFormatter != nil {
		h.mu.Lock()
		h.syncBuf.Reset()
		h.openColor(&h.syncBuf, entry.Level)
		h.bufferFormatter.FormatEntry(entry, &h.syncBuf)
		h.closeColor(&h.syncBuf)
		_, err := h.writer.Write(h.syncBuf.Bytes())
		h.mu.Unlock()
		if err == nil {
			h.stats.IncrementProcessed()
		}
		return err
	}

	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	if h.color {
		var buf bytes.Buffer
		h.openColor(&buf, entry.Level)
		buf.Write(data)
		h.closeColor(&buf)
		data = buf.Bytes()
	}

	if h.concurrentSafe {
		_, err = h.writer.Write(data)
	} else {
		h.mu.Lock()
		_, err = h.writer.Write(data)
		h.mu.Unlock()
	}
	if err == nil {
		h.stats.IncrementProcessed()
	}
	return err
}

func (h *ConsoleHandler) openColor(buf *bytes.Buffer, level core.Level) {
	if h.color && level.Valid() {
		buf.WriteString(levelColors[level])
	}
}

// closeColor resets the colour before the trailing newline so the
// terminal prompt is not tinted.
func (h *ConsoleHandler) closeColor(buf *bytes.Buffer) {
	if !h.color {
		return
	}
	b := buf.Bytes()
	if n := len(b); n > 0 && b[n-1] == '\n' {
		buf.Truncate(n - 1)
		buf.WriteString(colorReset)
		buf.WriteByte('\n')
		return
	}
	buf.WriteString(colorReset)
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close is a no-op; the console streams belong to the process.
func (h *ConsoleHandler) Close() error {
	return nil
}
