package filehandler

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"github.com/philipp01105/nlogconf/core"
	"github.com/philipp01105/nlogconf/formatter"
	"github.com/philipp01105/nlogconf/handler"
)

// DefaultFilePermission is used when a handler is not given one.
const DefaultFilePermission os.FileMode = 0o644

// fileBase contains shared fields and methods for file handlers.
type fileBase struct {
	handler.Base
	mu              sync.Mutex
	path            string
	out             io.Writer
	file            *os.File // nil for stdout/stderr
	perm            os.FileMode
	useLocking      bool
	lock            *flock.Flock
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	buf             bytes.Buffer
	stats           *handler.Stats
	closed          bool
}

func (b *fileBase) init(cfg FileConfig) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.FilePermission == 0 {
		cfg.FilePermission = DefaultFilePermission
	}
	b.Base = handler.NewBase(cfg.Level, true)
	b.perm = cfg.FilePermission
	b.useLocking = cfg.UseLocking
	b.formatter = cfg.Formatter
	b.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	b.stats = handler.NewStats()
	b.buf.Grow(256)
}

// open opens path for appending, creating parent directories. The
// special names "stdout" and "stderr" select the process streams.
func (b *fileBase) open(path string) error {
	switch path {
	case "stdout", "php://stdout":
		b.path, b.out, b.file, b.lock = path, os.Stdout, nil, nil
		return nil
	case "stderr", "php://stderr":
		b.path, b.out, b.file, b.lock = path, os.Stderr, nil, nil
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, b.perm)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	b.path, b.out, b.file = path, file, file
	if b.useLocking {
		b.lock = flock.New(path + ".lock")
	}
	return nil
}

// write formats entry and writes it; callers hold b.mu.
func (b *fileBase) write(entry *core.Entry) error {
	if b.closed {
		return fmt.Errorf("write to closed handler %s", b.path)
	}

	b.buf.Reset()
	if b.bufferFormatter != nil {
		b.bufferFormatter.FormatEntry(entry, &b.buf)
	} else {
		data, err := b.formatter.Format(entry)
		if err != nil {
			return err
		}
		b.buf.Write(data)
	}

	if b.lock != nil {
		if err := b.lock.Lock(); err != nil {
			return fmt.Errorf("lock %s: %w", b.path, err)
		}
		defer b.lock.Unlock()
	}

	if _, err := b.out.Write(b.buf.Bytes()); err != nil {
		return err
	}
	b.stats.IncrementProcessed()
	return nil
}

// closeFile syncs and closes the underlying file, if any; callers hold b.mu.
func (b *fileBase) closeFile() error {
	if b.file == nil {
		return nil
	}
	file := b.file
	b.file = nil
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Path returns the path currently written to.
func (b *fileBase) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.path
}

// Stats returns a snapshot of the current statistics
func (b *fileBase) Stats() handler.Snapshot {
	return b.stats.GetSnapshot()
}

// FileConfig holds configuration shared by the file handlers.
type FileConfig struct {
	// Filename is the path to the log file, or stdout/stderr for streams
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Level is the minimum level written (default: DebugLevel)
	Level core.Level
	// FilePermission for newly created files (default: 0644)
	FilePermission os.FileMode
	// UseLocking takes an advisory lock around each write, for files
	// shared between processes
	UseLocking bool
}

// StreamHandler appends formatted entries to a single file or stream.
type StreamHandler struct {
	fileBase
}

// NewStreamHandler opens cfg.Filename and returns a handler writing to it.
func NewStreamHandler(cfg FileConfig) (*StreamHandler, error) {
	if strings.TrimSpace(cfg.Filename) == "" {
		return nil, fmt.Errorf("filename is required")
	}
	h := &StreamHandler{}
	h.init(cfg)
	if err := h.open(cfg.Filename); err != nil {
		return nil, err
	}
	return h, nil
}

// Handle writes the entry.
func (h *StreamHandler) Handle(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.write(entry)
}

// Close closes the underlying file. Closing twice is a no-op.
func (h *StreamHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	return h.closeFile()
}
