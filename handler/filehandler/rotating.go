package filehandler

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/philipp01105/nlogconf/core"
)

const (
	// DefaultFilenameFormat places the date after the base name.
	DefaultFilenameFormat = "{filename}-{date}"
	// DefaultDateFormat rotates daily.
	DefaultDateFormat = "2006-01-02"
)

// RotatingFileHandler writes to a dated file derived from a base
// filename, switching files when the formatted date changes and keeping
// at most MaxFiles dated files.
type RotatingFileHandler struct {
	fileBase
	filename       string
	maxFiles       int
	filenameFormat string
	dateFormat     string
	now            func() time.Time
}

// RotatingConfig holds configuration for RotatingFileHandler.
type RotatingConfig struct {
	FileConfig
	// MaxFiles is the number of dated files to keep (0 = keep all)
	MaxFiles int
}

// NewRotatingFileHandler creates a rotating handler. The dated file is
// opened on the first write so that SetFilenameFormat can still change
// the naming scheme after construction.
func NewRotatingFileHandler(cfg RotatingConfig) (*RotatingFileHandler, error) {
	if strings.TrimSpace(cfg.Filename) == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if cfg.MaxFiles < 0 {
		return nil, fmt.Errorf("maxFiles must not be negative")
	}
	h := &RotatingFileHandler{
		filename:       cfg.Filename,
		maxFiles:       cfg.MaxFiles,
		filenameFormat: DefaultFilenameFormat,
		dateFormat:     DefaultDateFormat,
		now:            time.Now,
	}
	h.init(cfg.FileConfig)
	return h, nil
}

// SetFilenameFormat changes the dated file naming. filenameFormat must
// contain {date} and may contain {filename}; dateFormat is a Go time
// layout containing at least the year. Empty values keep the current
// setting.
func (h *RotatingFileHandler) SetFilenameFormat(filenameFormat, dateFormat string) error {
	if filenameFormat == "" {
		filenameFormat = h.filenameFormat
	}
	if dateFormat == "" {
		dateFormat = h.dateFormat
	}
	if !strings.Contains(filenameFormat, "{date}") {
		return fmt.Errorf("filename format %q must contain {date}", filenameFormat)
	}
	if !strings.Contains(dateFormat, "2006") {
		return fmt.Errorf("date format %q must contain the year (2006)", dateFormat)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.filenameFormat = filenameFormat
	h.dateFormat = dateFormat
	return h.closeFile()
}

// timedFilename returns the dated path for t.
func (h *RotatingFileHandler) timedFilename(t time.Time) string {
	return h.pathFor(t.Format(h.dateFormat))
}

// pathFor substitutes date into the filename format, keeping the
// directory and extension of the base filename.
func (h *RotatingFileHandler) pathFor(date string) string {
	dir := filepath.Dir(h.filename)
	ext := filepath.Ext(h.filename)
	base := strings.TrimSuffix(filepath.Base(h.filename), ext)

	name := strings.NewReplacer("{filename}", base, "{date}", date).Replace(h.filenameFormat)
	return filepath.Join(dir, name+ext)
}

// Handle writes the entry, rotating first when the date has changed.
func (h *RotatingFileHandler) Handle(entry *core.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.rotateIfNeeded(); err != nil {
		return err
	}
	return h.write(entry)
}

// rotateIfNeeded opens the file for the current date; callers hold h.mu.
func (h *RotatingFileHandler) rotateIfNeeded() error {
	if h.closed {
		return fmt.Errorf("write to closed handler %s", h.filename)
	}
	want := h.timedFilename(h.now())
	if h.file != nil && h.path == want {
		return nil
	}
	if err := h.closeFile(); err != nil {
		return err
	}
	if err := h.open(want); err != nil {
		return err
	}
	if h.maxFiles > 0 {
		h.cleanupOldFiles()
	}
	return nil
}

// cleanupOldFiles removes the oldest dated files beyond maxFiles. Dated
// names sort chronologically for layouts ordered year first.
func (h *RotatingFileHandler) cleanupOldFiles() {
	matches, err := filepath.Glob(h.pathFor("*"))
	if err != nil {
		return
	}
	if len(matches) <= h.maxFiles {
		return
	}
	sort.Strings(matches)
	for _, file := range matches[:len(matches)-h.maxFiles] {
		if file == h.path {
			continue
		}
		if err := os.Remove(file); err != nil {
			return
		}
	}
}

// Close closes the current file. Closing twice is a no-op.
func (h *RotatingFileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	return h.closeFile()
}
