package bridgehandler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// openOutput returns a writer for stdout, stderr or an appended file.
// The closer is nil for the process streams.
func openOutput(name string) (io.Writer, io.Closer, error) {
	switch name {
	case "", "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", name, err)
	}
	return f, f, nil
}
