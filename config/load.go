package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrLoad reports a document that could not be found or parsed.
var ErrLoad = errors.New("configuration could not be loaded")

// Format is a document encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	TOML Format = "toml"
)

// FormatFromPath picks the format from the file extension. Unknown
// extensions are read as YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML
	case ".json":
		return JSON
	default:
		return YAML
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	return parse("", data, format)
}

func parse(source string, data []byte, format Format) (*Document, error) {
	raw := map[string]interface{}{}
	var err error
	switch format {
	case TOML:
		err = toml.NewDecoder(bytes.NewReader(data)).Decode(&raw)
	case YAML, JSON:
		// JSON documents are valid YAML
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrLoad, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrLoad, describe(source), err)
	}
	doc, err := newDocument(source, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, describe(source), err)
	}
	return doc, nil
}

func describe(source string) string {
	if source == "" {
		return "document"
	}
	return source
}

// LoadFile reads and parses one file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return parse(path, data, FormatFromPath(path))
}

// Load reads primary when it exists and fallback otherwise. A present
// but unparsable primary is an error; it never falls through. An empty
// fallback disables the fallback.
func Load(primary, fallback string) (*Document, error) {
	path := primary
	if _, err := os.Stat(primary); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		if fallback == "" {
			return nil, fmt.Errorf("%w: %s does not exist", ErrLoad, primary)
		}
		if _, err := os.Stat(fallback); err != nil {
			return nil, fmt.Errorf("%w: neither %s nor %s exists", ErrLoad, primary, fallback)
		}
		path = fallback
	}
	return LoadFile(path)
}
