package config

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Section names a top-level section of the document.
type Section string

const (
	Channels   Section = "channels"
	Handlers   Section = "handlers"
	Processors Section = "processors"
)

// Definition is one channel, handler or processor definition.
type Definition map[string]interface{}

// Has reports whether key is present, even with a null value.
func (d Definition) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns d[key] as a string.
func (d Definition) String(key string) (string, bool) {
	v, ok := d[key]
	if !ok || v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// Bool returns d[key] as a boolean, or def when absent.
func (d Definition) Bool(key string, def bool) (bool, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return def, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// List returns d[key] as a list. A missing or null key is an empty list.
func (d Definition) List(key string) ([]interface{}, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: expected a list, got %T", key, v)
	}
	return list, nil
}

// Document is a parsed, read-only configuration.
type Document struct {
	source   string
	raw      map[string]interface{}
	sections map[Section]map[string]Definition
}

// New builds a document from decoded data.
func New(raw map[string]interface{}) (*Document, error) {
	return newDocument("", raw)
}

func newDocument(source string, raw map[string]interface{}) (*Document, error) {
	if raw == nil {
		raw = map[string]interface{}{}
	}
	raw = normalize(raw).(map[string]interface{})

	d := &Document{
		source:   source,
		raw:      raw,
		sections: make(map[Section]map[string]Definition, 3),
	}
	for _, s := range []Section{Channels, Handlers, Processors} {
		v, ok := raw[string(s)]
		if !ok || v == nil {
			d.sections[s] = map[string]Definition{}
			continue
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("section %s: expected a mapping, got %T", s, v)
		}
		defs := make(map[string]Definition, len(m))
		for name, def := range m {
			switch def := def.(type) {
			case nil:
				defs[name] = Definition{}
			case map[string]interface{}:
				defs[name] = Definition(def)
			default:
				return nil, fmt.Errorf("%s.%s: expected a mapping, got %T", s, name, def)
			}
		}
		d.sections[s] = defs
	}
	return d, nil
}

// normalize converts nested maps to map[string]interface{} and slices to
// []interface{}, whatever decoder produced them.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[cast.ToString(k)] = normalize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

// Source returns the path the document was loaded from, if any.
func (d *Document) Source() string {
	return d.source
}

// Lookup returns a copy of the named definition.
func (d *Document) Lookup(section Section, name string) (Definition, bool) {
	def, ok := d.sections[section][name]
	if !ok {
		return nil, false
	}
	out := make(Definition, len(def))
	for k, v := range def {
		out[k] = v
	}
	return out, true
}

// Names returns the sorted names defined in section.
func (d *Document) Names(section Section) []string {
	defs := d.sections[section]
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Channels returns the sorted names of the declared channels.
func (d *Document) Channels() []string {
	return d.Names(Channels)
}

// Dump renders the whole document as YAML for error reports.
func (d *Document) Dump() string {
	out, err := yaml.Marshal(d.raw)
	if err != nil {
		return fmt.Sprintf("%v", d.raw)
	}
	return string(out)
}
