package registry

import (
	"sort"
	"strings"
)

// Param describes one constructor parameter.
type Param struct {
	Name       string
	Default    interface{}
	HasDefault bool
}

// Required declares a parameter without a default. Binding stops at the
// first required parameter the configuration does not supply.
func Required(name string) Param {
	return Param{Name: name}
}

// Optional declares a parameter with a default value.
func Optional(name string, def interface{}) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Constructor builds an instance from bound arguments.
type Constructor func(args Args) (interface{}, error)

// Target is a constructible type known to the registry.
type Target struct {
	Name   string
	Params []Param
	New    Constructor
}

// Param returns the declared parameter with the given name.
func (t Target) Param(name string) (Param, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Registry maps target identifiers to targets. Lookups ignore case.
// A Registry is not safe for concurrent registration; populate it
// before sharing it.
type Registry struct {
	targets map[string]Target
}

// New creates a registry holding the given targets.
func New(targets ...Target) *Registry {
	r := &Registry{targets: make(map[string]Target, len(targets))}
	for _, t := range targets {
		r.Register(t)
	}
	return r
}

// Register adds t, replacing any target with the same identifier.
func (r *Registry) Register(t Target) {
	r.targets[strings.ToLower(t.Name)] = t
}

// Lookup returns the target registered under name.
func (r *Registry) Lookup(name string) (Target, bool) {
	t, ok := r.targets[strings.ToLower(name)]
	return t, ok
}

// Targets returns every registered target sorted by identifier.
func (r *Registry) Targets() []Target {
	out := make([]Target, 0, len(r.targets))
	for _, t := range r.targets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
