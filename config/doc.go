// Package config loads the channel configuration document.
//
// A document has three sections: channels, handlers and processors, each
// a mapping from name to definition. YAML and JSON are decoded with
// gopkg.in/yaml.v3, TOML with go-toml. Documents are read-only once
// loaded; Lookup hands out copies.
package config
