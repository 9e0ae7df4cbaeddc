package glyph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a flat token to glyph dictionary. The decoder is chosen by
// file extension: .json, .yaml, .yml or .toml.
func LoadFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sign list %s: %w", path, err)
	}

	entries, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("parsing sign list %s: %w", path, err)
	}
	return entries, nil
}

// Decode parses sign-list data in the format named by ext.
func Decode(ext string, data []byte) (map[string]string, error) {
	entries := make(map[string]string)

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
	case "toml":
		if err := toml.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return entries, nil
}

// OpenTable loads path into a new Table.
func OpenTable(path string, opts ...TableOption) (*Table, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewTable(entries, opts...), nil
}
