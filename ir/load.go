package ir

import (
	"fmt"
	"os"

	"github.com/reoring/goconjure/internal/document"
)

// ParseYAML decodes a Conjure IR document written as YAML.
func ParseYAML(data []byte) (*Conjure, error) {
	js, err := document.ToJSON(data, document.YAML)
	if err != nil {
		return nil, err
	}
	return Parse(js)
}

// ParseJSONC decodes a Conjure IR document that may contain comments and
// trailing commas.
func ParseJSONC(data []byte) (*Conjure, error) {
	js, err := document.ToJSON(data, document.JSON)
	if err != nil {
		return nil, err
	}
	return Parse(js)
}

// Load reads an IR document from disk. Files ending in .yml or .yaml are
// read as YAML, everything else as JSON with comments allowed.
func Load(path string) (*Conjure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	js, err := document.ToJSON(data, document.FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c, err := Parse(js)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
