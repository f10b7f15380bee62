// Package document turns JSON, JSONC and YAML input into strict JSON so every
// loader can share one decoding path.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of an input document.
type Format int

const (
	JSON Format = iota // JSON, also accepting // and /* */ comments and trailing commas
	YAML               // YAML 1.2, single document
)

// FormatFor picks the format from a file extension. Unknown extensions are
// read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return YAML
	}
	return JSON
}

// ToJSON converts data to strict JSON.
func ToJSON(data []byte, f Format) ([]byte, error) {
	if f == YAML {
		return yamlToJSON(data)
	}
	return jsonc.ToJSON(data), nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty yaml document")
		}
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	out, err := json.Marshal(normalize(node))
	if err != nil {
		return nil, fmt.Errorf("converting yaml: %w", err)
	}
	return out, nil
}

// normalize converts YAML-decoded values (which may contain map[any]any)
// into JSON-like values recursively. Non-string keys are rendered with %v.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalize(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalize(t[i])
		}
		return arr
	default:
		return v
	}
}
