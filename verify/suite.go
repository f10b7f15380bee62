// Package verify resolves Conjure verification test cases against an IR
// document and checks what a client or server under test sent.
//
// A suite lists, per endpoint, JSON bodies that must decode (positive) or
// must be rejected (negative), and JSON values for single path, query and
// header parameters. Resolve decodes every case up front; a negative case
// that decodes is reported as a BadTestCaseError.
package verify

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/reoring/goconjure/internal/document"
)

// Suite is a test-case document.
type Suite struct {
	Client ClientCases `json:"client"`
}

// ClientCases are the cases a verification server replays to clients.
type ClientCases struct {
	AutoDeserialize         map[string]PositiveAndNegative `json:"autoDeserialize"`
	SinglePathParamService  map[string][]string            `json:"singlePathParamService"`
	SingleQueryParamService map[string][]string            `json:"singleQueryParamService"`
	SingleHeaderService     map[string][]string            `json:"singleHeaderService"`
}

// PositiveAndNegative holds the raw JSON bodies for one endpoint.
type PositiveAndNegative struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// ParseSuite decodes a suite from JSON (comments allowed) or YAML.
func ParseSuite(data []byte, f document.Format) (*Suite, error) {
	js, err := document.ToJSON(data, f)
	if err != nil {
		return nil, err
	}
	var s Suite
	if err := json.Unmarshal(js, &s); err != nil {
		return nil, fmt.Errorf("decoding test cases: %w", err)
	}
	return &s, nil
}

// LoadSuite reads a suite from disk, picking the format from the extension.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := ParseSuite(data, document.FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
