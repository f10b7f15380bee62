package goconjure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/goconjure/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType           = "invalid_type"
	CodeRequired              = "required"
	CodeUnknownKey            = "unknown_key"
	CodeDuplicateKey          = "duplicate_key"
	CodeInvalidEnum           = "invalid_enum"
	CodeInvalidFormat         = "invalid_format"
	CodeOverflow              = "overflow"
	CodeDiscriminatorMissing  = "discriminator_missing"
	CodeDiscriminatorUnknown  = "discriminator_unknown"
	CodeDiscriminatorMismatch = "discriminator_mismatch"
	CodeDuplicateElement      = "duplicate_element"
	CodeDuplicateMapKey       = "duplicate_map_key"
	CodeNullNotAllowed        = "null_not_allowed"
	CodeUnsupportedPlainType  = "unsupported_plain_type"
	CodeParseError            = "parse_error"
	CodeTruncated             = "truncated"
	// Resolution of type definitions
	CodeUnresolvedReference = "unresolved_reference"
	CodeCyclicReference     = "cyclic_reference"
	CodeInvalidMapKey       = "invalid_map_key"
	CodeDuplicateDefinition = "duplicate_definition"
)

// Issue represents a single decode or resolution failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"expected":"string", "got":"number"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path: invalid type: expected string, got number
		fmt.Fprintf(b, "%s at %s", it.Code, pathOrRoot(it.Path))
		if it.Message != "" {
			b.WriteString(": ")
			b.WriteString(it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes of all issues to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var errs []error
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// issueAt builds an Issue whose message comes from the i18n catalog entry
// msgKey. data is copied into Params.
func issueAt(path, code, msgKey string, data map[string]string) Issue {
	it := Issue{Path: pathOrRoot(path), Code: code, Message: i18n.T(msgKey, data), Offset: -1}
	if len(data) > 0 {
		it.Params = make(map[string]any, len(data))
		for k, v := range data {
			it.Params[k] = v
		}
	}
	return it
}

func fail(path, code, msgKey string, data map[string]string) error {
	return Issues{issueAt(path, code, msgKey, data)}
}

func quoteList(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = "`" + n + "`"
	}
	return strings.Join(q, ", ")
}
