package verify

import (
	"bytes"
	"fmt"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/i18n"
	"github.com/reoring/goconjure/value"
)

// ConfirmationError reports a received body or parameter that does not
// match the expected case. Err is set when the received data failed to
// decode.
type ConfirmationError struct {
	Endpoint string
	Index    int
	Expected string
	Received string
	Err      error
}

func (e *ConfirmationError) Error() string {
	msg := i18n.T("confirmation_failure", map[string]string{"expected": e.Expected, "got": e.Received})
	if e.Err != nil {
		return fmt.Sprintf("%s[%d]: %s: %v", e.Endpoint, e.Index, msg, e.Err)
	}
	return fmt.Sprintf("%s[%d]: %s", e.Endpoint, e.Index, msg)
}

func (e *ConfirmationError) Unwrap() error { return e.Err }

// Confirm checks a body received for the positive case at index. An empty
// body is read as null.
func (r *Resolved) Confirm(endpoint string, index int, body []byte, opts ...goconjure.DecodeOpt) error {
	c, ok := r.Body[endpoint]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
	}
	want, err := positiveAt(c, index)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("null")
	}
	got, err := goconjure.Decode(c.Endpoint.Type, body, opts...)
	if err != nil {
		return &ConfirmationError{Endpoint: endpoint, Index: index, Expected: want.Text, Received: string(body), Err: err}
	}
	if !value.Equal(want.Value, got) {
		return &ConfirmationError{Endpoint: endpoint, Index: index, Expected: want.Text, Received: value.Render(got)}
	}
	return nil
}

// ConfirmParam checks a path, query or header parameter received for the
// case at index. param is nil when the parameter was not sent.
func (r *Resolved) ConfirmParam(endpoint string, index int, param *string) error {
	c, err := r.paramCases(endpoint)
	if err != nil {
		return err
	}
	want, err := positiveAt(c, index)
	if err != nil {
		return err
	}
	var got value.Value
	if param == nil {
		got, err = goconjure.DecodePlainMissing(c.Endpoint.Type)
	} else {
		got, err = goconjure.DecodePlain(c.Endpoint.Type, *param)
	}
	if err != nil {
		return &ConfirmationError{Endpoint: endpoint, Index: index, Expected: defined(&want.Text), Received: defined(param), Err: err}
	}
	if !value.Equal(want.Value, got) {
		return &ConfirmationError{Endpoint: endpoint, Index: index, Expected: defined(&want.Text), Received: defined(param)}
	}
	return nil
}

func (r *Resolved) paramCases(endpoint string) (*Cases, error) {
	for _, m := range []map[string]*Cases{r.Path, r.Query, r.Header} {
		if c, ok := m[endpoint]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
}

func positiveAt(c *Cases, index int) (Case, error) {
	if index < 0 || index >= len(c.Positive) {
		return Case{}, indexError(index, len(c.Positive))
	}
	return c.Positive[index], nil
}

func defined(s *string) string {
	if s == nil {
		return "undefined"
	}
	return "defined: " + *s
}
