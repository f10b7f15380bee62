// Package codec converts Conjure scalar wire strings to Go values and back.
//
// Each codec is symmetric: Decode accepts the wire text used both in JSON
// bodies and in the plain format, Encode produces the canonical wire text.
package codec

import (
	"errors"
	"fmt"
)

// Codec converts between a wire representation W and a domain value D.
type Codec[W, D any] interface {
	Decode(w W) (D, error)
	Encode(d D) (W, error)
}

// ErrOutOfRange is wrapped by errors for syntactically valid numbers that do
// not fit the target type.
var ErrOutOfRange = errors.New("value out of range")

// Error describes a wire string that could not be decoded.
type Error struct {
	Format string // Wire format name, for example "datetime".
	Input  string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Format, e.Input, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(format, input string, err error) error {
	return &Error{Format: format, Input: input, Err: err}
}
