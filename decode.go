package goconjure

import (
	"errors"
	"io"

	eng "github.com/reoring/goconjure/internal/engine"
	str "github.com/reoring/goconjure/internal/stream"
	"github.com/reoring/goconjure/ir"
	"github.com/reoring/goconjure/value"
)

// Decode decodes a complete JSON document against t.
func Decode(t Type, data []byte, opts ...DecodeOpt) (value.Value, error) {
	return DecodeFrom(t, JSONBytes(data), opts...)
}

// DecodeFrom decodes exactly one JSON value from src against t. Any token
// after the value fails with parse_error.
func DecodeFrom(t Type, src Source, opts ...DecodeOpt) (value.Value, error) {
	opt := pickOpt(opts)
	ts := engineTokenSource(src)
	if eo := opt.enforceOptions(); eo.Enabled() {
		ts = eng.WrapWithEnforcement(ts, eo)
	}
	d := &decoder{src: ts, opt: opt}
	tok, err := d.next("")
	if err != nil {
		return nil, err
	}
	v, err := d.decode(t, tok, "")
	if err != nil {
		return nil, err
	}
	if _, err := ts.NextToken(); err == nil {
		return nil, d.fail("", CodeParseError, "trailing_data", nil)
	} else if !errors.Is(err, io.EOF) {
		return nil, d.tokenError(err, "")
	}
	return v, nil
}

// DecodeAbsent returns the value t takes when it is missing entirely: None
// for optionals and, unless MissingCollectionRequired is set, an empty
// collection. Other types fail with required.
func DecodeAbsent(t Type, opts ...DecodeOpt) (value.Value, error) {
	d := &decoder{opt: pickOpt(opts)}
	if v, ok := d.absent(t); ok {
		return v, nil
	}
	return nil, fail("", CodeRequired, "required.value", map[string]string{"type": t.String()})
}

// decoder walks one token stream. It is not shared between calls.
type decoder struct {
	src eng.TokenSource
	opt DecodeOpt
}

func (d *decoder) decode(t Type, tok eng.Token, path string) (value.Value, error) {
	switch tt := t.(type) {
	case *Primitive:
		return d.primitive(tt.Type, tok, path)
	case *Optional:
		if tok.Kind == eng.KindNull {
			return value.None(), nil
		}
		v, err := d.decode(tt.Item, tok, path)
		if err != nil {
			return nil, err
		}
		return value.Some(v), nil
	case *Object:
		return d.object(tt, tok, path)
	case *Enum:
		if tok.Kind != eng.KindString {
			return nil, d.mismatch(path, "string", tok)
		}
		if !tt.Has(tok.String) {
			return nil, d.fail(path, CodeInvalidEnum, CodeInvalidEnum, map[string]string{"value": tok.String, "expected": quoteList(tt.Values)})
		}
		return value.Enum{Value: tok.String}, nil
	case *Union:
		return d.union(tt, tok, path)
	case *List:
		return d.array(tt.Item, false, tok, path)
	case *Set:
		return d.array(tt.Item, true, tok, path)
	case *Map:
		return d.mapping(tt, tok, path)
	}
	return nil, d.fail(path, CodeInvalidType, CodeInvalidType, map[string]string{"expected": "resolved type", "got": tok.Kind.String()})
}

// absent resolves a value that was not supplied at all.
func (d *decoder) absent(t Type) (value.Value, bool) {
	switch t.(type) {
	case *Optional:
		return value.None(), true
	case *List, *Set, *Map:
		if d.opt.MissingCollections == MissingCollectionRequired {
			return nil, false
		}
		return emptyCollection(t), true
	}
	return nil, false
}

func emptyCollection(t Type) value.Value {
	switch t.(type) {
	case *Set:
		return value.NewSet()
	case *Map:
		return value.NewMap()
	}
	return value.List{}
}

// primitive decodes a JSON scalar. Textual primitives share their parsing
// with the plain format.
func (d *decoder) primitive(p ir.PrimitiveType, tok eng.Token, path string) (value.Value, error) {
	switch p {
	case ir.Integer, ir.Safelong:
		if tok.Kind != eng.KindNumber {
			return nil, d.mismatch(path, "number", tok)
		}
		return d.withOffset(plainPrimitive(path, p, tok.Number))
	case ir.Double:
		switch tok.Kind {
		case eng.KindNumber:
			return d.withOffset(plainPrimitive(path, p, tok.Number))
		case eng.KindString:
			if dv, ok := value.DoubleFromToken(tok.String); ok {
				return dv, nil
			}
			return nil, d.fail(path, CodeInvalidFormat, CodeInvalidFormat, map[string]string{
				"format": "double",
				"reason": "expected a number or one of " + quoteList([]string{value.NaNToken, value.PositiveInfinityToken, value.NegativeInfinityToken}),
			})
		}
		return nil, d.mismatch(path, "number", tok)
	case ir.Boolean:
		if tok.Kind != eng.KindBool {
			return nil, d.mismatch(path, "boolean", tok)
		}
		return value.Boolean(tok.Bool), nil
	case ir.Any:
		if tok.Kind == eng.KindNull {
			return nil, d.fail(path, CodeNullNotAllowed, CodeNullNotAllowed, nil)
		}
		raw, err := eng.DecodeAnyFromSource(str.NewPreloadedSource(d.src, tok))
		if err != nil {
			return nil, d.tokenError(err, path)
		}
		return value.Any{V: raw}, nil
	}
	if tok.Kind != eng.KindString {
		return nil, d.mismatch(path, "string", tok)
	}
	return d.withOffset(plainPrimitive(path, p, tok.String))
}

func (d *decoder) next(path string) (eng.Token, error) {
	tok, err := d.src.NextToken()
	if err != nil {
		return eng.Token{}, d.tokenError(err, path)
	}
	return tok, nil
}

// tokenError converts a token stream failure into Issues.
func (d *decoder) tokenError(err error, path string) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{Issue{Path: pathOrRoot(ie.Path), Code: ie.Code, Message: ie.Message, Cause: err, Offset: d.src.Location()}}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return d.failCause(path, CodeTruncated, CodeTruncated, nil, err)
	}
	return d.failCause(path, CodeParseError, CodeParseError, map[string]string{"reason": err.Error()}, err)
}

func (d *decoder) mismatch(path, expected string, tok eng.Token) error {
	return d.fail(path, CodeInvalidType, CodeInvalidType, map[string]string{"expected": expected, "got": tok.Kind.String()})
}

func (d *decoder) fail(path, code, msgKey string, data map[string]string) error {
	return d.failCause(path, code, msgKey, data, nil)
}

func (d *decoder) failCause(path, code, msgKey string, data map[string]string, cause error) error {
	it := issueAt(path, code, msgKey, data)
	it.Cause = cause
	if d.src != nil {
		it.Offset = d.src.Location()
	}
	return Issues{it}
}

// withOffset stamps plain-format issues with the current stream offset.
func (d *decoder) withOffset(v value.Value, err error) (value.Value, error) {
	if err == nil {
		return v, nil
	}
	if iss, ok := AsIssues(err); ok {
		off := d.src.Location()
		for i := range iss {
			iss[i].Offset = off
		}
		return nil, iss
	}
	return nil, err
}
