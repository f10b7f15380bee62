package goconjure

import (
	"errors"

	"github.com/reoring/goconjure/codec"
	"github.com/reoring/goconjure/ir"
	"github.com/reoring/goconjure/value"
)

// DecodePlain decodes a header, query or path parameter. Only primitives
// other than any, enums and optionals of those are supported. Enum values
// that are not declared decode with Unknown set instead of failing.
func DecodePlain(t Type, s string) (value.Value, error) {
	return decodePlain("", t, s)
}

// DecodePlainMissing decodes a parameter that was not sent: None for an
// optional and required for everything else.
func DecodePlainMissing(t Type) (value.Value, error) {
	if _, ok := t.(*Optional); ok {
		return value.None(), nil
	}
	return nil, fail("", CodeRequired, "required.value", map[string]string{"type": t.String()})
}

func decodePlain(path string, t Type, s string) (value.Value, error) {
	switch tt := t.(type) {
	case *Primitive:
		return plainPrimitive(path, tt.Type, s)
	case *Enum:
		return value.Enum{Value: s, Unknown: !tt.Has(s)}, nil
	case *Optional:
		v, err := decodePlain(path, tt.Item, s)
		if err != nil {
			return nil, err
		}
		return value.Some(v), nil
	}
	return nil, fail(path, CodeUnsupportedPlainType, CodeUnsupportedPlainType, map[string]string{"type": t.String()})
}

// plainPrimitive parses the wire text of a primitive. JSON decoding reuses it
// for string and number tokens.
func plainPrimitive(path string, p ir.PrimitiveType, s string) (value.Primitive, error) {
	switch p {
	case ir.String:
		return value.String(s), nil
	case ir.RID:
		return value.RID(s), nil
	case ir.BearerToken:
		return value.BearerToken(s), nil
	case ir.Integer:
		n, err := codec.Integer().Decode(s)
		if err != nil {
			return nil, scalarError(path, "integer", s, err)
		}
		return value.Integer(n), nil
	case ir.Safelong:
		n, err := codec.Safelong().Decode(s)
		if err != nil {
			return nil, scalarError(path, "safelong", s, err)
		}
		return value.Safelong(n), nil
	case ir.Double:
		dv, err := value.ParseDouble(s)
		if err != nil {
			return nil, scalarError(path, "double", s, err)
		}
		return dv, nil
	case ir.Boolean:
		switch s {
		case "true":
			return value.Boolean(true), nil
		case "false":
			return value.Boolean(false), nil
		}
		return nil, fail(path, CodeInvalidFormat, CodeInvalidFormat, map[string]string{"format": "boolean", "reason": "expected `true` or `false`"})
	case ir.Binary:
		b, err := codec.Binary().Decode(s)
		if err != nil {
			return nil, scalarError(path, "binary", s, err)
		}
		return value.Binary(b), nil
	case ir.UUID:
		u, err := codec.UUID().Decode(s)
		if err != nil {
			return nil, scalarError(path, "uuid", s, err)
		}
		return value.UUID(u), nil
	case ir.Datetime:
		tm, err := codec.Datetime().Decode(s)
		if err != nil {
			return nil, scalarError(path, "datetime", s, err)
		}
		return value.Datetime{Time: tm}, nil
	case ir.Any:
		return nil, fail(path, CodeUnsupportedPlainType, "unsupported_plain_type.any", map[string]string{"type": "any"})
	}
	return nil, fail(path, CodeUnsupportedPlainType, CodeUnsupportedPlainType, map[string]string{"type": string(p)})
}

// scalarError reports a malformed scalar; numbers that parse but do not fit
// are reported as overflow.
func scalarError(path, format, input string, err error) error {
	var it Issue
	if errors.Is(err, codec.ErrOutOfRange) {
		it = issueAt(path, CodeOverflow, CodeOverflow, map[string]string{"format": format, "got": input})
	} else {
		reason := err.Error()
		var ce *codec.Error
		if errors.As(err, &ce) {
			reason = ce.Err.Error()
		}
		it = issueAt(path, CodeInvalidFormat, CodeInvalidFormat, map[string]string{"format": format, "reason": reason})
	}
	it.Cause = err
	return Issues{it}
}
