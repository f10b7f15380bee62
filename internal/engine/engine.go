package engine

import (
	"encoding/json"
	"errors"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// String names the JSON shape a token opens, as used in type mismatch messages.
func (k Kind) String() string {
	switch k {
	case KindBeginObject, KindEndObject:
		return "object"
	case KindBeginArray, KindEndArray:
		return "array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	}
	return "unknown"
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// DuplicateStrictness controls duplicate key handling during enforcement.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// ErrUnexpectedToken reports a token that cannot appear at the current
// position of a well-formed stream.
var ErrUnexpectedToken = errors.New("engine: unexpected token")

// DecodeAnyFromSource builds an "any" value from the streaming token source.
func DecodeAnyFromSource(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok)
}

// decodeValue builds an "any" value whose first token has already been read.
// Objects become map[string]any, arrays []any and numbers json.Number.
func decodeValue(src TokenSource, first Token) (any, error) {
	switch first.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return first.String, nil
	case KindNumber:
		return json.Number(first.Number), nil
	case KindBool:
		return first.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, ErrUnexpectedToken
	}
}

func decodeObject(src TokenSource) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := next(src)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, ErrUnexpectedToken
		}
		vt, err := next(src)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource) (any, error) {
	arr := []any{}
	for {
		tok, err := next(src)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// SkipValue discards the value whose first token has already been read,
// consuming every token up to and including the matching container end.
func SkipValue(src TokenSource, first Token) error {
	switch first.Kind {
	case KindBeginObject, KindBeginArray:
	case KindString, KindNumber, KindBool, KindNull:
		return nil
	default:
		return ErrUnexpectedToken
	}
	depth := 1
	for depth > 0 {
		tok, err := next(src)
		if err != nil {
			return err
		}
		switch tok.Kind {
		case KindBeginObject, KindBeginArray:
			depth++
		case KindEndObject, KindEndArray:
			depth--
		}
	}
	return nil
}

// next reads a token inside an open container, where end of input means the
// document was cut short.
func next(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}
