package value

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/reoring/goconjure/codec"
	"github.com/reoring/goconjure/internal/casing"
)

// Marshal renders v in the Conjure JSON wire format. Object fields are
// written under their camelCase wire names in sorted order, absent optionals
// as null, unions as {"type": member, member: value}, and map keys in their
// plain form.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render returns the wire form of v for diagnostics, falling back to Go
// syntax when v cannot be marshalled.
func Render(v Value) string {
	b, err := Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}

func writeValue(buf *bytes.Buffer, v Value) error {
	switch tv := v.(type) {
	case nil:
		buf.WriteString("null")
	case Primitive:
		return writePrimitive(buf, tv)
	case Optional:
		return writeValue(buf, tv.V)
	case Object:
		buf.WriteByte('{')
		for i, k := range sortedKeys(tv) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, casing.Camel(k))
			buf.WriteByte(':')
			if err := writeValue(buf, tv[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case Enum:
		writeString(buf, tv.Value)
	case Union:
		buf.WriteString(`{"type":`)
		writeString(buf, tv.Field)
		buf.WriteByte(',')
		writeString(buf, tv.Field)
		buf.WriteByte(':')
		if err := writeValue(buf, tv.Value); err != nil {
			return err
		}
		buf.WriteByte('}')
	case List:
		return writeArray(buf, tv)
	case *Set:
		return writeArray(buf, tv.Values())
	case *Map:
		buf.WriteByte('{')
		for i, e := range tv.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := PlainString(e.Key)
			if err != nil {
				return err
			}
			writeString(buf, k)
			buf.WriteByte(':')
			if err := writeValue(buf, e.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("value: cannot marshal %T", v)
	}
	return nil
}

func writeArray(buf *bytes.Buffer, vs []Value) error {
	buf.WriteByte('[')
	for i, e := range vs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, e); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writePrimitive(buf *bytes.Buffer, p Primitive) error {
	switch tv := p.(type) {
	case Integer:
		buf.WriteString(strconv.FormatInt(int64(tv), 10))
	case Safelong:
		buf.WriteString(strconv.FormatInt(int64(tv), 10))
	case Boolean:
		buf.WriteString(strconv.FormatBool(bool(tv)))
	case Double:
		if !tv.IsFinite() {
			writeString(buf, tv.String())
			return nil
		}
		buf.WriteString(tv.String())
	case Any:
		b, err := json.Marshal(tv.V)
		if err != nil {
			return fmt.Errorf("value: marshal any: %w", err)
		}
		buf.Write(b)
	default:
		s, err := PlainString(p)
		if err != nil {
			return err
		}
		writeString(buf, s)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

// PlainString renders a primitive in the plain format used for map keys,
// headers, query and path parameters. Any has no plain form.
func PlainString(p Primitive) (string, error) {
	switch tv := p.(type) {
	case String:
		return string(tv), nil
	case Integer:
		return strconv.FormatInt(int64(tv), 10), nil
	case Double:
		return tv.String(), nil
	case Boolean:
		return strconv.FormatBool(bool(tv)), nil
	case Safelong:
		return codec.Safelong().Encode(int64(tv))
	case Binary:
		return codec.Binary().Encode(tv)
	case UUID:
		return tv.String(), nil
	case RID:
		return string(tv), nil
	case BearerToken:
		return string(tv), nil
	case Datetime:
		return codec.Datetime().Encode(tv.Time)
	}
	return "", fmt.Errorf("value: %s has no plain representation", p.PrimitiveKind())
}
