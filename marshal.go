package goconjure

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/reoring/goconjure/codec"
	"github.com/reoring/goconjure/internal/casing"
	"github.com/reoring/goconjure/value"
)

// EnumValue is implemented by enum types. ConjureEnum returns the declared
// value written on the wire.
type EnumValue interface {
	ConjureEnum() string
}

// UnionValue is implemented by union types. ConjureUnion returns the selected
// member name and its value.
type UnionValue interface {
	ConjureUnion() (member string, v any)
}

var (
	enumValueType = reflect.TypeFor[EnumValue]()
	unionType     = reflect.TypeFor[UnionValue]()
	valueType     = reflect.TypeFor[value.Value]()
	timeType      = reflect.TypeFor[time.Time]()
	uuidType      = reflect.TypeFor[uuid.UUID]()
)

// Marshal writes v in the Conjure JSON wire format.
//
// Struct fields are written in declaration order under their wire name:
// the conjure tag, then the json tag, then the camelCase field name; "-"
// skips a field. Nil pointers are written as null. Byte slices are base64,
// time.Time is RFC 3339 and uuid.UUID is hyphenated. Non-finite floats are
// written as "NaN", "PositiveInfinity" or "NegativeInfinity". Map keys are
// written in their plain form and sorted. value.Value trees are delegated to
// value.Marshal.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WireKey resolves the wire name of a struct field, or "-" when the field is
// skipped.
func WireKey(sf reflect.StructField) string {
	if ct := sf.Tag.Get("conjure"); ct != "" {
		return ct
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt
		}
	}
	return casing.Camel(sf.Name)
}

func encodeValue(buf *bytes.Buffer, rv reflect.Value) error {
	if !rv.IsValid() {
		buf.WriteString("null")
		return nil
	}
	// Nil collections are written empty; only pointers and interfaces are null.
	if k := rv.Kind(); (k == reflect.Pointer || k == reflect.Interface) && rv.IsNil() {
		buf.WriteString("null")
		return nil
	}

	t := rv.Type()
	switch {
	case t.Implements(valueType):
		b, err := value.Marshal(rv.Interface().(value.Value))
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	case t.Implements(enumValueType):
		writeJSONString(buf, rv.Interface().(EnumValue).ConjureEnum())
		return nil
	case t.Implements(unionType):
		member, mv := rv.Interface().(UnionValue).ConjureUnion()
		buf.WriteString(`{"type":`)
		writeJSONString(buf, member)
		buf.WriteByte(',')
		writeJSONString(buf, member)
		buf.WriteByte(':')
		if err := encodeValue(buf, reflect.ValueOf(mv)); err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	case t == timeType:
		s, _ := codec.Datetime().Encode(rv.Interface().(time.Time))
		writeJSONString(buf, s)
		return nil
	case t == uuidType:
		writeJSONString(buf, rv.Interface().(uuid.UUID).String())
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return encodeValue(buf, rv.Elem())
	case reflect.Struct:
		return encodeStruct(buf, rv)
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			s, _ := codec.Binary().Encode(rv.Bytes())
			writeJSONString(buf, s)
			return nil
		}
		return encodeArray(buf, rv)
	case reflect.Array:
		return encodeArray(buf, rv)
	case reflect.Map:
		return encodeMap(buf, rv)
	case reflect.String:
		writeJSONString(buf, rv.String())
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			writeJSONString(buf, value.NewDouble(f).String())
			return nil
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, t.Bits()))
	default:
		return fmt.Errorf("goconjure: cannot marshal %s", t)
	}
	return nil
}

func encodeStruct(buf *bytes.Buffer, rv reflect.Value) error {
	t := rv.Type()
	buf.WriteByte('{')
	first := true
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := WireKey(sf)
		if name == "-" {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		writeJSONString(buf, name)
		buf.WriteByte(':')
		if err := encodeValue(buf, rv.Field(i)); err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func encodeArray(buf *bytes.Buffer, rv reflect.Value) error {
	buf.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeValue(buf, rv.Index(i)); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeMap(buf *bytes.Buffer, rv reflect.Value) error {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := plainKey(iter.Key())
		if err != nil {
			return err
		}
		entries = append(entries, entry{key: k, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, e.key)
		buf.WriteByte(':')
		if err := encodeValue(buf, e.val); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// plainKey renders a map key in the plain format.
func plainKey(k reflect.Value) (string, error) {
	t := k.Type()
	switch {
	case t.Implements(enumValueType):
		return k.Interface().(EnumValue).ConjureEnum(), nil
	case t == uuidType:
		return k.Interface().(uuid.UUID).String(), nil
	case t == timeType:
		return codec.Datetime().Encode(k.Interface().(time.Time))
	}
	switch k.Kind() {
	case reflect.String:
		return k.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(k.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return value.NewDouble(k.Float()).String(), nil
	}
	return "", fmt.Errorf("goconjure: unsupported map key type %s", t)
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}
