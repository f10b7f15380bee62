// Package value is the dynamic representation of a decoded Conjure instance.
//
// A Value is one of Primitive, Optional, Object, Enum, Union, List, Set or
// Map. Values are plain data: they carry no reference to the type they were
// decoded against, and Set and Map keep their elements in the canonical
// order defined by Compare.
package value

// Kind identifies a Value variant. The declaration order is the variant rank
// used by Compare.
type Kind int

const (
	KindPrimitive Kind = iota
	KindOptional
	KindObject
	KindEnum
	KindUnion
	KindList
	KindSet
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindOptional:
		return "optional"
	case KindObject:
		return "object"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	}
	return "unknown"
}

// Value is a decoded Conjure instance.
type Value interface {
	Kind() Kind
}

// Optional holds a present value or nothing. The zero value is None.
type Optional struct {
	V Value // nil when absent
}

// None returns an empty Optional.
func None() Optional { return Optional{} }

// Some wraps v as a present Optional.
func Some(v Value) Optional { return Optional{V: v} }

// Present reports whether the optional holds a value.
func (o Optional) Present() bool { return o.V != nil }

func (Optional) Kind() Kind { return KindOptional }

// Object maps declared field names to values. Every declared field is
// present once decoding succeeds; absent optionals hold None.
type Object map[string]Value

func (Object) Kind() Kind { return KindObject }

// Enum is a decoded enum value. Unknown is set by the plain decoder when the
// value is not among the declared values.
type Enum struct {
	Value   string
	Unknown bool
}

func (Enum) Kind() Kind { return KindEnum }

// Union is a decoded union with the selected member name and its value.
type Union struct {
	Field string
	Value Value
}

func (Union) Kind() Kind { return KindUnion }

// List is an ordered sequence that permits duplicates.
type List []Value

func (List) Kind() Kind { return KindList }
