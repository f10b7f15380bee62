package goconjure

import (
	"slices"
	"strings"

	"github.com/reoring/goconjure/internal/casing"
	"github.com/reoring/goconjure/ir"
)

// TypeKind identifies the variant of a resolved Type.
type TypeKind int

const (
	KindPrimitive TypeKind = iota
	KindOptional
	KindObject
	KindEnum
	KindUnion
	KindList
	KindSet
	KindMap
)

func (k TypeKind) String() string {
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

// Type is a fully resolved type descriptor: references and aliases have been
// inlined. Resolved trees are immutable and may be shared between goroutines.
type Type interface {
	Kind() TypeKind
	String() string
}

// Primitive is a resolved primitive type.
type Primitive struct{ Type ir.PrimitiveType }

// Optional wraps a type whose value may be absent.
type Optional struct{ Item Type }

// List is an ordered sequence.
type List struct{ Item Type }

// Set is a sequence of distinct elements.
type Set struct{ Item Type }

// Map has primitive keys that travel as JSON object keys in plain form.
type Map struct {
	Key   ir.PrimitiveType
	Value Type
}

// Field is one member of an Object or Union.
type Field struct {
	Name     string // declared name
	WireName string // name on the wire
	Type     Type
}

// Object is a record with declared fields.
type Object struct {
	Name   ir.TypeName
	Fields []Field

	byWire map[string]int
}

// Enum is a closed set of string values.
type Enum struct {
	Name   ir.TypeName
	Values []string
}

// Union is a tagged union keyed by its member names.
type Union struct {
	Name    ir.TypeName
	Members []Field

	byName map[string]int
}

func (*Primitive) Kind() TypeKind { return KindPrimitive }
func (*Optional) Kind() TypeKind  { return KindOptional }
func (*List) Kind() TypeKind      { return KindList }
func (*Set) Kind() TypeKind       { return KindSet }
func (*Map) Kind() TypeKind       { return KindMap }
func (*Object) Kind() TypeKind    { return KindObject }
func (*Enum) Kind() TypeKind      { return KindEnum }
func (*Union) Kind() TypeKind     { return KindUnion }

func (t *Primitive) String() string { return strings.ToLower(string(t.Type)) }
func (t *Optional) String() string  { return "optional<" + t.Item.String() + ">" }
func (t *List) String() string      { return "list<" + t.Item.String() + ">" }
func (t *Set) String() string       { return "set<" + t.Item.String() + ">" }
func (t *Map) String() string {
	return "map<" + strings.ToLower(string(t.Key)) + ", " + t.Value.String() + ">"
}
func (t *Object) String() string { return t.Name.String() }
func (t *Enum) String() string   { return t.Name.String() }
func (t *Union) String() string  { return t.Name.String() }

// NewObject builds an Object, deriving wire names from declared names when
// WireName is empty. ok is false when two fields share a wire name; dup then
// names the first collision.
func NewObject(name ir.TypeName, fields []Field) (obj *Object, dup string, ok bool) {
	obj = &Object{Name: name, Fields: make([]Field, len(fields)), byWire: make(map[string]int, len(fields))}
	for i, f := range fields {
		if f.WireName == "" {
			f.WireName = casing.Camel(f.Name)
		}
		if _, seen := obj.byWire[f.WireName]; seen {
			return nil, f.WireName, false
		}
		obj.byWire[f.WireName] = i
		obj.Fields[i] = f
	}
	return obj, "", true
}

// Field looks up a field by wire name.
func (t *Object) Field(wire string) (Field, bool) {
	i, ok := t.byWire[wire]
	if !ok {
		return Field{}, false
	}
	return t.Fields[i], true
}

// WireNames returns the wire names of all fields in sorted order.
func (t *Object) WireNames() []string {
	out := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.WireName
	}
	slices.Sort(out)
	return out
}

// NewUnion builds a Union. Members are keyed by their declared names, which
// are also their wire names.
func NewUnion(name ir.TypeName, members []Field) (u *Union, dup string, ok bool) {
	u = &Union{Name: name, Members: make([]Field, len(members)), byName: make(map[string]int, len(members))}
	for i, m := range members {
		m.WireName = m.Name
		if _, seen := u.byName[m.Name]; seen {
			return nil, m.Name, false
		}
		u.byName[m.Name] = i
		u.Members[i] = m
	}
	return u, "", true
}

// Member looks up a member by name.
func (t *Union) Member(name string) (Field, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Field{}, false
	}
	return t.Members[i], true
}

// MemberNames returns the member names in sorted order.
func (t *Union) MemberNames() []string {
	out := make([]string, len(t.Members))
	for i, m := range t.Members {
		out[i] = m.Name
	}
	slices.Sort(out)
	return out
}

// Has reports whether s is a declared enum value.
func (t *Enum) Has(s string) bool { return slices.Contains(t.Values, s) }

// IsCollection reports whether t is a list, set or map.
func IsCollection(t Type) bool {
	switch t.Kind() {
	case KindList, KindSet, KindMap:
		return true
	}
	return false
}
