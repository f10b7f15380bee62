// Package ir models Conjure IR documents: named type definitions, anonymous
// type expressions and the services that use them.
package ir

import (
	"fmt"
	"strings"
)

// PrimitiveType names a Conjure primitive. It is itself a Type.
type PrimitiveType string

const (
	String      PrimitiveType = "STRING"
	Integer     PrimitiveType = "INTEGER"
	Double      PrimitiveType = "DOUBLE"
	Boolean     PrimitiveType = "BOOLEAN"
	Safelong    PrimitiveType = "SAFELONG"
	Binary      PrimitiveType = "BINARY"
	UUID        PrimitiveType = "UUID"
	RID         PrimitiveType = "RID"
	BearerToken PrimitiveType = "BEARERTOKEN"
	Datetime    PrimitiveType = "DATETIME"
	Any         PrimitiveType = "ANY"
)

// PrimitiveTypes lists every primitive in wire order.
var PrimitiveTypes = []PrimitiveType{String, Integer, Double, Boolean, Safelong, Binary, UUID, RID, BearerToken, Datetime, Any}

// Valid reports whether p is a known primitive.
func (p PrimitiveType) Valid() bool {
	for _, q := range PrimitiveTypes {
		if p == q {
			return true
		}
	}
	return false
}

// TypeName identifies a named definition.
type TypeName struct {
	Name    string `json:"name" yaml:"name"`
	Package string `json:"package" yaml:"package"`
}

func (n TypeName) String() string {
	if n.Package == "" {
		return n.Name
	}
	return n.Package + "." + n.Name
}

// Type is an anonymous type expression: PrimitiveType, Optional, List, Set,
// Map, Reference or External.
type Type interface {
	isType()
}

// Optional is a value that may be absent.
type Optional struct{ ItemType Type }

// List is an ordered sequence.
type List struct{ ItemType Type }

// Set is a sequence of distinct elements.
type Set struct{ ItemType Type }

// Map is a string-keyed object on the wire; KeyType must be primitive after
// resolution.
type Map struct {
	KeyType   Type
	ValueType Type
}

// Reference points at a named definition.
type Reference TypeName

// External refers to a type defined outside the document. Decoding uses the
// fallback type.
type External struct {
	ExternalReference TypeName
	Fallback          Type
}

func (PrimitiveType) isType() {}
func (Optional) isType()      {}
func (List) isType()          {}
func (Set) isType()           {}
func (Map) isType()           {}
func (Reference) isType()     {}
func (External) isType()      {}

// Describe renders a type expression in Conjure's source syntax, for
// example "map<string, list<com.x.Foo>>".
func Describe(t Type) string {
	switch tt := t.(type) {
	case PrimitiveType:
		return strings.ToLower(string(tt))
	case Optional:
		return "optional<" + Describe(tt.ItemType) + ">"
	case List:
		return "list<" + Describe(tt.ItemType) + ">"
	case Set:
		return "set<" + Describe(tt.ItemType) + ">"
	case Map:
		return "map<" + Describe(tt.KeyType) + ", " + Describe(tt.ValueType) + ">"
	case Reference:
		return TypeName(tt).String()
	case External:
		return tt.ExternalReference.String()
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("%T", t)
}

// TypeDefinition is a named declaration: ObjectDefinition, AliasDefinition,
// EnumDefinition or UnionDefinition.
type TypeDefinition interface {
	Name() TypeName
}

// FieldDefinition is a named member of an object or union.
type FieldDefinition struct {
	FieldName string
	Type      Type
}

// ObjectDefinition declares a record type.
type ObjectDefinition struct {
	TypeName TypeName
	Fields   []FieldDefinition
}

// AliasDefinition names another type expression.
type AliasDefinition struct {
	TypeName TypeName
	Alias    Type
}

// EnumDefinition declares the legal string values of an enum.
type EnumDefinition struct {
	TypeName TypeName
	Values   []string
}

// UnionDefinition declares a tagged union.
type UnionDefinition struct {
	TypeName TypeName
	Union    []FieldDefinition
}

func (d ObjectDefinition) Name() TypeName { return d.TypeName }
func (d AliasDefinition) Name() TypeName  { return d.TypeName }
func (d EnumDefinition) Name() TypeName   { return d.TypeName }
func (d UnionDefinition) Name() TypeName  { return d.TypeName }

// ArgumentDefinition is one endpoint argument.
type ArgumentDefinition struct {
	ArgName string
	Type    Type
}

// EndpointDefinition is one service endpoint. Returns is nil for endpoints
// without a body.
type EndpointDefinition struct {
	EndpointName string
	HTTPMethod   string
	HTTPPath     string
	Args         []ArgumentDefinition
	Returns      Type
}

// ServiceDefinition groups endpoints under a service name.
type ServiceDefinition struct {
	ServiceName TypeName
	Endpoints   []EndpointDefinition
}

// Endpoint looks up an endpoint by name.
func (s *ServiceDefinition) Endpoint(name string) (*EndpointDefinition, bool) {
	for i := range s.Endpoints {
		if s.Endpoints[i].EndpointName == name {
			return &s.Endpoints[i], true
		}
	}
	return nil, false
}

// Conjure is a complete IR document.
type Conjure struct {
	Version  int
	Types    []TypeDefinition
	Services []ServiceDefinition
}

// Service looks up a service by its simple name.
func (c *Conjure) Service(name string) (*ServiceDefinition, bool) {
	for i := range c.Services {
		if c.Services[i].ServiceName.Name == name {
			return &c.Services[i], true
		}
	}
	return nil, false
}
