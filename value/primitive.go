package value

import (
	"time"

	"github.com/google/uuid"
)

// PrimitiveKind identifies a primitive variant. The declaration order is the
// rank used by Compare.
type PrimitiveKind int

const (
	PrimString PrimitiveKind = iota
	PrimInteger
	PrimDouble
	PrimBoolean
	PrimSafelong
	PrimBinary
	PrimUUID
	PrimRID
	PrimBearerToken
	PrimDatetime
	PrimAny
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimString:
		return "string"
	case PrimInteger:
		return "integer"
	case PrimDouble:
		return "double"
	case PrimBoolean:
		return "boolean"
	case PrimSafelong:
		return "safelong"
	case PrimBinary:
		return "binary"
	case PrimUUID:
		return "uuid"
	case PrimRID:
		return "rid"
	case PrimBearerToken:
		return "bearertoken"
	case PrimDatetime:
		return "datetime"
	case PrimAny:
		return "any"
	}
	return "unknown"
}

// Primitive is a scalar value. Map keys are always primitives.
type Primitive interface {
	Value
	PrimitiveKind() PrimitiveKind
}

type (
	String      string
	Integer     int32
	Boolean     bool
	Safelong    int64
	Binary      []byte
	UUID        uuid.UUID
	RID         string
	BearerToken string
)

// Datetime is a timestamp that keeps the offset it was written with.
type Datetime struct{ time.Time }

// Any holds an untyped JSON value: nil, bool, json.Number, string, []any or
// map[string]any.
type Any struct{ V any }

func (String) Kind() Kind      { return KindPrimitive }
func (Integer) Kind() Kind     { return KindPrimitive }
func (Double) Kind() Kind      { return KindPrimitive }
func (Boolean) Kind() Kind     { return KindPrimitive }
func (Safelong) Kind() Kind    { return KindPrimitive }
func (Binary) Kind() Kind      { return KindPrimitive }
func (UUID) Kind() Kind        { return KindPrimitive }
func (RID) Kind() Kind         { return KindPrimitive }
func (BearerToken) Kind() Kind { return KindPrimitive }
func (Datetime) Kind() Kind    { return KindPrimitive }
func (Any) Kind() Kind         { return KindPrimitive }

func (String) PrimitiveKind() PrimitiveKind      { return PrimString }
func (Integer) PrimitiveKind() PrimitiveKind     { return PrimInteger }
func (Double) PrimitiveKind() PrimitiveKind      { return PrimDouble }
func (Boolean) PrimitiveKind() PrimitiveKind     { return PrimBoolean }
func (Safelong) PrimitiveKind() PrimitiveKind    { return PrimSafelong }
func (Binary) PrimitiveKind() PrimitiveKind      { return PrimBinary }
func (UUID) PrimitiveKind() PrimitiveKind        { return PrimUUID }
func (RID) PrimitiveKind() PrimitiveKind         { return PrimRID }
func (BearerToken) PrimitiveKind() PrimitiveKind { return PrimBearerToken }
func (Datetime) PrimitiveKind() PrimitiveKind    { return PrimDatetime }
func (Any) PrimitiveKind() PrimitiveKind         { return PrimAny }

func (u UUID) String() string { return uuid.UUID(u).String() }
