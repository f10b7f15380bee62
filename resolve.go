package goconjure

import (
	"sync"

	"github.com/reoring/goconjure/ir"
)

// Resolver inlines references and aliases against a fixed set of type
// definitions. Resolved named types are memoized, so every reference to the
// same definition yields the same shared subtree. A Resolver is safe for
// concurrent use.
type Resolver struct {
	defs map[ir.TypeName]ir.TypeDefinition

	mu       sync.Mutex
	resolved map[ir.TypeName]Type
	visiting map[ir.TypeName]bool
}

// NewResolver indexes defs. A name defined twice fails with
// duplicate_definition.
func NewResolver(defs []ir.TypeDefinition) (*Resolver, error) {
	r := &Resolver{
		defs:     make(map[ir.TypeName]ir.TypeDefinition, len(defs)),
		resolved: make(map[ir.TypeName]Type),
		visiting: make(map[ir.TypeName]bool),
	}
	for _, d := range defs {
		n := d.Name()
		if _, dup := r.defs[n]; dup {
			return nil, fail("", CodeDuplicateDefinition, CodeDuplicateDefinition, map[string]string{"name": n.String()})
		}
		r.defs[n] = d
	}
	return r, nil
}

// Resolve is a convenience for resolving a single expression against defs.
func Resolve(defs []ir.TypeDefinition, t ir.Type) (Type, error) {
	r, err := NewResolver(defs)
	if err != nil {
		return nil, err
	}
	return r.Resolve(t)
}

// Resolve converts an anonymous type expression into a resolved Type.
func (r *Resolver) Resolve(t ir.Type) (Type, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(t)
}

// ResolveName resolves a named definition.
func (r *Resolver) ResolveName(n ir.TypeName) (Type, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveName(n)
}

func (r *Resolver) resolve(t ir.Type) (Type, error) {
	switch tt := t.(type) {
	case ir.PrimitiveType:
		if !tt.Valid() {
			return nil, fail("", CodeUnresolvedReference, CodeUnresolvedReference, map[string]string{"name": string(tt)})
		}
		return &Primitive{Type: tt}, nil
	case ir.Optional:
		item, err := r.resolve(tt.ItemType)
		if err != nil {
			return nil, err
		}
		return &Optional{Item: item}, nil
	case ir.List:
		item, err := r.resolve(tt.ItemType)
		if err != nil {
			return nil, err
		}
		return &List{Item: item}, nil
	case ir.Set:
		item, err := r.resolve(tt.ItemType)
		if err != nil {
			return nil, err
		}
		return &Set{Item: item}, nil
	case ir.Map:
		key, err := r.resolve(tt.KeyType)
		if err != nil {
			return nil, err
		}
		kp, ok := key.(*Primitive)
		if !ok {
			return nil, fail("", CodeInvalidMapKey, CodeInvalidMapKey, map[string]string{"type": key.String()})
		}
		val, err := r.resolve(tt.ValueType)
		if err != nil {
			return nil, err
		}
		return &Map{Key: kp.Type, Value: val}, nil
	case ir.Reference:
		return r.resolveName(ir.TypeName(tt))
	case ir.External:
		return r.resolve(tt.Fallback)
	}
	return nil, fail("", CodeUnresolvedReference, CodeUnresolvedReference, map[string]string{"name": ir.Describe(t)})
}

func (r *Resolver) resolveName(n ir.TypeName) (Type, error) {
	if t, ok := r.resolved[n]; ok {
		return t, nil
	}
	def, ok := r.defs[n]
	if !ok {
		return nil, fail("", CodeUnresolvedReference, CodeUnresolvedReference, map[string]string{"name": n.String()})
	}
	if r.visiting[n] {
		return nil, fail("", CodeCyclicReference, CodeCyclicReference, map[string]string{"name": n.String()})
	}
	r.visiting[n] = true
	defer delete(r.visiting, n)

	t, err := r.definition(def)
	if err != nil {
		return nil, err
	}
	r.resolved[n] = t
	return t, nil
}

func (r *Resolver) definition(def ir.TypeDefinition) (Type, error) {
	switch d := def.(type) {
	case ir.AliasDefinition:
		return r.resolve(d.Alias)
	case ir.EnumDefinition:
		return &Enum{Name: d.TypeName, Values: append([]string(nil), d.Values...)}, nil
	case ir.ObjectDefinition:
		fields, err := r.fields(d.Fields)
		if err != nil {
			return nil, err
		}
		obj, dup, ok := NewObject(d.TypeName, fields)
		if !ok {
			return nil, fail("", CodeDuplicateKey, CodeDuplicateKey, map[string]string{"key": dup})
		}
		return obj, nil
	case ir.UnionDefinition:
		members, err := r.fields(d.Union)
		if err != nil {
			return nil, err
		}
		u, dup, ok := NewUnion(d.TypeName, members)
		if !ok {
			return nil, fail("", CodeDuplicateKey, CodeDuplicateKey, map[string]string{"key": dup})
		}
		return u, nil
	}
	return nil, fail("", CodeUnresolvedReference, CodeUnresolvedReference, map[string]string{"name": def.Name().String()})
}

func (r *Resolver) fields(defs []ir.FieldDefinition) ([]Field, error) {
	out := make([]Field, 0, len(defs))
	for _, fd := range defs {
		t, err := r.resolve(fd.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, Field{Name: fd.FieldName, Type: t})
	}
	return out, nil
}
