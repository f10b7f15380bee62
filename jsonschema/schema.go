// Package jsonschema exports resolved Conjure types as JSON Schema
// (draft 2020-12) documents describing their wire form.
package jsonschema

import (
	"math"

	json "github.com/goccy/go-json"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/codec"
	"github.com/reoring/goconjure/ir"
	"github.com/reoring/goconjure/value"
)

// Dialect is the $schema of generated documents.
const Dialect = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	Dialect string             `json:"$schema,omitempty"`
	Ref     string             `json:"$ref,omitempty"`
	Defs    map[string]*Schema `json:"$defs,omitempty"`

	// Core
	Type    string  `json:"type,omitempty"`
	Format  string  `json:"format,omitempty"`
	Enum    []any   `json:"enum,omitempty"`
	Const   any     `json:"const,omitempty"`
	Not     *Schema `json:"not,omitempty"`
	Minimum *int64  `json:"minimum,omitempty"`
	Maximum *int64  `json:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items       *Schema `json:"items,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// MarshalIndent renders the schema as indented JSON.
func (s *Schema) MarshalIndent() ([]byte, error) { return json.MarshalIndent(s, "", "  ") }

func bound(v int64) *int64 { return &v }

// For builds a document for t. Objects, enums and unions are emitted once
// under $defs, keyed by their qualified name, and referenced from uses.
// Absent collection fields are treated as empty, so only non-optional,
// non-collection fields are required.
func For(t goconjure.Type) *Schema {
	g := &generator{defs: map[string]*Schema{}}
	root := g.schema(t)
	root.Dialect = Dialect
	if len(g.defs) > 0 {
		root.Defs = g.defs
	}
	return root
}

type generator struct {
	defs map[string]*Schema
}

func (g *generator) schema(t goconjure.Type) *Schema {
	switch tt := t.(type) {
	case *goconjure.Primitive:
		return primitive(tt.Type)
	case *goconjure.Optional:
		return &Schema{OneOf: []*Schema{g.schema(tt.Item), {Type: "null"}}}
	case *goconjure.List:
		return &Schema{Type: "array", Items: g.schema(tt.Item)}
	case *goconjure.Set:
		return &Schema{Type: "array", Items: g.schema(tt.Item), UniqueItems: true}
	case *goconjure.Map:
		return &Schema{Type: "object", AdditionalProperties: g.schema(tt.Value)}
	case *goconjure.Enum:
		return g.named(tt.Name, func() *Schema {
			vals := make([]any, len(tt.Values))
			for i, v := range tt.Values {
				vals[i] = v
			}
			return &Schema{Type: "string", Enum: vals}
		})
	case *goconjure.Object:
		return g.named(tt.Name, func() *Schema {
			s := &Schema{Type: "object", Properties: map[string]*Schema{}, AdditionalProperties: false}
			for _, f := range tt.Fields {
				s.Properties[f.WireName] = g.schema(f.Type)
				if f.Type.Kind() != goconjure.KindOptional && !goconjure.IsCollection(f.Type) {
					s.Required = append(s.Required, f.WireName)
				}
			}
			return s
		})
	case *goconjure.Union:
		return g.named(tt.Name, func() *Schema {
			s := &Schema{}
			for _, m := range tt.Members {
				s.OneOf = append(s.OneOf, &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"type":     {Const: m.WireName},
						m.WireName: g.schema(m.Type),
					},
					Required:             []string{"type", m.WireName},
					AdditionalProperties: false,
				})
			}
			return s
		})
	}
	return &Schema{}
}

// named registers the definition on first use and returns a reference.
func (g *generator) named(n ir.TypeName, build func() *Schema) *Schema {
	key := n.String()
	if _, ok := g.defs[key]; !ok {
		g.defs[key] = build()
	}
	return &Schema{Ref: "#/$defs/" + key}
}

func primitive(p ir.PrimitiveType) *Schema {
	switch p {
	case ir.String, ir.RID, ir.BearerToken:
		return &Schema{Type: "string"}
	case ir.Datetime:
		return &Schema{Type: "string", Format: "date-time"}
	case ir.UUID:
		return &Schema{Type: "string", Format: "uuid"}
	case ir.Binary:
		return &Schema{Type: "string", Format: "byte"}
	case ir.Integer:
		return &Schema{Type: "integer", Minimum: bound(math.MinInt32), Maximum: bound(math.MaxInt32)}
	case ir.Safelong:
		return &Schema{Type: "integer", Minimum: bound(-codec.MaxSafelong), Maximum: bound(codec.MaxSafelong)}
	case ir.Double:
		return &Schema{OneOf: []*Schema{
			{Type: "number"},
			{Type: "string", Enum: []any{value.NaNToken, value.PositiveInfinityToken, value.NegativeInfinityToken}},
		}}
	case ir.Boolean:
		return &Schema{Type: "boolean"}
	case ir.Any:
		return &Schema{Not: &Schema{Type: "null"}}
	}
	return &Schema{}
}
