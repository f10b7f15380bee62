package jsonschema_test

import (
	"strings"
	"testing"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/ir"
	"github.com/reoring/goconjure/jsonschema"
)

func tn(name string) ir.TypeName { return ir.TypeName{Name: name, Package: "com.example"} }

func resolve(t *testing.T, typ ir.Type) goconjure.Type {
	t.Helper()
	defs := []ir.TypeDefinition{
		ir.EnumDefinition{TypeName: tn("Color"), Values: []string{"RED", "GREEN"}},
		ir.ObjectDefinition{TypeName: tn("Foo"), Fields: []ir.FieldDefinition{
			{FieldName: "bar", Type: ir.String},
			{FieldName: "tag_list", Type: ir.List{ItemType: ir.String}},
			{FieldName: "color", Type: ir.Optional{ItemType: ir.Reference(tn("Color"))}},
		}},
		ir.UnionDefinition{TypeName: tn("Shape"), Union: []ir.FieldDefinition{
			{FieldName: "circle", Type: ir.Double},
			{FieldName: "foo", Type: ir.Reference(tn("Foo"))},
		}},
	}
	out, err := goconjure.Resolve(defs, typ)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestFor_Object(t *testing.T) {
	s := jsonschema.For(resolve(t, ir.Reference(tn("Foo"))))
	if s.Dialect != jsonschema.Dialect || s.Ref != "#/$defs/com.example.Foo" {
		t.Fatalf("root = %+v", s)
	}
	foo := s.Defs["com.example.Foo"]
	if foo == nil || foo.Type != "object" {
		t.Fatalf("missing Foo definition: %+v", s.Defs)
	}
	if strings.Join(foo.Required, ",") != "bar" {
		t.Fatalf("only bar is required, got %v", foo.Required)
	}
	if _, ok := foo.Properties["tagList"]; !ok {
		t.Fatalf("properties use wire names: %v", foo.Properties)
	}
	color := foo.Properties["color"]
	if len(color.OneOf) != 2 || color.OneOf[0].Ref != "#/$defs/com.example.Color" || color.OneOf[1].Type != "null" {
		t.Fatalf("optional enum = %+v", color)
	}
	if len(s.Defs["com.example.Color"].Enum) != 2 {
		t.Fatalf("enum values missing")
	}
	if foo.AdditionalProperties != false {
		t.Fatalf("objects are closed")
	}
}

func TestFor_UnionSharesDefinitions(t *testing.T) {
	s := jsonschema.For(resolve(t, ir.List{ItemType: ir.Reference(tn("Shape"))}))
	if s.Type != "array" || s.Items.Ref != "#/$defs/com.example.Shape" {
		t.Fatalf("root = %+v", s)
	}
	if len(s.Defs) != 3 {
		t.Fatalf("expected Shape, Foo and Color once each, got %d", len(s.Defs))
	}
	shape := s.Defs["com.example.Shape"]
	if len(shape.OneOf) != 2 {
		t.Fatalf("one branch per member, got %d", len(shape.OneOf))
	}
	circle := shape.OneOf[0]
	if circle.Properties["type"].Const != "circle" || strings.Join(circle.Required, ",") != "type,circle" {
		t.Fatalf("circle branch = %+v", circle)
	}
}

func TestFor_PrimitivesAndCollections(t *testing.T) {
	s := jsonschema.For(resolve(t, ir.Map{KeyType: ir.String, ValueType: ir.Set{ItemType: ir.Safelong}}))
	set, ok := s.AdditionalProperties.(*jsonschema.Schema)
	if !ok || !set.UniqueItems || set.Items.Type != "integer" || *set.Items.Maximum != 1<<53-1 {
		t.Fatalf("map of sets = %+v", s)
	}
	d := jsonschema.For(resolve(t, ir.Double))
	if len(d.OneOf) != 2 || d.OneOf[1].Enum[0] != "NaN" {
		t.Fatalf("double = %+v", d)
	}
	b, err := jsonschema.For(resolve(t, ir.Datetime)).MarshalIndent()
	if err != nil || !strings.Contains(string(b), `"format": "date-time"`) {
		t.Fatalf("marshal: %s %v", b, err)
	}
}
