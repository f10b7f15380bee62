package goconjure_test

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/ir"
)

// ---- Helpers ----

func benchDefs() []ir.TypeDefinition {
	return []ir.TypeDefinition{
		ir.ObjectDefinition{TypeName: tn("Meta"), Fields: []ir.FieldDefinition{
			{FieldName: "score", Type: ir.Double},
		}},
		ir.ObjectDefinition{TypeName: tn("User"), Fields: []ir.FieldDefinition{
			{FieldName: "id", Type: ir.String},
			{FieldName: "name", Type: ir.Optional{ItemType: ir.String}},
			{FieldName: "age", Type: ir.Integer},
			{FieldName: "active", Type: ir.Boolean},
			{FieldName: "meta", Type: ref("Meta")},
			{FieldName: "tags", Type: ir.Set{ItemType: ir.String}},
		}},
	}
}

func benchType(tb testing.TB, t ir.Type) goconjure.Type {
	tb.Helper()
	typ, err := goconjure.Resolve(benchDefs(), t)
	if err != nil {
		tb.Fatalf("resolve: %v", err)
	}
	return typ
}

func smallUserJSON() []byte {
	return []byte(`{"id":"u_1","name":"alice","age":30,"active":true,"meta":{"score":1.5},"tags":["a","b"]}`)
}

// generateUsers returns a JSON array of numObjects users, each carrying
// extraFields unknown keys.
func generateUsers(numObjects, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (96 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"id":"obj_%d","name":"n%d","age":%d,"active":%t,"meta":{"score":%d},"tags":["t%d"]`, i, i, i, i%2 == 0, i, i%7)
		for k := 0; k < extraFields; k++ {
			buf.WriteString(`,"k`)
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString(`":"v`)
			buf.WriteString(strconv.Itoa(i))
			buf.WriteString(`"`)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

var drivers = []struct {
	name string
	d    goconjure.JSONDriver
}{
	{"gojson", goconjure.GoJSONDriver()},
	{"std", goconjure.StdJSONDriver()},
}

// ---- Benchmarks ----

func BenchmarkDecode_SmallObject(b *testing.B) {
	typ := benchType(b, ref("User"))
	data := smallUserJSON()
	for _, drv := range drivers {
		b.Run(drv.name, func(b *testing.B) {
			goconjure.SetJSONDriver(drv.d)
			defer goconjure.UseDefaultJSONDriver()
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				if _, err := goconjure.Decode(typ, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecode_UserList(b *testing.B) {
	typ := benchType(b, ir.List{ItemType: ref("User")})
	data := generateUsers(1000, 8)
	for _, drv := range drivers {
		b.Run(drv.name+"/bytes", func(b *testing.B) {
			goconjure.SetJSONDriver(drv.d)
			defer goconjure.UseDefaultJSONDriver()
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				if _, err := goconjure.Decode(typ, data, goconjure.ClientOpt()); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(drv.name+"/reader", func(b *testing.B) {
			goconjure.SetJSONDriver(drv.d)
			defer goconjure.UseDefaultJSONDriver()
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				src := goconjure.JSONReader(bytes.NewReader(data))
				if _, err := goconjure.DecodeFrom(typ, src, goconjure.ClientOpt()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecodePlain(b *testing.B) {
	cases := []struct {
		name string
		typ  ir.PrimitiveType
		in   string
	}{
		{"integer", ir.Integer, "123456"},
		{"double", ir.Double, "3.14159"},
		{"datetime", ir.Datetime, "2020-01-02T03:04:05.123Z"},
		{"uuid", ir.UUID, "0db2a3c8-2f0a-4b6f-9d2b-5d1c9a1e7f00"},
	}
	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			typ := prim(tc.typ)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := goconjure.DecodePlain(typ, tc.in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// TestGenerateUsers_Decodes keeps the benchmark input honest: unknown keys
// are rejected under the zero policy and stripped under ClientOpt.
func TestGenerateUsers_Decodes(t *testing.T) {
	typ := benchType(t, ir.List{ItemType: ref("User")})
	data := generateUsers(3, 2)
	if _, err := goconjure.Decode(typ, data); !goconjure.HasCode(err, goconjure.CodeUnknownKey) {
		t.Fatalf("expected unknown_key, got %v", err)
	}
	if _, err := goconjure.Decode(typ, data, goconjure.ClientOpt()); err != nil {
		t.Fatalf("ClientOpt: %v", err)
	}
	if _, err := goconjure.Decode(typ, generateUsers(3, 0)); err != nil {
		t.Fatalf("no extras: %v", err)
	}
}
