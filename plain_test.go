package goconjure_test

import (
	"testing"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/ir"
	"github.com/reoring/goconjure/value"
)

func TestDecodePlain_Primitives(t *testing.T) {
	cases := []struct {
		typ  ir.PrimitiveType
		in   string
		want value.Value
	}{
		{ir.String, "hello world", value.String("hello world")},
		{ir.Integer, "42", value.Integer(42)},
		{ir.Double, "1.25", value.NewDouble(1.25)},
		{ir.Double, "-3e2", value.NewDouble(-300)},
		{ir.Double, "NaN", value.NaN()},
		{ir.Double, "PositiveInfinity", value.PositiveInfinity()},
		{ir.Boolean, "false", value.Boolean(false)},
		{ir.Safelong, "-9007199254740991", value.Safelong(-9007199254740991)},
		{ir.Binary, "AAEC", value.Binary{0, 1, 2}},
		{ir.RID, "ri.x.y.z.w", value.RID("ri.x.y.z.w")},
		{ir.BearerToken, "secret", value.BearerToken("secret")},
	}
	for _, tc := range cases {
		t.Run(string(tc.typ)+" "+tc.in, func(t *testing.T) {
			got, err := goconjure.DecodePlain(prim(tc.typ), tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if !value.Equal(got, tc.want) {
				t.Fatalf("got %s, want %s", value.Render(got), value.Render(tc.want))
			}
		})
	}
}

func TestDecodePlain_Errors(t *testing.T) {
	cases := []struct {
		typ  goconjure.Type
		in   string
		code string
	}{
		{prim(ir.Integer), "4.2", goconjure.CodeInvalidFormat},
		{prim(ir.Integer), "99999999999", goconjure.CodeOverflow},
		{prim(ir.Boolean), "True", goconjure.CodeInvalidFormat},
		{prim(ir.Double), "Infinity", goconjure.CodeInvalidFormat},
		{prim(ir.UUID), "{0db2a3c8-2f0a-4b6f-9d2b-5d1c9a1e7f00}", goconjure.CodeInvalidFormat},
		{prim(ir.Any), "x", goconjure.CodeUnsupportedPlainType},
		{&goconjure.List{Item: prim(ir.String)}, "x", goconjure.CodeUnsupportedPlainType},
		{&goconjure.Optional{Item: &goconjure.Set{Item: prim(ir.String)}}, "x", goconjure.CodeUnsupportedPlainType},
		{&goconjure.Map{Key: ir.String, Value: prim(ir.String)}, "x", goconjure.CodeUnsupportedPlainType},
	}
	for _, tc := range cases {
		t.Run(tc.typ.String()+" "+tc.in, func(t *testing.T) {
			_, err := goconjure.DecodePlain(tc.typ, tc.in)
			expectCode(t, err, tc.code)
		})
	}
}

func TestDecodePlain_ObjectAndUnionUnsupported(t *testing.T) {
	for _, name := range []string{"Foo", "Shape"} {
		typ := mustResolve(t, ref(name))
		_, err := goconjure.DecodePlain(typ, "x")
		it := expectCode(t, err, goconjure.CodeUnsupportedPlainType)
		if it.Params["type"] != "com.example."+name {
			t.Fatalf("type param = %v", it.Params["type"])
		}
	}
}

func TestDecodePlain_EnumIsLenient(t *testing.T) {
	color := mustResolve(t, ref("Color"))
	known, err := goconjure.DecodePlain(color, "RED")
	if err != nil || !value.Equal(known, value.Enum{Value: "RED"}) {
		t.Fatalf("known: %v %v", known, err)
	}
	unknown, err := goconjure.DecodePlain(color, "BLUE")
	if err != nil {
		t.Fatalf("plain enum must accept unknown values: %v", err)
	}
	if e := unknown.(value.Enum); !e.Unknown || e.Value != "BLUE" {
		t.Fatalf("expected unknown marker, got %+v", e)
	}
	if _, err := goconjure.Decode(color, []byte(`"BLUE"`)); !goconjure.HasCode(err, goconjure.CodeInvalidEnum) {
		t.Fatalf("JSON decoding stays strict, got %v", err)
	}
}

func TestDecodePlain_Optional(t *testing.T) {
	typ := &goconjure.Optional{Item: prim(ir.Integer)}
	got, err := goconjure.DecodePlain(typ, "5")
	if err != nil || !value.Equal(got, value.Some(value.Integer(5))) {
		t.Fatalf("got %v %v", got, err)
	}
	missing, err := goconjure.DecodePlainMissing(typ)
	if err != nil || !value.Equal(missing, value.None()) {
		t.Fatalf("missing optional: %v %v", missing, err)
	}
	if _, err := goconjure.DecodePlainMissing(prim(ir.Integer)); !goconjure.HasCode(err, goconjure.CodeRequired) {
		t.Fatalf("missing integer should be required, got %v", err)
	}
}
