package goconjure_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/ir"
	"github.com/reoring/goconjure/value"
)

type color string

func (c color) ConjureEnum() string { return string(c) }

type shape struct {
	circle *float64
	foo    *fooRecord
}

func (s shape) ConjureUnion() (string, any) {
	if s.circle != nil {
		return "circle", *s.circle
	}
	return "foo", s.foo
}

type fooRecord struct {
	Bar     string
	TagList []string `conjure:"tagList"`
	Color   *color
	Ignored string `json:"-"`
	hidden  int
}

type everything struct {
	Shape   shape
	Weights map[float64][]int64
	When    *time.Time
	Blob    []byte
	ID      uuid.UUID `json:"id"`
	Extra   *float64
}

func TestMarshal_Object(t *testing.T) {
	red := color("RED")
	got, err := goconjure.Marshal(fooRecord{Bar: "b", Color: &red, Ignored: "x", hidden: 1})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"bar":"b","tagList":[],"color":"RED"}`; string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	got, err = goconjure.Marshal(fooRecord{Bar: "b", TagList: []string{"x"}})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"bar":"b","tagList":["x"],"color":null}`; string(got) != want {
		t.Fatalf("absent optionals are written as null: got %s", got)
	}
}

func TestMarshal_UnionKeyOrder(t *testing.T) {
	r := 2.5
	got, err := goconjure.Marshal(shape{circle: &r})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"type":"circle","circle":2.5}`; string(got) != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestMarshal_Scalars(t *testing.T) {
	when := time.Date(2020, 5, 6, 7, 8, 9, 0, time.FixedZone("", 9*3600))
	cases := []struct {
		in   any
		want string
	}{
		{math.NaN(), `"NaN"`},
		{math.Inf(1), `"PositiveInfinity"`},
		{math.Inf(-1), `"NegativeInfinity"`},
		{1.5, `1.5`},
		{int32(-4), `-4`},
		{true, `true`},
		{"a\"b", `"a\"b"`},
		{[]byte{0, 1, 2}, `"AAEC"`},
		{when, `"2020-05-06T07:08:09+09:00"`},
		{uuid.MustParse("0db2a3c8-2f0a-4b6f-9d2b-5d1c9a1e7f00"), `"0db2a3c8-2f0a-4b6f-9d2b-5d1c9a1e7f00"`},
		{map[int]string{10: "x", 2: "y"}, `{"10":"x","2":"y"}`},
		{map[string]int(nil), `{}`},
		{nil, `null`},
		{value.Some(value.Integer(3)), `3`},
	}
	for _, tc := range cases {
		got, err := goconjure.Marshal(tc.in)
		if err != nil {
			t.Fatalf("%v: %v", tc.in, err)
		}
		if string(got) != tc.want {
			t.Fatalf("%#v: got %s, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := goconjure.Marshal(make(chan int)); err == nil {
		t.Fatalf("expected error for channel")
	}
}

// TestMarshal_DecodesBack checks that statically encoded values decode
// against the matching resolved type.
func TestMarshal_DecodesBack(t *testing.T) {
	defs := append(sampleDefs(),
		ir.ObjectDefinition{TypeName: tn("Everything"), Fields: []ir.FieldDefinition{
			{FieldName: "shape", Type: ref("Shape")},
			{FieldName: "weights", Type: ir.Map{KeyType: ir.Double, ValueType: ir.List{ItemType: ir.Safelong}}},
			{FieldName: "when", Type: ir.Optional{ItemType: ir.Datetime}},
			{FieldName: "blob", Type: ir.Binary},
			{FieldName: "id", Type: ir.UUID},
			{FieldName: "extra", Type: ir.Optional{ItemType: ir.Double}},
		}},
	)
	typ := mustResolve(t, ref("Everything"), defs...)

	green := color("GREEN")
	when := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	inf := math.Inf(1)
	in := everything{
		Shape:   shape{foo: &fooRecord{Bar: "b", TagList: []string{"t"}, Color: &green}},
		Weights: map[float64][]int64{math.NaN(): {1, 2}, 0.5: nil},
		When:    &when,
		Blob:    []byte("hi"),
		ID:      uuid.MustParse("0db2a3c8-2f0a-4b6f-9d2b-5d1c9a1e7f00"),
		Extra:   &inf,
	}
	wire, err := goconjure.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	v, err := goconjure.Decode(typ, wire)
	if err != nil {
		t.Fatalf("decode %s: %v", wire, err)
	}
	obj := v.(value.Object)
	if !value.Equal(obj["extra"], value.Some(value.PositiveInfinity())) {
		t.Fatalf("extra = %s", value.Render(obj["extra"]))
	}
	u := obj["shape"].(value.Union)
	if u.Field != "foo" {
		t.Fatalf("union member = %q", u.Field)
	}
	weights := obj["weights"].(*value.Map)
	if l, ok := weights.Get(value.NaN()); !ok || !value.Equal(l, value.List{value.Safelong(1), value.Safelong(2)}) {
		t.Fatalf("weights = %s", value.Render(weights))
	}

	// the dynamic encoder produces the same logical value
	again, err := value.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := goconjure.Decode(typ, again)
	if err != nil || !value.Equal(v, v2) {
		t.Fatalf("dynamic round trip: %v\n%s\n%s", err, wire, again)
	}
}
