package casing

import (
	"reflect"
	"testing"
)

func TestCamel(t *testing.T) {
	cases := map[string]string{
		"fieldName":    "fieldName",
		"field_name":   "fieldName",
		"field-name":   "fieldName",
		"FieldName":    "fieldName",
		"missing_list": "missingList",
		"HTTPServer":   "httpServer",
		"value2_x":     "value2X",
		"x":            "x",
	}
	for in, want := range cases {
		if got := Camel(in); got != want {
			t.Errorf("Camel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPascal(t *testing.T) {
	cases := map[string]string{
		"unknown_key":           "UnknownKey",
		"discriminator_missing": "DiscriminatorMissing",
		"fieldName":             "FieldName",
		"x":                     "X",
	}
	for in, want := range cases {
		if got := Pascal(in); got != want {
			t.Errorf("Pascal(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWords(t *testing.T) {
	got := Words("parseJSONValue_fast")
	want := []string{"parse", "json", "value", "fast"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Words: got %v want %v", got, want)
	}
}
