package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	data := map[string]string{"expected": "string", "got": "number"}
	// default is en
	if msg := T("invalid_type", data); msg != "invalid type: expected string, got number" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", data); msg == "invalid type: expected string, got number" || msg == "invalid_type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// unsupported languages fall back to en
	SetLanguage("fr")
	if msg := T("truncated", nil); msg != "unexpected end of input" {
		t.Fatalf("expected english fallback, got %q", msg)
	}
	SetLanguage("en")
}

func TestTranslator_UnknownCodeEchoesCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("got %q", msg)
	}
}

func TestTranslator_CatalogsCoverSameCodes(t *testing.T) {
	for code := range catalogs["en"] {
		if _, ok := catalogs["ja"][code]; !ok {
			t.Errorf("ja catalog missing %q", code)
		}
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T("required", nil); msg != "X:required" {
		t.Fatalf("got %q", msg)
	}
}
