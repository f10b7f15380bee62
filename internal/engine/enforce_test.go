package engine_test

import (
	"errors"
	"io"
	"reflect"
	"testing"

	eng "github.com/reoring/goconjure/internal/engine"
	"github.com/reoring/goconjure/source/gojson"
	jsonsrc "github.com/reoring/goconjure/source/json"
)

func drain(src eng.TokenSource) error {
	for {
		if _, err := src.NextToken(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func TestEnforce_DuplicateKey_NestedPath(t *testing.T) {
	src := eng.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`[{"a":1,"a":2}]`)), eng.EnforceOptions{OnDuplicate: eng.DupError})
	err := drain(src)
	var ie eng.IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %v", err)
	}
	if ie.Code != "duplicate_key" || ie.Path != "/0/a" {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}
}

func TestEnforce_DuplicateKey_WarnForwardsToSink(t *testing.T) {
	var got []eng.SimpleIssue
	src := eng.WrapWithEnforcement(gojson.NewBytes([]byte(`{"a":1,"b":{"c":1,"c":2}}`)), eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink:   func(si eng.SimpleIssue) { got = append(got, si) },
	})
	if err := drain(src); err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if len(got) != 1 || got[0].Path != "/b/c" {
		t.Fatalf("expected one warning at /b/c, got %+v", got)
	}
}

func TestEnforce_MaxDepth(t *testing.T) {
	src := eng.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`{"a":{"b":{"c":1}}}`)), eng.EnforceOptions{MaxDepth: 2})
	err := drain(src)
	var ie eng.IssueError
	if !errors.As(err, &ie) || ie.Path != "/a/b" {
		t.Fatalf("expected depth issue at /a/b, got %v", err)
	}
}

func TestEnforce_MaxBytes(t *testing.T) {
	in := []byte(`["aaaaaaaaaaaaaaaaaaaa","bbbbbbbbbbbbbbbbbbbbbbbbbbbb"]`)
	for name, open := range map[string]func([]byte) eng.TokenSource{"std": jsonsrc.NewBytes, "gojson": gojson.NewBytes} {
		err := drain(eng.WrapWithEnforcement(open(in), eng.EnforceOptions{MaxBytes: 8}))
		var ie eng.IssueError
		if !errors.As(err, &ie) || ie.Code != "truncated" {
			t.Fatalf("%s: expected truncated issue, got %v", name, err)
		}
		if err := drain(eng.WrapWithEnforcement(open(in), eng.EnforceOptions{MaxBytes: int64(len(in))})); err != nil {
			t.Fatalf("%s: input within limit: %v", name, err)
		}
	}
}

func TestSkipValue_LeavesStreamAfterSubtree(t *testing.T) {
	src := gojson.NewBytes([]byte(`[{"x":[1,{"y":null}]},"after"]`))
	if _, err := src.NextToken(); err != nil { // [
		t.Fatal(err)
	}
	first, err := src.NextToken()
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.SkipValue(src, first); err != nil {
		t.Fatalf("skip: %v", err)
	}
	tok, err := src.NextToken()
	if err != nil || tok.Kind != eng.KindString || tok.String != "after" {
		t.Fatalf("expected string after skipped subtree, got %+v err=%v", tok, err)
	}
}

func TestDecodeAnyFromSource(t *testing.T) {
	got, err := eng.DecodeAnyFromSource(gojson.NewBytes([]byte(`{"a":[1,"x",true,null],"b":{}}`)))
	if err != nil {
		t.Fatal(err)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", got)
	}
	arr, ok := m["a"].([]any)
	if !ok || len(arr) != 4 || arr[1] != "x" || arr[2] != true || arr[3] != nil {
		t.Fatalf("unexpected array: %#v", m["a"])
	}
	if !reflect.DeepEqual(m["b"], map[string]any{}) {
		t.Fatalf("unexpected object: %#v", m["b"])
	}
}

func TestDecodeAnyFromSource_Truncated(t *testing.T) {
	_, err := eng.DecodeAnyFromSource(jsonsrc.NewBytes([]byte(`{"a":[1,2`)))
	if err == nil {
		t.Fatalf("expected error for truncated input")
	}
}
