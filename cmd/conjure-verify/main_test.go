package main

import (
	"bytes"
	"strings"
	"testing"
)

const (
	irFixture    = "../../verify/testdata/verification-api.conjure.json"
	casesFixture = "../../verify/testdata/test-cases.yml"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, streams{stdin: strings.NewReader(stdin), stdout: &stdout, stderr: &stderr})
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	if code, _, stderr := runCLI(t, ""); code != 2 || !strings.Contains(stderr, "COMMANDS") {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
	if code, _, stderr := runCLI(t, "", "bogus"); code != 2 || !strings.Contains(stderr, "unknown command: bogus") {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
	if code, _, _ := runCLI(t, "", "decode", "--help"); code != 0 {
		t.Fatalf("--help should exit 0, got %d", code)
	}
}

func TestRun_Resolve(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "resolve", "--ir", irFixture, "--type", "Point")
	if code != 0 {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
	want := "com.example.Point (object)\n  x: integer\n  tags: set<string>\n"
	if stdout != want {
		t.Fatalf("got %q, want %q", stdout, want)
	}

	code, stdout, _ = runCLI(t, "", "resolve", "--ir", irFixture, "-t", `{"type":"map","map":{"keyType":{"type":"reference","reference":{"name":"AliasString","package":"com.example"}},"valueType":{"type":"primitive","primitive":"DOUBLE"}}}`)
	if code != 0 || stdout != "map<string, double> (map)\n" {
		t.Fatalf("code=%d stdout=%q", code, stdout)
	}

	code, stdout, _ = runCLI(t, "", "resolve", "--ir", irFixture, "--type", "Color", "--json-schema")
	if code != 0 || !strings.Contains(stdout, `"$ref": "#/$defs/com.example.Color"`) {
		t.Fatalf("code=%d stdout=%s", code, stdout)
	}

	code, _, stderr = runCLI(t, "", "resolve", "--ir", irFixture, "--type", "Nope")
	if code != 1 || !strings.Contains(stderr, "no type named Nope") {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
}

func TestRun_Decode(t *testing.T) {
	code, stdout, stderr := runCLI(t, `{"tags":["b","a","a"],"x":3}`, "decode", "--ir", irFixture, "--type", "com.example.Point", "--policy", "server")
	if code != 0 {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
	if stdout != `{"tags":["a","b"],"x":3}`+"\n" {
		t.Fatalf("stdout = %q", stdout)
	}

	code, _, stderr = runCLI(t, `{"x":3}`, "decode", "--ir", irFixture, "--type", "Point", "--policy", "server")
	if code != 1 || !strings.Contains(stderr, "required") {
		t.Fatalf("server policy requires collections: code=%d stderr=%s", code, stderr)
	}

	code, _, stderr = runCLI(t, `{"x":1,"x":2}`, "decode", "--ir", irFixture, "--type", "Point", "--duplicate-keys", "error", "--driver", "std")
	if code != 1 || !strings.Contains(stderr, "duplicate") {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}

	code, _, stderr = runCLI(t, `{"tags":["aaaaaaaaaaaaaaaa","bbbbbbbbbbbbbbbb"],"x":3}`, "decode", "--ir", irFixture, "--type", "Point", "--max-bytes", "16")
	if code != 1 || !strings.Contains(stderr, "truncated") {
		t.Fatalf("--max-bytes with the default driver: code=%d stderr=%s", code, stderr)
	}

	code, _, stderr = runCLI(t, `1`, "decode", "--ir", irFixture, "--type", "INTEGER", "--policy", "lax")
	if code != 1 || !strings.Contains(stderr, "unknown --policy") {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
}

func TestRun_Plain(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "plain", "--ir", irFixture, "--type", "Color", "BLUE")
	if code != 0 || stdout != `"BLUE"`+"\n" {
		t.Fatalf("code=%d stdout=%q", code, stdout)
	}
	code, _, stderr := runCLI(t, "", "plain", "--ir", irFixture, "--type", "INTEGER", "1.5")
	if code != 1 || !strings.Contains(stderr, "invalid_format") {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
	code, _, stderr = runCLI(t, "", "plain", "--ir", irFixture, "--type", "INTEGER", "--missing")
	if code != 1 || !strings.Contains(stderr, "required") {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
	if code, _, _ := runCLI(t, "", "plain", "--ir", irFixture, "--type", "INTEGER"); code != 1 {
		t.Fatalf("plain without text should fail, got %d", code)
	}
}

func TestRun_Check(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", "check", "--ir", irFixture, "--cases", casesFixture)
	if code != 0 {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
	if !strings.Contains(stdout, "body   receivePointExample com.example.Point: 2 positive, 3 negative") {
		t.Fatalf("stdout = %s", stdout)
	}
	if !strings.HasSuffix(stdout, "ok: 13 cases\n") {
		t.Fatalf("stdout = %s", stdout)
	}
}

func TestRun_Confirm(t *testing.T) {
	base := []string{"confirm", "--ir", irFixture, "--cases", casesFixture}
	code, stdout, stderr := runCLI(t, `{"x":1,"tags":["a","b"]}`, append(base, "--endpoint", "receivePointExample", "--index", "0")...)
	if code != 0 || stdout != "ok: receivePointExample[0]\n" {
		t.Fatalf("code=%d stdout=%q stderr=%s", code, stdout, stderr)
	}
	code, _, stderr = runCLI(t, `{"x":1}`, append(base, "--endpoint", "receivePointExample", "--index", "0")...)
	if code != 1 || !strings.Contains(stderr, "expected") {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
	code, _, stderr = runCLI(t, "", append(base, "-e", "headerOptionalIntegerExample", "-i", "1")...)
	if code != 0 {
		t.Fatalf("absent header should match null: %s", stderr)
	}
	code, _, stderr = runCLI(t, "", append(base, "-e", "queryEnumExample", "-i", "0", "--param", "GREEN")...)
	if code != 1 || !strings.Contains(stderr, `defined: "RED"`) {
		t.Fatalf("code=%d stderr=%s", code, stderr)
	}
}

func TestRun_JSONErrors(t *testing.T) {
	code, _, stderr := runCLI(t, `{"x":1}`, "confirm", "--ir", irFixture, "--cases", casesFixture,
		"--endpoint", "receivePointExample", "--index", "0", "--json-errors")
	if code != 1 {
		t.Fatalf("code=%d", code)
	}
	for _, want := range []string{`"errorCode":"INVALID_ARGUMENT"`, `"errorName":"ConjureVerification:ConfirmationFailure"`, `"endpoint":"receivePointExample"`} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("stderr %s missing %s", stderr, want)
		}
	}
}
