// conjure-verify resolves Conjure IR types and checks payloads and test-case
// suites against them.
//
// Usage:
//
//	conjure-verify resolve --ir api.conjure.json --type com.example.Foo
//	conjure-verify decode  --ir api.conjure.json --type com.example.Foo [--file body.json]
//	conjure-verify plain   --ir api.conjure.json --type com.example.Color <text>
//	conjure-verify check   --ir verification-api.conjure.json --cases test-cases.yml
//	conjure-verify confirm --ir ... --cases ... --endpoint E --index N [--file body.json | --param P]
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reoring/goconjure/i18n"
	"github.com/reoring/goconjure/verify"
)

// streams bundles the process streams so commands can be run from tests.
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// jsonErrors is set by --json-errors once a command has parsed its flags.
	jsonErrors *bool
}

func main() {
	if lang := os.Getenv("CONJURE_VERIFY_LANG"); lang != "" {
		i18n.SetLanguage(lang)
	}
	os.Exit(run(os.Args[1:], streams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}))
}

func run(args []string, s streams) int {
	if len(args) < 1 {
		printUsage(s.stderr)
		return 2
	}
	cmd, rest := args[0], args[1:]
	if s.jsonErrors == nil {
		s.jsonErrors = new(bool)
	}

	var err error
	switch cmd {
	case "resolve":
		err = resolveCmd(rest, s)
	case "decode":
		err = decodeCmd(rest, s)
	case "plain":
		err = plainCmd(rest, s)
	case "check":
		err = checkCmd(rest, s)
	case "confirm":
		err = confirmCmd(rest, s)
	case "help", "--help", "-h":
		printUsage(s.stdout)
		return 0
	default:
		fmt.Fprintf(s.stderr, "unknown command: %s\n\n", cmd)
		printUsage(s.stderr)
		return 2
	}
	if err == errHelp {
		return 0
	}
	if err != nil {
		printError(s, err)
		return 1
	}
	return 0
}

func printError(s streams, err error) {
	if *s.jsonErrors {
		if b, merr := verify.Serializable(err).Marshal(); merr == nil {
			fmt.Fprintf(s.stderr, "%s\n", b)
			return
		}
	}
	fmt.Fprintf(s.stderr, "error: %v\n", err)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `conjure-verify - check payloads against Conjure IR types

USAGE
    conjure-verify <command> [flags]

COMMANDS
    resolve    Print the resolved form of a type
    decode     Decode a JSON payload and print its canonical form
    plain      Decode a path, query or header value
    check      Resolve a test-case suite against the verification services
    confirm    Compare a received body or parameter with a test case

TYPES
    --type takes a qualified name (com.example.Foo), a simple name when it
    is unique in the IR, a primitive (STRING, DATETIME, ...) or an IR type
    expression in JSON.

ERRORS
    --json-errors prints failures as Conjure serializable errors.

ENVIRONMENT
    CONJURE_VERIFY_LANG    message language (en, ja)

Run "conjure-verify <command> --help" for the flags of a command.
`)
}
