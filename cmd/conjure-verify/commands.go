package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/spf13/pflag"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/ir"
	"github.com/reoring/goconjure/jsonschema"
	"github.com/reoring/goconjure/value"
	"github.com/reoring/goconjure/verify"
)

var errHelp = errors.New("help requested")

// common are the flags shared by every command.
type common struct {
	irPath     string
	driver     string
	verbose    bool
	jsonErrors bool
}

func (c *common) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.irPath, "ir", "", "path to a Conjure IR document (.json, .jsonc, .yml)")
	fs.StringVar(&c.driver, "driver", "gojson", "JSON tokenizer: gojson or std (std reports byte offsets)")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")
	fs.BoolVar(&c.jsonErrors, "json-errors", false, "print errors as Conjure serializable error JSON")
}

func (c *common) setup(s streams) (*slog.Logger, error) {
	*s.jsonErrors = c.jsonErrors
	switch c.driver {
	case "gojson":
		goconjure.UseDefaultJSONDriver()
	case "std":
		goconjure.SetJSONDriver(goconjure.StdJSONDriver())
	default:
		return nil, fmt.Errorf("unknown --driver %q (want gojson or std)", c.driver)
	}
	return newLogger(s.stderr, c.verbose), nil
}

func (c *common) load(logger *slog.Logger) (*ir.Conjure, *goconjure.Resolver, error) {
	if c.irPath == "" {
		return nil, nil, errors.New("--ir is required")
	}
	doc, err := ir.Load(c.irPath)
	if err != nil {
		return nil, nil, err
	}
	r, err := goconjure.NewResolver(doc.Types)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", c.irPath, err)
	}
	logger.Debug("loaded ir", "path", c.irPath, "types", len(doc.Types), "services", len(doc.Services))
	return doc, r, nil
}

// policy holds the decoding flags of decode and confirm.
type policy struct {
	preset        string
	duplicateKeys string
	maxDepth      int
	maxBytes      int64
}

func (p *policy) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&p.preset, "policy", "strict", "decode policy: strict, server or client")
	fs.StringVar(&p.duplicateKeys, "duplicate-keys", "ignore", "raw duplicate JSON keys: ignore, warn or error")
	fs.IntVar(&p.maxDepth, "max-depth", 0, "maximum nesting depth (0 = unlimited)")
	fs.Int64Var(&p.maxBytes, "max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
}

func (p *policy) options(logger *slog.Logger) (goconjure.DecodeOpt, error) {
	var opt goconjure.DecodeOpt
	switch p.preset {
	case "strict":
	case "server":
		opt = goconjure.ServerOpt()
	case "client":
		opt = goconjure.ClientOpt()
	default:
		return opt, fmt.Errorf("unknown --policy %q (want strict, server or client)", p.preset)
	}
	switch p.duplicateKeys {
	case "ignore":
		opt.DuplicateKeys = goconjure.Ignore
	case "warn":
		opt.DuplicateKeys = goconjure.Warn
	case "error":
		opt.DuplicateKeys = goconjure.Error
	default:
		return opt, fmt.Errorf("unknown --duplicate-keys %q (want ignore, warn or error)", p.duplicateKeys)
	}
	opt.MaxDepth = p.maxDepth
	opt.MaxBytes = p.maxBytes
	opt.OnWarning = func(it goconjure.Issue) {
		logger.Warn(it.Message, "code", it.Code, "path", it.Path)
	}
	return opt, nil
}

func parse(fs *pflag.FlagSet, args []string, s streams) error {
	fs.SetOutput(s.stderr)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func resolveCmd(args []string, s streams) error {
	var c common
	var typeArg string
	var schema bool
	fs := pflag.NewFlagSet("resolve", pflag.ContinueOnError)
	c.addFlags(fs)
	fs.StringVarP(&typeArg, "type", "t", "", "type to resolve")
	fs.BoolVar(&schema, "json-schema", false, "print the wire form as a JSON Schema document")
	if err := parse(fs, args, s); err != nil {
		return err
	}
	logger, err := c.setup(s)
	if err != nil {
		return err
	}
	doc, r, err := c.load(logger)
	if err != nil {
		return err
	}
	t, err := lookupType(doc, r, typeArg)
	if err != nil {
		return err
	}
	if schema {
		b, err := jsonschema.For(t).MarshalIndent()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.stdout, "%s\n", b)
		return nil
	}
	fmt.Fprint(s.stdout, describe(t))
	return nil
}

func decodeCmd(args []string, s streams) error {
	var c common
	var p policy
	var typeArg, file string
	fs := pflag.NewFlagSet("decode", pflag.ContinueOnError)
	c.addFlags(fs)
	p.addFlags(fs)
	fs.StringVarP(&typeArg, "type", "t", "", "type of the payload")
	fs.StringVarP(&file, "file", "f", "", "payload file (default: stdin)")
	if err := parse(fs, args, s); err != nil {
		return err
	}
	logger, err := c.setup(s)
	if err != nil {
		return err
	}
	doc, r, err := c.load(logger)
	if err != nil {
		return err
	}
	t, err := lookupType(doc, r, typeArg)
	if err != nil {
		return err
	}
	opt, err := p.options(logger)
	if err != nil {
		return err
	}
	in, closeIn, err := openInput(file, s)
	if err != nil {
		return err
	}
	defer closeIn()

	v, err := goconjure.DecodeFrom(t, goconjure.JSONReader(in), opt)
	if err != nil {
		return err
	}
	out, err := value.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.stdout, "%s\n", out)
	return nil
}

func plainCmd(args []string, s streams) error {
	var c common
	var typeArg string
	var missing bool
	fs := pflag.NewFlagSet("plain", pflag.ContinueOnError)
	c.addFlags(fs)
	fs.StringVarP(&typeArg, "type", "t", "", "type of the value")
	fs.BoolVar(&missing, "missing", false, "decode an absent value instead of <text>")
	if err := parse(fs, args, s); err != nil {
		return err
	}
	if missing == (fs.NArg() == 1) || fs.NArg() > 1 {
		return errors.New("plain takes exactly one <text> argument, or --missing")
	}
	logger, err := c.setup(s)
	if err != nil {
		return err
	}
	doc, r, err := c.load(logger)
	if err != nil {
		return err
	}
	t, err := lookupType(doc, r, typeArg)
	if err != nil {
		return err
	}
	var v value.Value
	if missing {
		v, err = goconjure.DecodePlainMissing(t)
	} else {
		v, err = goconjure.DecodePlain(t, fs.Arg(0))
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(s.stdout, value.Render(v))
	return nil
}

// suiteFlags are the flags of check and confirm.
type suiteFlags struct {
	common
	cases string
	p     policy
}

func (f *suiteFlags) addFlags(fs *pflag.FlagSet) {
	f.common.addFlags(fs)
	f.p.addFlags(fs)
	fs.StringVar(&f.cases, "cases", "", "path to a test-case suite (.json, .yml)")
}

func (f *suiteFlags) resolve(logger *slog.Logger) (*verify.Resolved, goconjure.DecodeOpt, error) {
	opt, err := f.p.options(logger)
	if err != nil {
		return nil, opt, err
	}
	doc, r, err := f.load(logger)
	if err != nil {
		return nil, opt, err
	}
	if f.cases == "" {
		return nil, opt, errors.New("--cases is required")
	}
	eps, err := verify.MapEndpoints(doc, r)
	if err != nil {
		return nil, opt, fmt.Errorf("%s: %w", f.irPath, err)
	}
	suite, err := verify.LoadSuite(f.cases)
	if err != nil {
		return nil, opt, err
	}
	logger.Debug("loaded test cases", "path", f.cases, "endpoints", len(eps))
	res, err := verify.Resolve(suite, eps, opt)
	return res, opt, err
}

func checkCmd(args []string, s streams) error {
	var f suiteFlags
	fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
	f.addFlags(fs)
	if err := parse(fs, args, s); err != nil {
		return err
	}
	logger, err := f.setup(s)
	if err != nil {
		return err
	}
	res, _, err := f.resolve(logger)
	if err != nil {
		return err
	}
	groups := []struct {
		name  string
		cases map[string]*verify.Cases
	}{
		{"body", res.Body},
		{"path", res.Path},
		{"query", res.Query},
		{"header", res.Header},
	}
	total := 0
	for _, g := range groups {
		for _, name := range slices.Sorted(maps.Keys(g.cases)) {
			c := g.cases[name]
			fmt.Fprintf(s.stdout, "%-6s %s %s: %d positive, %d negative\n", g.name, name, c.Endpoint.Type, len(c.Positive), len(c.Negative))
			total += c.Len()
		}
	}
	fmt.Fprintf(s.stdout, "ok: %d cases\n", total)
	return nil
}

func confirmCmd(args []string, s streams) error {
	var f suiteFlags
	var endpoint, file, param string
	var index int
	fs := pflag.NewFlagSet("confirm", pflag.ContinueOnError)
	f.addFlags(fs)
	fs.StringVarP(&endpoint, "endpoint", "e", "", "endpoint name")
	fs.IntVarP(&index, "index", "i", 0, "case index")
	fs.StringVarP(&file, "file", "f", "", "received body (default: stdin)")
	fs.StringVar(&param, "param", "", "received parameter value; omit for an absent parameter")
	if err := parse(fs, args, s); err != nil {
		return err
	}
	if endpoint == "" {
		return errors.New("--endpoint is required")
	}
	logger, err := f.setup(s)
	if err != nil {
		return err
	}
	res, opt, err := f.resolve(logger)
	if err != nil {
		return err
	}
	c, err := res.Lookup(endpoint)
	if err != nil {
		return err
	}
	if c.Endpoint.Category != verify.Body {
		var p *string
		if fs.Changed("param") {
			p = &param
		}
		if err := res.ConfirmParam(endpoint, index, p); err != nil {
			return err
		}
	} else {
		in, closeIn, err := openInput(file, s)
		if err != nil {
			return err
		}
		defer closeIn()
		body, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		if err := res.Confirm(endpoint, index, body, opt); err != nil {
			return err
		}
	}
	fmt.Fprintf(s.stdout, "ok: %s[%d]\n", endpoint, index)
	return nil
}

func openInput(path string, s streams) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return s.stdin, func() {}, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return fh, func() { fh.Close() }, nil
}
