package goconjure

import (
	"io"
	"sync"

	eng "github.com/reoring/goconjure/internal/engine"
	"github.com/reoring/goconjure/source/gojson"
	jsonsrc "github.com/reoring/goconjure/source/json"
)

// TokenKind enumerates JSON token kinds.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number string // Number literal text, decoded by the consuming type.
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources. NextToken returns io.EOF
// after the last token.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The default
// implementation is based on goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = GoJSONDriver()
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json driver.
func UseDefaultJSONDriver() { SetJSONDriver(GoJSONDriver()) }

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// GoJSONDriver tokenizes with github.com/goccy/go-json. Offsets are not
// reported.
func GoJSONDriver() JSONDriver {
	return engineDriver{name: "go-json", reader: gojson.NewReader, bytes: gojson.NewBytes}
}

// StdJSONDriver tokenizes with encoding/json and reports byte offsets.
func StdJSONDriver() JSONDriver {
	return engineDriver{name: "encoding/json", reader: jsonsrc.NewReader, bytes: jsonsrc.NewBytes}
}

type engineDriver struct {
	name   string
	reader func(io.Reader) eng.TokenSource
	bytes  func([]byte) eng.TokenSource
}

func (d engineDriver) NewReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: d.reader(r)}
}
func (d engineDriver) NewBytes(b []byte) Source { return &engineSourceAdapter{inner: d.bytes(b)} }
func (d engineDriver) Name() string             { return d.name }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

// engineTokenSource unwraps s when it is backed by an engine.TokenSource and
// adapts it otherwise.
func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return tokenSourceAdapter{s}
}

type tokenSourceAdapter struct{ s Source }

func (a tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.s.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: eng.Kind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (a tokenSourceAdapter) Location() int64 { return a.s.Location() }
