// Package stream provides token-source views over a single JSON value.
package stream

import (
	"io"

	eng "github.com/reoring/goconjure/internal/engine"
)

// PreloadedSource is a subtree source that first returns a preloaded token
// (typically the first token of an element) and then continues to stream the
// remaining tokens for the same subtree from the underlying source. It stops
// after the subtree end is reached, returning io.EOF afterwards.
type PreloadedSource struct {
	inner  eng.TokenSource
	first  eng.Token
	served bool
	depth  int
	done   bool
}

// NewPreloadedSource constructs a subtree source that will return first
// before consuming further tokens from inner.
func NewPreloadedSource(inner eng.TokenSource, first eng.Token) *PreloadedSource {
	return &PreloadedSource{inner: inner, first: first}
}

func (p *PreloadedSource) NextToken() (eng.Token, error) {
	if p.done {
		return eng.Token{}, io.EOF
	}
	var tok eng.Token
	if !p.served {
		p.served = true
		tok = p.first
	} else {
		t, err := p.inner.NextToken()
		if err == io.EOF {
			// the subtree is still open, so the document ended early
			return eng.Token{}, io.ErrUnexpectedEOF
		}
		if err != nil {
			return eng.Token{}, err
		}
		tok = t
	}
	switch tok.Kind {
	case eng.KindBeginObject, eng.KindBeginArray:
		p.depth++
	case eng.KindEndObject, eng.KindEndArray:
		p.depth--
	}
	if p.depth <= 0 {
		p.done = true
	}
	return tok, nil
}

// Done reports whether the whole subtree has been consumed.
func (p *PreloadedSource) Done() bool { return p.done }

func (p *PreloadedSource) Location() int64 { return p.inner.Location() }
