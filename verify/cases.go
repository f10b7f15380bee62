package verify

import (
	"fmt"
	"strconv"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/i18n"
	"github.com/reoring/goconjure/value"
)

// Case is one test case: its raw text and, for positive cases, the value it
// decodes to.
type Case struct {
	Text     string
	Value    value.Value
	Positive bool
}

// Cases are the resolved cases of one endpoint.
type Cases struct {
	Endpoint Endpoint
	Positive []Case
	Negative []Case
}

// Len counts positive and negative cases.
func (c *Cases) Len() int { return len(c.Positive) + len(c.Negative) }

// At indexes positive cases first, then negative ones.
func (c *Cases) At(index int) (Case, error) {
	switch {
	case index >= 0 && index < len(c.Positive):
		return c.Positive[index], nil
	case index >= len(c.Positive) && index < c.Len():
		return c.Negative[index-len(c.Positive)], nil
	}
	return Case{}, indexError(index, c.Len())
}

func indexError(index, n int) error {
	return fmt.Errorf("%w: index %d, max index %d", ErrIndexOutOfBounds, index, n-1)
}

// Resolved holds every suite case decoded against its endpoint type.
type Resolved struct {
	Body   map[string]*Cases
	Path   map[string]*Cases
	Query  map[string]*Cases
	Header map[string]*Cases
}

// Lookup finds the cases for endpoint in any category.
func (r *Resolved) Lookup(endpoint string) (*Cases, error) {
	for _, m := range []map[string]*Cases{r.Body, r.Path, r.Query, r.Header} {
		if c, ok := m[endpoint]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
}

// BadTestCaseError reports a negative case that decoded successfully.
type BadTestCaseError struct {
	Endpoint string
	Index    int
	Value    string
}

func (e *BadTestCaseError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", e.Endpoint, e.Index, i18n.T("bad_test_case", map[string]string{"value": e.Value}))
}

// CaseError wraps a positive case that failed to decode.
type CaseError struct {
	Endpoint string
	Index    int
	Text     string
	Err      error
}

func (e *CaseError) Error() string {
	return fmt.Sprintf("%s[%d] %s: %v", e.Endpoint, e.Index, strconv.Quote(e.Text), e.Err)
}

func (e *CaseError) Unwrap() error { return e.Err }

// Resolve decodes every positive case of the suite against its endpoint's
// type and checks that every negative case is rejected. Parameter cases
// are JSON too: they carry the expected value, not the wire text.
func Resolve(s *Suite, eps Endpoints, opts ...goconjure.DecodeOpt) (*Resolved, error) {
	out := &Resolved{
		Body:   map[string]*Cases{},
		Path:   map[string]*Cases{},
		Query:  map[string]*Cases{},
		Header: map[string]*Cases{},
	}
	for name, pn := range s.Client.AutoDeserialize {
		ep, err := eps.Lookup(name)
		if err != nil {
			return nil, err
		}
		c := &Cases{Endpoint: ep}
		if c.Positive, err = positives(ep, pn.Positive, opts); err != nil {
			return nil, err
		}
		for i, text := range pn.Negative {
			if _, err := goconjure.Decode(ep.Type, []byte(text), opts...); err == nil {
				return nil, &BadTestCaseError{Endpoint: name, Index: i, Value: text}
			}
			c.Negative = append(c.Negative, Case{Text: text})
		}
		out.Body[name] = c
	}
	params := []struct {
		cases map[string][]string
		into  map[string]*Cases
	}{
		{s.Client.SinglePathParamService, out.Path},
		{s.Client.SingleQueryParamService, out.Query},
		{s.Client.SingleHeaderService, out.Header},
	}
	for _, p := range params {
		for name, texts := range p.cases {
			ep, err := eps.Lookup(name)
			if err != nil {
				return nil, err
			}
			pos, err := positives(ep, texts, opts)
			if err != nil {
				return nil, err
			}
			p.into[name] = &Cases{Endpoint: ep, Positive: pos}
		}
	}
	return out, nil
}

func positives(ep Endpoint, texts []string, opts []goconjure.DecodeOpt) ([]Case, error) {
	out := make([]Case, 0, len(texts))
	for i, text := range texts {
		v, err := goconjure.Decode(ep.Type, []byte(text), opts...)
		if err != nil {
			return nil, &CaseError{Endpoint: ep.Name, Index: i, Text: text, Err: err}
		}
		out = append(out, Case{Text: text, Value: v, Positive: true})
	}
	return out, nil
}
