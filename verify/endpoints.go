package verify

import (
	"errors"
	"fmt"
	"sort"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/ir"
)

// Package holds the verification services.
const Package = "com.palantir.conjure.verification"

// Category says how an endpoint's cases are carried on the wire.
type Category int

const (
	// Body cases are JSON request or response bodies.
	Body Category = iota
	PathParam
	QueryParam
	Header
)

func (c Category) String() string {
	switch c {
	case Body:
		return "body"
	case PathParam:
		return "path"
	case QueryParam:
		return "query"
	case Header:
		return "header"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// indexArg is the argument every parameter endpoint uses to select a case.
const indexArg = "index"

var services = map[string]Category{
	"AutoDeserializeService":  Body,
	"SinglePathParamService":  PathParam,
	"SingleQueryParamService": QueryParam,
	"SingleHeaderService":     Header,
}

var (
	// ErrUnknownEndpoint is returned when no verification service declares
	// the requested endpoint.
	ErrUnknownEndpoint = errors.New("unknown endpoint")
	// ErrIndexOutOfBounds is returned for a case index past the end of an
	// endpoint's cases.
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)

// Endpoint is a verification endpoint and the resolved type of its cases.
type Endpoint struct {
	Name     string
	Service  string
	Category Category
	Type     goconjure.Type
}

// Endpoints maps endpoint names to their resolved case types.
type Endpoints map[string]Endpoint

// Lookup returns the endpoint or an error wrapping ErrUnknownEndpoint.
func (e Endpoints) Lookup(name string) (Endpoint, error) {
	ep, ok := e[name]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %s", ErrUnknownEndpoint, name)
	}
	return ep, nil
}

// Names returns the endpoint names in sorted order.
func (e Endpoints) Names() []string {
	out := make([]string, 0, len(e))
	for n := range e {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// MapEndpoints selects the case type of every endpoint on the verification
// services in doc: the return type for body endpoints, otherwise the first
// argument not named "index". Services from other packages are ignored.
// Endpoint names must be unique across all verification services.
func MapEndpoints(doc *ir.Conjure, r *goconjure.Resolver) (Endpoints, error) {
	out := Endpoints{}
	for _, svc := range doc.Services {
		if svc.ServiceName.Package != Package {
			continue
		}
		cat, ok := services[svc.ServiceName.Name]
		if !ok {
			continue
		}
		for i := range svc.Endpoints {
			e := &svc.Endpoints[i]
			if _, dup := out[e.EndpointName]; dup {
				return nil, fmt.Errorf("endpoint %s is declared more than once", e.EndpointName)
			}
			raw, err := caseType(cat, e)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", svc.ServiceName.Name, e.EndpointName, err)
			}
			t, err := r.Resolve(raw)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", svc.ServiceName.Name, e.EndpointName, err)
			}
			out[e.EndpointName] = Endpoint{
				Name:     e.EndpointName,
				Service:  svc.ServiceName.Name,
				Category: cat,
				Type:     t,
			}
		}
	}
	return out, nil
}

func caseType(cat Category, e *ir.EndpointDefinition) (ir.Type, error) {
	if cat == Body {
		if e.Returns == nil {
			return nil, errors.New("endpoint has no return type")
		}
		return e.Returns, nil
	}
	for _, a := range e.Args {
		if a.ArgName != indexArg {
			return a.Type, nil
		}
	}
	return nil, errors.New("endpoint has no argument besides index")
}

// LoadEndpoints reads an IR document and maps its verification endpoints.
func LoadEndpoints(path string) (Endpoints, error) {
	doc, err := ir.Load(path)
	if err != nil {
		return nil, err
	}
	r, err := goconjure.NewResolver(doc.Types)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return MapEndpoints(doc, r)
}
