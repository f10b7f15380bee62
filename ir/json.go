package ir

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// The IR encodes both type expressions and definitions as Conjure unions:
// {"type": "<member>", "<member>": {...}}.

type wireType struct {
	Type      string        `json:"type"`
	Primitive PrimitiveType `json:"primitive"`
	Reference *TypeName     `json:"reference"`
	Optional  *wireItem     `json:"optional"`
	List      *wireItem     `json:"list"`
	Set       *wireItem     `json:"set"`
	Map       *wireMap      `json:"map"`
	External  *wireExternal `json:"external"`
}

type wireItem struct {
	ItemType *wireType `json:"itemType"`
}

type wireMap struct {
	KeyType   *wireType `json:"keyType"`
	ValueType *wireType `json:"valueType"`
}

type wireExternal struct {
	ExternalReference TypeName  `json:"externalReference"`
	Fallback          *wireType `json:"fallback"`
}

type wireField struct {
	FieldName string    `json:"fieldName"`
	Type      *wireType `json:"type"`
}

type wireDefinition struct {
	Type   string `json:"type"`
	Object *struct {
		TypeName TypeName    `json:"typeName"`
		Fields   []wireField `json:"fields"`
	} `json:"object"`
	Alias *struct {
		TypeName TypeName  `json:"typeName"`
		Alias    *wireType `json:"alias"`
	} `json:"alias"`
	Enum *struct {
		TypeName TypeName `json:"typeName"`
		Values   []struct {
			Value string `json:"value"`
		} `json:"values"`
	} `json:"enum"`
	Union *struct {
		TypeName TypeName    `json:"typeName"`
		Union    []wireField `json:"union"`
	} `json:"union"`
}

type wireEndpoint struct {
	EndpointName string `json:"endpointName"`
	HTTPMethod   string `json:"httpMethod"`
	HTTPPath     string `json:"httpPath"`
	Args         []struct {
		ArgName string    `json:"argName"`
		Type    *wireType `json:"type"`
	} `json:"args"`
	Returns *wireType `json:"returns"`
}

type wireConjure struct {
	Version  int              `json:"version"`
	Types    []wireDefinition `json:"types"`
	Services []struct {
		ServiceName TypeName       `json:"serviceName"`
		Endpoints   []wireEndpoint `json:"endpoints"`
	} `json:"services"`
}

// Parse decodes a Conjure IR JSON document.
func Parse(data []byte) (*Conjure, error) {
	var w wireConjure
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing conjure ir: %w", err)
	}
	c := &Conjure{Version: w.Version}
	for i, d := range w.Types {
		def, err := d.definition()
		if err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
		c.Types = append(c.Types, def)
	}
	for _, s := range w.Services {
		svc := ServiceDefinition{ServiceName: s.ServiceName}
		for _, e := range s.Endpoints {
			ep := EndpointDefinition{EndpointName: e.EndpointName, HTTPMethod: e.HTTPMethod, HTTPPath: e.HTTPPath}
			for _, a := range e.Args {
				t, err := a.Type.toType()
				if err != nil {
					return nil, fmt.Errorf("%s.%s(%s): %w", s.ServiceName, e.EndpointName, a.ArgName, err)
				}
				ep.Args = append(ep.Args, ArgumentDefinition{ArgName: a.ArgName, Type: t})
			}
			if e.Returns != nil {
				t, err := e.Returns.toType()
				if err != nil {
					return nil, fmt.Errorf("%s.%s returns: %w", s.ServiceName, e.EndpointName, err)
				}
				ep.Returns = t
			}
			svc.Endpoints = append(svc.Endpoints, ep)
		}
		c.Services = append(c.Services, svc)
	}
	return c, nil
}

// ParseType decodes a single type expression such as
// {"type":"list","list":{"itemType":{"type":"primitive","primitive":"STRING"}}}.
func ParseType(data []byte) (Type, error) {
	var w wireType
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing conjure type: %w", err)
	}
	return w.toType()
}

func (w *wireType) toType() (Type, error) {
	if w == nil {
		return nil, fmt.Errorf("missing type")
	}
	switch w.Type {
	case "primitive":
		if !w.Primitive.Valid() {
			return nil, fmt.Errorf("unknown primitive %q", w.Primitive)
		}
		return w.Primitive, nil
	case "reference":
		if w.Reference == nil {
			return nil, fmt.Errorf("reference type without name")
		}
		return Reference(*w.Reference), nil
	case "optional":
		it, err := w.Optional.item()
		return Optional{ItemType: it}, err
	case "list":
		it, err := w.List.item()
		return List{ItemType: it}, err
	case "set":
		it, err := w.Set.item()
		return Set{ItemType: it}, err
	case "map":
		if w.Map == nil {
			return nil, fmt.Errorf("map type without body")
		}
		k, err := w.Map.KeyType.toType()
		if err != nil {
			return nil, fmt.Errorf("keyType: %w", err)
		}
		v, err := w.Map.ValueType.toType()
		if err != nil {
			return nil, fmt.Errorf("valueType: %w", err)
		}
		return Map{KeyType: k, ValueType: v}, nil
	case "external":
		if w.External == nil {
			return nil, fmt.Errorf("external type without body")
		}
		fb, err := w.External.Fallback.toType()
		if err != nil {
			return nil, fmt.Errorf("fallback: %w", err)
		}
		return External{ExternalReference: w.External.ExternalReference, Fallback: fb}, nil
	}
	return nil, fmt.Errorf("unknown type variant %q", w.Type)
}

func (w *wireItem) item() (Type, error) {
	if w == nil {
		return nil, fmt.Errorf("collection type without body")
	}
	t, err := w.ItemType.toType()
	if err != nil {
		return nil, fmt.Errorf("itemType: %w", err)
	}
	return t, nil
}

func fields(ws []wireField) ([]FieldDefinition, error) {
	out := make([]FieldDefinition, 0, len(ws))
	for _, f := range ws {
		t, err := f.Type.toType()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.FieldName, err)
		}
		out = append(out, FieldDefinition{FieldName: f.FieldName, Type: t})
	}
	return out, nil
}

func (d wireDefinition) definition() (TypeDefinition, error) {
	switch {
	case d.Type == "object" && d.Object != nil:
		fs, err := fields(d.Object.Fields)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Object.TypeName, err)
		}
		return ObjectDefinition{TypeName: d.Object.TypeName, Fields: fs}, nil
	case d.Type == "alias" && d.Alias != nil:
		t, err := d.Alias.Alias.toType()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Alias.TypeName, err)
		}
		return AliasDefinition{TypeName: d.Alias.TypeName, Alias: t}, nil
	case d.Type == "enum" && d.Enum != nil:
		e := EnumDefinition{TypeName: d.Enum.TypeName}
		for _, v := range d.Enum.Values {
			e.Values = append(e.Values, v.Value)
		}
		return e, nil
	case d.Type == "union" && d.Union != nil:
		fs, err := fields(d.Union.Union)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Union.TypeName, err)
		}
		return UnionDefinition{TypeName: d.Union.TypeName, Union: fs}, nil
	}
	return nil, fmt.Errorf("unknown or empty definition variant %q", d.Type)
}
