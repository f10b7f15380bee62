package main

import (
	"fmt"
	"strings"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/ir"
)

// lookupType resolves a --type argument against doc.
func lookupType(doc *ir.Conjure, r *goconjure.Resolver, arg string) (goconjure.Type, error) {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "":
		return nil, fmt.Errorf("--type is required")
	case strings.HasPrefix(arg, "{"):
		t, err := ir.ParseType([]byte(arg))
		if err != nil {
			return nil, err
		}
		return r.Resolve(t)
	case ir.PrimitiveType(arg).Valid():
		return r.Resolve(ir.PrimitiveType(arg))
	}
	if i := strings.LastIndexByte(arg, '.'); i > 0 {
		return r.ResolveName(ir.TypeName{Package: arg[:i], Name: arg[i+1:]})
	}
	var found []ir.TypeName
	for _, def := range doc.Types {
		if def.Name().Name == arg {
			found = append(found, def.Name())
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("no type named %s", arg)
	case 1:
		return r.ResolveName(found[0])
	}
	names := make([]string, len(found))
	for i, n := range found {
		names[i] = n.String()
	}
	return nil, fmt.Errorf("type name %s is ambiguous: %s", arg, strings.Join(names, ", "))
}

// describe writes the resolved type with one line per field, member or
// enum value of a named type.
func describe(t goconjure.Type) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "%s (%s)\n", t, t.Kind())
	switch tt := t.(type) {
	case *goconjure.Object:
		for _, f := range tt.Fields {
			fmt.Fprintf(b, "  %s: %s\n", f.WireName, f.Type)
		}
	case *goconjure.Union:
		for _, m := range tt.Members {
			fmt.Fprintf(b, "  %s: %s\n", m.WireName, m.Type)
		}
	case *goconjure.Enum:
		for _, v := range tt.Values {
			fmt.Fprintf(b, "  %s\n", v)
		}
	}
	return b.String()
}
