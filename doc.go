// Package goconjure decodes Conjure wire data against resolved type
// descriptors and verifies conformance test cases.
//
//   - Type resolution: a Resolver inlines aliases and references from an IR
//     document into an immutable tree of Type nodes.
//   - JSON decoding: Decode and DecodeFrom stream tokens from the configured
//     JSONDriver into value.Value trees, enforcing every wire invariant.
//   - Plain decoding: DecodePlain reads header, query and path parameters.
//   - Encoding: Marshal writes Go values in the Conjure JSON wire format.
//   - A stable error model via Issues (JSON Pointer, code, message).
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Scalar codecs live under codec/, the dynamic value model under value/, and the CLI under cmd/conjure-verify.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	doc, err := ir.Load("conjure.json")
//	r, err := goconjure.NewResolver(doc.Types)
//	t, err := r.ResolveName(ir.TypeName{Name: "Foo", Package: "com.example"})
//	v, err := goconjure.Decode(t, body, goconjure.ServerOpt())
package goconjure
