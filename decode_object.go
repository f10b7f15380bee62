package goconjure

import (
	eng "github.com/reoring/goconjure/internal/engine"
	"github.com/reoring/goconjure/value"
)

// unionTypeKey is the wire name of a union's discriminator.
const unionTypeKey = "type"

// object decodes a record. Keys are matched against wire names; values land
// in the result under declared names.
func (d *decoder) object(t *Object, tok eng.Token, path string) (value.Value, error) {
	if tok.Kind != eng.KindBeginObject {
		return nil, d.mismatch(path, "object", tok)
	}
	out := make(value.Object, len(t.Fields))
	for {
		kt, err := d.next(path)
		if err != nil {
			return nil, err
		}
		if kt.Kind == eng.KindEndObject {
			break
		}
		if kt.Kind != eng.KindKey {
			return nil, d.tokenError(eng.ErrUnexpectedToken, path)
		}
		fpath := eng.JoinPointer(path, kt.String)
		vt, err := d.next(fpath)
		if err != nil {
			return nil, err
		}
		f, ok := t.Field(kt.String)
		if !ok {
			if d.opt.Unknown == UnknownStrip {
				if err := eng.SkipValue(d.src, vt); err != nil {
					return nil, d.tokenError(err, fpath)
				}
				continue
			}
			if len(t.Fields) == 0 {
				return nil, d.fail(fpath, CodeUnknownKey, "unknown_key.none", map[string]string{"key": kt.String})
			}
			return nil, d.fail(fpath, CodeUnknownKey, CodeUnknownKey, map[string]string{"key": kt.String, "expected": quoteList(t.WireNames())})
		}
		if _, dup := out[f.Name]; dup {
			return nil, d.fail(fpath, CodeDuplicateKey, CodeDuplicateKey, map[string]string{"key": kt.String})
		}
		v, err := d.decode(f.Type, vt, fpath)
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}

	var missing []string
	for _, f := range t.Fields {
		if _, ok := out[f.Name]; ok {
			continue
		}
		if v, ok := d.absent(f.Type); ok {
			out[f.Name] = v
			continue
		}
		missing = append(missing, f.WireName)
	}
	if len(missing) > 0 {
		return nil, d.fail(path, CodeRequired, CodeRequired, map[string]string{"fields": quoteList(missing)})
	}
	return out, nil
}

// union decodes {"type": member, member: value} with the two keys in
// either order.
func (d *decoder) union(t *Union, tok eng.Token, path string) (value.Value, error) {
	if tok.Kind != eng.KindBeginObject {
		return nil, d.mismatch(path, "object", tok)
	}
	var (
		disc     string
		haveDisc bool
		dataKey  string
		data     value.Value
		haveData bool
	)
	for {
		kt, err := d.next(path)
		if err != nil {
			return nil, err
		}
		if kt.Kind == eng.KindEndObject {
			break
		}
		if kt.Kind != eng.KindKey {
			return nil, d.tokenError(eng.ErrUnexpectedToken, path)
		}
		kpath := eng.JoinPointer(path, kt.String)
		vt, err := d.next(kpath)
		if err != nil {
			return nil, err
		}

		if kt.String == unionTypeKey {
			if haveDisc {
				return nil, d.fail(kpath, CodeDuplicateKey, CodeDuplicateKey, map[string]string{"key": unionTypeKey})
			}
			if vt.Kind != eng.KindString {
				return nil, d.mismatch(kpath, "string", vt)
			}
			if _, ok := t.Member(vt.String); !ok {
				return nil, d.unknownMember(kpath, t, vt.String)
			}
			if haveData && dataKey != vt.String {
				return nil, d.mismatchedMember(kpath, vt.String, dataKey)
			}
			disc, haveDisc = vt.String, true
			continue
		}

		switch {
		case haveData && kt.String == dataKey:
			return nil, d.fail(kpath, CodeDuplicateKey, CodeDuplicateKey, map[string]string{"key": kt.String})
		case haveData:
			return nil, d.fail(kpath, CodeUnknownKey, "unknown_key.union", map[string]string{"key": kt.String})
		case haveDisc && kt.String != disc:
			return nil, d.mismatchedMember(kpath, disc, kt.String)
		}
		m, ok := t.Member(kt.String)
		if !ok {
			return nil, d.unknownMember(kpath, t, kt.String)
		}
		v, err := d.decode(m.Type, vt, kpath)
		if err != nil {
			return nil, err
		}
		dataKey, data, haveData = kt.String, v, true
	}

	if !haveDisc {
		return nil, d.fail(path, CodeDiscriminatorMissing, CodeDiscriminatorMissing, nil)
	}
	if !haveData {
		return nil, d.fail(path, CodeRequired, "required.one", map[string]string{"key": disc})
	}
	return value.Union{Field: disc, Value: data}, nil
}

func (d *decoder) unknownMember(path string, t *Union, name string) error {
	return d.fail(path, CodeDiscriminatorUnknown, CodeDiscriminatorUnknown, map[string]string{"value": name, "expected": quoteList(t.MemberNames())})
}

func (d *decoder) mismatchedMember(path, disc, key string) error {
	return d.fail(path, CodeDiscriminatorMismatch, CodeDiscriminatorMismatch, map[string]string{"expected": disc, "got": key})
}
