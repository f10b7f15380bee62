package goconjure

import (
	"strconv"

	eng "github.com/reoring/goconjure/internal/engine"
	"github.com/reoring/goconjure/value"
)

// array decodes a list, or a set when asSet is true. Set elements are
// sorted once after the array is read; the first element equal to an
// earlier one fails unless duplicates coalesce.
func (d *decoder) array(item Type, asSet bool, tok eng.Token, path string) (value.Value, error) {
	if tok.Kind != eng.KindBeginArray {
		return nil, d.mismatch(path, "array", tok)
	}
	list := value.List{}
	for i := 0; ; i++ {
		et, err := d.next(path)
		if err != nil {
			return nil, err
		}
		if et.Kind == eng.KindEndArray {
			break
		}
		v, err := d.decode(item, et, eng.JoinPointer(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	if !asSet {
		return list, nil
	}
	set, dups := value.BuildSet(list)
	if len(dups) > 0 && d.opt.Duplicates == DuplicateReject {
		i := dups[0]
		return nil, d.fail(eng.JoinPointer(path, strconv.Itoa(i)), CodeDuplicateElement, CodeDuplicateElement, map[string]string{"value": value.Render(list[i])})
	}
	return set, nil
}

// mapping decodes a JSON object into a Map, parsing every key with the
// plain format of the key type.
func (d *decoder) mapping(t *Map, tok eng.Token, path string) (value.Value, error) {
	if tok.Kind != eng.KindBeginObject {
		return nil, d.mismatch(path, "object", tok)
	}
	var (
		entries []value.Entry
		keys    []string
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
		key, err := d.withOffset(plainPrimitive(kpath, t.Key, kt.String))
		if err != nil {
			return nil, err
		}
		vt, err := d.next(kpath)
		if err != nil {
			return nil, err
		}
		v, err := d.decode(t.Value, vt, kpath)
		if err != nil {
			return nil, err
		}
		entries = append(entries, value.Entry{Key: key.(value.Primitive), Value: v})
		keys = append(keys, kt.String)
	}
	m, dups := value.BuildMap(entries)
	if len(dups) > 0 {
		k := keys[dups[0]]
		return nil, d.fail(eng.JoinPointer(path, k), CodeDuplicateMapKey, CodeDuplicateMapKey, map[string]string{"key": k})
	}
	return m, nil
}
