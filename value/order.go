package value

import (
	"bytes"
	"cmp"
	"encoding/json"
	"math/big"
	"slices"
	"strconv"
	"strings"
)

// Compare defines a total order over values. Variants order by Kind, then
// primitives by PrimitiveKind, then by content. A nil Value orders first.
func Compare(a, b Value) int {
	if a == nil || b == nil {
		return cmp.Compare(boolRank(a != nil), boolRank(b != nil))
	}
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	switch av := a.(type) {
	case Primitive:
		return ComparePrimitive(av, b.(Primitive))
	case Optional:
		bv := b.(Optional)
		return Compare(av.V, bv.V)
	case Object:
		return compareObjects(av, b.(Object))
	case Enum:
		bv := b.(Enum)
		if c := strings.Compare(av.Value, bv.Value); c != 0 {
			return c
		}
		return cmp.Compare(boolRank(av.Unknown), boolRank(bv.Unknown))
	case Union:
		bv := b.(Union)
		if c := strings.Compare(av.Field, bv.Field); c != 0 {
			return c
		}
		return Compare(av.Value, bv.Value)
	case List:
		return slices.CompareFunc(av, b.(List), Compare)
	case *Set:
		return slices.CompareFunc(av.Values(), b.(*Set).Values(), Compare)
	case *Map:
		return slices.CompareFunc(av.Entries(), b.(*Map).Entries(), compareEntries)
	}
	return 0
}

// Equal reports whether a and b are the same value under Compare.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

// ComparePrimitive orders primitives by kind, then content. Datetimes order
// by instant regardless of offset.
func ComparePrimitive(a, b Primitive) int {
	if c := cmp.Compare(a.PrimitiveKind(), b.PrimitiveKind()); c != 0 {
		return c
	}
	switch av := a.(type) {
	case String:
		return strings.Compare(string(av), string(b.(String)))
	case Integer:
		return cmp.Compare(av, b.(Integer))
	case Double:
		return av.Compare(b.(Double))
	case Boolean:
		return cmp.Compare(boolRank(bool(av)), boolRank(bool(b.(Boolean))))
	case Safelong:
		return cmp.Compare(av, b.(Safelong))
	case Binary:
		return bytes.Compare(av, b.(Binary))
	case UUID:
		bv := b.(UUID)
		return bytes.Compare(av[:], bv[:])
	case RID:
		return strings.Compare(string(av), string(b.(RID)))
	case BearerToken:
		return strings.Compare(string(av), string(b.(BearerToken)))
	case Datetime:
		return av.Time.Compare(b.(Datetime).Time)
	case Any:
		return compareAny(av.V, b.(Any).V)
	}
	return 0
}

func compareEntries(a, b Entry) int {
	if c := ComparePrimitive(a.Key, b.Key); c != 0 {
		return c
	}
	return Compare(a.Value, b.Value)
}

func compareObjects(a, b Object) int {
	ak, bk := sortedKeys(a), sortedKeys(b)
	for i := 0; i < len(ak) && i < len(bk); i++ {
		if c := strings.Compare(ak[i], bk[i]); c != 0 {
			return c
		}
		if c := Compare(a[ak[i]], b[bk[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ak), len(bk))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// anyRank orders untyped JSON: null < bool < number < string < array < object.
func anyRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case json.Number, float64, float32, int, int32, int64:
		return 2
	case string:
		return 3
	case []any:
		return 4
	case map[string]any:
		return 5
	}
	return 6
}

func compareAny(a, b any) int {
	if c := cmp.Compare(anyRank(a), anyRank(b)); c != 0 {
		return c
	}
	switch av := a.(type) {
	case bool:
		return cmp.Compare(boolRank(av), boolRank(b.(bool)))
	case string:
		return strings.Compare(av, b.(string))
	case []any:
		return slices.CompareFunc(av, b.([]any), compareAny)
	case map[string]any:
		bv := b.(map[string]any)
		ak, bk := sortedKeys(av), sortedKeys(bv)
		for i := 0; i < len(ak) && i < len(bk); i++ {
			if c := strings.Compare(ak[i], bk[i]); c != 0 {
				return c
			}
			if c := compareAny(av[ak[i]], bv[bk[i]]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(ak), len(bk))
	case nil:
		return 0
	}
	if anyRank(a) == 2 {
		return compareNumbers(a, b)
	}
	return 0
}

// compareNumbers compares JSON numbers exactly, so 1, 1.0 and 1e0 are equal.
// Texts that are not JSON numbers order after all numbers, by text.
func compareNumbers(a, b any) int {
	at, bt := numberText(a), numberText(b)
	ad, aok := parseDecimal(at)
	bd, bok := parseDecimal(bt)
	if aok && bok {
		return ad.cmp(bd)
	}
	if aok != bok {
		return cmp.Compare(boolRank(bok), boolRank(aok))
	}
	return strings.Compare(at, bt)
}

func numberText(v any) string {
	switch n := v.(type) {
	case json.Number:
		return string(n)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'g', -1, 32)
	case int:
		return strconv.Itoa(n)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	}
	return ""
}

// decimal is a number normalised to ±0.digits × 10^exp, with digits free of
// leading and trailing zeros. Zero has no digits.
type decimal struct {
	neg    bool
	digits string
	exp    *big.Int
}

// parseDecimal reads the JSON number grammar. The exponent is kept as a
// big.Int, so the cost is linear in the text whatever its magnitude.
func parseDecimal(s string) (decimal, bool) {
	var d decimal
	if strings.HasPrefix(s, "-") {
		d.neg = true
		s = s[1:]
	}
	end := digitRun(s)
	if end == 0 || (end > 1 && s[0] == '0') {
		return decimal{}, false
	}
	intPart, rest := s[:end], s[end:]
	var frac string
	if strings.HasPrefix(rest, ".") {
		n := digitRun(rest[1:])
		if n == 0 {
			return decimal{}, false
		}
		frac, rest = rest[1:1+n], rest[1+n:]
	}
	exp := new(big.Int)
	if rest != "" {
		if rest[0] != 'e' && rest[0] != 'E' {
			return decimal{}, false
		}
		text := rest[1:]
		body := text
		if body != "" && (body[0] == '+' || body[0] == '-') {
			body = body[1:]
		}
		if body == "" || digitRun(body) != len(body) {
			return decimal{}, false
		}
		exp.SetString(text, 10)
	}
	all := intPart + frac
	lead := len(all) - len(strings.TrimLeft(all, "0"))
	d.digits = strings.TrimRight(all[lead:], "0")
	if d.digits == "" {
		return decimal{}, true
	}
	d.exp = exp.Add(exp, big.NewInt(int64(len(intPart)-lead)))
	return d, true
}

func digitRun(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func (d decimal) sign() int {
	switch {
	case d.digits == "":
		return 0
	case d.neg:
		return -1
	}
	return 1
}

func (d decimal) cmp(o decimal) int {
	if c := cmp.Compare(d.sign(), o.sign()); c != 0 || d.sign() == 0 {
		return c
	}
	c := d.exp.Cmp(o.exp)
	if c == 0 {
		c = strings.Compare(d.digits, o.digits)
	}
	if d.neg {
		return -c
	}
	return c
}
