// Package casing converts identifiers between the naming conventions used by
// Conjure definitions and the camelCase convention used on the wire.
package casing

import (
	"strings"
	"unicode"
)

// Words splits an identifier into lower-cased words. Underscores, hyphens and
// dots separate words; a lower-to-upper transition or the last upper-case
// letter of an acronym followed by a lower-case letter starts a new word.
func Words(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case r == '_' || r == '-' || r == '.':
			flush()
			continue
		case unicode.IsUpper(r):
			if len(cur) > 0 {
				prev := rs[i-1]
				nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					flush()
				}
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Camel renders s as lowerCamelCase: "field_name", "field-name" and
// "FieldName" all become "fieldName". An identifier that is already
// camelCase is returned unchanged.
func Camel(s string) string {
	if isCamel(s) {
		return s
	}
	words := Words(s)
	if len(words) == 0 {
		return s
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

// Pascal renders s as UpperCamelCase: "unknown_key" becomes "UnknownKey".
func Pascal(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(upperFirst(w))
	}
	return b.String()
}

func isCamel(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLower(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func upperFirst(w string) string {
	if w == "" {
		return w
	}
	rs := []rune(w)
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}
