// Package i18n renders Issue messages. Templates use {name} placeholders
// that are filled from the data map passed to T.
package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

var catalogs = map[string]map[string]string{
	"en": {
		"invalid_type":               "invalid type: expected {expected}, got {got}",
		"required":                   "missing fields: {fields}",
		"required.one":               "missing field `{key}`",
		"required.value":             "missing value of type {type}",
		"unknown_key":                "unknown field `{key}`, expected one of: {expected}",
		"unknown_key.none":           "unknown field `{key}`, there are no fields",
		"unknown_key.union":          "unexpected extra key `{key}` in union",
		"duplicate_key":              "duplicate field `{key}`",
		"invalid_enum":               "unknown variant `{value}`, expected one of: {expected}",
		"discriminator_missing":      "missing field `type`",
		"discriminator_unknown":      "unknown variant `{value}`, expected one of: {expected}",
		"discriminator_mismatch":     "union type `{expected}` does not match data key `{got}`",
		"duplicate_element":          "Set contained duplicates: {value}",
		"duplicate_map_key":          "duplicate map key `{key}`",
		"invalid_format":             "invalid {format}: {reason}",
		"overflow":                   "{format} out of range: {got}",
		"null_not_allowed":           "unexpected 'null' for type any",
		"unsupported_plain_type":     "type {type} is not supported in plain format",
		"unresolved_reference":       "unresolved reference {name}",
		"cyclic_reference":           "cyclic reference through {name}",
		"invalid_map_key":            "map keys must be primitive, got {type}",
		"duplicate_definition":       "type {name} is defined more than once",
		"parse_error":                "parse error: {reason}",
		"truncated":                  "unexpected end of input",
		"trailing_data":              "unexpected data after top-level value",
		"bad_test_case":              "negative case was accepted: {value}",
		"confirmation_failure":       "expected {expected}, received {got}",
		"unsupported_plain_type.any": "type any cannot be represented in plain format",
	},
	"ja": {
		"invalid_type":               "型が不正です: {expected} を期待しましたが {got} でした",
		"required":                   "必須フィールドが不足しています: {fields}",
		"required.one":               "必須フィールド `{key}` が不足しています",
		"required.value":             "{type} 型の値が不足しています",
		"unknown_key":                "未知のフィールド `{key}` です。有効なフィールド: {expected}",
		"unknown_key.none":           "未知のフィールド `{key}` です。フィールドはありません",
		"unknown_key.union":          "union に余分なキー `{key}` があります",
		"duplicate_key":              "フィールド `{key}` が重複しています",
		"invalid_enum":               "未知の値 `{value}` です。有効な値: {expected}",
		"discriminator_missing":      "フィールド `type` が不足しています",
		"discriminator_unknown":      "未知のバリアント `{value}` です。有効なバリアント: {expected}",
		"discriminator_mismatch":     "union の type `{expected}` とデータキー `{got}` が一致しません",
		"duplicate_element":          "Set に重複があります: {value}",
		"duplicate_map_key":          "マップキー `{key}` が重複しています",
		"invalid_format":             "{format} の形式が不正です: {reason}",
		"overflow":                   "{format} が範囲外です: {got}",
		"null_not_allowed":           "any 型に null は指定できません",
		"unsupported_plain_type":     "型 {type} は plain 形式に対応していません",
		"unresolved_reference":       "参照 {name} を解決できません",
		"cyclic_reference":           "{name} で循環参照しています",
		"invalid_map_key":            "マップのキーはプリミティブ型である必要があります: {type}",
		"duplicate_definition":       "型 {name} が複数回定義されています",
		"parse_error":                "解析エラー: {reason}",
		"truncated":                  "入力が途中で終わっています",
		"trailing_data":              "トップレベルの値の後に余分なデータがあります",
		"bad_test_case":              "失敗すべきケースが受理されました: {value}",
		"confirmation_failure":       "{expected} を期待しましたが {got} を受信しました",
		"unsupported_plain_type.any": "any 型は plain 形式で表現できません",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalogs[t.lang][code]
	if !ok {
		if tmpl, ok = catalogs["en"][code]; !ok {
			return code
		}
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := catalogs[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
