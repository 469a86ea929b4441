// Package lang names the languages commit messages can be written in.
package lang

import "strings"

// Language represents supported output languages
type Language string

const (
	English            Language = "en"
	ChineseSimplified  Language = "zh"
	ChineseTraditional Language = "zh-tw"
	Japanese           Language = "ja"
	Korean             Language = "ko"
)

// aliases maps common locale spellings to a supported language
var aliases = map[string]Language{
	"en-us":    English,
	"en-gb":    English,
	"english":  English,
	"zh-cn":    ChineseSimplified,
	"zh-hans":  ChineseSimplified,
	"chinese":  ChineseSimplified,
	"zh-hk":    ChineseTraditional,
	"zh-hant":  ChineseTraditional,
	"ja-jp":    Japanese,
	"japanese": Japanese,
	"ko-kr":    Korean,
	"korean":   Korean,
}

// Supported returns every supported language in display order
func Supported() []Language {
	return []Language{English, ChineseSimplified, ChineseTraditional, Japanese, Korean}
}

// String returns the string representation of the language
func (l Language) String() string {
	return string(l)
}

// IsValid checks if the language is valid
func (l Language) IsValid() bool {
	switch l {
	case English, ChineseSimplified, ChineseTraditional, Japanese, Korean:
		return true
	default:
		return false
	}
}

// DisplayName returns the language's name in that language, which is
// what the prompt asks the model to write in
func (l Language) DisplayName() string {
	switch l {
	case English:
		return "English"
	case ChineseSimplified:
		return "简体中文"
	case ChineseTraditional:
		return "繁體中文"
	case Japanese:
		return "日本語"
	case Korean:
		return "한국어"
	default:
		return string(l)
	}
}

// DefaultLanguage returns the default language
func DefaultLanguage() Language {
	return English
}

// Normalize maps a user-supplied code or locale ("ja_JP", "zh-Hans") to a
// supported Language. ok is false when nothing matches.
func Normalize(s string) (Language, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if l := Language(key); l.IsValid() {
		return l, true
	}
	if l, found := aliases[key]; found {
		return l, true
	}
	return "", false
}

// ParseLanguage parses a string to a Language, falling back to the default
func ParseLanguage(s string) Language {
	if l, ok := Normalize(s); ok {
		return l
	}
	return DefaultLanguage()
}
