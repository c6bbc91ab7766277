package scripture

import (
	"strings"
)

// Language selects the abbreviation namespace a citation is resolved in.
type Language int

const (
	// Korean is the Hangul-script table (개역개정 naming).
	Korean Language = iota
	// English is a Latin-script table.
	English
	// German is a Latin-script table (Luther naming).
	German

	numLanguages = 3
)

// Languages lists every supported language in lookup priority order.
var Languages = []Language{Korean, English, German}

var languageAliases = map[string]Language{
	"korean":  Korean,
	"ko":      Korean,
	"kr":      Korean,
	"한국어":     Korean,
	"english": English,
	"en":      English,
	"영어":      English,
	"german":  German,
	"de":      German,
	"deutsch": German,
	"독일어":     German,
}

// String returns the canonical lowercase language name.
func (l Language) String() string {
	switch l {
	case Korean:
		return "korean"
	case English:
		return "english"
	case German:
		return "german"
	default:
		return "unknown"
	}
}

// Latin reports whether the language is matched case-insensitively.
func (l Language) Latin() bool {
	return l == English || l == German
}

func (l Language) valid() bool {
	return l >= 0 && l < numLanguages
}

// LookupLanguage resolves a language name or alias ("ko", "english", "deutsch", "한국어").
func LookupLanguage(s string) (Language, bool) {
	lang, ok := languageAliases[strings.ToLower(strings.TrimSpace(s))]
	return lang, ok
}

// ParseLanguage is like LookupLanguage but falls back to Korean for unknown names.
func ParseLanguage(s string) Language {
	if lang, ok := LookupLanguage(s); ok {
		return lang
	}
	return Korean
}

var englishTranslations = map[string]bool{
	"NIV": true, "ESV": true, "KJV": true, "NKJV": true, "NASB": true,
}

// LanguageForTranslation guesses the citation language from a translation label
// such as "개역개정", "NIV" or "Luther 2017".
func LanguageForTranslation(translation string) Language {
	t := strings.TrimSpace(translation)
	switch {
	case englishTranslations[strings.ToUpper(t)]:
		return English
	case strings.Contains(t, "Luther"), strings.Contains(t, "Elberfelder"):
		return German
	default:
		return Korean
	}
}
