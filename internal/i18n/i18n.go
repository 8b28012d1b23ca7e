// Package i18n resolves user-facing strings for the supported languages.
package i18n

import (
	"errors"
	"fmt"
	"maps"
	"sort"
)

// Language is a supported language code.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
)

// ErrUnsupportedLanguage is returned for a code without a translation table.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages returns the supported codes in menu order.
func Languages() []Language {
	return []Language{English, Hindi}
}

// DisplayName returns a language's name written in that language.
func DisplayName(lang Language) string {
	switch lang {
	case English:
		return "English"
	case Hindi:
		return "हिंदी"
	default:
		return string(lang)
	}
}

// ParseLanguage validates a code.
func ParseLanguage(code string) (Language, error) {
	lang := Language(code)
	if _, ok := translations[lang]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return lang, nil
}

// Table returns a copy of the translation table for lang.
func Table(lang Language) (map[string]string, bool) {
	t, ok := translations[lang]
	if !ok {
		return nil, false
	}
	return maps.Clone(t), true
}

// Keys returns the sorted vocabulary shared by all tables.
func Keys() []string {
	keys := make([]string, 0, len(translations[English]))
	for k := range translations[English] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Localizer holds the active language for one session. It is not safe for
// concurrent use; each session owns its own.
type Localizer struct {
	lang  Language
	table map[string]string
}

// New returns a Localizer set to lang.
func New(lang Language) (*Localizer, error) {
	l := &Localizer{}
	if err := l.SetLanguage(lang); err != nil {
		return nil, err
	}
	return l, nil
}

// MustNew is New for statically known languages. It panics on an unsupported code.
func MustNew(lang Language) *Localizer {
	l, err := New(lang)
	if err != nil {
		panic(err)
	}
	return l
}

// SetLanguage switches the table used by subsequent T calls. Text already
// handed out is not affected. An unsupported code leaves the language unchanged.
func (l *Localizer) SetLanguage(lang Language) error {
	table, ok := translations[lang]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	l.lang = lang
	l.table = table
	return nil
}

// Language returns the active language code.
func (l *Localizer) Language() Language {
	l.mustBeInitialized()
	return l.lang
}

// T resolves key in the active table and returns the key itself when the
// table has no entry.
func (l *Localizer) T(key string) string {
	l.mustBeInitialized()
	if s, ok := l.table[key]; ok && s != "" {
		return s
	}
	return key
}

// Translator is the lookup signature handed to views.
type Translator func(key string) string

// Func returns T as a Translator bound to this Localizer.
func (l *Localizer) Func() Translator {
	l.mustBeInitialized()
	return l.T
}

func (l *Localizer) mustBeInitialized() {
	if l == nil || l.table == nil {
		panic("i18n: Localizer used outside an initialized language context")
	}
}
