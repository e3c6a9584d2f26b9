// Package i18n holds the user-facing strings of the lookup screen.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	KeyFetchFailed     = "fetch_failed"
	KeyNoFavorites     = "no_favorites"
	KeyCityPlaceholder = "city_placeholder"
)

var supported = []language.Tag{language.Turkish, language.English}

var translations = map[language.Tag]map[string]string{
	language.Turkish: {
		KeyFetchFailed:     "Hava durumu bilgisi alınırken bir hata oluştu.",
		KeyNoFavorites:     "Favori şehir yok",
		KeyCityPlaceholder: "Şehir adı girin",
	},
	language.English: {
		KeyFetchFailed:     "An error occurred while retrieving weather information.",
		KeyNoFavorites:     "No favorite cities",
		KeyCityPlaceholder: "Enter a city name",
	},
}

// Messages resolves message keys for the supported languages.
type Messages struct {
	catalog  *catalog.Builder
	matcher  language.Matcher
	fallback language.Tag
}

// New builds the catalog. defaultLang is used for unknown or unsupported
// tags; an unsupported defaultLang falls back to Turkish.
func New(defaultLang string) *Messages {
	matcher := language.NewMatcher(supported)

	fallback := language.Turkish
	if tag, err := language.Parse(defaultLang); err == nil {
		if _, idx, conf := matcher.Match(tag); conf != language.No {
			fallback = supported[idx]
		}
	}

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: message %q for %s: %v", key, tag, err))
			}
		}
	}

	return &Messages{
		catalog:  b,
		matcher:  matcher,
		fallback: fallback,
	}
}

// Resolve returns the supported language closest to lang.
func (m *Messages) Resolve(lang string) language.Tag {
	if lang == "" {
		return m.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		return m.fallback
	}
	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No {
		return m.fallback
	}
	return supported[idx]
}

// Text returns the message for key in lang.
func (m *Messages) Text(lang language.Tag, key string) string {
	return message.NewPrinter(lang, message.Catalog(m.catalog)).Sprintf(key)
}

// FetchFailed is the fixed error shown when a lookup fails.
func (m *Messages) FetchFailed(lang language.Tag) string {
	return m.Text(lang, KeyFetchFailed)
}
