package blizzard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Locale is a Battle.net locale code such as "en_US".
type Locale string

// Locales supported by the game data APIs.
const (
	LocaleEnglishUS  Locale = "en_US"
	LocaleEnglishGB  Locale = "en_GB"
	LocaleSpanishMX  Locale = "es_MX"
	LocaleSpanishES  Locale = "es_ES"
	LocalePortuguese Locale = "pt_BR"
	LocaleGerman     Locale = "de_DE"
	LocaleFrench     Locale = "fr_FR"
	LocaleItalian    Locale = "it_IT"
	LocaleRussian    Locale = "ru_RU"
	LocaleKorean     Locale = "ko_KR"
	LocaleChineseTW  Locale = "zh_TW"
	LocaleChineseCN  Locale = "zh_CN"
)

// Locales lists every supported locale.
var Locales = []Locale{
	LocaleEnglishUS, LocaleEnglishGB, LocaleSpanishMX, LocaleSpanishES,
	LocalePortuguese, LocaleGerman, LocaleFrench, LocaleItalian,
	LocaleRussian, LocaleKorean, LocaleChineseTW, LocaleChineseCN,
}

// ParseLocale accepts "en_US", "en-us" and similar spellings.
func ParseLocale(s string) (Locale, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), "-", "_")
	for _, l := range Locales {
		if strings.EqualFold(string(l), normalized) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown locale %q", ErrInvalidConfig, s)
}

// String returns the locale code.
func (l Locale) String() string {
	return string(l)
}

// LocalizedString is a text field that the API returns either as a plain
// string (when a locale was requested) or as an object keyed by locale.
type LocalizedString struct {
	Value        string
	Translations map[Locale]string
}

// UnmarshalJSON decodes both the string and the per-locale object shape.
func (s *LocalizedString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = LocalizedString{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = LocalizedString{Value: v}
		return nil
	}

	var m map[Locale]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("localized string: expected string or object: %w", err)
	}
	*s = LocalizedString{Translations: m}
	return nil
}

// MarshalJSON writes the shape that was decoded.
func (s LocalizedString) MarshalJSON() ([]byte, error) {
	if s.Translations != nil {
		return json.Marshal(s.Translations)
	}
	return json.Marshal(s.Value)
}

// In returns the text for the given locale, falling back to the single value and then en_US.
func (s LocalizedString) In(locale Locale) string {
	if s.Translations == nil {
		return s.Value
	}
	if v, ok := s.Translations[locale]; ok && v != "" {
		return v
	}
	return s.Translations[LocaleEnglishUS]
}

// String returns the single value or the en_US translation.
func (s LocalizedString) String() string {
	return s.In(LocaleEnglishUS)
}
