package translation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Translate maps text character by character. Runes outside the active
// direction's table are copied through unchanged, so the output always has
// the same rune count as the input.
func Translate(text string, direction Direction) string {
	if text == "" {
		return ""
	}

	mapping := alienAlphabet
	if direction == ToEnglish {
		mapping = englishAlphabet
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid UTF-8 is copied byte for byte
			b.WriteByte(text[i])
			i++
			continue
		}
		if mapped, ok := mapping[unicode.ToUpper(r)]; ok {
			b.WriteRune(mapped)
		} else {
			b.WriteString(text[i : i+size])
		}
		i += size
	}
	return b.String()
}

// Translator translates with a fixed default direction and remembers
// results for repeated input.
type Translator struct {
	direction Direction
	cache     *TranslationCache
}

// NewTranslator creates a new translator instance
func NewTranslator(direction Direction) *Translator {
	return &Translator{
		direction: direction,
		cache:     NewTranslationCache(),
	}
}

// Direction returns the translator's default direction
func (t *Translator) Direction() Direction {
	return t.direction
}

// TranslateLine translates text in the translator's default direction
func (t *Translator) TranslateLine(text string) string {
	return t.TranslateLineTo(text, t.direction)
}

// TranslateLineTo translates text in the given direction, consulting the cache
func (t *Translator) TranslateLineTo(text string, direction Direction) string {
	key := direction.String() + "\x00" + text
	if translated, ok := t.cache.Get(key); ok {
		return translated
	}
	translated := Translate(text, direction)
	t.cache.Add(key, translated)
	return translated
}

// SaveTranslation writes "source = translation" lines to path
func SaveTranslation(path string, pairs [][2]string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s = %s\n", p[0], p[1])
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write translation file: %w", err)
	}

	return nil
}

// TranslationCache stores translations in memory for batch operations
type TranslationCache struct {
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(text, translation string) {
	tc.translations[text] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(text string) (string, bool) {
	translation, ok := tc.translations[text]
	return translation, ok
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	return len(tc.translations)
}
