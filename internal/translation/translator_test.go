package translation

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"
)

func TestTranslate_RoundTripLetters(t *testing.T) {
	for _, l := range Letters() {
		letter := string(l)
		alien := Translate(letter, ToAlien)
		if alien == letter {
			t.Errorf("Letter %s was not translated", letter)
		}
		if back := Translate(alien, ToEnglish); back != letter {
			t.Errorf("Round trip of %s gave %s", letter, back)
		}
	}
}

func TestTranslate_FixedPoints(t *testing.T) {
	inputs := []string{
		"1234567890",
		"!?.,;:'\"()[]{}",
		" \t\n",
		"~@#$%^&*-_=+",
		"日本語",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if got := Translate(in, ToAlien); got != in {
				t.Errorf("Translate(%q, ToAlien) = %q, want unchanged", in, got)
			}
			if got := Translate(in, ToEnglish); got != in {
				t.Errorf("Translate(%q, ToEnglish) = %q, want unchanged", in, got)
			}
		})
	}
}

func TestTranslate_InvalidUTF8(t *testing.T) {
	tests := []struct {
		input     string
		direction Direction
		expected  string
	}{
		{"\xff", ToAlien, "\xff"},
		{"\xff", ToEnglish, "\xff"},
		{"A\xffB", ToAlien, "⏃\xff⏚"},
		{"⊑\xfe\xff⟟", ToEnglish, "H\xfe\xffI"},
		{"caf\xe9", ToAlien, "☊⏃⎎\xe9"},
	}

	for _, tt := range tests {
		if got := Translate(tt.input, tt.direction); got != tt.expected {
			t.Errorf("Translate(%q, %s) = %q, want %q", tt.input, tt.direction, got, tt.expected)
		}
	}
}

func TestTranslate_Empty(t *testing.T) {
	if got := Translate("", ToAlien); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
	if got := Translate("", ToEnglish); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestTranslate_PreservesLength(t *testing.T) {
	inputs := []string{
		"Hello, World!",
		"⊑⟒⌰⌰⍜ 42",
		"mixed ⏃ and A",
		"",
	}

	for _, in := range inputs {
		for _, d := range []Direction{ToAlien, ToEnglish} {
			got := Translate(in, d)
			if utf8.RuneCountInString(got) != utf8.RuneCountInString(in) {
				t.Errorf("Translate(%q, %s) changed length: %q", in, d, got)
			}
		}
	}
}

func TestTranslate_Table(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		direction Direction
		expected  string
	}{
		{"hello to alien", "HELLO", ToAlien, "⊑⟒⌰⌰⍜"},
		{"lowercase to alien", "hello", ToAlien, "⊑⟒⌰⌰⍜"},
		{"hello to english", "⊑⟒⌰⌰⍜", ToEnglish, "HELLO"},
		{"unmapped symbols kept", "A1B2!", ToAlien, "⏃1⏚2!"},
		{"whitespace kept", "A B\tC", ToAlien, "⏃ ⏚\t☊"},
		{"latin passes through to english", "Hello", ToEnglish, "Hello"},
		{"mixed glyphs and latin", "⏃b", ToEnglish, "Ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Translate(tt.input, tt.direction); got != tt.expected {
				t.Errorf("Translate(%q, %s) = %q, want %q", tt.input, tt.direction, got, tt.expected)
			}
		})
	}
}

func TestTranslate_CaseInsensitive(t *testing.T) {
	if Translate("Hello", ToAlien) != Translate("HELLO", ToAlien) {
		t.Error("Expected mixed case input to translate like uppercase")
	}
}

func TestTranslate_Deterministic(t *testing.T) {
	in := "The quick brown fox jumps over the lazy dog"
	first := Translate(in, ToAlien)
	for i := 0; i < 10; i++ {
		if got := Translate(in, ToAlien); got != first {
			t.Fatalf("Translation changed between calls: %q vs %q", first, got)
		}
	}
}

func TestAlphabet_Bijection(t *testing.T) {
	if len(alienAlphabet) != 26 {
		t.Fatalf("Expected 26 letters, got %d", len(alienAlphabet))
	}
	if len(englishAlphabet) != 26 {
		t.Fatalf("Expected 26 glyphs, got %d (duplicate glyph?)", len(englishAlphabet))
	}

	for letter, glyph := range alienAlphabet {
		if letter < 'A' || letter > 'Z' {
			t.Errorf("Unexpected key %q", letter)
		}
		if glyph >= 'A' && glyph <= 'Z' {
			t.Errorf("Letter %q maps to another letter %q", letter, glyph)
		}
		if back, ok := Letter(glyph); !ok || back != letter {
			t.Errorf("Letter(%q) = %q, want %q", glyph, back, letter)
		}
	}
}

func TestGlyph(t *testing.T) {
	g, ok := Glyph('a')
	if !ok || g != '⏃' {
		t.Errorf("Glyph('a') = %q, %v", g, ok)
	}
	if _, ok := Glyph('1'); ok {
		t.Error("Expected no glyph for '1'")
	}
}

func TestDirection(t *testing.T) {
	if ToAlien.Other() != ToEnglish || ToEnglish.Other() != ToAlien {
		t.Error("Other() is not symmetric")
	}
	if ToAlien.SourceLanguage() != "English" || ToAlien.TargetLanguage() != "Alien" {
		t.Errorf("Unexpected labels for ToAlien: %s/%s", ToAlien.SourceLanguage(), ToAlien.TargetLanguage())
	}
	if ToEnglish.SourceLanguage() != "Alien" || ToEnglish.TargetLanguage() != "English" {
		t.Errorf("Unexpected labels for ToEnglish: %s/%s", ToEnglish.SourceLanguage(), ToEnglish.TargetLanguage())
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected Direction
		wantErr  bool
	}{
		{"toAlien", ToAlien, false},
		{"ALIEN", ToAlien, false},
		{"toEnglish", ToEnglish, false},
		{" english ", ToEnglish, false},
		{"klingon", ToAlien, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseDirection(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTranslator_Cache(t *testing.T) {
	translator := NewTranslator(ToAlien)

	first := translator.TranslateLine("HELLO")
	second := translator.TranslateLine("HELLO")
	if first != second || first != "⊑⟒⌰⌰⍜" {
		t.Errorf("Unexpected translations %q, %q", first, second)
	}
	if translator.cache.Len() != 1 {
		t.Errorf("Expected 1 cached translation, got %d", translator.cache.Len())
	}

	// Same text in the other direction is cached separately
	translator.TranslateLineTo("HELLO", ToEnglish)
	if translator.cache.Len() != 2 {
		t.Errorf("Expected 2 cached translations, got %d", translator.cache.Len())
	}
}

func TestSaveTranslation(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out", "translations.txt")

	err := SaveTranslation(path, [][2]string{{"HI", "⊑⟟"}, {"A1", "⏃1"}})
	if err != nil {
		t.Fatalf("SaveTranslation failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read translation file: %v", err)
	}

	expected := "HI = ⊑⟟\nA1 = ⏃1\n"
	if string(content) != expected {
		t.Errorf("Expected content %q, got %q", expected, string(content))
	}
}

func TestSaveTranslation_InvalidPath(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := SaveTranslation(filepath.Join(blocker, "sub", "out.txt"), nil)
	if err == nil {
		t.Error("Expected error for invalid path")
	}
}
