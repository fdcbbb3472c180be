package translation

import "unicode"

// alienAlphabet maps each uppercase Latin letter to its glyph
var alienAlphabet = map[rune]rune{
	'A': '⏃', 'B': '⏚', 'C': '☊', 'D': '⎅', 'E': '⟒', 'F': '⎎', 'G': '☌',
	'H': '⊑', 'I': '⟟', 'J': '⟊', 'K': '☍', 'L': '⌰', 'M': '⋔', 'N': '⋏',
	'O': '⍜', 'P': '⌿', 'Q': '⍾', 'R': '⍀', 'S': '⌇', 'T': '⏁', 'U': '⎍',
	'V': '⎐', 'W': '⍙', 'X': '⌖', 'Y': '⊬', 'Z': '⋉',
}

// englishAlphabet is the inverse of alienAlphabet, built once at init
var englishAlphabet = func() map[rune]rune {
	m := make(map[rune]rune, len(alienAlphabet))
	for letter, glyph := range alienAlphabet {
		m[glyph] = letter
	}
	return m
}()

// Glyph returns the alien glyph for a Latin letter (any case)
func Glyph(letter rune) (rune, bool) {
	g, ok := alienAlphabet[unicode.ToUpper(letter)]
	return g, ok
}

// Letter returns the uppercase Latin letter for an alien glyph
func Letter(glyph rune) (rune, bool) {
	l, ok := englishAlphabet[glyph]
	return l, ok
}

// Letters returns the alphabet in A..Z order
func Letters() []rune {
	letters := make([]rune, 0, len(alienAlphabet))
	for r := 'A'; r <= 'Z'; r++ {
		letters = append(letters, r)
	}
	return letters
}
