package batch

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/martian/internal/translation"
)

// Entry is one line of text to translate
type Entry struct {
	Text      string
	Direction translation.Direction
	// Forced is set when the line carried its own direction marker
	Forced bool
}

// Result pairs an entry with its translation
type Result struct {
	Entry
	Translation string
}

// ReadBatchFile reads texts from a file, one per line.
// Supported formats:
//   - "HELLO"        translated in the default direction
//   - "< HELLO"      always translated to alien
//   - "> ⊑⟒⌰⌰⍜"     always translated to English
//   - "# comment"    ignored, as are blank lines
func ReadBatchFile(filename string, direction translation.Direction) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return ParseBatch(string(content), direction), nil
}

// ParseBatch parses batch content, see ReadBatchFile for the format
func ParseBatch(content string, direction translation.Direction) []Entry {
	var entries []Entry

	for _, line := range splitLines(content) {
		line = trimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := Entry{Text: line, Direction: direction}
		if rest, ok := cutMarker(line, '<'); ok {
			entry = Entry{Text: rest, Direction: translation.ToAlien, Forced: true}
		} else if rest, ok := cutMarker(line, '>'); ok {
			entry = Entry{Text: rest, Direction: translation.ToEnglish, Forced: true}
		}

		// Ignore markers without text
		if entry.Text != "" {
			entries = append(entries, entry)
		}
	}

	return entries
}

// Translate runs every entry through the translator
func Translate(entries []Entry, translator *translation.Translator) []Result {
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		results = append(results, Result{
			Entry:       e,
			Translation: translator.TranslateLineTo(e.Text, e.Direction),
		})
	}
	return results
}

// cutMarker strips a direction marker. The marker must stand alone, i.e.
// be followed by whitespace or end the line, so "<3 you" is plain text.
func cutMarker(line string, marker byte) (string, bool) {
	if len(line) == 0 || line[0] != marker {
		return "", false
	}
	if len(line) == 1 {
		return "", true
	}
	if line[1] != ' ' && line[1] != '\t' {
		return "", false
	}
	return trimSpace(line[2:]), true
}

// splitLines splits a string by newlines. Only a carriage return directly
// before the newline (or at the very end) is removed.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.SplitAfter(s, "\n") {
		if line == "" {
			continue
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		lines = append(lines, line)
	}
	return lines
}

// trimSpace trims ASCII whitespace from both ends
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
