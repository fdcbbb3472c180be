package cli

import "codeberg.org/snonux/martian/internal/translation"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	ToEnglish  bool
	Direction  string
	OutputFile string
	BatchFile  string
	TUIMode    bool
	Copy       bool
	Archive    bool

	// Clipboard flags
	ClipboardTool string

	// Anki flags
	GenerateAnki bool
	AnkiCSV      bool
	DeckName     string
	AnkiOutput   string
}

// TranslationDirection resolves the default direction. --to-english wins,
// then --direction ("alien", "english", "toAlien", "toEnglish").
func (f *Flags) TranslationDirection() (translation.Direction, error) {
	if f.ToEnglish {
		return translation.ToEnglish, nil
	}
	if f.Direction == "" {
		return translation.ToAlien, nil
	}
	return translation.ParseDirection(f.Direction)
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		DeckName: "Alien Alphabet",
	}
}
