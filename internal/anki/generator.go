package anki

import (
	"encoding/csv"
	"fmt"
	"os"

	"codeberg.org/snonux/martian/internal/translation"
)

// Card is one letter/glyph flashcard
type Card struct {
	English string // Latin letter or word
	Alien   string // Glyph rendering
	Notes   string // Optional notes
}

// AlphabetCards returns one card per letter, A..Z
func AlphabetCards() []Card {
	letters := translation.Letters()
	cards := make([]Card, 0, len(letters))
	for _, l := range letters {
		glyph, _ := translation.Glyph(l)
		cards = append(cards, Card{
			English: string(l),
			Alien:   string(glyph),
			Notes:   fmt.Sprintf("Letter %d of 26", l-'A'+1),
		})
	}
	return cards
}

// PhraseCard builds a card for an arbitrary English phrase
func PhraseCard(english string) Card {
	return Card{
		English: english,
		Alien:   translation.Translate(english, translation.ToAlien),
	}
}

// GeneratorOptions configures the CSV export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "martian_alphabet.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible CSV import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// Cards returns the collected cards
func (g *Generator) Cards() []Card {
	return g.cards
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		if err := writer.Write([]string{"English", "Alien", "Notes"}); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		if err := writer.Write([]string{card.English, card.Alien, card.Notes}); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
