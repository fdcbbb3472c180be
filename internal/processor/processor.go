package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/snonux/martian/internal"
	"codeberg.org/snonux/martian/internal/anki"
	"codeberg.org/snonux/martian/internal/archive"
	"codeberg.org/snonux/martian/internal/batch"
	"codeberg.org/snonux/martian/internal/cli"
	"codeberg.org/snonux/martian/internal/clipboard"
	"codeberg.org/snonux/martian/internal/gui"
	"codeberg.org/snonux/martian/internal/translation"
	"codeberg.org/snonux/martian/internal/tui"
)

// Processor handles the main translation logic
type Processor struct {
	flags      *cli.Flags
	translator *translation.Translator
	out        io.Writer
	clipboard  clipboard.Writer
}

// NewProcessor creates a new processor
func NewProcessor(flags *cli.Flags) *Processor {
	direction, err := flags.TranslationDirection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, translating to alien\n", err)
		direction = translation.ToAlien
	}
	return &Processor{
		flags:      flags,
		translator: translation.NewTranslator(direction),
		out:        os.Stdout,
	}
}

// SetOutput redirects translation output, stdout by default
func (p *Processor) SetOutput(w io.Writer) {
	p.out = w
}

// SetClipboard overrides the clipboard used by --copy
func (p *Processor) SetClipboard(w clipboard.Writer) {
	p.clipboard = w
}

// Direction returns the default translation direction
func (p *Processor) Direction() translation.Direction {
	return p.translator.Direction()
}

// ProcessText translates a single text from the command line
func (p *Processor) ProcessText(text string) error {
	translated := p.translator.TranslateLine(text)

	if p.flags.OutputFile != "" {
		if err := p.archiveExisting(p.flags.OutputFile); err != nil {
			return err
		}
		if err := translation.SaveTranslation(p.flags.OutputFile, [][2]string{{text, translated}}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(p.out, translated)
	}

	if p.flags.Copy {
		return p.copy(translated)
	}
	return nil
}

// ProcessBatch translates every line of the batch file
func (p *Processor) ProcessBatch() error {
	entries, err := batch.ReadBatchFile(p.flags.BatchFile, p.Direction())
	if err != nil {
		return err
	}

	results := batch.Translate(entries, p.translator)

	pairs := make([][2]string, 0, len(results))
	translated := make([]string, 0, len(results))
	for _, r := range results {
		pairs = append(pairs, [2]string{r.Text, r.Translation})
		translated = append(translated, r.Translation)
	}

	if p.flags.OutputFile != "" {
		if err := p.archiveExisting(p.flags.OutputFile); err != nil {
			return err
		}
		if err := translation.SaveTranslation(p.flags.OutputFile, pairs); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Translated %d lines to %s\n", len(pairs), p.flags.OutputFile)
	} else {
		for _, pair := range pairs {
			fmt.Fprintf(p.out, "%s = %s\n", pair[0], pair[1])
		}
	}

	if p.flags.Copy && len(translated) > 0 {
		return p.copy(strings.Join(translated, "\n"))
	}
	return nil
}

// GenerateAnkiFile exports the alphabet deck and returns its path. With
// --batch, every batch line is added as a phrase card.
func (p *Processor) GenerateAnkiFile() (string, error) {
	cards, err := p.ankiCards()
	if err != nil {
		return "", err
	}

	outputPath := p.flags.AnkiOutput
	if p.flags.AnkiCSV {
		if outputPath == "" {
			outputPath = internal.SanitizeFilename(p.flags.DeckName) + ".csv"
		}
		if err := p.archiveExisting(outputPath); err != nil {
			return "", err
		}
		gen := anki.NewGenerator(&anki.GeneratorOptions{
			OutputPath:     outputPath,
			IncludeHeaders: true,
		})
		for _, c := range cards {
			gen.AddCard(c)
		}
		if err := gen.GenerateCSV(); err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
		return outputPath, nil
	}

	if outputPath == "" {
		outputPath = internal.SanitizeFilename(p.flags.DeckName) + ".apkg"
	}
	if err := p.archiveExisting(outputPath); err != nil {
		return "", err
	}
	gen := anki.NewAPKGGenerator(p.flags.DeckName)
	for _, c := range cards {
		gen.AddCard(c)
	}
	if err := gen.GenerateAPKG(outputPath); err != nil {
		return "", fmt.Errorf("failed to generate APKG: %w", err)
	}
	return outputPath, nil
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	app := gui.New(&gui.Config{
		Direction: p.Direction(),
		Fallback:  p.fallbackClipboard(),
	})
	app.Run()
	return nil
}

// RunTUIMode launches the terminal user interface
func (p *Processor) RunTUIMode() error {
	return tui.Run(tui.Deps{
		Direction: p.Direction(),
		Clipboard: p.clipboardWriter(),
	})
}

func (p *Processor) ankiCards() ([]anki.Card, error) {
	cards := anki.AlphabetCards()
	if p.flags.BatchFile == "" {
		return cards, nil
	}

	entries, err := batch.ReadBatchFile(p.flags.BatchFile, p.Direction())
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		english := e.Text
		if e.Direction == translation.ToEnglish {
			english = p.translator.TranslateLineTo(e.Text, translation.ToEnglish)
		}
		cards = append(cards, anki.PhraseCard(english))
	}
	return cards, nil
}

// archiveExisting moves a previous output file aside when --archive is set
func (p *Processor) archiveExisting(path string) error {
	if !p.flags.Archive {
		return nil
	}
	archived, err := archive.ArchiveFile(path)
	if err != nil {
		return err
	}
	if archived != "" {
		fmt.Fprintf(os.Stderr, "Previous output archived to: %s\n", archived)
	}
	return nil
}

func (p *Processor) copy(text string) error {
	if err := p.clipboardWriter().Write(context.Background(), text); err != nil {
		return fmt.Errorf("failed to copy translation: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Copied to clipboard")
	return nil
}

func (p *Processor) clipboardWriter() clipboard.Writer {
	if p.clipboard != nil {
		return p.clipboard
	}
	var system clipboard.Writer
	if w := clipboard.NewSystemWriter(); w != nil {
		system = w
	}
	return clipboard.NewChain(
		clipboard.Strategy{Name: "command", Writer: p.fallbackClipboard()},
		clipboard.Strategy{Name: "system", Writer: system},
	)
}

// fallbackClipboard returns the external command writer, or nil when no
// tool is configured or found.
func (p *Processor) fallbackClipboard() clipboard.Writer {
	if p.flags.ClipboardTool != "" {
		tool, err := clipboard.ParseTool(p.flags.ClipboardTool)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return nil
		}
		return clipboard.NewCommandWriter(tool)
	}

	w, err := clipboard.DetectCommandWriter(clipboard.DefaultTools())
	if err != nil {
		return nil
	}
	return w
}
