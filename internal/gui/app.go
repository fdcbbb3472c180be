package gui

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/martian/internal"
	"codeberg.org/snonux/martian/internal/clipboard"
	"codeberg.org/snonux/martian/internal/session"
	"codeberg.org/snonux/martian/internal/translation"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	sourceLabel *widget.Label
	targetLabel *widget.Label
	inputEntry  *InputEntry
	outputEntry *widget.Entry
	swapButton  *ttwidget.Button
	copyButton  *ttwidget.Button
	countLabel  *widget.Label
	statusLabel *widget.Label
	keyboard    *GlyphKeyboard
	logViewer   *LogViewer

	// State management
	session *session.Session
	logger  *log.Logger

	copyMu  sync.Mutex
	copying bool
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds GUI application configuration
type Config struct {
	// Direction is the initial translation direction
	Direction translation.Direction
	// Fallback is tried when the platform clipboard fails, may be nil
	Fallback clipboard.Writer
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{Direction: translation.ToAlien}
}

// New creates a new GUI application
func New(config *Config) *Application {
	return newApplication(app.NewWithID("org.codeberg.snonux.martian"), config)
}

func newApplication(fyneApp fyne.App, config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &Application{
		app:       fyneApp,
		ctx:       ctx,
		cancel:    cancel,
		logViewer: NewLogViewer(),
	}
	a.logger = log.New(io.MultiWriter(os.Stderr, a.logViewer), "", log.LstdFlags)

	chain := clipboard.NewChain(
		clipboard.Strategy{Name: "platform", Writer: fyneClipboard{clip: fyneApp.Clipboard()}},
		clipboard.Strategy{Name: "command", Writer: config.Fallback},
	)
	chain.SetLogger(a.logger)

	a.session = session.New(chain)
	a.session.SetLogger(a.logger)
	if config.Direction == translation.ToEnglish {
		a.session.Swap()
	}
	a.session.OnChange(func(session.State) {
		fyne.Do(a.refresh)
	})

	a.setupUI()
	a.refresh()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("Martian Translator v%s", internal.Version))
	a.window.Resize(fyne.NewSize(900, 640))

	title := widget.NewLabelWithStyle("Martian Translator", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabelWithStyle("Decode the language of the cosmos", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	a.sourceLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	a.targetLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	a.inputEntry = NewInputEntry(func() {
		a.window.Canvas().Unfocus()
	})
	a.inputEntry.OnChanged = a.session.Edit

	a.outputEntry = widget.NewMultiLineEntry()
	a.outputEntry.Wrapping = fyne.TextWrapWord
	a.outputEntry.SetPlaceHolder("Translation appears here...")
	a.outputEntry.Disable()

	a.swapButton = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), a.onSwap)
	a.copyButton = ttwidget.NewButtonWithIcon("", theme.ContentCopyIcon(), a.onCopy)

	a.countLabel = widget.NewLabel("")
	a.countLabel.Alignment = fyne.TextAlignCenter
	a.statusLabel = widget.NewLabel("Ready")
	a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	a.keyboard = NewGlyphKeyboard(a.session.Type, a.session.Backspace)

	labels := container.NewBorder(nil, nil, nil, nil,
		container.New(layout.NewGridLayout(3),
			a.sourceLabel,
			container.NewCenter(a.swapButton),
			a.targetLabel,
		),
	)

	outputPane := container.NewBorder(nil,
		container.NewHBox(layout.NewSpacer(), a.copyButton),
		nil, nil,
		a.outputEntry,
	)

	panes := container.NewHSplit(a.inputEntry, outputPane)
	panes.SetOffset(0.5)

	bottom := container.NewVBox(
		a.countLabel,
		widget.NewSeparator(),
		a.keyboard,
		widget.NewSeparator(),
		a.statusLabel,
		a.logViewer,
	)

	content := container.NewBorder(
		container.NewVBox(title, subtitle, labels),
		bottom,
		nil, nil,
		panes,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.swapButton.SetToolTip("Swap languages (Ctrl+S)")

	// Runs on the main loop, which a pending clipboard write needs, so
	// in-flight copies are cancelled rather than waited for.
	a.window.SetOnClosed(func() {
		a.cancel()
		a.session.Close()
	})

	a.setupKeyboardShortcuts()
}

func (a *Application) setupKeyboardShortcuts() {
	canvas := a.window.Canvas()
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyS,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) {
		a.onSwap()
	})
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyC,
		Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift,
	}, func(fyne.Shortcut) {
		a.onCopy()
	})
}

// Run starts the GUI application and returns once the window is closed
// and no copy is left running.
func (a *Application) Run() {
	a.window.ShowAndRun()
	a.wg.Wait()
}

// onSwap flips the direction, the visible texts move panes unchanged
func (a *Application) onSwap() {
	a.session.Swap()
	a.updateStatus(fmt.Sprintf("Now translating %s to %s",
		a.session.Direction().SourceLanguage(), a.session.Direction().TargetLanguage()))
}

// onCopy copies the output pane in the background; only one copy runs at a time
func (a *Application) onCopy() {
	a.copyMu.Lock()
	if a.copying {
		a.copyMu.Unlock()
		return
	}
	a.copying = true
	a.copyMu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			a.copyMu.Lock()
			a.copying = false
			a.copyMu.Unlock()
		}()

		if err := a.session.Copy(a.ctx); err != nil {
			fyne.Do(func() {
				a.updateStatus("Copy failed (see diagnostics)")
			})
			return
		}
		fyne.Do(func() {
			a.updateStatus("Copied to clipboard")
		})
	}()
}

// refresh redraws every widget from the latest session state
func (a *Application) refresh() {
	st := a.session.Snapshot()

	a.sourceLabel.SetText(st.Direction.SourceLanguage())
	a.targetLabel.SetText(st.Direction.TargetLanguage())
	a.inputEntry.SetPlaceHolder(fmt.Sprintf("Type %s text here... Press Escape to leave the field", st.Direction.SourceLanguage()))

	if a.inputEntry.Text != st.SourceText {
		a.inputEntry.SetTextQuietly(st.SourceText)
	}
	if a.outputEntry.Text != st.TargetText {
		a.outputEntry.SetText(st.TargetText)
	}

	a.countLabel.SetText(fmt.Sprintf("%d characters", st.CharCount()))

	if st.CopyFeedbackActive {
		a.copyButton.SetIcon(theme.ConfirmIcon())
		a.copyButton.SetToolTip("Copied!")
	} else {
		a.copyButton.SetIcon(theme.ContentCopyIcon())
		a.copyButton.SetToolTip("Copy to clipboard (Ctrl+Shift+C)")
	}
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}
