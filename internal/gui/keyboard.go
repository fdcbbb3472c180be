package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/martian/internal/translation"
)

// GlyphKeyboard is an on-screen keyboard for typing alien glyphs
type GlyphKeyboard struct {
	widget.BaseWidget

	container   *fyne.Container
	keys        []*ttwidget.Button
	onKey       func(string)
	onBackspace func()
}

// NewGlyphKeyboard creates a keyboard with one key per glyph plus
// space and backspace.
func NewGlyphKeyboard(onKey func(string), onBackspace func()) *GlyphKeyboard {
	k := &GlyphKeyboard{
		onKey:       onKey,
		onBackspace: onBackspace,
	}

	grid := container.New(layout.NewGridLayout(9))
	letters := translation.Letters()
	for _, l := range letters {
		glyph, _ := translation.Glyph(l)
		text := string(glyph)
		btn := ttwidget.NewButton(text, func() { k.press(text) })
		btn.SetToolTip("Alien letter " + string(l))
		k.keys = append(k.keys, btn)
		grid.Add(btn)
	}

	space := widget.NewButton("Space", func() { k.press(" ") })
	backspace := widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() {
		if k.onBackspace != nil {
			k.onBackspace()
		}
	})

	k.container = container.NewBorder(
		widget.NewLabel("Alien keyboard:"),
		container.NewBorder(nil, nil, nil, backspace, space),
		nil, nil,
		grid,
	)

	k.ExtendBaseWidget(k)
	return k
}

// CreateRenderer implements fyne.Widget
func (k *GlyphKeyboard) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(k.container)
}

// Keys returns the glyph buttons in A..Z order
func (k *GlyphKeyboard) Keys() []*ttwidget.Button {
	return k.keys
}

func (k *GlyphKeyboard) press(text string) {
	if k.onKey != nil {
		k.onKey(text)
	}
}
