package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// InputEntry is the editable translator pane. Escape leaves the field, and
// the text can be replaced from session state without echoing an edit back.
type InputEntry struct {
	widget.Entry
	onEscape func()
}

// NewInputEntry creates a word wrapped multi-line input
func NewInputEntry(onEscape func()) *InputEntry {
	e := &InputEntry{onEscape: onEscape}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	return e
}

// TypedKey implements fyne.Focusable
func (e *InputEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// SetTextQuietly replaces the text without calling OnChanged
func (e *InputEntry) SetTextQuietly(text string) {
	onChanged := e.OnChanged
	e.OnChanged = nil
	e.SetText(text)
	e.OnChanged = onChanged
}
