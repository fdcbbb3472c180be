package gui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
)

var errClipboardMismatch = errors.New("clipboard content did not match after write")

// fyneClipboard writes through the platform clipboard owned by the fyne app.
// The write is verified by reading the content back. The caller stops
// waiting for the main loop once ctx is done.
type fyneClipboard struct {
	clip fyne.Clipboard
}

func (c fyneClipboard) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan string, 1)
	fyne.Do(func() {
		c.clip.SetContent(text)
		done <- c.clip.Content()
	})

	select {
	case got := <-done:
		if got != text {
			return errClipboardMismatch
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
