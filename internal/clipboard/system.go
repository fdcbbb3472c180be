package clipboard

import (
	"context"
	"errors"

	sysclip "github.com/atotto/clipboard"
)

// ErrUnsupported is returned when the system clipboard has no backend
var ErrUnsupported = errors.New("system clipboard not supported on this platform")

// SystemWriter writes through the operating system clipboard
type SystemWriter struct {
	writeAll func(string) error
}

// NewSystemWriter returns a writer backed by the system clipboard, or nil
// when no backend is available.
func NewSystemWriter() *SystemWriter {
	if sysclip.Unsupported {
		return nil
	}
	return &SystemWriter{writeAll: sysclip.WriteAll}
}

// Write implements Writer
func (w *SystemWriter) Write(ctx context.Context, text string) error {
	if w == nil || w.writeAll == nil {
		return ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.writeAll(text)
}
