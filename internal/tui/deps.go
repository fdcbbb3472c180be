package tui

import (
	"log/slog"

	"codeberg.org/snonux/martian/internal/clipboard"
	"codeberg.org/snonux/martian/internal/translation"
)

type Deps struct {
	Direction translation.Direction
	Clipboard clipboard.Writer

	Logger *slog.Logger
}
