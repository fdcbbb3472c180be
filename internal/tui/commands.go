package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/snonux/martian/internal/session"
)

const copyTimeout = 5 * time.Second

func cmdCopy(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), copyTimeout)
		defer cancel()
		return copyDoneMsg{err: s.Copy(ctx)}
	}
}
