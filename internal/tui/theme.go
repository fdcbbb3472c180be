package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Output   lipgloss.Style
	Copied   lipgloss.Style
	Error    lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Subtitle: lipgloss.NewStyle().Faint(true).Italic(true),
		Label:    lipgloss.NewStyle().Bold(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		Output: lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		Copied: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
