package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codeberg.org/snonux/martian/internal"
	"codeberg.org/snonux/martian/internal/clipboard"
	"codeberg.org/snonux/martian/internal/session"
	"codeberg.org/snonux/martian/internal/translation"
)

type model struct {
	theme   Theme
	deps    Deps
	session *session.Session

	input   textarea.Model
	width   int
	status  string
	failed  bool
	copying bool
}

func Run(deps Deps) error {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	m := newModel(deps, clipboard.NewOSC52Writer(os.Stderr))
	defer m.session.Close()

	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	m.session.OnChange(func(session.State) {
		// Send blocks until the event loop reads it; Update may be the caller.
		go p.Send(stateChangedMsg{})
	})

	_, err := p.Run()
	return err
}

// newModel builds the model around a fresh session. The terminal writer is
// the last clipboard strategy, tried after deps.Clipboard.
func newModel(deps Deps, terminal clipboard.Writer) model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	diag := slog.NewLogLogger(logger.Handler(), slog.LevelWarn)

	chain := clipboard.NewChain(
		clipboard.Strategy{Name: "primary", Writer: deps.Clipboard},
		clipboard.Strategy{Name: "terminal", Writer: terminal},
	)
	chain.SetLogger(diag)

	s := session.New(chain)
	s.SetLogger(diag)
	if deps.Direction == translation.ToEnglish {
		s.Swap()
	}

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetHeight(6)
	ta.Focus()

	m := model{
		theme:   DefaultTheme(),
		deps:    deps,
		session: s,
		input:   ta,
		status:  "Ready",
	}
	m.updatePlaceholder()
	return m
}

func (m model) Init() tea.Cmd { return textarea.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(msg.Width-6, 10))
		return m, nil

	case stateChangedMsg:
		return m, nil

	case copyDoneMsg:
		m.copying = false
		if msg.err != nil {
			m.failed = true
			m.status = "Copy failed (see logs)"
			return m, nil
		}
		m.failed = false
		m.status = "Ready"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+s":
			m.session.Swap()
			m.input.SetValue(m.session.InputText())
			m.updatePlaceholder()
			d := m.session.Direction()
			m.failed = false
			m.status = fmt.Sprintf("Now translating %s to %s", d.SourceLanguage(), d.TargetLanguage())
			return m, nil

		case "ctrl+y":
			if m.copying {
				return m, nil
			}
			m.copying = true
			return m, cmdCopy(m.session)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.session.InputText() {
		m.session.Edit(v)
	}
	return m, cmd
}

func (m model) View() string {
	st := m.session.Snapshot()
	wrap := lipgloss.NewStyle().Padding(1, 2)

	header := m.theme.Title.Render("Martian Translator") + " " +
		m.theme.Help.Render("v"+internal.Version) + "\n" +
		m.theme.Subtitle.Render("Decode the language of the cosmos") + "\n"

	inputBox := m.theme.Label.Render(st.Direction.SourceLanguage()) + "\n" + m.input.View()

	out := st.TargetText
	if out == "" {
		out = m.theme.Help.Render("Translation appears here...")
	} else {
		out = m.theme.Output.Render(out)
	}
	outputCard := m.theme.Card
	if m.width > 8 {
		outputCard = outputCard.Width(m.width - 8)
	}
	outputBox := m.theme.Label.Render(st.Direction.TargetLanguage()) + "\n" + outputCard.Render(out)

	var status strings.Builder
	fmt.Fprintf(&status, "%s → %s · %d characters · ",
		st.Direction.SourceLanguage(), st.Direction.TargetLanguage(), st.CharCount())
	switch {
	case st.CopyFeedbackActive:
		status.WriteString(m.theme.Copied.Render("Copied!"))
	case m.failed:
		status.WriteString(m.theme.Error.Render(m.status))
	default:
		status.WriteString(m.status)
	}

	help := m.theme.Help.Render("ctrl+s swap · ctrl+y copy · esc quit")

	return wrap.Render(header + "\n" + inputBox + "\n\n" + outputBox + "\n\n" + status.String() + "\n" + help)
}

func (m *model) updatePlaceholder() {
	m.input.Placeholder = fmt.Sprintf("Type %s text here...", m.session.Direction().SourceLanguage())
}
