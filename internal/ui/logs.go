package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/churrascode/churrasco/internal/logtail"
)

// logState holds the tail of the application log.
type logState struct {
	path     string
	lines    []string
	err      error
	follow   bool
	viewport viewport.Model
}

func newLogState(path string) logState {
	return logState{
		path:     path,
		follow:   true,
		viewport: viewport.New(0, 0),
	}
}

type logLinesMsg struct {
	lines []string
	err   error
}

// refreshLogs reads the log file off the update loop.
func (m Model) refreshLogs() tea.Cmd {
	path := m.logs.path
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogBufferLimit)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logs.err = msg.err
	if msg.err == nil {
		m.logs.lines = msg.lines
	}
	m.updateLogViewport()
}

// updateLogViewport resizes the viewport to the log box and reloads its content.
func (m *Model) updateLogViewport() {
	m.logs.viewport.Width = max(m.width-2, 1)
	m.logs.viewport.Height = max(m.height-4, 1) // header, cmdbar, box borders
	m.logs.viewport.SetContent(m.renderLogLines(m.logs.viewport.Width))
	if m.logs.follow {
		m.logs.viewport.GotoBottom()
	}
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := &m.logs.viewport

	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			vp.GotoBottom()
		}

	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
		m.logs.follow = false

	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
		m.logs.follow = true

	case key.Matches(msg, m.keys.Down):
		vp.LineDown(1)
		m.logs.follow = false

	case key.Matches(msg, m.keys.Up):
		vp.LineUp(1)
		m.logs.follow = false

	case key.Matches(msg, m.keys.HalfPageDown):
		vp.HalfViewDown()
		m.logs.follow = false

	case key.Matches(msg, m.keys.HalfPageUp):
		vp.HalfViewUp()
		m.logs.follow = false
	}

	return m, nil
}

// renderLogLines colors each line by level and truncates to width.
func (m Model) renderLogLines(width int) string {
	styles := m.theme.Styles()

	if m.logs.path == "" {
		return styles.MutedText.Render("Log desativado (sem arquivo configurado).")
	}
	if len(m.logs.lines) == 0 {
		return styles.MutedText.Render("Nenhum registro em " + m.logs.path)
	}

	out := make([]string, 0, len(m.logs.lines))
	for _, line := range m.logs.lines {
		out = append(out, m.formatLogLine(logtail.Parse(line), width))
	}
	return strings.Join(out, "\n")
}

func (m Model) formatLogLine(e logtail.Entry, width int) string {
	styles := m.theme.Styles()
	if e.Level == logtail.LevelUnknown {
		return styles.Text.Render(truncate(e.Message, width))
	}

	var levelStyle lipgloss.Style
	switch e.Level {
	case logtail.LevelError:
		levelStyle = styles.DangerText.Bold(true)
	case logtail.LevelWarn:
		levelStyle = styles.WarningText.Bold(true)
	case logtail.LevelInfo:
		levelStyle = styles.SuccessText.Bold(true)
	default:
		levelStyle = styles.InfoText.Bold(true)
	}

	prefix := e.Time + " " + e.Level.String() + " "
	msg := truncate(e.Message, max(width-lipgloss.Width(prefix), 1))
	return styles.FaintText.Render(e.Time) + " " + levelStyle.Render(e.Level.String()) + " " + styles.Text.Render(msg)
}

func (m Model) renderLogs() string {
	title := "Logs"
	if m.logs.path != "" {
		title = fmt.Sprintf("Logs · %s", m.logs.path)
	}
	if !m.logs.follow {
		title += " (pausado)"
	}

	content := m.logs.viewport.View()
	if m.logs.err != nil {
		content = m.theme.Styles().DangerText.Render("❌ "+m.logs.err.Error()) + "\n" + content
	}
	return m.renderTitledBox(title, content, m.width, max(m.height-2, 3), true)
}
