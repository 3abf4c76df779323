package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints text on a fixed background. lipgloss resets the background
// after each styled segment, so plain spaces between segments show the
// terminal color instead; see https://github.com/charmbracelet/lipgloss/discussions/78.
type BgStyle struct {
	bg   lipgloss.Color
	fill lipgloss.Style
}

// NewBgStyle creates a helper for the given background color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{bg: bg, fill: lipgloss.NewStyle().Background(bg)}
}

// Render applies style to text with the background on every cell,
// including the spaces between words.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	words := strings.Split(text, " ")
	styled := style.Background(b.bg)
	for i, w := range words {
		if w != "" {
			words[i] = styled.Render(w)
		}
	}
	return strings.Join(words, b.Space())
}

// Space returns one painted space.
func (b BgStyle) Space() string {
	return b.fill.Render(" ")
}

// Spaces returns n painted spaces.
func (b BgStyle) Spaces(n int) string {
	return b.fill.Render(strings.Repeat(" ", max(n, 0)))
}

// Sep paints a separator string.
func (b BgStyle) Sep(sep string) string {
	return b.fill.Render(sep)
}

// Line pads or clips rendered content to exactly width cells.
func (b BgStyle) Line(content string, width int) string {
	return b.fill.Width(width).MaxWidth(width).Render(content)
}
