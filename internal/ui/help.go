package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (k keyMap) helpSections() []helpSection {
	return []helpSection{
		{"Navegação", []key.Binding{k.ViewDashboard, k.ViewItems, k.ViewLogs, k.Tab, k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp}},
		{"Painel", []key.Binding{k.FilterName, k.CycleFilter, k.ClearFilters}},
		{"Itens", []key.Binding{k.AddItem, k.EditItem, k.DeleteItem, k.EditExtras}},
		{"Logs", []key.Binding{k.ToggleFollow}},
		{"Geral", []key.Binding{k.Reload, k.CycleTheme, k.Help, k.Quit}},
	}
}

// renderHelp renders the key binding overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(12)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Atalhos de Teclado"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))

	for _, section := range m.keys.helpSections() {
		b.WriteString("\n\n")
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString("\n")
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
		}
	}
	return placeModal(m.theme, m.width, m.height, 40, b.String())
}
