package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/churrascode/churrasco/internal/itemstore"
)

// handleItemsKey processes keyboard input for the items view.
func (m Model) handleItemsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Forms need loaded data to start from.
	if m.refresh.Cached == nil || m.snapshot.LastError != nil {
		return m, nil
	}
	items := m.snapshot.Document.Items

	switch {
	case key.Matches(msg, m.keys.AddItem):
		cmd := m.openModal(newItemForm(m.snapshot.Roster, nil, m.addItemCmd))
		return m, cmd

	case key.Matches(msg, m.keys.EditExtras):
		cmd := m.openModal(newExtrasForm(m.snapshot.Roster, m.snapshot.Document.ExtraGuests, m.extrasCmd))
		return m, cmd
	}

	if len(items) == 0 {
		return m, nil
	}
	idx := min(m.selectedItem, len(items)-1)

	switch {
	case key.Matches(msg, m.keys.EditItem):
		current := items[idx]
		submit := func(it itemstore.Item) tea.Cmd { return m.updateItemCmd(idx, current, it) }
		cmd := m.openModal(newItemForm(m.snapshot.Roster, &current, submit))
		return m, cmd

	case key.Matches(msg, m.keys.DeleteItem):
		target := items[idx]
		cmd := m.openModal(newConfirmDelete(target, func() tea.Cmd { return m.deleteItemCmd(idx, target) }))
		return m, cmd

	case key.Matches(msg, m.keys.Down):
		m.selectedItem = min(idx+1, len(items)-1)
	case key.Matches(msg, m.keys.Up):
		m.selectedItem = max(idx-1, 0)
	case key.Matches(msg, m.keys.Top):
		m.selectedItem = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedItem = len(items) - 1
	}
	return m, nil
}

func (m Model) addItemCmd(it itemstore.Item) tea.Cmd {
	action := fmt.Sprintf("Item '%s' cadastrado para %s!", strings.TrimSpace(it.Name), it.CollaboratorName)
	return m.mutateCmd(action, func(s ItemEditor) error {
		_, err := s.AddItem(it.CollaboratorID, it.CollaboratorName, it.Name, it.Quantity, it.Unit, it.Notes)
		return err
	})
}

func (m Model) updateItemCmd(index int, current, it itemstore.Item) tea.Cmd {
	action := fmt.Sprintf("Item '%s' atualizado!", strings.TrimSpace(it.Name))
	return m.mutateCmd(action, func(s ItemEditor) error {
		if err := expectItem(s, index, current); err != nil {
			return err
		}
		return s.UpdateItem(index, it)
	})
}

func (m Model) deleteItemCmd(index int, it itemstore.Item) tea.Cmd {
	action := fmt.Sprintf("Item '%s' excluído!", it.Name)
	return m.mutateCmd(action, func(s ItemEditor) error {
		if err := expectItem(s, index, it); err != nil {
			return err
		}
		return s.DeleteItem(index)
	})
}

// expectItem fails with errItemChanged unless index still holds want in the
// file. Store writes are positional and the form may have been opened on a
// list that another process has since changed.
func expectItem(s ItemEditor, index int, want itemstore.Item) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(doc.Items) || doc.Items[index] != want {
		return errItemChanged
	}
	return nil
}

func (m Model) extrasCmd(extras itemstore.ExtraGuests) tea.Cmd {
	return m.mutateCmd("Pessoas extras salvas!", func(s ItemEditor) error {
		return s.SetExtraGuests(extras)
	})
}

// renderItems renders the item list and the extra guests panel side by side.
func (m Model) renderItems() string {
	contentHeight := m.height - 2 // Account for header + cmdbar
	if body, ok := m.renderLoadState(contentHeight); !ok {
		return body
	}

	status := m.renderFlash()
	boxHeight := contentHeight - lipgloss.Height(status)

	var listWidth, extrasWidth int
	if m.width >= LayoutCompactWidth {
		listWidth = m.width * 65 / 100
		extrasWidth = m.width - listWidth
	} else {
		listWidth = m.width
	}

	list := m.renderTitledBox(fmt.Sprintf("Itens do Churrasco (%d)", len(m.snapshot.Document.Items)),
		m.renderItemRows(listWidth-2), listWidth, boxHeight, true)
	if extrasWidth > 0 {
		extras := m.renderTitledBox("Pessoas Extras", m.renderExtras(extrasWidth-2), extrasWidth, boxHeight, false)
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, extras)
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, status)
}

// renderFlash renders the result of the last store update.
func (m Model) renderFlash() string {
	styles := m.theme.Styles()
	if m.flash == "" {
		return styles.FaintText.Render(" a: novo item  p: pessoas extras")
	}
	if m.flashError {
		return " " + styles.DangerText.Render(m.flash)
	}
	return " " + styles.SuccessText.Render(m.flash)
}

// renderItemRows formats items as "Item · qty unit · collaborator · notes".
func (m Model) renderItemRows(width int) string {
	styles := m.theme.Styles()
	items := m.snapshot.Document.Items
	if len(items) == 0 {
		return styles.MutedText.Render("Nenhum item cadastrado. Pressione a para adicionar.")
	}

	visible := max(m.height-6, 1)
	start, end := visibleWindow(len(items), m.selectedItem, visible)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.formatItemRow(i, items[i], width, i == m.selectedItem))
	}
	return strings.Join(lines, "\n")
}

func (m Model) formatItemRow(index int, it itemstore.Item, width int, selected bool) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	var idStyle, nameStyle, detailStyle, noteStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, nameStyle, detailStyle, noteStyle = selText, selText.Bold(true), selText, selText.Italic(true)
	} else {
		styles := m.theme.Styles()
		idStyle = styles.FaintText
		nameStyle = styles.Text.Bold(true)
		detailStyle = styles.MutedText
		noteStyle = styles.FaintText.Italic(true)
	}

	qty := strings.TrimSpace(fmt.Sprintf("%d %s", it.Quantity, it.Unit))
	parts := []string{
		bg.Render(fmt.Sprintf("%2d", index+1), idStyle),
		bg.Render(truncate(it.Name, 28), nameStyle),
		bg.Render(qty, detailStyle),
		bg.Render("👤 "+it.CollaboratorName, detailStyle),
	}
	if notes := strings.TrimSpace(it.Notes); notes != "" {
		parts = append(parts, bg.Render(truncate(notes, 40), noteStyle))
	}
	line := strings.Join(parts, bg.Sep(" · "))
	return bg.Line(line, width)
}

// renderExtras lists collaborators bringing extra guests.
func (m Model) renderExtras(width int) string {
	styles := m.theme.Styles()
	doc := m.snapshot.Document

	names := make(map[string]string, len(m.snapshot.Roster))
	for _, r := range m.snapshot.Roster {
		names[r.CollaboratorID] = r.Name
	}

	type entry struct {
		name  string
		count int
	}
	var entries []entry
	for id, n := range doc.ExtraGuests {
		if n <= 0 {
			continue
		}
		name := names[id]
		if name == "" {
			name = "#" + id
		}
		entries = append(entries, entry{name, n})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	lines := []string{
		styles.Text.Bold(true).Render(fmt.Sprintf("Total: %d", doc.ExtraGuestsTotal())),
		"",
	}
	if len(entries) == 0 {
		lines = append(lines, styles.MutedText.Render("Ninguém trará convidados."))
	}
	for _, e := range entries {
		lines = append(lines, padRight(truncate(e.name, width-6), width-5)+styles.AccentText.Render(fmt.Sprintf("+%d", e.count)))
	}
	lines = append(lines, "", styles.FaintText.Render("p para editar"))
	return strings.Join(lines, "\n")
}
