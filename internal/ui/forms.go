package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/churrascode/churrasco/internal/itemstore"
	"github.com/churrascode/churrasco/internal/payments"
)

// collaborator is one selectable owner for an item.
type collaborator struct {
	id   string
	name string
}

// Item form field indices. The collaborator selector comes first.
const (
	fieldCollaborator = iota
	fieldItem
	fieldQuantity
	fieldUnit
	fieldNotes
	fieldCount
)

// itemForm adds a new item or edits an existing one.
type itemForm struct {
	title    string
	options  []collaborator
	selected int
	inputs   [fieldCount - 1]textinput.Model // item, quantity, unit, notes
	focus    int
	err      string
	submit   func(itemstore.Item) tea.Cmd
}

// newItemForm builds the form. current is nil for a new item.
func newItemForm(roster []payments.Row, current *itemstore.Item, submit func(itemstore.Item) tea.Cmd) *itemForm {
	f := &itemForm{title: "Novo Item", submit: submit, focus: fieldItem}

	for _, r := range roster {
		f.options = append(f.options, collaborator{id: r.CollaboratorID, name: r.Name})
	}

	placeholders := [fieldCount - 1]string{
		"Ex: Chopp, Carvão, Linguiça...",
		"1",
		"Ex: barril 50L, kg, pacote...",
		"Informações adicionais...",
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		f.inputs[i] = ti
	}
	f.inputs[fieldQuantity-1].CharLimit = 6
	f.inputs[fieldQuantity-1].Validate = digitsOnly
	f.inputs[fieldQuantity-1].SetValue("1")

	if current != nil {
		f.title = "Editar Item"
		f.inputs[fieldItem-1].SetValue(current.Name)
		f.inputs[fieldQuantity-1].SetValue(strconv.Itoa(current.Quantity))
		f.inputs[fieldUnit-1].SetValue(current.Unit)
		f.inputs[fieldNotes-1].SetValue(current.Notes)
		f.selected = -1
		for i, o := range f.options {
			if o.id == current.CollaboratorID {
				f.selected = i
				break
			}
		}
		// Keep the owner selectable even if they left the roster.
		if f.selected < 0 {
			f.options = append(f.options, collaborator{id: current.CollaboratorID, name: current.CollaboratorName})
			f.selected = len(f.options) - 1
		}
	}

	f.applyFocus()
	return f
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("somente números")
		}
	}
	return nil
}

func (f *itemForm) applyFocus() {
	for i := range f.inputs {
		if i+1 == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// item assembles and validates the form values.
func (f *itemForm) item() (itemstore.Item, error) {
	if len(f.options) == 0 {
		return itemstore.Item{}, fmt.Errorf("Nenhum colaborador encontrado")
	}
	owner := f.options[f.selected]
	it := itemstore.Item{
		CollaboratorID:   owner.id,
		CollaboratorName: owner.name,
		Name:             strings.TrimSpace(f.inputs[fieldItem-1].Value()),
		Unit:             strings.TrimSpace(f.inputs[fieldUnit-1].Value()),
		Notes:            strings.TrimSpace(f.inputs[fieldNotes-1].Value()),
	}
	if it.Name == "" {
		return itemstore.Item{}, fmt.Errorf("Por favor, informe o item")
	}
	qty, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldQuantity-1].Value()))
	if err != nil || qty < 1 {
		return itemstore.Item{}, fmt.Errorf("Quantidade deve ser pelo menos 1")
	}
	it.Quantity = qty
	return it, nil
}

func (f *itemForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateInput(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.Escape):
		return f, nil, true

	case key.Matches(keyMsg, keys.Confirm):
		it, err := f.item()
		if err != nil {
			f.err = err.Error()
			return f, nil, false
		}
		return f, f.submit(it), true

	case key.Matches(keyMsg, keys.NextField):
		f.focus = (f.focus + 1) % fieldCount
		f.applyFocus()
		return f, nil, false

	case key.Matches(keyMsg, keys.PrevField):
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		f.applyFocus()
		return f, nil, false
	}

	if f.focus == fieldCollaborator && len(f.options) > 0 {
		switch {
		case key.Matches(keyMsg, keys.Right):
			f.selected = (f.selected + 1) % len(f.options)
		case key.Matches(keyMsg, keys.Left):
			f.selected = (f.selected + len(f.options) - 1) % len(f.options)
		}
		return f, nil, false
	}

	return f.updateInput(msg)
}

func (f *itemForm) updateInput(msg tea.Msg) (Modal, tea.Cmd, bool) {
	if f.focus == fieldCollaborator {
		return f, nil, false
	}
	var cmd tea.Cmd
	f.inputs[f.focus-1], cmd = f.inputs[f.focus-1].Update(msg)
	f.err = ""
	return f, cmd, false
}

func (f *itemForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	labels := [fieldCount]string{"Colaborador", "Item", "Quantidade", "Unidade", "Observações"}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(f.title))
	b.WriteString("\n\n")

	for i, label := range labels {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText.Bold(true)
		}
		b.WriteString(labelStyle.Width(14).Render(label))

		if i == fieldCollaborator {
			switch {
			case len(f.options) == 0:
				b.WriteString(styles.WarningText.Render("Nenhum colaborador encontrado"))
			case i == f.focus:
				b.WriteString(styles.AccentText.Render("◀ " + f.options[f.selected].name + " ▶"))
			default:
				b.WriteString(styles.Text.Render(f.options[f.selected].name))
			}
		} else {
			b.WriteString(f.inputs[i-1].View())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(styles.DangerText.Render("❌ " + f.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("tab: próximo campo  ←/→: colaborador  enter: salvar  esc: cancelar"))

	return placeModal(theme, width, height, 64, b.String())
}

// confirmDelete asks before removing an item.
type confirmDelete struct {
	item    itemstore.Item
	confirm func() tea.Cmd
}

func newConfirmDelete(it itemstore.Item, confirm func() tea.Cmd) *confirmDelete {
	return &confirmDelete{item: it, confirm: confirm}
}

func (c *confirmDelete) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		return c, c.confirm(), true
	case key.Matches(keyMsg, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmDelete) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.WarningText.Render("Confirmar Exclusão") + "\n\n" +
		styles.Text.Render(fmt.Sprintf("Tem certeza que deseja excluir o item %s de %s?",
			styles.Text.Bold(true).Render(c.item.Name),
			styles.Text.Bold(true).Render(c.item.CollaboratorName))) + "\n\n" +
		styles.FaintText.Render("y: sim, excluir  n/esc: cancelar")
	return placeModal(theme, width, height, 56, body)
}

// extrasForm edits the extra guest count of every collaborator.
type extrasForm struct {
	options []collaborator
	inputs  []textinput.Model
	focus   int
	offset  int
	err     string
	submit  func(itemstore.ExtraGuests) tea.Cmd
}

// newExtrasForm lists every roster collaborator, plus any id that already has
// extras but is no longer on the roster, so saving never drops counts.
func newExtrasForm(roster []payments.Row, current itemstore.ExtraGuests, submit func(itemstore.ExtraGuests) tea.Cmd) *extrasForm {
	f := &extrasForm{submit: submit}
	seen := make(map[string]bool, len(roster))
	for _, r := range roster {
		f.options = append(f.options, collaborator{id: r.CollaboratorID, name: r.Name})
		seen[r.CollaboratorID] = true
	}
	var orphans []string
	for id := range current {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		f.options = append(f.options, collaborator{id: id, name: "#" + id})
	}

	for _, o := range f.options {
		ti := textinput.New()
		ti.CharLimit = 3
		ti.Width = 4
		ti.Validate = digitsOnly
		ti.SetValue(strconv.Itoa(current[o.id]))
		f.inputs = append(f.inputs, ti)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// extras parses the inputs. Empty means zero.
func (f *extrasForm) extras() (itemstore.ExtraGuests, error) {
	out := make(itemstore.ExtraGuests, len(f.options))
	for i, o := range f.options {
		raw := strings.TrimSpace(f.inputs[i].Value())
		if raw == "" {
			out[o.id] = 0
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("valor inválido para %s", o.name)
		}
		out[o.id] = n
	}
	return out, nil
}

func (f *extrasForm) move(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *extrasForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Escape):
			return f, nil, true
		case key.Matches(keyMsg, keys.Confirm):
			if len(f.options) == 0 {
				return f, nil, true
			}
			extras, err := f.extras()
			if err != nil {
				f.err = err.Error()
				return f, nil, false
			}
			return f, f.submit(extras), true
		case key.Matches(keyMsg, keys.NextField):
			f.move(1)
			return f, nil, false
		case key.Matches(keyMsg, keys.PrevField):
			f.move(-1)
			return f, nil, false
		}
	}
	if len(f.inputs) == 0 {
		return f, nil, false
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.err = ""
	return f, cmd, false
}

func (f *extrasForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("👥 Pessoas Extras por Colaborador"))
	b.WriteString("\n\n")

	if len(f.options) == 0 {
		b.WriteString(styles.WarningText.Render("Nenhum colaborador encontrado"))
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("esc: fechar"))
		return placeModal(theme, width, height, 56, b.String())
	}

	visible := max(height-12, 3)
	start, end := visibleWindow(len(f.options), f.focus, visible)
	for i := start; i < end; i++ {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText.Bold(true)
		}
		b.WriteString(labelStyle.Width(36).Render(truncate("👤 "+f.options[i].name, 34)))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if end-start < len(f.options) {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d-%d de %d", start+1, end, len(f.options))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if f.err != "" {
		b.WriteString(styles.DangerText.Render("❌ " + f.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("tab/↑↓: navegar  enter: salvar  esc: cancelar"))

	return placeModal(theme, width, height, 56, b.String())
}
