package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/churrascode/churrasco/internal/itemstore"
)

func updateModal(t *testing.T, modal Modal, keys ...string) (Modal, tea.Cmd, bool) {
	t.Helper()
	var (
		cmd    tea.Cmd
		closed bool
	)
	km := DefaultKeyMap()
	for _, k := range keys {
		modal, cmd, closed = modal.Update(keyMsg(k), km)
	}
	return modal, cmd, closed
}

func TestItemFormRequiresName(t *testing.T) {
	var submitted bool
	form := newItemForm(testRoster(), nil, func(itemstore.Item) tea.Cmd {
		submitted = true
		return nil
	})

	_, _, closed := updateModal(t, form, "enter")
	if closed || submitted {
		t.Fatalf("empty item name should not submit")
	}
	if form.err != "Por favor, informe o item" {
		t.Fatalf("err = %q", form.err)
	}
}

func TestItemFormQuantityAtLeastOne(t *testing.T) {
	form := newItemForm(testRoster(), nil, func(itemstore.Item) tea.Cmd { return nil })
	form.inputs[fieldItem-1].SetValue("Gelo")
	form.inputs[fieldQuantity-1].SetValue("0")

	if _, _, closed := updateModal(t, form, "enter"); closed {
		t.Fatalf("quantity 0 should not submit")
	}
	if form.err == "" {
		t.Fatalf("expected a quantity error")
	}
}

func TestItemFormSubmitsSelectedCollaborator(t *testing.T) {
	var got itemstore.Item
	form := newItemForm(testRoster(), nil, func(it itemstore.Item) tea.Cmd {
		got = it
		return nil
	})

	form.focus = fieldCollaborator
	updateModal(t, form, "right")
	form.focus = fieldItem
	form.applyFocus()
	form.inputs[fieldItem-1].SetValue("  Linguiça ")
	form.inputs[fieldQuantity-1].SetValue("3")
	form.inputs[fieldUnit-1].SetValue("kg")

	if _, _, closed := updateModal(t, form, "enter"); !closed {
		t.Fatalf("valid form should close: %s", form.err)
	}
	want := itemstore.Item{CollaboratorID: "2", CollaboratorName: "Bruno", Name: "Linguiça", Quantity: 3, Unit: "kg"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submitted item mismatch (-want +got):\n%s", diff)
	}
}

func TestItemFormKeepsDepartedOwner(t *testing.T) {
	current := itemstore.Item{CollaboratorID: "99", CollaboratorName: "Zé", Name: "Farofa", Quantity: 2}
	form := newItemForm(testRoster(), &current, func(itemstore.Item) tea.Cmd { return nil })

	if form.title != "Editar Item" {
		t.Fatalf("title = %q", form.title)
	}
	it, err := form.item()
	if err != nil {
		t.Fatalf("item(): %v", err)
	}
	if diff := cmp.Diff(current, it); diff != "" {
		t.Fatalf("edit form lost the item (-want +got):\n%s", diff)
	}
}

func TestItemFormWithoutRoster(t *testing.T) {
	form := newItemForm(nil, nil, func(itemstore.Item) tea.Cmd { return nil })
	form.inputs[fieldItem-1].SetValue("Pão")
	updateModal(t, form, "enter")
	if form.err != "Nenhum colaborador encontrado" {
		t.Fatalf("err = %q", form.err)
	}
}

func TestItemFormEscapeCancels(t *testing.T) {
	form := newItemForm(testRoster(), nil, func(itemstore.Item) tea.Cmd {
		t.Fatalf("escape must not submit")
		return nil
	})
	if _, cmd, closed := updateModal(t, form, "esc"); !closed || cmd != nil {
		t.Fatalf("esc should close without a command")
	}
}

func TestExtrasFormSubmitsEveryCollaborator(t *testing.T) {
	var got itemstore.ExtraGuests
	current := itemstore.ExtraGuests{"1": 2, "77": 1}
	form := newExtrasForm(testRoster(), current, func(g itemstore.ExtraGuests) tea.Cmd {
		got = g
		return nil
	})

	if len(form.options) != 4 {
		t.Fatalf("options = %d, want roster plus the departed id", len(form.options))
	}
	form.inputs[1].SetValue("")  // Bruno: empty means zero
	form.inputs[2].SetValue("3") // Mariana

	if _, _, closed := updateModal(t, form, "enter"); !closed {
		t.Fatalf("extras form should close: %s", form.err)
	}
	want := itemstore.ExtraGuests{"1": 2, "2": 0, "3": 3, "77": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("extras mismatch (-want +got):\n%s", diff)
	}
}

func TestExtrasFormNavigation(t *testing.T) {
	form := newExtrasForm(testRoster(), nil, func(itemstore.ExtraGuests) tea.Cmd { return nil })
	updateModal(t, form, "tab", "tab", "tab")
	if form.focus != 0 {
		t.Fatalf("focus = %d, want wrap to 0", form.focus)
	}
	if !form.inputs[0].Focused() || form.inputs[2].Focused() {
		t.Fatalf("only the focused input should accept typing")
	}
}

func TestConfirmDelete(t *testing.T) {
	it := itemstore.Item{Name: "Carvão", CollaboratorName: "Ana", Quantity: 1}

	tests := []struct {
		key       string
		confirmed bool
		closed    bool
	}{
		{"y", true, true},
		{"enter", true, true},
		{"n", false, true},
		{"esc", false, true},
		{"x", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var confirmed bool
			dlg := newConfirmDelete(it, func() tea.Cmd {
				confirmed = true
				return nil
			})
			_, _, closed := updateModal(t, dlg, tt.key)
			if closed != tt.closed || confirmed != tt.confirmed {
				t.Fatalf("key %q: closed=%v confirmed=%v, want %v %v", tt.key, closed, confirmed, tt.closed, tt.confirmed)
			}
		})
	}
}
