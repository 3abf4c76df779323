package itemstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Item is one entry of the list of things to bring.
type Item struct {
	CollaboratorID   string
	CollaboratorName string
	Name             string
	Quantity         int
	Unit             string
	Notes            string
}

// Validate checks the item invariants: a non-blank name and a quantity of at
// least one.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: item name is empty", ErrInvalidItem)
	}
	if it.Quantity < 1 {
		return fmt.Errorf("%w: quantity %d must be at least 1", ErrInvalidItem, it.Quantity)
	}
	return nil
}

// normalized trims the free-text fields.
func (it Item) normalized() Item {
	it.CollaboratorID = strings.TrimSpace(it.CollaboratorID)
	it.CollaboratorName = strings.TrimSpace(it.CollaboratorName)
	it.Name = strings.TrimSpace(it.Name)
	it.Unit = strings.TrimSpace(it.Unit)
	it.Notes = strings.TrimSpace(it.Notes)
	return it
}

// ExtraGuests maps a collaborator id to the number of additional guests that
// collaborator brings.
type ExtraGuests map[string]int

// Validate rejects negative counts.
func (g ExtraGuests) Validate() error {
	for id, n := range g {
		if n < 0 {
			return fmt.Errorf("%w: %q has %d", ErrNegativeGuests, id, n)
		}
	}
	return nil
}

// Document is the on-disk aggregate.
type Document struct {
	Items       []Item
	ExtraGuests ExtraGuests
}

// EmptyDocument returns a document with no items and no extra guests.
func EmptyDocument() Document {
	return Document{Items: []Item{}, ExtraGuests: ExtraGuests{}}
}

// Clone returns a deep copy.
func (d Document) Clone() Document {
	out := Document{
		Items:       make([]Item, len(d.Items)),
		ExtraGuests: make(ExtraGuests, len(d.ExtraGuests)),
	}
	copy(out.Items, d.Items)
	for id, n := range d.ExtraGuests {
		out.ExtraGuests[id] = n
	}
	return out
}

// ExtraGuestsTotal sums the extra guests of every collaborator.
func (d Document) ExtraGuestsTotal() int {
	total := 0
	for _, n := range d.ExtraGuests {
		total += n
	}
	return total
}

func (d Document) validate() error {
	for i, it := range d.Items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return d.ExtraGuests.Validate()
}

type itemJSON struct {
	CollaboratorID   string `json:"collaborator_id"`
	CollaboratorName string `json:"collaborator_name"`
	Item             string `json:"item"`
	Quantity         int    `json:"quantity"`
	Unit             string `json:"unit"`
	Notes            string `json:"observacoes"`
}

// itemWire accepts both the current keys and the ones used by the earlier
// dashboard.
type itemWire struct {
	CollaboratorID   json.RawMessage `json:"collaborator_id"`
	LegacyID         json.RawMessage `json:"colaborador_id"`
	CollaboratorName *string         `json:"collaborator_name"`
	LegacyName       *string         `json:"nome_colaborador"`
	Item             string          `json:"item"`
	Quantity         *int            `json:"quantity"`
	LegacyQuantity   *int            `json:"quantidade"`
	Unit             *string         `json:"unit"`
	LegacyUnit       *string         `json:"unidade"`
	Notes            string          `json:"observacoes"`
}

// MarshalJSON writes the persisted field names.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		CollaboratorID:   it.CollaboratorID,
		CollaboratorName: it.CollaboratorName,
		Item:             it.Name,
		Quantity:         it.Quantity,
		Unit:             it.Unit,
		Notes:            it.Notes,
	})
}

// UnmarshalJSON reads current and legacy field names.
func (it *Item) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	rawID := w.CollaboratorID
	if len(rawID) == 0 {
		rawID = w.LegacyID
	}
	id, err := decodeID(rawID)
	if err != nil {
		return err
	}
	*it = Item{
		CollaboratorID:   id,
		CollaboratorName: firstString(w.CollaboratorName, w.LegacyName),
		Name:             w.Item,
		Unit:             firstString(w.Unit, w.LegacyUnit),
		Notes:            w.Notes,
	}
	switch {
	case w.Quantity != nil:
		it.Quantity = *w.Quantity
	case w.LegacyQuantity != nil:
		it.Quantity = *w.LegacyQuantity
	}
	return nil
}

func firstString(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}

// decodeID accepts a JSON string or number; the roster table hands out
// integer ids while the document treats them as opaque strings.
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("collaborator id %s is neither a string nor a number", raw)
}

type documentJSON struct {
	Items       []Item      `json:"items"`
	ExtraGuests ExtraGuests `json:"pessoas_extras"`
}

type documentWire struct {
	Items       []Item      `json:"items"`
	LegacyItems []Item      `json:"itens"`
	ExtraGuests ExtraGuests `json:"pessoas_extras"`
}

// MarshalJSON writes the persisted document shape. Nil collections are
// written as empty ones.
func (d Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{Items: d.Items, ExtraGuests: d.ExtraGuests}
	if out.Items == nil {
		out.Items = []Item{}
	}
	if out.ExtraGuests == nil {
		out.ExtraGuests = ExtraGuests{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads current and legacy document shapes.
func (d *Document) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("document is null")
	}
	var w documentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	items := w.Items
	if items == nil {
		items = w.LegacyItems
	}
	if items == nil {
		items = []Item{}
	}
	guests := w.ExtraGuests
	if guests == nil {
		guests = ExtraGuests{}
	}
	*d = Document{Items: items, ExtraGuests: guests}
	return nil
}

// encode renders the document as indented UTF-8 JSON with a trailing newline.
func encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decode parses and validates a document.
func decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	if err := doc.validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}
