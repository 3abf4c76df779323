package itemstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/churrascode/churrasco/internal/atomicfile"
)

const defaultFileMode os.FileMode = 0o644

// Store is the persistent item store backed by one JSON file.
type Store struct {
	path     string
	seedPath string
	perm     os.FileMode
	logger   *slog.Logger

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithSeedPath sets the document used to initialise a missing backing file.
func WithSeedPath(path string) Option {
	return func(s *Store) { s.seedPath = path }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFileMode sets the permissions of the backing file.
func WithFileMode(perm os.FileMode) Option {
	return func(s *Store) { s.perm = perm }
}

// New returns a Store for the backing file at path. Nothing is read or
// written until the first operation.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		perm:   defaultFileMode,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current document, seeding the backing file first when it
// does not exist.
func (s *Store) Load() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save atomically replaces the backing file with doc.
func (s *Store) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(doc)
}

// List returns the items in their stored order.
func (s *Store) List() ([]Item, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// AddItem appends a new item and returns its index.
func (s *Store) AddItem(collaboratorID, collaboratorName, itemName string, quantity int, unit, notes string) (int, error) {
	item := Item{
		CollaboratorID:   collaboratorID,
		CollaboratorName: collaboratorName,
		Name:             itemName,
		Quantity:         quantity,
		Unit:             unit,
		Notes:            notes,
	}.normalized()
	if err := item.Validate(); err != nil {
		return 0, err
	}

	var index int
	err := s.mutate(func(doc *Document) error {
		doc.Items = append(doc.Items, item)
		index = len(doc.Items) - 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("item added", "index", index, "item", item.Name, "collaborator_id", item.CollaboratorID)
	return index, nil
}

// UpdateItem replaces the item at index.
func (s *Store) UpdateItem(index int, item Item) error {
	item = item.normalized()
	if err := item.Validate(); err != nil {
		return err
	}
	err := s.mutate(func(doc *Document) error {
		if err := checkIndex(index, len(doc.Items)); err != nil {
			return err
		}
		doc.Items[index] = item
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("item updated", "index", index, "item", item.Name)
	return nil
}

// DeleteItem removes the item at index; later items shift down by one.
func (s *Store) DeleteItem(index int) error {
	var removed Item
	err := s.mutate(func(doc *Document) error {
		if err := checkIndex(index, len(doc.Items)); err != nil {
			return err
		}
		removed = doc.Items[index]
		doc.Items = append(doc.Items[:index], doc.Items[index+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("item deleted", "index", index, "item", removed.Name)
	return nil
}

// SetExtraGuests replaces the whole extra guests mapping.
func (s *Store) SetExtraGuests(mapping ExtraGuests) error {
	if err := mapping.Validate(); err != nil {
		return err
	}
	replacement := make(ExtraGuests, len(mapping))
	for id, n := range mapping {
		replacement[id] = n
	}
	err := s.mutate(func(doc *Document) error {
		doc.ExtraGuests = replacement
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("extra guests replaced", "collaborators", len(replacement))
	return nil
}

func checkIndex(index, n int) error {
	if index < 0 || index >= n {
		return &IndexOutOfRangeError{Index: index, Len: n}
	}
	return nil
}

// mutate runs a load, modify, save sequence under the store lock. Nothing is
// written when fn fails.
func (s *Store) mutate(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.saveLocked(doc)
}

func (s *Store) loadLocked() (Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.seedLocked(); err != nil {
			return Document{}, err
		}
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("read item document: %w", err)
	}

	doc, err := decode(data)
	if err != nil {
		return Document{}, &CorruptDataError{Path: s.path, Err: err}
	}
	return doc, nil
}

// seedLocked initialises a missing backing file from the seed file, or from
// an empty document when there is no seed.
func (s *Store) seedLocked() error {
	doc := EmptyDocument()
	source := "empty"

	if s.seedPath != "" {
		data, err := os.ReadFile(s.seedPath)
		switch {
		case err == nil:
			seeded, err := decode(data)
			if err != nil {
				return &CorruptDataError{Path: s.seedPath, Err: err}
			}
			doc = seeded
			source = s.seedPath
		case errors.Is(err, os.ErrNotExist):
		default:
			return fmt.Errorf("read seed document: %w", err)
		}
	}

	if err := s.saveLocked(doc); err != nil {
		return fmt.Errorf("seed item document: %w", err)
	}
	s.logger.Info("item document seeded", "path", s.path, "source", source)
	return nil
}

func (s *Store) saveLocked(doc Document) error {
	if err := doc.validate(); err != nil {
		return err
	}
	data, err := encode(doc)
	if err != nil {
		return fmt.Errorf("encode item document: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, data, s.perm); err != nil {
		return fmt.Errorf("write item document: %w", err)
	}
	return nil
}
