package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/churrascode/churrasco/internal/itemstore"
	"github.com/churrascode/churrasco/internal/payments"
)

// Snapshot is the data the dashboard renders from.
type Snapshot struct {
	Roster              []payments.Row
	Document            itemstore.Document
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the sources have failed on several loads in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Roster = payments.CloneRows(s.Roster)
	out.Document = s.Document.Clone()
	if s.LastError != nil {
		out.LastError = fmt.Errorf("%w", s.LastError)
	}
	return out
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored data. When err is non-nil the previous data is
// kept but the error is recorded; callers decide whether to show it.
func (s *Store) Update(roster []payments.Row, doc itemstore.Document, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Roster = payments.CloneRows(roster)
	s.snapshot.Document = doc.Clone()
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// UpdateDocument replaces only the item document, after a local mutation.
func (s *Store) UpdateDocument(doc itemstore.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Document = doc.Clone()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}
