package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/churrascode/churrasco/internal/itemstore"
	"github.com/churrascode/churrasco/internal/payments"
	"github.com/churrascode/churrasco/internal/state"
)

// rosterFetcher is the read side of payments.Source.
type rosterFetcher interface {
	FetchRoster(ctx context.Context) ([]payments.Row, error)
}

// documentLoader is the read side of itemstore.Store.
type documentLoader interface {
	Load() (itemstore.Document, error)
}

// Loader fetches the roster and the item document and records the result.
type Loader struct {
	source rosterFetcher
	items  documentLoader
	store  *state.Store
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil logger uses slog.Default.
func NewLoader(source rosterFetcher, items documentLoader, store *state.Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = &state.Store{}
	}
	return &Loader{source: source, items: items, store: store, logger: logger}
}

// Refresh loads both sources. A failure in either is recorded in the store,
// which keeps the previous data, and returned through Snapshot.LastError.
func (l *Loader) Refresh(ctx context.Context) state.Snapshot {
	roster, err := l.source.FetchRoster(ctx)
	if err != nil {
		l.fail(fmt.Errorf("fetch payment roster: %w", err))
		return l.store.Snapshot()
	}

	doc, err := l.items.Load()
	if err != nil {
		l.fail(fmt.Errorf("load items: %w", err))
		return l.store.Snapshot()
	}

	l.store.Update(roster, doc, nil)
	l.logger.Debug("dashboard data loaded", "collaborators", len(roster), "items", len(doc.Items))
	return l.store.Snapshot()
}

func (l *Loader) fail(err error) {
	l.store.Update(nil, itemstore.Document{}, err)
	l.logger.Warn("dashboard load failed", "error", err)
}
