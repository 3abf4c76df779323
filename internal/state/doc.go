// Package state holds the last loaded dashboard data for the UI.
//
// The Store is written by the loader after each refresh and read by the view.
// Reads and writes are guarded by a sync.RWMutex and every value crossing the
// boundary is deep-copied, so a Snapshot can be rendered without locking.
//
// Update semantics:
//
//	store.Update(roster, doc, nil)  // replace data, clear error, reset failures
//	store.Update(nil, Document{}, err) // keep data, record err, count failure
//
// Keeping the previous data on failure does not mean it is shown: the view
// decides what to render when LastError is set.
//
// The zero Store is ready to use.
package state
