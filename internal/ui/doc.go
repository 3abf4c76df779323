// Package ui implements the churrasco terminal dashboard on Bubble Tea.
//
// # Views
//
// Three views share the header and command bar:
//
//   - Dashboard (1): event countdown, financial KPI cards, collection
//     progress and the payment roster with name and status filters
//   - Items (2): the items each collaborator brings plus the extra guest
//     counts, with forms to add, edit and delete entries
//   - Logs (3): tail of the application log file
//
// # Refresh Model
//
// The view is recomputed from Model on every message. A tick fires once per
// second (DefaultUIInterval) and advances the countdown. On each tick the
// refresh.Scheduler decides whether a reload is due; if so a command calls
// the Refresher off the update loop and the result arrives as a snapshot
// message, which is stored and marked refreshed even when it carries an
// error. While an error is present the dashboard body is replaced by the
// error box until the next successful load.
//
// Opening a form calls BeginEdit and closing it calls EndEdit, so a periodic
// reload never lands while the user is typing. Closing a form does not
// trigger a reload by itself.
//
// Changes to the item file made by other processes arrive on the Changes
// channel (see package watch). They mark the cache stale so the next tick
// reloads it, unless they fall within a short grace period after one of our
// own saves.
//
// # Forms
//
// Forms implement Modal. They receive every message while open and report
// when they close. Submitting a form returns a command that writes through
// ItemEditor and reloads the document; the new document replaces the cached
// one without fetching the payment roster again.
//
// # Themes
//
// Themes are lipgloss palettes cycled with T. The chosen theme and status
// filter are saved to the preferences file.
package ui
