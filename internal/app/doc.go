// Package app is the composition root of the churrasco dashboard.
//
// Run wires the pieces together in this order:
//
//  1. config.Load reads ~/.config/churrasco/config.toml and the environment
//  2. the application log is opened (the TUI owns the terminal)
//  3. preferences supply the theme and the last roster filter
//  4. Open creates the read-only payment source and the item store
//  5. a watch.Watcher reports external edits to the item file
//  6. ui.Run drives everything until the user quits
//
// There is no background poller. The UI tick asks the refresh scheduler
// whether a reload is due and, if so, calls Loader.Refresh in a command.
// Loader records every outcome in the shared state.Store; a failed load keeps
// the previous data and carries the error in Snapshot.LastError.
//
// Environment is also used by the CLI subcommands, which read and write the
// same files without starting the UI.
package app
