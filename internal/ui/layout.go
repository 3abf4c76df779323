package ui

import "time"

// LayoutCompactWidth is the terminal width below which panels stack and the
// roster switches to short month labels.
const LayoutCompactWidth = 100

// LogBufferLimit is the maximum number of log lines kept for the Logs view.
const LogBufferLimit = 2000

// DefaultUIInterval is the default tick that drives the countdown and the
// refresh check.
const DefaultUIInterval = time.Second
