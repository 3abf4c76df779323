// Package refresh decides when the dashboard reloads its data.
//
// Reloads are time based: a refresh is due once Interval has elapsed since the
// last one. While the user is editing a form no refresh is ever due, however
// long the edit takes, so an open form is never rebuilt under the user.
// Ending an edit does not force a refresh; the next regular check picks it up.
package refresh

import (
	"time"

	"github.com/churrascode/churrasco/internal/state"
)

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 60 * time.Second

// Scheduler holds the refresh policy. Now is injectable for tests.
type Scheduler struct {
	Interval time.Duration
	Now      func() time.Time
}

// New returns a Scheduler with the given interval and clock. A nil clock
// means time.Now.
func New(interval time.Duration, now func() time.Time) Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if now == nil {
		now = time.Now
	}
	return Scheduler{Interval: interval, Now: now}
}

// State is the per-session refresh state.
type State struct {
	LastRefresh time.Time
	Editing     bool

	// Cached is the last snapshot loaded, nil until the first load.
	Cached   *state.Snapshot
	CachedAt time.Time

	// Stale is set when the cached data is known to be out of date
	// before the interval elapsed.
	Stale bool
}

// NewState returns an idle state whose clock starts at sessionStart.
func NewState(sessionStart time.Time) State {
	return State{LastRefresh: sessionStart}
}

func (s Scheduler) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s Scheduler) interval() time.Duration {
	if s.Interval <= 0 {
		return DefaultInterval
	}
	return s.Interval
}

// ShouldRefresh reports whether a refresh is due: not editing and at least
// Interval elapsed since LastRefresh. It does not modify st.
func (s Scheduler) ShouldRefresh(st State) bool {
	if st.Editing {
		return false
	}
	return s.now().Sub(st.LastRefresh) >= s.interval()
}

// ShouldReload is ShouldRefresh, or a stale cache while not editing.
func (s Scheduler) ShouldReload(st State) bool {
	if st.Editing {
		return false
	}
	return st.Stale || s.ShouldRefresh(st)
}

// MarkRefreshed records a completed refresh attempt.
func (s Scheduler) MarkRefreshed(st *State, at time.Time) {
	st.LastRefresh = at
	st.Stale = false
}

// Store records snap as the cached data.
func (s Scheduler) Store(st *State, snap state.Snapshot, at time.Time) {
	st.Cached = &snap
	st.CachedAt = at
}

// Invalidate marks the cached data as out of date.
func (s Scheduler) Invalidate(st *State) {
	st.Stale = true
}

// BeginEdit suppresses refreshes until EndEdit.
func (s Scheduler) BeginEdit(st *State) {
	st.Editing = true
}

// EndEdit re-enables refreshes. It does not trigger one.
func (s Scheduler) EndEdit(st *State) {
	st.Editing = false
}

// NextIn returns the time until the next refresh is due, or 0 when it is
// already due. While editing it reports the remaining interval as if idle.
func (s Scheduler) NextIn(st State) time.Duration {
	left := s.interval() - s.now().Sub(st.LastRefresh)
	if left < 0 {
		return 0
	}
	return left
}
