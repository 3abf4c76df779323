package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/churrascode/churrasco/internal/event"
	"github.com/churrascode/churrasco/internal/itemstore"
	"github.com/churrascode/churrasco/internal/payments"
	"github.com/churrascode/churrasco/internal/prefs"
	"github.com/churrascode/churrasco/internal/refresh"
	"github.com/churrascode/churrasco/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewItems
	ViewLogs
)

// Refresher loads a fresh snapshot. Load failures are reported through
// Snapshot.LastError rather than a separate error.
type Refresher interface {
	Refresh(ctx context.Context) state.Snapshot
}

// ItemEditor is the part of the item store the forms write through.
type ItemEditor interface {
	AddItem(collaboratorID, collaboratorName, itemName string, quantity int, unit, notes string) (int, error)
	UpdateItem(index int, item itemstore.Item) error
	DeleteItem(index int) error
	SetExtraGuests(mapping itemstore.ExtraGuests) error
	Load() (itemstore.Document, error)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Loader    Refresher
	Items     ItemEditor
	Store     *state.Store
	Scheduler refresh.Scheduler
	Event     event.Event
	Months    []string
	Fee       payments.Cents
	Changes   <-chan struct{}
	LogPath   string
	ThemeName string
	Filter    string
	PrefsPath string
	Logger    *slog.Logger
	Now       func() time.Time
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	loader    Refresher
	items     ItemEditor
	store     *state.Store
	sched     refresh.Scheduler
	event     event.Event
	months    []string
	fee       payments.Cents
	changes   <-chan struct{}
	prefsPath string
	logger    *slog.Logger
	nowFn     func() time.Time
	pollTick  time.Duration

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	now         time.Time

	// Refresh state
	refresh  refresh.State
	snapshot state.Snapshot
	fetching bool
	ownWrite *writeStamp

	// Dashboard state
	selectedRow  int
	nameFilter   textinput.Model
	filtering    bool
	statusFilter payments.StatusFilter

	// Items state
	selectedItem int

	// Log state
	logs logState

	// Overlays
	modal    Modal
	showHelp bool

	// Result of the last mutation, shown in the status line.
	flash      string
	flashError bool
}

var (
	errNoItemStore = errors.New("item store not configured")
	errItemChanged = errors.New("item mudou, recarregue")
)

// selfWriteGrace is how long watcher signals are attributed to our own save.
const selfWriteGrace = 2 * time.Second

// writeStamp holds the time of this process's last write to the item file.
// Mutation commands set it from their own goroutine.
type writeStamp struct {
	nanos atomic.Int64
}

func (w *writeStamp) mark(t time.Time) {
	w.nanos.Store(t.UnixNano())
}

func (w *writeStamp) within(now time.Time, d time.Duration) bool {
	n := w.nanos.Load()
	return n != 0 && now.Sub(time.Unix(0, n)) < d
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	sched := opts.Scheduler
	if sched.Now == nil {
		sched.Now = nowFn
	}
	if sched.Interval <= 0 {
		sched.Interval = refresh.DefaultInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	months := opts.Months
	if len(months) == 0 {
		months = payments.DefaultMonths
	}
	fee := opts.Fee
	if fee <= 0 {
		fee = payments.DefaultMonthlyFee
	}

	ti := textinput.New()
	ti.Placeholder = "Digite o nome..."
	ti.Prompt = "/"
	ti.CharLimit = 60

	start := nowFn()
	return Model{
		ctx:          ctx,
		loader:       opts.Loader,
		items:        opts.Items,
		store:        opts.Store,
		sched:        sched,
		event:        opts.Event,
		months:       append([]string(nil), months...),
		fee:          fee,
		changes:      opts.Changes,
		prefsPath:    opts.PrefsPath,
		logger:       logger,
		nowFn:        nowFn,
		pollTick:     pollTick,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		currentView:  ViewDashboard,
		now:          start,
		refresh:      refresh.NewState(start),
		nameFilter:   ti,
		statusFilter: payments.ParseStatusFilter(opts.Filter),
		logs:         newLogState(opts.LogPath),
		ownWrite:     &writeStamp{},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	// Nothing is cached at session start, so load immediately.
	if m.loader != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.ctx, m.loader))
	}
	if m.changes != nil {
		cmds = append(cmds, waitForChangeCmd(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		return m.handleSnapshot(state.Snapshot(msg))

	case fileChangedMsg:
		return m.handleFileChanged()

	case mutationMsg:
		return m.handleMutation(msg)

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	// Forward anything else (cursor blink etc.) to the open modal.
	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// Editing reports whether a form currently holds the refresh guard.
func (m Model) Editing() bool {
	return m.refresh.Editing
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}

	if m.filtering {
		return m.handleNameFilterInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		// Goes through the scheduler like a watcher signal would.
		m.sched.Invalidate(&m.refresh)
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchView((m.currentView + 1) % 3)

	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchView((m.currentView + 2) % 3)

	case key.Matches(msg, m.keys.ViewDashboard):
		return m.switchView(ViewDashboard)

	case key.Matches(msg, m.keys.ViewItems):
		return m.switchView(ViewItems)

	case key.Matches(msg, m.keys.ViewLogs):
		return m.switchView(ViewLogs)
	}

	switch m.currentView {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewItems:
		return m.handleItemsKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	if v == ViewLogs {
		cmd := m.refreshLogs() // Fetch immediately when entering logs
		return m, cmd
	}
	return m, nil
}

// openModal shows a form and holds the editing guard until it closes.
func (m *Model) openModal(modal Modal) tea.Cmd {
	m.modal = modal
	m.flash = ""
	m.sched.BeginEdit(&m.refresh)
	return textinput.Blink
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
		m.sched.EndEdit(&m.refresh)
		return m, cmd
	}
	m.modal = modal
	return m, cmd
}

// handleTick advances the clock and issues a reload when one is due.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	m.now = t
	cmds := []tea.Cmd{tickCmd(m.pollTick)}

	if m.loader != nil && !m.fetching && m.sched.ShouldReload(m.refresh) {
		m.fetching = true
		cmds = append(cmds, fetchSnapshotCmd(m.ctx, m.loader))
	}

	if m.currentView == ViewLogs && m.logs.follow {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleSnapshot records a completed load. A failed load still counts as a
// refresh so the next attempt waits a full interval.
func (m Model) handleSnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	at := m.nowFn()
	m.fetching = false
	m.snapshot = snap
	m.sched.Store(&m.refresh, snap, at)
	m.sched.MarkRefreshed(&m.refresh, at)
	m.clampSelections()
	if snap.LastError != nil {
		m.logger.Warn("dashboard refresh failed", "error", snap.LastError, "consecutive_failures", snap.ConsecutiveFailures)
	}
	return m, nil
}

func (m Model) handleFileChanged() (tea.Model, tea.Cmd) {
	next := waitForChangeCmd(m.changes)
	if m.ownWrite.within(m.nowFn(), selfWriteGrace) {
		return m, next
	}
	m.logger.Debug("item file changed externally, cache invalidated")
	m.sched.Invalidate(&m.refresh)
	return m, next
}

func (m Model) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.flash = "❌ " + msg.err.Error()
		m.flashError = true
		m.logger.Error("item store update failed", "action", msg.action, "error", msg.err)
		if errors.Is(msg.err, errItemChanged) {
			m.sched.Invalidate(&m.refresh)
		}
		return m, nil
	}

	at := m.nowFn()
	m.ownWrite.mark(at)
	m.snapshot.Document = msg.doc.Clone()
	if m.store != nil {
		m.store.UpdateDocument(msg.doc)
	}
	m.sched.Store(&m.refresh, m.snapshot, at)
	m.clampSelections()
	m.flash = "✅ " + msg.action
	m.flashError = false
	m.logger.Info("item store updated", "action", msg.action)
	return m, nil
}

func (m *Model) clampSelections() {
	rows := m.filteredRows()
	if m.selectedRow >= len(rows) {
		m.selectedRow = max(len(rows)-1, 0)
	}
	if n := len(m.snapshot.Document.Items); m.selectedItem >= n {
		m.selectedItem = max(n-1, 0)
	}
}

// handleNameFilterInput handles keyboard input while typing a name filter.
func (m Model) handleNameFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.filtering = false
		m.nameFilter.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.filtering = false
		m.nameFilter.Blur()
		m.nameFilter.SetValue("")
		m.selectedRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.nameFilter, cmd = m.nameFilter.Update(msg)
	m.selectedRow = 0
	return m, cmd
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Filter: m.statusFilter.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "error", err)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.renderDashboard()
	case ViewItems:
		return m.renderItems()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type fileChangedMsg struct{}

type mutationMsg struct {
	action string
	doc    itemstore.Document
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(ctx context.Context, loader Refresher) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(loader.Refresh(ctx))
	}
}

// waitForChangeCmd blocks until the watcher signals. A closed channel ends
// the chain.
func waitForChangeCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// mutateCmd applies fn to the item store and reloads the resulting document.
// The write is stamped before it happens so that the watcher signal it
// causes is recognised even when it arrives ahead of the result.
func (m Model) mutateCmd(action string, fn func(ItemEditor) error) tea.Cmd {
	items, stamp, now := m.items, m.ownWrite, m.nowFn
	return func() tea.Msg {
		if items == nil {
			return mutationMsg{action: action, err: errNoItemStore}
		}
		stamp.mark(now())
		if err := fn(items); err != nil {
			return mutationMsg{action: action, err: err}
		}
		doc, err := items.Load()
		return mutationMsg{action: action, doc: doc, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
