// Package tui is the interactive terminal interface for sweatlog. The
// functionality is split across files:
//   - model.go: types, Init, async commands (this file)
//   - update.go: the Update loop and key handling
//   - view.go: rendering
//   - forms.go: input state for the two modal forms
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"sweatlog/cmd/sweatlog/ui"
	"sweatlog/internal/api"
	"sweatlog/internal/auth"
	"sweatlog/internal/config"
	"sweatlog/internal/form"
	"sweatlog/internal/store"
)

// ViewMode selects the visible tab.
type ViewMode int

const (
	LogsView ViewMode = iota
	TypesView
	HelpView
)

// InputMode is the input handling state machine: browsing the lists, one of
// the modal forms, or a pending delete confirmation.
type InputMode int

const (
	ModeBrowse InputMode = iota
	ModeLogForm
	ModeTypeForm
	ModeConfirmDelete
)

// deleteKind distinguishes what a pending confirmation would delete.
type deleteKind int

const (
	deleteLog deleteKind = iota
	deleteType
)

// deleteTarget is a delete awaiting the user's confirmation keypress.
type deleteTarget struct {
	kind  deleteKind
	id    string
	label string
}

// Model is the bubbletea model for the whole client.
type Model struct {
	cfg     config.Config
	log     *zap.Logger
	client  *api.Client
	session *auth.Session
	store   *store.Store

	styles   ui.Styles
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	viewMode  ViewMode
	inputMode InputMode
	prevView  ViewMode // tab to return to when leaving help

	width  int
	height int
	ready  bool

	// isLoading covers the identity check and the initial collection load;
	// busy covers a single in-flight mutation. While busy, submit and
	// delete triggers are disabled (advisory, not a lock).
	isLoading bool
	busy      bool

	// Display snapshots of the store collections, refreshed after each
	// completed operation. View renders from these and from typesInUse
	// only; collection writes happen exclusively in Update, never inside a
	// command goroutine.
	logs       []api.WorkoutLog
	types      []api.WorkoutType
	typesInUse map[string]bool

	logCursor  int
	typeCursor int

	status  string
	errText string

	logForm  *logFormState
	typeForm *typeFormState
	confirm  *deleteTarget
}

// New assembles the model from the composition root's objects.
func New(cfg config.Config, client *api.Client, session *auth.Session, st *store.Store, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	styles := ui.NewStyles(ui.ThemeFor(cfg.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)

	return Model{
		cfg:       cfg,
		log:       logger,
		client:    client,
		session:   session,
		store:     st,
		styles:    styles,
		spinner:   sp,
		renderer:  renderer,
		viewMode:  LogsView,
		inputMode: ModeBrowse,
		isLoading: true,
	}
}

// Init starts the spinner and kicks off identity resolution. The collection
// load is gated behind a successful resolve.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.resolveSession())
}

// =============================================================================
// MESSAGES
// =============================================================================

type (
	sessionResolvedMsg struct{ user *api.User }
	sessionFailedMsg   struct{ err error }

	collectionsLoadedMsg struct{}
	loadFailedMsg        struct{ err error }

	logSavedMsg struct {
		log     api.WorkoutLog
		editing bool
	}
	typeSavedMsg struct {
		workoutType api.WorkoutType
		editing     bool
	}

	logDeletedMsg  struct{ id string }
	typeDeletedMsg struct{ id string }

	mutationFailedMsg struct{ err error }
)

// =============================================================================
// ASYNC COMMANDS
// =============================================================================
// Network work happens inside tea.Cmd closures; results come back as typed
// messages and all model/store state changes are applied in Update.

func (m Model) resolveSession() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		if err := session.Resolve(context.Background()); err != nil {
			return sessionFailedMsg{err: err}
		}
		return sessionResolvedMsg{user: session.User()}
	}
}

func (m Model) loadCollections() tea.Cmd {
	st := m.store
	return func() tea.Msg {
		if err := st.LoadAll(context.Background()); err != nil {
			return loadFailedMsg{err: err}
		}
		return collectionsLoadedMsg{}
	}
}

func (m Model) submitLogForm(f *form.LogForm) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		saved, err := f.Submit(context.Background(), client)
		if err != nil {
			return mutationFailedMsg{err: err}
		}
		return logSavedMsg{log: *saved, editing: f.Editing()}
	}
}

func (m Model) submitTypeForm(f *form.TypeForm) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		saved, err := f.Submit(context.Background(), client)
		if err != nil {
			return mutationFailedMsg{err: err}
		}
		return typeSavedMsg{workoutType: *saved, editing: f.Editing()}
	}
}

// The delete commands only talk to the server. The local removal is applied
// in Update when the completion message lands, keeping collection writes on
// the event loop.
func (m Model) deleteLogCmd(id string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		if err := st.DeleteLog(context.Background(), id); err != nil {
			return mutationFailedMsg{err: err}
		}
		return logDeletedMsg{id: id}
	}
}

func (m Model) deleteTypeCmd(id string) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		if err := st.DeleteType(context.Background(), id); err != nil {
			return mutationFailedMsg{err: err}
		}
		return typeDeletedMsg{id: id}
	}
}

// refreshSnapshots re-reads the display slices from the store. Called from
// Update after a completed load or mutation.
func (m *Model) refreshSnapshots() {
	m.logs = m.store.Logs()
	m.types = m.store.Types()
	m.typesInUse = make(map[string]bool, len(m.types))
	for _, l := range m.logs {
		m.typesInUse[l.WorkoutType.ID] = true
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	if m.logCursor >= len(m.logs) {
		m.logCursor = len(m.logs) - 1
	}
	if m.logCursor < 0 {
		m.logCursor = 0
	}
	if m.typeCursor >= len(m.types) {
		m.typeCursor = len(m.types) - 1
	}
	if m.typeCursor < 0 {
		m.typeCursor = 0
	}
}
