package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweatlog/internal/api"
	"sweatlog/internal/auth"
	"sweatlog/internal/config"
	"sweatlog/internal/store"
)

var (
	running  = api.WorkoutType{ID: "wt1", Sequence: 1, Name: "Running"}
	swimming = api.WorkoutType{ID: "wt2", Sequence: 2, Name: "Swimming"}
	logA     = api.WorkoutLog{ID: "wl1", Sequence: 1, Date: "2024-01-15", WorkoutType: running, Minutes: 45}
)

// newTestModel builds a model with a pre-populated store, past the loading
// screen, the way it looks after a successful initial load.
func newTestModel(t *testing.T) Model {
	t.Helper()

	st := store.New(nil, nil)
	st.ApplyTypeCreate(running)
	st.ApplyTypeCreate(swimming)
	st.ApplyLogCreate(logA)

	session := auth.NewSession(nil, nil, nil)
	m := New(config.Default(), nil, session, st, nil)
	m.ready = true
	m.isLoading = false
	m.refreshSnapshots()
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func TestTabSwitchesViews(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, LogsView, m.viewMode)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TypesView, m.viewMode)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, LogsView, m.viewMode)
}

func TestCursorStaysInBounds(t *testing.T) {
	m := newTestModel(t)
	for range 5 {
		m, _ = update(t, m, keyRune('j'))
	}
	assert.Equal(t, 0, m.logCursor) // single row

	m, _ = update(t, m, keyRune('k'))
	assert.Equal(t, 0, m.logCursor)
}

func TestDeleteReferencedTypeRejectedWithoutConfirmation(t *testing.T) {
	m := newTestModel(t)
	m.viewMode = TypesView
	m.typeCursor = 0 // Running, referenced by logA

	m, cmd := update(t, m, keyRune('d'))
	assert.Nil(t, cmd) // no network work scheduled
	assert.Nil(t, m.confirm)
	assert.Equal(t, ModeBrowse, m.inputMode)
	assert.Contains(t, m.errText, "used by existing workouts")
}

func TestDeleteUnreferencedTypeAsksForConfirmation(t *testing.T) {
	m := newTestModel(t)
	m.viewMode = TypesView
	m.typeCursor = 1 // Swimming, unreferenced

	m, _ = update(t, m, keyRune('d'))
	require.NotNil(t, m.confirm)
	assert.Equal(t, deleteType, m.confirm.kind)
	assert.Equal(t, "wt2", m.confirm.id)
	assert.Equal(t, ModeConfirmDelete, m.inputMode)

	// Declining returns to browsing with nothing scheduled.
	m, cmd := update(t, m, keyRune('n'))
	assert.Nil(t, cmd)
	assert.Nil(t, m.confirm)
	assert.Equal(t, ModeBrowse, m.inputMode)
}

func TestConfirmingDeleteSchedulesWorkAndSetsBusy(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyRune('d')) // logA selected on the Workouts tab
	require.NotNil(t, m.confirm)
	assert.Equal(t, deleteLog, m.confirm.kind)

	m, cmd := update(t, m, keyRune('y'))
	assert.True(t, m.busy)
	assert.NotNil(t, cmd)
}

func TestLogSavedAppendsToCollection(t *testing.T) {
	m := newTestModel(t)
	m.inputMode = ModeLogForm
	m.logForm = newLogFormState(nil, m.types)
	m.busy = true

	created := api.WorkoutLog{ID: "temp-1700000000000", Date: "2024-02-01", WorkoutType: swimming, Minutes: 20}
	m, _ = update(t, m, logSavedMsg{log: created, editing: false})

	assert.False(t, m.busy)
	assert.Equal(t, ModeBrowse, m.inputMode)
	assert.Nil(t, m.logForm)
	require.Len(t, m.logs, 2)
	assert.Equal(t, "temp-1700000000000", m.logs[1].ID)
	assert.Equal(t, "Workout saved", m.status)
}

func TestTypeSavedReplacesOnEdit(t *testing.T) {
	m := newTestModel(t)
	m.inputMode = ModeTypeForm
	renamed := running
	renamed.Name = "Trail Running"
	m.typeForm = newTypeFormState(&running)

	m, _ = update(t, m, typeSavedMsg{workoutType: renamed, editing: true})
	require.Len(t, m.types, 2)
	assert.Equal(t, "Trail Running", m.types[0].Name)
	// Embedded snapshots in logs stay as they were.
	assert.Equal(t, "Running", m.logs[0].WorkoutType.Name)
}

func TestMutationFailureKeepsFormOpen(t *testing.T) {
	m := newTestModel(t)
	m.inputMode = ModeLogForm
	m.logForm = newLogFormState(nil, m.types)
	m.busy = true

	m, _ = update(t, m, mutationFailedMsg{err: errors.New("boom")})
	assert.False(t, m.busy)
	require.NotNil(t, m.logForm)
	assert.Equal(t, ModeLogForm, m.inputMode)
	assert.Equal(t, "Failed to save workout. Please try again.", m.logForm.errText)
}

func TestDeleteFailureSurfacesTopLevelError(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyRune('d'))
	m, _ = update(t, m, keyRune('y'))

	m, _ = update(t, m, mutationFailedMsg{err: errors.New("boom")})
	assert.False(t, m.busy)
	assert.Nil(t, m.confirm)
	assert.Equal(t, "Failed to delete workout. Please try again.", m.errText)
	// Collection untouched.
	assert.Len(t, m.logs, 1)
}

func TestLogDeleteAppliesOnCompletionMessage(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyRune('d')) // logA selected on the Workouts tab
	m, cmd := update(t, m, keyRune('y'))
	require.NotNil(t, cmd)
	// Confirming only schedules the server call; the collection changes
	// when the completion message lands on the event loop.
	assert.Len(t, m.logs, 1)
	assert.Len(t, m.store.Logs(), 1)

	m, _ = update(t, m, logDeletedMsg{id: "wl1"})
	assert.False(t, m.busy)
	assert.Equal(t, ModeBrowse, m.inputMode)
	assert.Empty(t, m.logs)
	assert.Empty(t, m.store.Logs())
	assert.Equal(t, "Workout deleted", m.status)
}

func TestTypeDeleteAppliesOnCompletionMessage(t *testing.T) {
	m := newTestModel(t)
	m.viewMode = TypesView
	m.typeCursor = 1 // Swimming, unreferenced
	m, _ = update(t, m, keyRune('d'))
	m, _ = update(t, m, keyRune('y'))

	m, _ = update(t, m, typeDeletedMsg{id: "wt2"})
	require.Len(t, m.types, 1)
	assert.Equal(t, "wt1", m.types[0].ID)
	assert.Equal(t, "Workout type deleted", m.status)
}

func TestViewRendersFromSnapshotsOnly(t *testing.T) {
	m := newTestModel(t)
	m.viewMode = TypesView
	assert.Contains(t, m.renderTypes(), "(in use)") // Running, referenced by logA

	// Store changes are invisible to View until the snapshots refresh.
	m.store.ApplyLogDelete("wl1")
	assert.Contains(t, m.renderTypes(), "(in use)")

	m.refreshSnapshots()
	assert.NotContains(t, m.renderTypes(), "(in use)")
}

func TestBusyDisablesMutationTriggers(t *testing.T) {
	m := newTestModel(t)
	m.busy = true

	m, cmd := update(t, m, keyRune('a'))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeBrowse, m.inputMode)

	m, cmd = update(t, m, keyRune('d'))
	assert.Nil(t, cmd)
	assert.Nil(t, m.confirm)
}

func TestSessionFailureShowsError(t *testing.T) {
	m := newTestModel(t)
	m.isLoading = true

	m, _ = update(t, m, sessionFailedMsg{err: errors.New("unauthorized")})
	assert.False(t, m.isLoading)
	assert.Contains(t, m.errText, "Not signed in")
}

func TestLoadFailureKeepsSnapshot(t *testing.T) {
	m := newTestModel(t)
	m.isLoading = true

	m, _ = update(t, m, loadFailedMsg{err: errors.New("boom")})
	assert.False(t, m.isLoading)
	assert.Equal(t, "Failed to load workouts. Please try again.", m.errText)
	assert.Len(t, m.logs, 1)
}

func TestFormCancelDiscardsEdits(t *testing.T) {
	m := newTestModel(t)
	m.inputMode = ModeLogForm
	m.logForm = newLogFormState(nil, m.types)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Nil(t, m.logForm)
	assert.Equal(t, ModeBrowse, m.inputMode)
	assert.Len(t, m.logs, 1)
}

func TestInvalidFormSubmitStaysLocal(t *testing.T) {
	m := newTestModel(t)
	m.inputMode = ModeLogForm
	m.logForm = newLogFormState(nil, m.types) // no type selected

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	require.NotNil(t, m.logForm)
	assert.Contains(t, m.logForm.errText, "workoutType")
}
