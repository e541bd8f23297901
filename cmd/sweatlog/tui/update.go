package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sweatlog/internal/form"
	"sweatlog/internal/store"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if m.isLoading || m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case sessionResolvedMsg:
		m.status = fmt.Sprintf("Signed in as %s", msg.user.Name)
		return m, m.loadCollections()

	case sessionFailedMsg:
		m.isLoading = false
		m.errText = fmt.Sprintf("Not signed in: %s", msg.err.Error())
		return m, nil

	case collectionsLoadedMsg:
		m.isLoading = false
		m.refreshSnapshots()
		return m, nil

	case loadFailedMsg:
		m.isLoading = false
		m.errText = "Failed to load workouts. Please try again."
		return m, nil

	case logSavedMsg:
		m.busy = false
		if msg.editing {
			m.store.ApplyLogUpdate(msg.log)
		} else {
			m.store.ApplyLogCreate(msg.log)
		}
		m.refreshSnapshots()
		m.logForm = nil
		m.inputMode = ModeBrowse
		m.status = "Workout saved"
		return m, nil

	case typeSavedMsg:
		m.busy = false
		if msg.editing {
			m.store.ApplyTypeUpdate(msg.workoutType)
		} else {
			m.store.ApplyTypeCreate(msg.workoutType)
		}
		m.refreshSnapshots()
		m.typeForm = nil
		m.inputMode = ModeBrowse
		m.status = "Workout type saved"
		return m, nil

	case logDeletedMsg:
		m.busy = false
		m.confirm = nil
		m.inputMode = ModeBrowse
		m.store.ApplyLogDelete(msg.id)
		m.refreshSnapshots()
		m.status = "Workout deleted"
		return m, nil

	case typeDeletedMsg:
		m.busy = false
		m.confirm = nil
		m.inputMode = ModeBrowse
		m.store.ApplyTypeDelete(msg.id)
		m.refreshSnapshots()
		m.status = "Workout type deleted"
		return m, nil

	case mutationFailedMsg:
		return m.handleMutationFailure(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleMutationFailure surfaces the error where the user is looking: inline
// on an open form, otherwise as the top-level error line. The form stays
// open with its field values untouched.
func (m Model) handleMutationFailure(msg mutationFailedMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	var verr *form.ValidationError
	switch {
	case m.inputMode == ModeLogForm && m.logForm != nil:
		if errors.As(msg.err, &verr) {
			m.logForm.errText = verr.Error()
		} else {
			m.logForm.errText = "Failed to save workout. Please try again."
		}
	case m.inputMode == ModeTypeForm && m.typeForm != nil:
		if errors.As(msg.err, &verr) {
			m.typeForm.errText = verr.Error()
		} else {
			m.typeForm.errText = "Failed to save workout type. Please try again."
		}
	case m.inputMode == ModeConfirmDelete && m.confirm != nil:
		switch {
		case errors.Is(msg.err, store.ErrTypeInUse):
			// Normally caught before the confirmation prompt; covers a log
			// created between the check and the confirm keypress.
			m.errText = "Cannot delete this workout type because it is used by existing workouts."
		case m.confirm.kind == deleteType:
			m.errText = "Failed to delete workout type. Please try again."
		default:
			m.errText = "Failed to delete workout. Please try again."
		}
		m.confirm = nil
		m.inputMode = ModeBrowse
	default:
		m.errText = msg.err.Error()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.inputMode {
	case ModeLogForm:
		return m.handleLogFormKey(msg)
	case ModeTypeForm:
		return m.handleTypeFormKey(msg)
	case ModeConfirmDelete:
		return m.handleConfirmKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		if m.viewMode == HelpView {
			m.viewMode = m.prevView
			return m, nil
		}
		return m, tea.Quit

	case "?":
		if m.viewMode == HelpView {
			m.viewMode = m.prevView
		} else {
			m.prevView = m.viewMode
			m.viewMode = HelpView
		}
		return m, nil

	case "tab":
		if m.viewMode == LogsView {
			m.viewMode = TypesView
		} else if m.viewMode == TypesView {
			m.viewMode = LogsView
		}
		return m, nil

	case "up", "k":
		m.moveCursor(-1)
		return m, nil

	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "r":
		if m.isLoading || m.busy {
			return m, nil
		}
		m.isLoading = true
		m.errText = ""
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.loadCollections())

	case "a":
		return m.openCreateForm()

	case "e":
		return m.openEditForm()

	case "d":
		return m.requestDelete()

	case "L":
		// Terminal for the session: fire the login redirect and leave.
		m.session.Logout()
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.viewMode {
	case LogsView:
		m.logCursor += delta
	case TypesView:
		m.typeCursor += delta
	}
	m.clampCursors()
}

func (m Model) openCreateForm() (tea.Model, tea.Cmd) {
	if m.isLoading || m.busy || m.viewMode == HelpView {
		return m, nil
	}
	m.status = ""
	m.errText = ""
	switch m.viewMode {
	case LogsView:
		m.logForm = newLogFormState(nil, m.types)
		m.inputMode = ModeLogForm
	case TypesView:
		m.typeForm = newTypeFormState(nil)
		m.inputMode = ModeTypeForm
	}
	return m, textinput.Blink
}

func (m Model) openEditForm() (tea.Model, tea.Cmd) {
	if m.isLoading || m.busy || m.viewMode == HelpView {
		return m, nil
	}
	m.status = ""
	m.errText = ""
	switch m.viewMode {
	case LogsView:
		if len(m.logs) == 0 {
			return m, nil
		}
		target := m.logs[m.logCursor]
		m.logForm = newLogFormState(&target, m.types)
		m.inputMode = ModeLogForm
	case TypesView:
		if len(m.types) == 0 {
			return m, nil
		}
		target := m.types[m.typeCursor]
		m.typeForm = newTypeFormState(&target)
		m.inputMode = ModeTypeForm
	}
	return m, textinput.Blink
}

// requestDelete opens the confirmation prompt, except for a workout type
// still referenced by a loaded log, which is rejected outright with no
// confirmation and no network call.
func (m Model) requestDelete() (tea.Model, tea.Cmd) {
	if m.isLoading || m.busy || m.viewMode == HelpView {
		return m, nil
	}
	m.status = ""
	m.errText = ""
	switch m.viewMode {
	case LogsView:
		if len(m.logs) == 0 {
			return m, nil
		}
		target := m.logs[m.logCursor]
		label := fmt.Sprintf("%s on %s", target.WorkoutType.Name, target.Date)
		m.confirm = &deleteTarget{kind: deleteLog, id: target.ID, label: label}
		m.inputMode = ModeConfirmDelete
	case TypesView:
		if len(m.types) == 0 {
			return m, nil
		}
		target := m.types[m.typeCursor]
		if m.store.TypeInUse(target.ID) {
			m.errText = "Cannot delete this workout type because it is used by existing workouts."
			return m, nil
		}
		m.confirm = &deleteTarget{kind: deleteType, id: target.ID, label: target.Name}
		m.inputMode = ModeConfirmDelete
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.busy || m.confirm == nil {
			return m, nil
		}
		m.busy = true
		if m.confirm.kind == deleteType {
			return m, tea.Batch(m.spinner.Tick, m.deleteTypeCmd(m.confirm.id))
		}
		return m, tea.Batch(m.spinner.Tick, m.deleteLogCmd(m.confirm.id))

	case "n", "esc":
		m.confirm = nil
		m.inputMode = ModeBrowse
		return m, nil
	}
	return m, nil
}

func (m Model) handleLogFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.logForm
	if f == nil {
		m.inputMode = ModeBrowse
		return m, nil
	}

	switch msg.String() {
	case "esc":
		// Cancel: discard in-progress edits, no network call.
		m.logForm = nil
		m.inputMode = ModeBrowse
		return m, nil

	case "enter":
		if m.busy {
			return m, nil
		}
		built := f.build()
		if err := built.Validate(); err != nil {
			f.errText = err.Error()
			return m, nil
		}
		f.errText = ""
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.submitLogForm(built))

	case "tab":
		f.nextField(false)
		return m, nil

	case "shift+tab":
		f.nextField(true)
		return m, nil
	}

	if f.focus == logFieldType {
		switch msg.String() {
		case "up", "k":
			f.cycleType(-1)
			return m, nil
		case "down", "j":
			f.cycleType(1)
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case logFieldDate:
		f.date, cmd = f.date.Update(msg)
	case logFieldMinutes:
		f.minutes, cmd = f.minutes.Update(msg)
	}
	return m, cmd
}

func (m Model) handleTypeFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.typeForm
	if f == nil {
		m.inputMode = ModeBrowse
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.typeForm = nil
		m.inputMode = ModeBrowse
		return m, nil

	case "enter":
		if m.busy {
			return m, nil
		}
		built := f.build()
		if err := built.Validate(); err != nil {
			f.errText = err.Error()
			return m, nil
		}
		f.errText = ""
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.submitTypeForm(built))
	}

	var cmd tea.Cmd
	f.name, cmd = f.name.Update(msg)
	return m, cmd
}
