package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"sweatlog/internal/api"
	"sweatlog/internal/form"
)

// Focusable fields of the workout log form, in tab order.
const (
	logFieldDate = iota
	logFieldType
	logFieldMinutes
	logFieldCount
)

// logFormState is the input widget state behind the workout log modal. The
// parsed, validated values live in form.LogForm; this layer only holds raw
// text and the type selection.
type logFormState struct {
	existing *api.WorkoutLog
	choices  []api.WorkoutType // selectable types, display order

	date    textinput.Model
	minutes textinput.Model
	typeIdx int // index into choices, -1 when nothing selected
	focus   int

	errText string
}

func newLogFormState(existing *api.WorkoutLog, choices []api.WorkoutType) *logFormState {
	seed := form.NewLogForm(existing)

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Width = 12
	date.SetValue(seed.Date)
	date.Focus()

	minutes := textinput.New()
	minutes.Placeholder = "30"
	minutes.CharLimit = 3
	minutes.Width = 5
	minutes.SetValue(strconv.Itoa(seed.Minutes))

	typeIdx := -1
	for i, c := range choices {
		if c.ID == seed.WorkoutType.ID {
			typeIdx = i
			break
		}
	}

	return &logFormState{
		existing: existing,
		choices:  choices,
		date:     date,
		minutes:  minutes,
		typeIdx:  typeIdx,
	}
}

func (s *logFormState) editing() bool { return s.existing != nil }

// build assembles a form.LogForm from the current widget values. Unparseable
// minutes become 0 so validation rejects them with the range message.
func (s *logFormState) build() *form.LogForm {
	f := form.NewLogForm(s.existing)
	f.Date = strings.TrimSpace(s.date.Value())
	f.Minutes = 0
	if n, err := strconv.Atoi(strings.TrimSpace(s.minutes.Value())); err == nil {
		f.Minutes = n
	}
	f.WorkoutType = api.WorkoutType{}
	if s.typeIdx >= 0 && s.typeIdx < len(s.choices) {
		f.WorkoutType = s.choices[s.typeIdx]
	}
	return f
}

// nextField moves focus forward (or backward) through the tab order.
func (s *logFormState) nextField(back bool) {
	step := 1
	if back {
		step = logFieldCount - 1
	}
	s.focus = (s.focus + step) % logFieldCount

	s.date.Blur()
	s.minutes.Blur()
	switch s.focus {
	case logFieldDate:
		s.date.Focus()
	case logFieldMinutes:
		s.minutes.Focus()
	}
}

// cycleType moves the type selection up or down, wrapping at the ends.
func (s *logFormState) cycleType(delta int) {
	if len(s.choices) == 0 {
		return
	}
	if s.typeIdx < 0 {
		s.typeIdx = 0
		return
	}
	s.typeIdx = (s.typeIdx + delta + len(s.choices)) % len(s.choices)
}

// typeFormState is the input widget state behind the workout type modal.
type typeFormState struct {
	existing *api.WorkoutType

	name    textinput.Model
	errText string
}

func newTypeFormState(existing *api.WorkoutType) *typeFormState {
	seed := form.NewTypeForm(existing)

	name := textinput.New()
	name.Placeholder = "e.g. Running"
	name.CharLimit = 60
	name.Width = 30
	name.SetValue(seed.Name)
	name.Focus()

	return &typeFormState{existing: existing, name: name}
}

func (s *typeFormState) editing() bool { return s.existing != nil }

func (s *typeFormState) build() *form.TypeForm {
	f := form.NewTypeForm(s.existing)
	f.Name = strings.TrimSpace(s.name.Value())
	return f
}
