// Package form manages the create/edit form lifecycle for the two entity
// kinds and reconciles writes back into the local collections.
//
// Reconciliation policy: the server's response body to a write is not
// authoritative for immediate UI state. The entity handed back by Submit is
// synthesized client-side from the submitted field values, keeping the
// existing id and sequence when editing and taking a temporary id and
// sequence 0 when creating. Only a subsequent full reload re-syncs
// server-assigned fields.
package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sweatlog/internal/api"
)

// Minutes bounds for a workout log.
const (
	MinMinutes = 1
	MaxMinutes = 720
)

// ValidationError is a client-side field rejection. It is never sent to the
// server.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// TempID generates a temporary client-side id for a freshly created entity.
// Unique enough for a single session; no collision guarantee against future
// server-assigned ids.
func TempID() string {
	return "temp-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// LogWriter is the slice of the API client the log form needs.
type LogWriter interface {
	CreateWorkoutLog(ctx context.Context, req api.CreateWorkoutLogRequest) (*api.WorkoutLog, error)
	UpdateWorkoutLog(ctx context.Context, id string, req api.CreateWorkoutLogRequest) (*api.WorkoutLog, error)
}

// TypeWriter is the slice of the API client the type form needs.
type TypeWriter interface {
	CreateWorkoutType(ctx context.Context, req api.CreateWorkoutTypeRequest) (*api.WorkoutType, error)
	UpdateWorkoutType(ctx context.Context, id string, req api.CreateWorkoutTypeRequest) (*api.WorkoutType, error)
}

// LogForm holds the editable fields of a workout log while a create or edit
// is in progress.
type LogForm struct {
	existing *api.WorkoutLog

	Date        string
	WorkoutType api.WorkoutType
	Minutes     int
}

// NewLogForm seeds a form. With nil it starts from defaults: today's date,
// 30 minutes, no type selected. With an entity it copies the target's field
// values; any time component in the stored date is stripped.
func NewLogForm(existing *api.WorkoutLog) *LogForm {
	if existing == nil {
		return &LogForm{
			Date:    time.Now().Format("2006-01-02"),
			Minutes: 30,
		}
	}
	return &LogForm{
		existing:    existing,
		Date:        dateOnly(existing.Date),
		WorkoutType: existing.WorkoutType,
		Minutes:     existing.Minutes,
	}
}

// Editing reports whether the form targets an existing entity.
func (f *LogForm) Editing() bool { return f.existing != nil }

// Validate checks the required-field constraints: a parseable calendar date,
// a selected type, minutes within bounds.
func (f *LogForm) Validate() error {
	if strings.TrimSpace(f.Date) == "" {
		return &ValidationError{Field: "date", Reason: "required"}
	}
	if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be a calendar date (YYYY-MM-DD)"}
	}
	if f.WorkoutType.ID == "" {
		return &ValidationError{Field: "workoutType", Reason: "required"}
	}
	if f.Minutes < MinMinutes || f.Minutes > MaxMinutes {
		return &ValidationError{Field: "minutes", Reason: fmt.Sprintf("must be between %d and %d", MinMinutes, MaxMinutes)}
	}
	return nil
}

// Submit validates, issues the create or update, and returns the synthesized
// entity to reconcile into the store. On any failure the form state is left
// untouched so the caller can keep the form open.
func (f *LogForm) Submit(ctx context.Context, client LogWriter) (*api.WorkoutLog, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	req := api.CreateWorkoutLogRequest{
		Date:        f.Date,
		WorkoutType: f.WorkoutType,
		Minutes:     f.Minutes,
	}

	var err error
	if f.existing != nil {
		_, err = client.UpdateWorkoutLog(ctx, f.existing.ID, req)
	} else {
		_, err = client.CreateWorkoutLog(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	out := &api.WorkoutLog{
		ID:          TempID(),
		Sequence:    0,
		Date:        f.Date,
		WorkoutType: f.WorkoutType,
		Minutes:     f.Minutes,
	}
	if f.existing != nil {
		out.ID = f.existing.ID
		out.Sequence = f.existing.Sequence
	}
	return out, nil
}

// TypeForm holds the editable fields of a workout type.
type TypeForm struct {
	existing *api.WorkoutType

	Name string
}

// NewTypeForm seeds a form, copying the target's name when editing.
func NewTypeForm(existing *api.WorkoutType) *TypeForm {
	if existing == nil {
		return &TypeForm{}
	}
	return &TypeForm{existing: existing, Name: existing.Name}
}

// Editing reports whether the form targets an existing entity.
func (f *TypeForm) Editing() bool { return f.existing != nil }

// Validate checks that the name is non-empty.
func (f *TypeForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	return nil
}

// Submit validates, issues the create or update, and returns the synthesized
// entity.
func (f *TypeForm) Submit(ctx context.Context, client TypeWriter) (*api.WorkoutType, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	req := api.CreateWorkoutTypeRequest{Name: f.Name}

	var err error
	if f.existing != nil {
		_, err = client.UpdateWorkoutType(ctx, f.existing.ID, req)
	} else {
		_, err = client.CreateWorkoutType(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	out := &api.WorkoutType{
		ID:       TempID(),
		Sequence: 0,
		Name:     f.Name,
	}
	if f.existing != nil {
		out.ID = f.existing.ID
		out.Sequence = f.existing.Sequence
	}
	return out, nil
}

// dateOnly strips any time component from an ISO timestamp.
func dateOnly(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}
