// Package store keeps the in-memory, per-session mirror of the two remote
// collections: workout logs and workout types. It is consistent with the
// server only at the granularity of a full reload or a single-item replace;
// write responses are reconciled in by the form controllers, not fetched
// back.
package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sweatlog/internal/api"
)

// ErrTypeInUse is returned when deleting a workout type that some loaded
// workout log still embeds. The check is client-side only; no network call
// is made.
var ErrTypeInUse = errors.New("workout type is in use by existing workouts")

// Client is the slice of the API client the store needs.
type Client interface {
	ListWorkoutLogs(ctx context.Context) (*api.WorkoutLogList, error)
	ListWorkoutTypes(ctx context.Context) (*api.WorkoutTypeList, error)
	DeleteWorkoutLog(ctx context.Context, id string) error
	DeleteWorkoutType(ctx context.Context, id string) error
}

// Store mirrors the server-held collections for one session. Collection
// writes happen only on the UI event loop between suspension points, so no
// locking is applied; DeleteLog and DeleteType at most read and may run from
// the single in-flight async command. Display order is load/append order,
// never the server's sequence hint.
type Store struct {
	client Client
	log    *zap.Logger

	logs  []api.WorkoutLog
	types []api.WorkoutType
}

// New creates an empty store.
func New(client Client, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, log: logger}
}

// LoadAll fetches both collections concurrently and replaces the local state
// wholesale. All-or-nothing: if either list call fails, both results are
// discarded and the collections keep their pre-call contents.
func (s *Store) LoadAll(ctx context.Context) error {
	var (
		logs  *api.WorkoutLogList
		types *api.WorkoutTypeList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		logs, err = s.client.ListWorkoutLogs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		types, err = s.client.ListWorkoutTypes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Debug("load failed, keeping previous collections", zap.Error(err))
		return err
	}

	s.logs = logs.Data
	s.types = types.Data
	s.log.Debug("collections loaded",
		zap.Int("logs", len(s.logs)),
		zap.Int("types", len(s.types)))
	return nil
}

// Logs returns the workout log collection in display order.
func (s *Store) Logs() []api.WorkoutLog { return s.logs }

// Types returns the workout type collection in display order.
func (s *Store) Types() []api.WorkoutType { return s.types }

// ApplyLogCreate appends a workout log. Plain append, not a sorted insert.
func (s *Store) ApplyLogCreate(log api.WorkoutLog) {
	s.logs = append(s.logs, log)
}

// ApplyLogUpdate replaces the first workout log whose id matches. A missing
// id is a silent no-op.
func (s *Store) ApplyLogUpdate(log api.WorkoutLog) {
	for i := range s.logs {
		if s.logs[i].ID == log.ID {
			s.logs[i] = log
			return
		}
	}
}

// ApplyTypeCreate appends a workout type.
func (s *Store) ApplyTypeCreate(t api.WorkoutType) {
	s.types = append(s.types, t)
}

// ApplyTypeUpdate replaces the first workout type whose id matches. A
// missing id is a silent no-op. Logs that embed the old snapshot are left
// alone; only a reload reflects server-side consistency.
func (s *Store) ApplyTypeUpdate(t api.WorkoutType) {
	for i := range s.types {
		if s.types[i].ID == t.ID {
			s.types[i] = t
			return
		}
	}
}

// ApplyLogDelete drops the workout log with the given id. Callers invoke it
// on the event loop after DeleteLog succeeds; a missing id is a no-op.
func (s *Store) ApplyLogDelete(id string) {
	s.logs = removeByID(s.logs, id, func(l api.WorkoutLog) string { return l.ID })
}

// ApplyTypeDelete drops the workout type with the given id.
func (s *Store) ApplyTypeDelete(id string) {
	s.types = removeByID(s.types, id, func(t api.WorkoutType) string { return t.ID })
}

// DeleteLog deletes a workout log on the server. The local collection is
// untouched here; the caller applies the removal with ApplyLogDelete once
// the call succeeds, so no rollback is ever needed.
func (s *Store) DeleteLog(ctx context.Context, id string) error {
	return s.client.DeleteWorkoutLog(ctx, id)
}

// DeleteType deletes a workout type on the server, refusing up front when
// any loaded workout log still embeds it. As with DeleteLog, the local
// removal is the caller's ApplyTypeDelete.
func (s *Store) DeleteType(ctx context.Context, id string) error {
	if s.TypeInUse(id) {
		return ErrTypeInUse
	}
	return s.client.DeleteWorkoutType(ctx, id)
}

// TypeInUse reports whether any loaded workout log embeds the given type id.
func (s *Store) TypeInUse(id string) bool {
	for _, l := range s.logs {
		if l.WorkoutType.ID == id {
			return true
		}
	}
	return false
}

// removeByID filters into a fresh slice so snapshots handed out earlier keep
// their contents.
func removeByID[T any](items []T, id string, key func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if key(item) != id {
			out = append(out, item)
		}
	}
	return out
}
