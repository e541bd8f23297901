package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweatlog/internal/api"
)

type fakeClient struct {
	logs     *api.WorkoutLogList
	types    *api.WorkoutTypeList
	logsErr  error
	typesErr error

	deleteLogErr  error
	deleteTypeErr error
	deleteCalls   []string
}

func (f *fakeClient) ListWorkoutLogs(ctx context.Context) (*api.WorkoutLogList, error) {
	if f.logsErr != nil {
		return nil, f.logsErr
	}
	return f.logs, nil
}

func (f *fakeClient) ListWorkoutTypes(ctx context.Context) (*api.WorkoutTypeList, error) {
	if f.typesErr != nil {
		return nil, f.typesErr
	}
	return f.types, nil
}

func (f *fakeClient) DeleteWorkoutLog(ctx context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, "log:"+id)
	return f.deleteLogErr
}

func (f *fakeClient) DeleteWorkoutType(ctx context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, "type:"+id)
	return f.deleteTypeErr
}

var (
	running  = api.WorkoutType{ID: "wt1", Sequence: 1, Name: "Running"}
	swimming = api.WorkoutType{ID: "wt2", Sequence: 2, Name: "Swimming"}

	logA = api.WorkoutLog{ID: "wl1", Sequence: 1, Date: "2024-01-15", WorkoutType: running, Minutes: 45}
	logB = api.WorkoutLog{ID: "wl2", Sequence: 2, Date: "2024-01-16", WorkoutType: swimming, Minutes: 30}
)

func seeded(t *testing.T) (*Store, *fakeClient) {
	t.Helper()
	fc := &fakeClient{
		logs:  &api.WorkoutLogList{Data: []api.WorkoutLog{logA, logB}, Meta: api.Meta{Count: 2}},
		types: &api.WorkoutTypeList{Data: []api.WorkoutType{running, swimming}, Meta: api.Meta{Count: 2}},
	}
	s := New(fc, nil)
	require.NoError(t, s.LoadAll(context.Background()))
	return s, fc
}

func TestLoadAll(t *testing.T) {
	t.Run("replaces both collections wholesale", func(t *testing.T) {
		s, _ := seeded(t)
		assert.Empty(t, cmp.Diff([]api.WorkoutLog{logA, logB}, s.Logs()))
		assert.Empty(t, cmp.Diff([]api.WorkoutType{running, swimming}, s.Types()))
	})

	t.Run("all-or-nothing on log failure", func(t *testing.T) {
		s, fc := seeded(t)
		fc.logsErr = errors.New("boom")
		fc.types = &api.WorkoutTypeList{Data: []api.WorkoutType{swimming}}

		require.Error(t, s.LoadAll(context.Background()))
		// Neither collection moved, even though the type fetch succeeded.
		assert.Len(t, s.Logs(), 2)
		assert.Len(t, s.Types(), 2)
	})

	t.Run("all-or-nothing on type failure", func(t *testing.T) {
		s, fc := seeded(t)
		fc.typesErr = errors.New("boom")
		require.Error(t, s.LoadAll(context.Background()))
		assert.Len(t, s.Logs(), 2)
		assert.Len(t, s.Types(), 2)
	})
}

func TestApplyCreate(t *testing.T) {
	s, _ := seeded(t)

	created := api.WorkoutLog{ID: "temp-1700000000000", Date: "2024-02-01", WorkoutType: running, Minutes: 20}
	s.ApplyLogCreate(created)
	require.Len(t, s.Logs(), 3)
	assert.Equal(t, created, s.Logs()[2]) // append order, not sequence order

	s.ApplyTypeCreate(api.WorkoutType{ID: "temp-1700000000001", Name: "Cycling"})
	require.Len(t, s.Types(), 3)
	assert.Equal(t, "Cycling", s.Types()[2].Name)
}

func TestApplyUpdate(t *testing.T) {
	t.Run("replaces matching id in place", func(t *testing.T) {
		s, _ := seeded(t)
		edited := logA
		edited.Minutes = 60
		s.ApplyLogUpdate(edited)
		assert.Equal(t, 60, s.Logs()[0].Minutes)
		assert.Equal(t, logB, s.Logs()[1])
	})

	t.Run("missing id is a silent no-op", func(t *testing.T) {
		s, _ := seeded(t)
		s.ApplyLogUpdate(api.WorkoutLog{ID: "nope", Minutes: 5})
		assert.Len(t, s.Logs(), 2)
		assert.Equal(t, logA, s.Logs()[0])
	})

	t.Run("type update does not rewrite embedded snapshots", func(t *testing.T) {
		s, _ := seeded(t)
		renamed := running
		renamed.Name = "Trail Running"
		s.ApplyTypeUpdate(renamed)
		assert.Equal(t, "Trail Running", s.Types()[0].Name)
		// logA still embeds the old snapshot until a reload.
		assert.Equal(t, "Running", s.Logs()[0].WorkoutType.Name)
	})
}

func TestDeleteLog(t *testing.T) {
	t.Run("server call succeeds, removal is applied separately", func(t *testing.T) {
		s, fc := seeded(t)
		require.NoError(t, s.DeleteLog(context.Background(), "wl1"))
		assert.Equal(t, []string{"log:wl1"}, fc.deleteCalls)
		assert.Len(t, s.Logs(), 2) // untouched until the caller applies it

		s.ApplyLogDelete("wl1")
		require.Len(t, s.Logs(), 1)
		assert.Equal(t, "wl2", s.Logs()[0].ID)
	})

	t.Run("network failure leaves collection unchanged", func(t *testing.T) {
		s, fc := seeded(t)
		fc.deleteLogErr = errors.New("boom")
		require.Error(t, s.DeleteLog(context.Background(), "wl1"))
		assert.Len(t, s.Logs(), 2)
	})

	t.Run("absent id is a no-op on the collection but still calls the API", func(t *testing.T) {
		s, fc := seeded(t)
		require.NoError(t, s.DeleteLog(context.Background(), "nope"))
		assert.Equal(t, []string{"log:nope"}, fc.deleteCalls)
		s.ApplyLogDelete("nope")
		assert.Len(t, s.Logs(), 2)
	})
}

func TestDeleteType(t *testing.T) {
	t.Run("referenced type is rejected without any network call", func(t *testing.T) {
		s, fc := seeded(t)
		err := s.DeleteType(context.Background(), "wt1")
		require.ErrorIs(t, err, ErrTypeInUse)
		assert.Empty(t, fc.deleteCalls)
		assert.Len(t, s.Logs(), 2)
		assert.Len(t, s.Types(), 2)
	})

	t.Run("unreferenced type deletes like a log", func(t *testing.T) {
		s, fc := seeded(t)
		s.ApplyLogDelete("wl2") // drop the log referencing Swimming

		require.NoError(t, s.DeleteType(context.Background(), "wt2"))
		assert.Equal(t, []string{"type:wt2"}, fc.deleteCalls)
		s.ApplyTypeDelete("wt2")
		require.Len(t, s.Types(), 1)
		assert.Equal(t, "wt1", s.Types()[0].ID)
	})

	t.Run("network failure leaves collection unchanged", func(t *testing.T) {
		s, fc := seeded(t)
		s.ApplyLogDelete("wl2")
		fc.deleteTypeErr = errors.New("boom")
		require.Error(t, s.DeleteType(context.Background(), "wt2"))
		assert.Len(t, s.Types(), 2)
	})
}

func TestApplyDeletePreservesEarlierSnapshots(t *testing.T) {
	s, _ := seeded(t)
	snapshot := s.Logs()

	s.ApplyLogDelete("wl1")
	require.Len(t, s.Logs(), 1)
	require.Len(t, snapshot, 2)
	assert.Equal(t, "wl1", snapshot[0].ID)
}

func TestServerDeletesDoNotWriteCollections(t *testing.T) {
	// Delete calls run inside async UI commands while the event loop keeps
	// rendering from earlier snapshots, so they must not touch the slices.
	s, fc := seeded(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.DeleteLog(context.Background(), "wl1")
	}()
	for range 100 {
		_ = s.Logs()
		_ = s.TypeInUse("wt1")
	}
	<-done

	assert.Equal(t, []string{"log:wl1"}, fc.deleteCalls)
	assert.Len(t, s.Logs(), 2)
}

func TestTypeInUse(t *testing.T) {
	s, _ := seeded(t)
	assert.True(t, s.TypeInUse("wt1"))
	assert.False(t, s.TypeInUse("wt3"))
}
