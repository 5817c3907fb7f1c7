package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/repository"
	"github.com/templui/screentime/internal/store"
)

// flakyKV wraps a real repository and fails every Set while failSet is true.
// A non-empty failKey limits the failures to that key.
type flakyKV struct {
	repository.KeyValueRepository
	failSet bool
	failKey string
}

var errDiskFull = errors.New("disk full")

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet && (f.failKey == "" || f.failKey == key) {
		return errDiskFull
	}
	return f.KeyValueRepository.Set(ctx, key, value)
}

func newKV(t *testing.T) repository.KeyValueRepository {
	t.Helper()
	kv, err := repository.NewFileKeyValueRepository(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatal(err)
	}
	return kv
}

func addGoal(t *testing.T, s *store.Store, g model.Goal) model.Goal {
	t.Helper()
	added, err := s.WithGoals(context.Background(), func([]model.Goal) (model.Goal, error) {
		return g, nil
	})
	if err != nil {
		t.Fatalf("WithGoals add: %v", err)
	}
	return added
}

func newStore(t *testing.T, kv repository.KeyValueRepository) *store.Store {
	t.Helper()
	s := store.New(kv)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func entry(app string, minutes int) model.TimeEntry {
	return model.TimeEntry{
		Date:     "2026-10-17",
		Device:   model.DevicePhone,
		App:      app,
		Category: model.CategorySocial,
		Duration: minutes,
	}
}

func TestLoadEmpty(t *testing.T) {
	s := newStore(t, newKV(t))
	if len(s.Entries()) != 0 || len(s.Goals()) != 0 {
		t.Fatalf("fresh store not empty: %d entries, %d goals", len(s.Entries()), len(s.Goals()))
	}
}

func TestLoadCorruptValue(t *testing.T) {
	kv := newKV(t)
	err := kv.Set(context.Background(), repository.KeyEntries, []byte("{not an array"))
	if err != nil {
		t.Fatal(err)
	}

	err = store.New(kv).Load(context.Background())
	if err == nil {
		t.Fatal("expected Load to fail on corrupt value")
	}
}

func TestAddEntryPersistsAndAssignsID(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	s := newStore(t, kv)

	in := entry("Instagram", 20)
	in.ID = "client-supplied"
	got, err := s.AddEntry(ctx, in)
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if got.ID == "" || got.ID == "client-supplied" {
		t.Errorf("ID = %q, want freshly generated", got.ID)
	}

	raw, err := kv.Get(ctx, repository.KeyEntries)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var stored []model.TimeEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("stored value is not a JSON array: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != got.ID {
		t.Errorf("stored = %+v, want the added entry", stored)
	}

	reloaded := newStore(t, kv)
	if _, err := reloaded.Entry(got.ID); err != nil {
		t.Errorf("entry missing after reload: %v", err)
	}
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newKV(t))

	e, err := s.AddEntry(ctx, entry("TikTok", 15))
	if err != nil {
		t.Fatal(err)
	}

	e.Duration = 40
	if err := s.UpdateEntry(ctx, e); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	got, _ := s.Entry(e.ID)
	if got.Duration != 40 {
		t.Errorf("Duration = %d, want 40", got.Duration)
	}

	removed, err := s.DeleteEntry(ctx, e.ID)
	if err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if removed.ID != e.ID {
		t.Errorf("removed ID = %q, want %q", removed.ID, e.ID)
	}
	if _, err := s.Entry(e.ID); !errors.Is(err, store.ErrEntryNotFound) {
		t.Errorf("Entry after delete: err = %v, want ErrEntryNotFound", err)
	}

	if err := s.UpdateEntry(ctx, e); !errors.Is(err, store.ErrEntryNotFound) {
		t.Errorf("UpdateEntry after delete: err = %v, want ErrEntryNotFound", err)
	}
	if _, err := s.DeleteEntry(ctx, e.ID); !errors.Is(err, store.ErrEntryNotFound) {
		t.Errorf("second DeleteEntry: err = %v, want ErrEntryNotFound", err)
	}
}

func TestDeleteThenReAddRestoresEquivalentState(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newKV(t))

	keep, _ := s.AddEntry(ctx, entry("Slack", 30))
	original, _ := s.AddEntry(ctx, entry("YouTube", 50))

	removed, err := s.DeleteEntry(ctx, original.ID)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := s.AddEntry(ctx, removed)
	if err != nil {
		t.Fatal(err)
	}

	if restored.ID == original.ID {
		t.Error("re-added entry reused the deleted ID")
	}
	if !restored.SameFields(original) {
		t.Errorf("restored = %+v, want fields of %+v", restored, original)
	}

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].ID != keep.ID {
		t.Errorf("untouched entry changed: %+v", entries[0])
	}
}

func TestFailedPersistLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{KeyValueRepository: newKV(t)}
	s := newStore(t, kv)

	e, err := s.AddEntry(ctx, entry("Reddit", 10))
	if err != nil {
		t.Fatal(err)
	}
	g := addGoal(t, s, model.Goal{Type: model.GoalTypeTotal, Limit: 120})

	kv.failSet = true

	if _, err := s.AddEntry(ctx, entry("Discord", 5)); !errors.Is(err, errDiskFull) {
		t.Errorf("AddEntry err = %v, want errDiskFull", err)
	}
	changed := e
	changed.Duration = 999
	if err := s.UpdateEntry(ctx, changed); !errors.Is(err, errDiskFull) {
		t.Errorf("UpdateEntry err = %v, want errDiskFull", err)
	}
	if _, err := s.DeleteEntry(ctx, e.ID); !errors.Is(err, errDiskFull) {
		t.Errorf("DeleteEntry err = %v, want errDiskFull", err)
	}
	if _, err := s.DeleteGoal(ctx, g.ID); !errors.Is(err, errDiskFull) {
		t.Errorf("DeleteGoal err = %v, want errDiskFull", err)
	}
	_, err = s.WithGoals(ctx, func([]model.Goal) (model.Goal, error) {
		return model.Goal{Type: model.GoalTypeApp, Target: "Discord", Limit: 10}, nil
	})
	if !errors.Is(err, errDiskFull) {
		t.Errorf("WithGoals err = %v, want errDiskFull", err)
	}

	entries := s.Entries()
	if len(entries) != 1 || entries[0] != e {
		t.Errorf("entries changed after failed writes: %+v", entries)
	}
	if len(s.Goals()) != 1 {
		t.Errorf("goals changed after failed writes: %+v", s.Goals())
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newKV(t))
	if _, err := s.AddEntry(ctx, entry("Mail", 5)); err != nil {
		t.Fatal(err)
	}

	got := s.Entries()
	got[0].App = "mutated"

	if s.Entries()[0].App != "Mail" {
		t.Error("caller mutation leaked into the store")
	}
}

func TestGoalLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	s := newStore(t, kv)

	g := addGoal(t, s, model.Goal{Type: model.GoalTypeApp, Target: "YouTube", Limit: 45})

	g.Limit = 30
	_, err := s.WithGoals(ctx, func([]model.Goal) (model.Goal, error) { return g, nil })
	if err != nil {
		t.Fatalf("WithGoals update: %v", err)
	}

	missing := g
	missing.ID = "gone"
	_, err = s.WithGoals(ctx, func([]model.Goal) (model.Goal, error) { return missing, nil })
	if !errors.Is(err, store.ErrGoalNotFound) {
		t.Errorf("WithGoals unknown ID: err = %v, want ErrGoalNotFound", err)
	}

	reloaded := newStore(t, kv)
	got, err := reloaded.Goal(g.ID)
	if err != nil {
		t.Fatalf("Goal after reload: %v", err)
	}
	if got.Limit != 30 {
		t.Errorf("Limit = %d, want 30", got.Limit)
	}

	if _, err := s.DeleteGoal(ctx, g.ID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if _, err := s.Goal(g.ID); !errors.Is(err, store.ErrGoalNotFound) {
		t.Errorf("Goal after delete: err = %v, want ErrGoalNotFound", err)
	}
}

func TestWithGoalsAbortsOnError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newKV(t))

	errReject := errors.New("reject")
	_, err := s.WithGoals(ctx, func(goals []model.Goal) (model.Goal, error) {
		return model.Goal{}, errReject
	})
	if !errors.Is(err, errReject) {
		t.Fatalf("err = %v, want errReject", err)
	}
	if len(s.Goals()) != 0 {
		t.Errorf("goal stored despite rejection: %+v", s.Goals())
	}

	added, err := s.WithGoals(ctx, func(goals []model.Goal) (model.Goal, error) {
		return model.Goal{Type: model.GoalTypeTotal, Limit: 60}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if added.ID == "" {
		t.Error("WithGoals did not assign an ID")
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	s := newStore(t, kv)
	if _, err := s.AddEntry(ctx, entry("Old", 1)); err != nil {
		t.Fatal(err)
	}

	err := s.Update(ctx, func(entries []model.TimeEntry, goals []model.Goal) ([]model.TimeEntry, []model.Goal, error) {
		if len(entries) != 1 || entries[0].App != "Old" {
			t.Errorf("Update saw entries %+v", entries)
		}
		return []model.TimeEntry{{ID: "e1", Date: "2026-10-01", Device: model.DeviceTV, App: "Netflix", Category: model.CategoryEntertainment, Duration: 60}},
			[]model.Goal{{ID: "g1", Type: model.GoalTypeTotal, Limit: 200}}, nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	reloaded := newStore(t, kv)
	if got := reloaded.Entries(); len(got) != 1 || got[0].ID != "e1" {
		t.Errorf("entries after reload = %+v", got)
	}
	if got := reloaded.Goals(); len(got) != 1 || got[0].ID != "g1" {
		t.Errorf("goals after reload = %+v", got)
	}

	err = s.Update(ctx, func([]model.TimeEntry, []model.Goal) ([]model.TimeEntry, []model.Goal, error) {
		return nil, nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	raw, err := kv.Get(ctx, repository.KeyGoals)
	if err != nil || string(raw) != "[]" {
		t.Errorf("cleared goals stored as %s, %v; want []", raw, err)
	}
}

func TestUpdateAbortsOnError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newKV(t))
	e, _ := s.AddEntry(ctx, entry("Keep", 5))

	errReject := errors.New("reject")
	err := s.Update(ctx, func(entries []model.TimeEntry, goals []model.Goal) ([]model.TimeEntry, []model.Goal, error) {
		return nil, nil, errReject
	})
	if !errors.Is(err, errReject) {
		t.Fatalf("err = %v, want errReject", err)
	}
	if got := s.Entries(); len(got) != 1 || got[0] != e {
		t.Errorf("entries changed after rejected update: %+v", got)
	}
}

func TestUpdateRestoresEntriesWhenGoalsWriteFails(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{KeyValueRepository: newKV(t)}
	s := newStore(t, kv)

	e, err := s.AddEntry(ctx, entry("Reddit", 10))
	if err != nil {
		t.Fatal(err)
	}
	g := addGoal(t, s, model.Goal{Type: model.GoalTypeTotal, Limit: 120})

	kv.failSet = true
	kv.failKey = repository.KeyGoals

	err = s.Update(ctx, func([]model.TimeEntry, []model.Goal) ([]model.TimeEntry, []model.Goal, error) {
		return []model.TimeEntry{entry("Replacement", 1)}, []model.Goal{}, nil
	})
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("Update err = %v, want errDiskFull", err)
	}

	if got := s.Entries(); len(got) != 1 || got[0] != e {
		t.Errorf("in-memory entries = %+v, want the original entry", got)
	}
	if got := s.Goals(); len(got) != 1 || got[0] != g {
		t.Errorf("in-memory goals = %+v, want the original goal", got)
	}

	kv.failSet = false
	reloaded := newStore(t, kv)
	if got := reloaded.Entries(); len(got) != 1 || got[0].ID != e.ID {
		t.Errorf("persisted entries = %+v, want the original entry", got)
	}
	if got := reloaded.Goals(); len(got) != 1 || got[0].ID != g.ID {
		t.Errorf("persisted goals = %+v, want the original goal", got)
	}
}
