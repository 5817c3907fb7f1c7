// Package store holds the entry and goal collections in memory and writes the
// full collection to a key/value backend after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/repository"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrGoalNotFound  = errors.New("goal not found")
)

type Store struct {
	mu      sync.RWMutex
	kv      repository.KeyValueRepository
	entries []model.TimeEntry
	goals   []model.Goal
	newID   func() string
}

func New(kv repository.KeyValueRepository) *Store {
	return &Store{
		kv:    kv,
		newID: func() string { return uuid.New().String() },
	}
}

// Load replaces the in-memory collections with what the backend holds.
// Missing keys load as empty collections.
func (s *Store) Load(ctx context.Context) error {
	entries, err := load[model.TimeEntry](ctx, s.kv, repository.KeyEntries)
	if err != nil {
		return err
	}
	goals, err := load[model.Goal](ctx, s.kv, repository.KeyGoals)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = entries
	s.goals = goals
	s.mu.Unlock()

	slog.Info("store loaded", "entries", len(entries), "goals", len(goals))
	return nil
}

func load[T any](ctx context.Context, kv repository.KeyValueRepository, key string) ([]T, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var items []T
	err = json.Unmarshal(data, &items)
	if err != nil {
		return nil, fmt.Errorf("corrupt value under %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func persist[T any](ctx context.Context, kv repository.KeyValueRepository, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	err = kv.Set(ctx, key, data)
	if err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// Entries returns a copy of all entries.
func (s *Store) Entries() []model.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Goals returns a copy of all goals.
func (s *Store) Goals() []model.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.goals)
}

func (s *Store) Entry(id string) (model.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.entries, func(e model.TimeEntry) bool { return e.ID == id })
	if i < 0 {
		return model.TimeEntry{}, ErrEntryNotFound
	}
	return s.entries[i], nil
}

func (s *Store) Goal(id string) (model.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.goals, func(g model.Goal) bool { return g.ID == id })
	if i < 0 {
		return model.Goal{}, ErrGoalNotFound
	}
	return s.goals[i], nil
}

// AddEntry stores e under a freshly generated ID and returns the stored copy.
func (s *Store) AddEntry(ctx context.Context, e model.TimeEntry) (model.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.newID()
	next := append(slices.Clone(s.entries), e)
	err := persist(ctx, s.kv, repository.KeyEntries, next)
	if err != nil {
		return model.TimeEntry{}, err
	}
	s.entries = next
	return e, nil
}

func (s *Store) UpdateEntry(ctx context.Context, e model.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.entries, func(x model.TimeEntry) bool { return x.ID == e.ID })
	if i < 0 {
		return ErrEntryNotFound
	}

	next := slices.Clone(s.entries)
	next[i] = e
	err := persist(ctx, s.kv, repository.KeyEntries, next)
	if err != nil {
		return err
	}
	s.entries = next
	return nil
}

// DeleteEntry removes the entry and returns it so callers can offer undo.
func (s *Store) DeleteEntry(ctx context.Context, id string) (model.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.entries, func(x model.TimeEntry) bool { return x.ID == id })
	if i < 0 {
		return model.TimeEntry{}, ErrEntryNotFound
	}

	removed := s.entries[i]
	next := slices.Delete(slices.Clone(s.entries), i, i+1)
	err := persist(ctx, s.kv, repository.KeyEntries, next)
	if err != nil {
		return model.TimeEntry{}, err
	}
	s.entries = next
	return removed, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id string) (model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.goals, func(x model.Goal) bool { return x.ID == id })
	if i < 0 {
		return model.Goal{}, ErrGoalNotFound
	}

	removed := s.goals[i]
	next := slices.Delete(slices.Clone(s.goals), i, i+1)
	err := persist(ctx, s.kv, repository.KeyGoals, next)
	if err != nil {
		return model.Goal{}, err
	}
	s.goals = next
	return removed, nil
}

// WithGoals runs fn with the current goals while holding the write lock, so a
// conflict check in fn and the mutation it returns cannot interleave with
// another writer. fn returns the goal to store; an empty ID means add.
func (s *Store) WithGoals(ctx context.Context, fn func(goals []model.Goal) (model.Goal, error)) (model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := fn(slices.Clone(s.goals))
	if err != nil {
		return model.Goal{}, err
	}

	next := slices.Clone(s.goals)
	if g.ID == "" {
		g.ID = s.newID()
		next = append(next, g)
	} else {
		i := slices.IndexFunc(next, func(x model.Goal) bool { return x.ID == g.ID })
		if i < 0 {
			return model.Goal{}, ErrGoalNotFound
		}
		next[i] = g
	}

	err = persist(ctx, s.kv, repository.KeyGoals, next)
	if err != nil {
		return model.Goal{}, err
	}
	s.goals = next
	return g, nil
}

// Update runs fn with copies of both collections while holding the write
// lock and stores what it returns. Records keep their IDs. If the goals write
// fails the previous entries are written back so both keys stay consistent.
func (s *Store) Update(ctx context.Context, fn func(entries []model.TimeEntry, goals []model.Goal) ([]model.TimeEntry, []model.Goal, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, goals, err := fn(slices.Clone(s.entries), slices.Clone(s.goals))
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []model.TimeEntry{}
	}
	if goals == nil {
		goals = []model.Goal{}
	}

	err = persist(ctx, s.kv, repository.KeyEntries, entries)
	if err != nil {
		return err
	}
	err = persist(ctx, s.kv, repository.KeyGoals, goals)
	if err != nil {
		restoreErr := persist(ctx, s.kv, repository.KeyEntries, s.entries)
		if restoreErr != nil {
			slog.Error("failed to restore entries after update failure", "error", restoreErr)
		}
		return err
	}

	s.entries = entries
	s.goals = goals
	return nil
}
