package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/store"
	"github.com/templui/screentime/internal/usage"
	"github.com/templui/screentime/internal/validation"
)

type EntryService struct {
	store *store.Store
}

func NewEntryService(store *store.Store) *EntryService {
	return &EntryService{store: store}
}

func (s *EntryService) Create(ctx context.Context, entry model.TimeEntry) (model.TimeEntry, error) {
	validation.NormalizeEntry(&entry)
	err := validation.ValidateEntry(entry).Err()
	if err != nil {
		return model.TimeEntry{}, err
	}

	created, err := s.store.AddEntry(ctx, entry)
	if err != nil {
		return model.TimeEntry{}, fmt.Errorf("failed to create entry: %w", err)
	}

	slog.Debug("entry created", "entry_id", created.ID, "app", created.App, "duration", created.Duration)
	return created, nil
}

func (s *EntryService) ByID(id string) (model.TimeEntry, error) {
	return s.store.Entry(id)
}

// List returns entries newest date first, then by app. An empty date lists all.
func (s *EntryService) List(date string) []model.TimeEntry {
	entries := s.store.Entries()
	if date != "" {
		entries = usage.UsageByDate(entries, date)
	}

	slices.SortStableFunc(entries, func(a, b model.TimeEntry) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.App, b.App)
	})
	return entries
}

func (s *EntryService) Update(ctx context.Context, id string, entry model.TimeEntry) (model.TimeEntry, error) {
	entry.ID = id
	validation.NormalizeEntry(&entry)
	err := validation.ValidateEntry(entry).Err()
	if err != nil {
		return model.TimeEntry{}, err
	}

	err = s.store.UpdateEntry(ctx, entry)
	if err != nil {
		return model.TimeEntry{}, err
	}
	return entry, nil
}

// Delete removes the entry permanently and returns it for undo.
func (s *EntryService) Delete(ctx context.Context, id string) (model.TimeEntry, error) {
	return s.store.DeleteEntry(ctx, id)
}

// Restore re-creates a deleted entry. The result carries a new ID.
func (s *EntryService) Restore(ctx context.Context, deleted model.TimeEntry) (model.TimeEntry, error) {
	restored, err := s.Create(ctx, deleted)
	if err != nil {
		return model.TimeEntry{}, err
	}
	slog.Info("entry restored", "old_id", deleted.ID, "entry_id", restored.ID)
	return restored, nil
}
