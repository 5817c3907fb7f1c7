package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/storage"
	"github.com/templui/screentime/internal/store"
	"github.com/templui/screentime/internal/validation"
)

const (
	ImportReplace = "replace"
	ImportMerge   = "merge"

	backupPrefix = "backups/"

	BackupTimeLayout = "20060102T150405.000Z"
)

var (
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// SnapshotError describes the first invalid record of an import.
type SnapshotError struct {
	Collection string
	Index      int
	Err        error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Collection, e.Index, e.Err)
}

func (e *SnapshotError) Unwrap() []error {
	return []error{ErrInvalidSnapshot, e.Err}
}

type Backup struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type SnapshotService struct {
	store   *store.Store
	storage storage.Storage
	clock   Clock
}

func NewSnapshotService(store *store.Store, storage storage.Storage, clock Clock) *SnapshotService {
	return &SnapshotService{store: store, storage: storage, clock: clock}
}

func (s *SnapshotService) Export() model.Snapshot {
	return model.Snapshot{
		Version:    model.SnapshotVersion,
		ExportedAt: s.clock().UTC(),
		Entries:    s.store.Entries(),
		Goals:      s.store.Goals(),
	}
}

// Decode reads a snapshot document. A bare JSON array is accepted as a list
// of entries, matching the raw value stored under screenTimeEntries.
func Decode(r io.Reader) (model.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap model.Snapshot
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &snap.Entries)
	} else {
		err = json.Unmarshal(trimmed, &snap)
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.Version > model.SnapshotVersion {
		return model.Snapshot{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, snap.Version)
	}
	return snap, nil
}

// Import validates every record of snap and then writes it to the store.
// ImportReplace discards current data; ImportMerge keeps it and adds records
// whose IDs are not present yet. Records without an ID get a fresh one.
func (s *SnapshotService) Import(ctx context.Context, snap model.Snapshot, mode string) (model.Snapshot, error) {
	if mode != ImportReplace && mode != ImportMerge && mode != "" {
		return model.Snapshot{}, fmt.Errorf("unknown import mode %q", mode)
	}

	var counts [2]int
	err := s.store.Update(ctx, func(entries []model.TimeEntry, goals []model.Goal) ([]model.TimeEntry, []model.Goal, error) {
		if mode != ImportMerge {
			entries, goals = nil, nil
		}
		entries, goals, err := mergeSnapshot(entries, goals, snap)
		counts = [2]int{len(entries), len(goals)}
		return entries, goals, err
	})
	if err != nil {
		var snapErr *SnapshotError
		if errors.As(err, &snapErr) {
			return model.Snapshot{}, err
		}
		return model.Snapshot{}, fmt.Errorf("failed to import snapshot: %w", err)
	}

	slog.Info("snapshot imported", "mode", mode, "entries", counts[0], "goals", counts[1])
	return s.Export(), nil
}

// mergeSnapshot validates every record of snap and appends those whose IDs
// are not present in entries or goals yet.
func mergeSnapshot(entries []model.TimeEntry, goals []model.Goal, snap model.Snapshot) ([]model.TimeEntry, []model.Goal, error) {
	entryIDs := map[string]bool{}
	for _, e := range entries {
		entryIDs[e.ID] = true
	}
	for i, e := range snap.Entries {
		validation.NormalizeEntry(&e)
		err := validation.ValidateEntry(e).Err()
		if err != nil {
			return nil, nil, &SnapshotError{Collection: "screenTimeEntries", Index: i, Err: err}
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if entryIDs[e.ID] {
			continue
		}
		entryIDs[e.ID] = true
		entries = append(entries, e)
	}

	goalIDs := map[string]bool{}
	for _, g := range goals {
		goalIDs[g.ID] = true
	}
	for i, g := range snap.Goals {
		validation.NormalizeGoal(&g)
		err := validation.ValidateGoal(g).Err()
		if err != nil {
			return nil, nil, &SnapshotError{Collection: "screenTimeGoals", Index: i, Err: err}
		}
		if g.ID == "" {
			g.ID = uuid.New().String()
		}
		if goalIDs[g.ID] {
			continue
		}
		if validation.HasConflict(goals, g.Type, g.Target, g.Limit, "") {
			return nil, nil, &SnapshotError{Collection: "screenTimeGoals", Index: i, Err: ErrGoalConflict}
		}
		goalIDs[g.ID] = true
		goals = append(goals, g)
	}
	return entries, goals, nil
}

// Backup exports the store and uploads it under backups/.
func (s *SnapshotService) Backup(ctx context.Context) (Backup, error) {
	snap := s.Export()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Backup{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	path := backupPrefix + BackupName(snap.ExportedAt)
	err = s.storage.Save(ctx, path, bytes.NewReader(data))
	if err != nil {
		return Backup{}, fmt.Errorf("failed to save backup: %w", err)
	}

	url, err := s.storage.URL(ctx, path)
	if err != nil {
		slog.Warn("failed to build backup url", "error", err, "path", path)
	}

	slog.Info("backup saved", "path", path, "entries", len(snap.Entries), "goals", len(snap.Goals))
	return Backup{Path: path, URL: url}, nil
}

// BackupName names a backup after its export time. The random suffix keeps two
// backups taken within the same millisecond apart.
func BackupName(t time.Time) string {
	return t.UTC().Format(BackupTimeLayout) + "-" + uuid.NewString()[:8] + ".json"
}

// BackupTime parses the export time back out of a backup name or path.
func BackupTime(name string) (time.Time, error) {
	name = strings.TrimPrefix(name, backupPrefix)
	name, _, _ = strings.Cut(strings.TrimSuffix(name, ".json"), "-")
	return time.Parse(BackupTimeLayout, name)
}

// Backups lists saved backup paths, oldest first.
func (s *SnapshotService) Backups(ctx context.Context) ([]string, error) {
	return s.storage.List(ctx, backupPrefix)
}

// DeleteBackup removes a saved backup and returns its full path.
func (s *SnapshotService) DeleteBackup(ctx context.Context, path string) (string, error) {
	path = backupPath(path)
	err := s.storage.Delete(ctx, path)
	if err != nil {
		return "", err
	}
	slog.Info("backup deleted", "path", path)
	return path, nil
}

func backupPath(path string) string {
	if !strings.HasPrefix(path, backupPrefix) {
		return backupPrefix + path
	}
	return path
}

// RestoreBackup replaces the store with the contents of a saved backup.
func (s *SnapshotService) RestoreBackup(ctx context.Context, path string) (model.Snapshot, error) {
	path = backupPath(path)

	rc, err := s.storage.Open(ctx, path)
	if err != nil {
		return model.Snapshot{}, err
	}
	defer rc.Close()

	snap, err := Decode(rc)
	if err != nil {
		return model.Snapshot{}, err
	}
	return s.Import(ctx, snap, ImportReplace)
}
