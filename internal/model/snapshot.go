package model

import "time"

const SnapshotVersion = 1

// Snapshot is the export/import/backup document. Field names match the
// key/value storage keys so a snapshot can be produced from raw storage.
type Snapshot struct {
	Version    int         `json:"version"`
	ExportedAt time.Time   `json:"exportedAt"`
	Entries    []TimeEntry `json:"screenTimeEntries"`
	Goals      []Goal      `json:"screenTimeGoals"`
}
