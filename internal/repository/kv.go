package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Storage keys for the two persisted collections.
const (
	KeyEntries = "screenTimeEntries"
	KeyGoals   = "screenTimeGoals"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

// KeyValueRepository persists whole serialized values under string keys.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type sqlKeyValueRepository struct {
	db *sqlx.DB
}

func NewSQLKeyValueRepository(db *sqlx.DB) KeyValueRepository {
	return &sqlKeyValueRepository{db: db}
}

func (r *sqlKeyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := `SELECT value FROM local_storage WHERE key = $1`

	err := r.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

func (r *sqlKeyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO local_storage (key, value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, key, string(value), time.Now().UTC())
	return err
}
