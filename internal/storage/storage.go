package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"

	cfg "github.com/templui/screentime/internal/config"
)

var ErrObjectNotFound = errors.New("object not found")

// Storage holds backup snapshots as opaque objects addressed by path.
type Storage interface {
	// Save stores an object at the given path, replacing any existing one
	Save(ctx context.Context, path string, body io.Reader) error

	// Open returns a reader for the object; callers close it
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// List returns object paths under prefix, sorted ascending
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes an object
	Delete(ctx context.Context, path string) error

	// URL returns a link for downloading the object
	URL(ctx context.Context, path string) (string, error)
}

// New picks S3 when a bucket is configured, local disk otherwise.
func New(ctx context.Context, c *cfg.Config) (Storage, error) {
	if !c.UsesS3() {
		slog.Info("initializing local backup storage", "dir", c.BackupDir)
		return NewLocalStorage(c.BackupDir)
	}

	slog.Info("initializing S3 backup storage",
		"bucket", c.S3Bucket,
		"region", c.S3Region,
		"endpoint", c.S3Endpoint,
	)
	return NewS3Storage(ctx, S3Config{
		Region:        c.S3Region,
		Bucket:        c.S3Bucket,
		AccessKey:     c.S3AccessKey,
		SecretKey:     c.S3SecretKey,
		Endpoint:      c.S3Endpoint,
		UsePathStyle:  c.S3UsePathStyle,
		PresignExpiry: c.S3PresignExpiry,
	})
}
