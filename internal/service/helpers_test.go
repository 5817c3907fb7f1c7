package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/templui/screentime/internal/repository"
	"github.com/templui/screentime/internal/store"
)

var fixedNow = time.Date(2026, 10, 17, 20, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := repository.NewFileKeyValueRepository(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatal(err)
	}
	s := store.New(kv)
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s
}
