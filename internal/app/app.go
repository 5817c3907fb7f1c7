package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/screentime/internal/config"
	"github.com/templui/screentime/internal/db"
	"github.com/templui/screentime/internal/handler"
	"github.com/templui/screentime/internal/middleware"
	"github.com/templui/screentime/internal/repository"
	"github.com/templui/screentime/internal/service"
	"github.com/templui/screentime/internal/storage"
	"github.com/templui/screentime/internal/store"
)

// Imports replace the whole store, so they are limited per client.
const (
	importLimit  = 10
	importWindow = time.Minute
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	Store           *store.Store
	EntryService    *service.EntryService
	GoalService     *service.GoalService
	StatsService    *service.StatsService
	SnapshotService *service.SnapshotService
	EmailService    *service.EmailService
	DigestService   *service.DigestService
	ImportLimiter   *middleware.RateLimiter

	stop context.CancelFunc
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Cfg: cfg}

	kv, err := a.openKeyValue(ctx)
	if err != nil {
		return nil, err
	}

	// Store
	st := store.New(kv)
	err = st.Load(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	a.Store = st

	// Backup storage
	blobs, err := storage.New(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	a.EntryService = service.NewEntryService(st)
	a.GoalService = service.NewGoalService(st)
	a.StatsService = service.NewStatsService(st, time.Now, cfg.Location())
	a.SnapshotService = service.NewSnapshotService(st, blobs, time.Now)
	a.EmailService = service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.IsDevelopment())
	a.DigestService = service.NewDigestService(a.StatsService, a.EmailService, cfg.DigestEmail, cfg.AppName, cfg.AppURL)

	runCtx, stop := context.WithCancel(context.Background())
	a.stop = stop
	a.ImportLimiter = middleware.NewRateLimiter(importLimit, importWindow)
	go a.ImportLimiter.Run(runCtx, 5*time.Minute)

	slog.Info("app initialized",
		"store", cfg.StoreBackend,
		"entries", len(st.Entries()),
		"goals", len(st.Goals()),
		"timezone", cfg.Location().String(),
	)
	return a, nil
}

// openKeyValue picks the persistence backend for the store.
func (a *App) openKeyValue(ctx context.Context) (repository.KeyValueRepository, error) {
	switch a.Cfg.StoreBackend {
	case config.StoreBackendFile:
		return repository.NewFileKeyValueRepository(a.Cfg.DataDir)
	case config.StoreBackendSQL, "":
		database, err := OpenDB(ctx, a.Cfg)
		if err != nil {
			return nil, err
		}
		a.DB = database
		return repository.NewSQLKeyValueRepository(database), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", a.Cfg.StoreBackend)
	}
}

// OpenDB connects to the configured database and applies migrations.
func OpenDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return database, nil
}

// Pinger returns the database for health checks, or nil for the file backend.
func (a *App) Pinger() handler.Pinger {
	if a.DB == nil {
		return nil
	}
	return a.DB
}

func (a *App) Close() error {
	if a.stop != nil {
		a.stop()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
