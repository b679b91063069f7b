package factory

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/reminisce-app/journal-server/internal/config"
	"github.com/reminisce-app/journal-server/internal/session"
	storepkg "github.com/reminisce-app/journal-server/internal/store"
	"github.com/reminisce-app/journal-server/internal/store/memstore"
	storepg "github.com/reminisce-app/journal-server/internal/store/postgres"
	storesqlite "github.com/reminisce-app/journal-server/internal/store/sqlite"
)

// NewStore builds the store adapter selected by cfg.StoreDriver.
//
// memory:   process-local store, state is lost on exit.
// sqlite:   file-backed store under the state dir (or JOURNAL_BACKEND_SQLITE_PATH).
// postgres: connects with cfg.PostgresDSN and runs an async bootstrap check.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		return memstore.New(), nil

	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			dir, err := session.StateDir()
			if err != nil {
				return nil, fmt.Errorf("resolve sqlite path: %w", err)
			}
			path = filepath.Join(dir, "journal.db")
		}
		st, err := storesqlite.New(path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("sqlite store opened")
		return st, nil

	case "postgres":
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}

		// Schema bootstrap runs off the startup path; health probes catch
		// a database that never becomes reachable.
		go func() {
			bootstrapCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := storepg.Bootstrap(bootstrapCtx, db); err != nil {
				log.Warn().Err(err).Msg("postgres bootstrap check failed")
			} else {
				log.Debug().Msg("postgres bootstrap check completed")
			}
		}()
		return storepg.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
}
