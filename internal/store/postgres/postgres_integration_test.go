package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/reminisce-app/journal-server/internal/store"
	"github.com/reminisce-app/journal-server/internal/store/storetest"
)

// makePGStore returns a store against either the DSN in
// JOURNAL_BACKEND_POSTGRES_DSN or a disposable testcontainers instance.
func makePGStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()

	dsn := os.Getenv("JOURNAL_BACKEND_POSTGRES_DSN")
	if dsn == "" {
		if os.Getenv("JOURNAL_BACKEND_SKIP_CONTAINER_TESTS") != "" {
			t.Skip("container tests disabled and no JOURNAL_BACKEND_POSTGRES_DSN set")
		}
		pg, err := tcpostgres.Run(ctx,
			"postgres:alpine",
			tcpostgres.WithDatabase("journal"),
			tcpostgres.WithUsername("journal"),
			tcpostgres.WithPassword("journal"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if err != nil {
			t.Skipf("postgres container unavailable: %v", err)
		}
		t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

		dsn, err = pg.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("connection string: %v", err)
		}
	}

	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Bootstrap(ctx, db); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return NewWithDB(db)
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
