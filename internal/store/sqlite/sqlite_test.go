package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/store"
	"github.com/reminisce-app/journal-server/internal/store/storetest"
)

var testUser = model.User{Name: "Reopen", Email: "reopen@example.test", Password: "pw"}

func makeSqliteStore(t *testing.T) store.Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	return s
}

func TestSqliteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSqliteStore)
}

// Reopening the same file must keep the data and the schema bootstrap must be
// idempotent.
func TestSqliteStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	s1, err := New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := t.Context()
	u, err := s1.Users().Create(ctx, &testUser)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	s2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := s2.Users().Get(ctx, u.ID)
	if err != nil || got.Email != testUser.Email {
		t.Fatalf("get after reopen: got=%v err=%v", got, err)
	}
}
