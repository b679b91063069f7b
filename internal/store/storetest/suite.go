package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	suffix := uuid.New().String()
	email := "owner-" + suffix + "@example.test"

	// Users
	u, err := s.Users().Create(ctx, &model.User{Name: "Owner", Email: email, Password: "pw"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("CreateUser: empty id")
	}
	if _, err := s.Users().Create(ctx, &model.User{Name: "Dup", Email: email, Password: "x"}); !errors.Is(err, model.ErrDuplicateEmail) {
		t.Fatalf("CreateUser duplicate email: want ErrDuplicateEmail, got %v", err)
	}
	if got, err := s.Users().Get(ctx, u.ID); err != nil || got.Email != email {
		t.Fatalf("GetUser: got=%v err=%v", got, err)
	}
	if got, err := s.Users().GetByEmail(ctx, email); err != nil || got.ID != u.ID {
		t.Fatalf("GetUserByEmail: got=%v err=%v", got, err)
	}
	if got, err := s.Users().UpdateName(ctx, u.ID, "Renamed"); err != nil || got.Name != "Renamed" {
		t.Fatalf("UpdateName: got=%v err=%v", got, err)
	}
	if _, err := s.Users().Get(ctx, "user_missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetUser missing: want ErrNotFound, got %v", err)
	}

	// A second user to verify owner scoping.
	other, err := s.Users().Create(ctx, &model.User{Name: "Other", Email: "other-" + suffix + "@example.test", Password: "pw"})
	if err != nil {
		t.Fatalf("CreateUser other: %v", err)
	}

	// Categories
	c1, err := s.Categories().Create(ctx, &model.Category{UserID: u.ID, Name: "Travel", Color: "#5b7b7a"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	c2, err := s.Categories().Create(ctx, &model.Category{UserID: u.ID, Name: "Family", Color: "#a86032"})
	if err != nil {
		t.Fatalf("CreateCategory c2: %v", err)
	}
	lst, err := s.Categories().List(ctx, u.ID)
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListCategories: n=%d err=%v", len(lst), err)
	}
	if lst[0].ID != c1.ID || lst[1].ID != c2.ID {
		t.Fatalf("ListCategories: insertion order not preserved")
	}
	if _, err := s.Categories().GetByID(ctx, other.ID, c1.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetCategory cross-owner: want ErrNotFound, got %v", err)
	}
	if got, err := s.Categories().Update(ctx, u.ID, c1.ID, "Trips", "#8f784b"); err != nil || got.Name != "Trips" || got.Color != "#8f784b" {
		t.Fatalf("UpdateCategory: got=%v err=%v", got, err)
	}
	if got, err := s.Categories().GetByID(ctx, u.ID, c1.ID); err != nil || got.Name != "Trips" || got.UserID != u.ID {
		t.Fatalf("GetCategory after update: got=%v err=%v", got, err)
	}

	// Memories
	m1, err := s.Memories().Create(ctx, &model.Memory{
		UserID:      u.ID,
		Title:       "Trip to Paris",
		Description: "Croissants",
		ImageURI:    "file:///paris.jpg",
		Date:        "2023-05-10",
		CategoryID:  c1.ID,
		Location:    &model.Location{Latitude: 48.8566, Longitude: 2.3522, Name: "Paris, France"},
	})
	if err != nil {
		t.Fatalf("CreateMemory: %v", err)
	}
	if m1.ID == "" || m1.CreatedAt.IsZero() {
		t.Fatalf("CreateMemory: id/createdAt not assigned: %+v", m1)
	}
	m2, err := s.Memories().Create(ctx, &model.Memory{UserID: u.ID, Title: "Reunion", Date: "2023-07-15", CategoryID: c2.ID})
	if err != nil {
		t.Fatalf("CreateMemory m2: %v", err)
	}

	if got, err := s.Memories().GetByID(ctx, u.ID, m1.ID); err != nil || got.Title != "Trip to Paris" || got.Location == nil {
		t.Fatalf("GetMemory: got=%v err=%v", got, err)
	}
	if lst, err := s.Memories().List(ctx, u.ID); err != nil || len(lst) != 2 || lst[0].ID != m1.ID {
		t.Fatalf("ListMemories: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Memories().ListByCategory(ctx, u.ID, c1.ID); err != nil || len(lst) != 1 || lst[0].ID != m1.ID {
		t.Fatalf("ListByCategory: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Memories().List(ctx, other.ID); err != nil || len(lst) != 0 {
		t.Fatalf("ListMemories other owner: n=%d err=%v", len(lst), err)
	}

	// Partial update: only the title changes, the category move re-indexes.
	title := "Trip to Paris, revisited"
	got, err := s.Memories().Update(ctx, u.ID, m1.ID, model.UpdateMemoryRequest{Title: &title, CategoryID: &c2.ID})
	if err != nil {
		t.Fatalf("UpdateMemory: %v", err)
	}
	if got.Title != title || got.Description != "Croissants" || got.Date != "2023-05-10" || !got.CreatedAt.Equal(m1.CreatedAt) {
		t.Fatalf("UpdateMemory: unspecified fields changed: %+v", got)
	}
	if lst, _ := s.Memories().ListByCategory(ctx, u.ID, c2.ID); len(lst) != 2 {
		t.Fatalf("ListByCategory after move: n=%d", len(lst))
	}
	if lst, _ := s.Memories().ListByCategory(ctx, u.ID, c1.ID); len(lst) != 0 {
		t.Fatalf("ListByCategory old category not vacated: n=%d", len(lst))
	}

	// Cross-owner update/delete must not see the record.
	if _, err := s.Memories().Update(ctx, other.ID, m1.ID, model.UpdateMemoryRequest{Title: &title}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateMemory cross-owner: want ErrNotFound, got %v", err)
	}
	if err := s.Memories().Delete(ctx, other.ID, m1.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteMemory cross-owner: want ErrNotFound, got %v", err)
	}

	// Delete twice: first succeeds, second is ErrNotFound.
	if err := s.Memories().Delete(ctx, u.ID, m2.ID); err != nil {
		t.Fatalf("DeleteMemory: %v", err)
	}
	if err := s.Memories().Delete(ctx, u.ID, m2.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteMemory twice: want ErrNotFound, got %v", err)
	}

	// Category delete at the store layer is unguarded even while m1 still
	// references c2.
	if err := s.Categories().Delete(ctx, u.ID, c2.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := s.Categories().Delete(ctx, u.ID, c2.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteCategory twice: want ErrNotFound, got %v", err)
	}
}
