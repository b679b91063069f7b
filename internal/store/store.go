package store

import (
	"context"

	"github.com/reminisce-app/journal-server/internal/model"
)

// Store exposes the backing tables required by the session manager and the
// repositories. Implementations live under internal/store/<driver>/
// (memstore, sqlite, postgres).
//
// The store is the source of truth; repositories derive owner-scoped views
// from it. Owner scoping is part of the contract: lookups and mutations that
// take a userID only see records whose UserID matches.
type Store interface {
	Users() Users
	Categories() Categories
	Memories() Memories
}

type Users interface {
	// Create appends a new user. An empty ID is assigned by the store.
	// Returns model.ErrDuplicateEmail when the email is already registered
	// (exact, case-sensitive match).
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateName rewrites the display name in place.
	UpdateName(ctx context.Context, userID, name string) (*model.User, error)
}

type Categories interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	// List returns the user's categories in insertion order.
	List(ctx context.Context, userID string) ([]*model.Category, error)
	GetByID(ctx context.Context, userID, categoryID string) (*model.Category, error)
	Update(ctx context.Context, userID, categoryID, name, color string) (*model.Category, error)
	// Delete removes the category without checking for referencing memories;
	// that guard is repository policy, not a store concern.
	Delete(ctx context.Context, userID, categoryID string) error
}

type Memories interface {
	Create(ctx context.Context, m *model.Memory) (*model.Memory, error)
	// List returns the user's memories in insertion order.
	List(ctx context.Context, userID string) ([]*model.Memory, error)
	GetByID(ctx context.Context, userID, memoryID string) (*model.Memory, error)
	ListByCategory(ctx context.Context, userID, categoryID string) ([]*model.Memory, error)
	Update(ctx context.Context, userID, memoryID string, req model.UpdateMemoryRequest) (*model.Memory, error)
	Delete(ctx context.Context, userID, memoryID string) error
}
