// Package memstore is the in-process store backing the journal. It keeps the
// three tables as id-keyed maps with insertion-order and secondary indexes
// (by owner, and by category for memories), so lookups avoid table scans.
//
// Records live only for the process lifetime; durability, when wanted, comes
// from the sqlite or postgres adapters instead.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/store"
)

// New returns an empty in-memory store.
func New() store.Store {
	s := &memStore{
		users:      make(map[string]*model.User),
		userEmails: make(map[string]string),
		cats:       make(map[string]*model.Category),
		catsByUser: make(map[string][]string),
		mems:       make(map[string]*model.Memory),
		memsByUser: make(map[string][]string),
		memsByCat:  make(map[string][]string),
	}
	return s
}

// memStore shares one lock across the three tables. The original system ran
// on a single event loop; the lock stands in for that serialization under
// Go's concurrent HTTP server.
type memStore struct {
	mu sync.RWMutex

	users      map[string]*model.User
	userOrder  []string
	userEmails map[string]string // email -> id

	cats       map[string]*model.Category
	catsByUser map[string][]string // userID -> ids, insertion order

	mems       map[string]*model.Memory
	memsByUser map[string][]string // userID -> ids, insertion order
	memsByCat  map[string][]string // categoryID -> ids, insertion order
}

func (s *memStore) Users() store.Users           { return (*users)(s) }
func (s *memStore) Categories() store.Categories { return (*categories)(s) }
func (s *memStore) Memories() store.Memories     { return (*memories)(s) }

// --- Users ---

type users memStore

func (t *users) Create(_ context.Context, u *model.User) (*model.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, taken := t.userEmails[u.Email]; taken {
		return nil, model.ErrDuplicateEmail
	}
	rec := *u
	if rec.ID == "" {
		rec.ID = store.NewID(store.UserIDPrefix)
	}
	t.users[rec.ID] = &rec
	t.userOrder = append(t.userOrder, rec.ID)
	t.userEmails[rec.Email] = rec.ID

	out := rec
	return &out, nil
}

func (t *users) Get(_ context.Context, userID string) (*model.User, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	u, ok := t.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (t *users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	id, ok := t.userEmails[email]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := *t.users[id]
	return &out, nil
}

func (t *users) UpdateName(_ context.Context, userID, name string) (*model.User, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u, ok := t.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	u.Name = name
	out := *u
	return &out, nil
}

// --- Categories ---

type categories memStore

func (t *categories) Create(_ context.Context, c *model.Category) (*model.Category, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec := *c
	if rec.ID == "" {
		rec.ID = store.NewID(store.CategoryIDPrefix)
	}
	t.cats[rec.ID] = &rec
	t.catsByUser[rec.UserID] = append(t.catsByUser[rec.UserID], rec.ID)

	out := rec
	return &out, nil
}

func (t *categories) List(_ context.Context, userID string) ([]*model.Category, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := t.catsByUser[userID]
	out := make([]*model.Category, 0, len(ids))
	for _, id := range ids {
		c := *t.cats[id]
		out = append(out, &c)
	}
	return out, nil
}

func (t *categories) GetByID(_ context.Context, userID, categoryID string) (*model.Category, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c, ok := t.cats[categoryID]
	if !ok || c.UserID != userID {
		return nil, model.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (t *categories) Update(_ context.Context, userID, categoryID, name, color string) (*model.Category, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.cats[categoryID]
	if !ok || c.UserID != userID {
		return nil, model.ErrNotFound
	}
	c.Name = name
	c.Color = color
	out := *c
	return &out, nil
}

func (t *categories) Delete(_ context.Context, userID, categoryID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.cats[categoryID]
	if !ok || c.UserID != userID {
		return model.ErrNotFound
	}
	delete(t.cats, categoryID)
	t.catsByUser[userID] = removeID(t.catsByUser[userID], categoryID)
	return nil
}

// --- Memories ---

type memories memStore

func (t *memories) Create(_ context.Context, m *model.Memory) (*model.Memory, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec := cloneMemory(m)
	if rec.ID == "" {
		rec.ID = store.NewID(store.MemoryIDPrefix)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	t.mems[rec.ID] = rec
	t.memsByUser[rec.UserID] = append(t.memsByUser[rec.UserID], rec.ID)
	t.memsByCat[rec.CategoryID] = append(t.memsByCat[rec.CategoryID], rec.ID)

	return cloneMemory(rec), nil
}

func (t *memories) List(_ context.Context, userID string) ([]*model.Memory, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := t.memsByUser[userID]
	out := make([]*model.Memory, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneMemory(t.mems[id]))
	}
	return out, nil
}

func (t *memories) GetByID(_ context.Context, userID, memoryID string) (*model.Memory, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	m, ok := t.mems[memoryID]
	if !ok || m.UserID != userID {
		return nil, model.ErrNotFound
	}
	return cloneMemory(m), nil
}

func (t *memories) ListByCategory(_ context.Context, userID, categoryID string) ([]*model.Memory, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := t.memsByCat[categoryID]
	out := make([]*model.Memory, 0, len(ids))
	for _, id := range ids {
		m := t.mems[id]
		if m.UserID != userID {
			continue
		}
		out = append(out, cloneMemory(m))
	}
	return out, nil
}

func (t *memories) Update(_ context.Context, userID, memoryID string, req model.UpdateMemoryRequest) (*model.Memory, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.mems[memoryID]
	if !ok || m.UserID != userID {
		return nil, model.ErrNotFound
	}
	prevCat := m.CategoryID
	req.Apply(m)
	if m.CategoryID != prevCat {
		t.memsByCat[prevCat] = removeID(t.memsByCat[prevCat], memoryID)
		t.memsByCat[m.CategoryID] = append(t.memsByCat[m.CategoryID], memoryID)
	}
	return cloneMemory(m), nil
}

func (t *memories) Delete(_ context.Context, userID, memoryID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	m, ok := t.mems[memoryID]
	if !ok || m.UserID != userID {
		return model.ErrNotFound
	}
	delete(t.mems, memoryID)
	t.memsByUser[userID] = removeID(t.memsByUser[userID], memoryID)
	t.memsByCat[m.CategoryID] = removeID(t.memsByCat[m.CategoryID], memoryID)
	return nil
}

// --- helpers ---

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func cloneMemory(m *model.Memory) *model.Memory {
	out := *m
	if m.Location != nil {
		loc := *m.Location
		out.Location = &loc
	}
	return &out
}
