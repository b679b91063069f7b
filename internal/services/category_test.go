package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/reminisce-app/journal-server/internal/fixture"
	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/session"
	"github.com/reminisce-app/journal-server/internal/store"
	"github.com/reminisce-app/journal-server/internal/store/memstore"
)

type env struct {
	store store.Store
	sess  *session.Manager
	cats  *CategoryService
	mems  *MemoryService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := memstore.New()
	require.NoError(t, fixture.Seed(context.Background(), s))
	sess := session.NewManager(s, session.NewFileSlot(t.TempDir()), zerolog.Nop())
	return &env{
		store: s,
		sess:  sess,
		cats:  NewCategoryService(s, sess, zerolog.Nop()),
		mems:  NewMemoryService(s, sess, zerolog.Nop()),
	}
}

func (e *env) login(t *testing.T, email string) {
	t.Helper()
	ok, err := e.sess.Login(context.Background(), email, "password123")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCategories_RequireSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.cats.List(ctx)
	require.ErrorIs(t, err, model.ErrNotAuthenticated)
	_, err = e.cats.Create(ctx, "X", "#000000")
	require.ErrorIs(t, err, model.ErrNotAuthenticated)
	err = e.cats.Remove(ctx, "category_1")
	require.ErrorIs(t, err, model.ErrNotAuthenticated)
}

func TestCategories_VisibleListFollowsSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.login(t, "john@example.com")
	lst, err := e.cats.List(ctx)
	require.NoError(t, err)
	require.Len(t, lst, 3)
	require.Equal(t, []string{"Family", "Travel", "Friends"}, names(lst))

	e.login(t, "jane@example.com")
	lst, err = e.cats.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Work", "Vacation"}, names(lst))

	require.NoError(t, e.sess.Logout(ctx))
	_, err = e.cats.List(ctx)
	require.ErrorIs(t, err, model.ErrNotAuthenticated)
}

func TestCategories_CreateRoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "john@example.com")

	c, err := e.cats.Create(ctx, "Hobbies", "#112233")
	require.NoError(t, err)
	require.Equal(t, "user_1", c.UserID)

	got, err := e.cats.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c, got)

	lst, err := e.cats.List(ctx)
	require.NoError(t, err)
	require.Equal(t, c.ID, lst[len(lst)-1].ID)

	// write-through: the backing table has it too
	rec, err := e.store.Categories().GetByID(ctx, "user_1", c.ID)
	require.NoError(t, err)
	require.Equal(t, "Hobbies", rec.Name)
}

func TestCategories_UpdatePreservesIdentity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "john@example.com")

	c, err := e.cats.Update(ctx, "category_1", "Relatives", "#445566")
	require.NoError(t, err)
	require.Equal(t, "category_1", c.ID)
	require.Equal(t, "user_1", c.UserID)
	require.Equal(t, "Relatives", c.Name)

	// the other user's categories are out of reach
	_, err = e.cats.Update(ctx, "category_4", "Hijack", "#000000")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestCategories_GetByIDScopedToSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "john@example.com")

	_, err := e.cats.GetByID(ctx, "category_1")
	require.NoError(t, err)

	// exists in the backing table but belongs to jane
	_, err = e.cats.GetByID(ctx, "category_4")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestCategories_RemoveGuardedByReferences(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "john@example.com")

	// category_2 (Travel) is referenced by memory_2 and memory_4
	err := e.cats.Remove(ctx, "category_2")
	require.ErrorIs(t, err, model.ErrCategoryInUse)
	_, err = e.cats.GetByID(ctx, "category_2")
	require.NoError(t, err)

	// once the referencing memories are gone the delete goes through
	require.NoError(t, e.mems.Remove(ctx, "memory_2"))
	require.NoError(t, e.mems.Remove(ctx, "memory_4"))
	require.NoError(t, e.cats.Remove(ctx, "category_2"))

	_, err = e.cats.GetByID(ctx, "category_2")
	require.ErrorIs(t, err, model.ErrNotFound)

	// second remove reports not found
	err = e.cats.Remove(ctx, "category_2")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestCategories_WholeScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "john@example.com")

	c, err := e.cats.Create(ctx, "Travel Plans", "#5b7b7a")
	require.NoError(t, err)

	lst, err := e.cats.List(ctx)
	require.NoError(t, err)
	require.Contains(t, names(lst), "Travel Plans")

	m, err := e.mems.Create(ctx, model.CreateMemoryRequest{
		Title: "Road Trip", Date: "2024-02-01", CategoryID: c.ID,
	})
	require.NoError(t, err)

	byCat, err := e.mems.GetByCategory(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	require.Equal(t, m.ID, byCat[0].ID)

	err = e.cats.Remove(ctx, c.ID)
	require.ErrorIs(t, err, model.ErrCategoryInUse)
}

func names(lst []*model.Category) []string {
	out := make([]string, len(lst))
	for i, c := range lst {
		out[i] = c.Name
	}
	return out
}
