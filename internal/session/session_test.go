package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/reminisce-app/journal-server/internal/fixture"
	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/store"
	"github.com/reminisce-app/journal-server/internal/store/memstore"
)

func newTestManager(t *testing.T) (*Manager, store.Store, *FileSlot) {
	t.Helper()
	s := memstore.New()
	require.NoError(t, fixture.Seed(context.Background(), s))
	slot := NewFileSlot(t.TempDir())
	return NewManager(s, slot, zerolog.Nop()), s, slot
}

func TestLogin_AllSeededUsers(t *testing.T) {
	m, s, _ := newTestManager(t)
	ctx := context.Background()

	for _, u := range fixture.Users() {
		ok, err := m.Login(ctx, u.Email, u.Password)
		require.NoError(t, err)
		require.True(t, ok, "login for %s", u.Email)
		require.Equal(t, u.ID, m.Current().ID)
	}
	_ = s
}

func TestLogin_BadCredentials(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	ok, err := m.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)
	require.True(t, ok)

	cases := []struct{ email, password string }{
		{"john@example.com", "wrong"},
		{"JOHN@EXAMPLE.COM", "password123"}, // email compare is case-sensitive
		{"nobody@example.com", "password123"},
	}
	for _, c := range cases {
		ok, err := m.Login(ctx, c.email, c.password)
		require.NoError(t, err)
		require.False(t, ok)
		// failed attempt leaves the session unchanged
		require.Equal(t, "user_1", m.Current().ID)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	m, s, _ := newTestManager(t)
	ctx := context.Background()

	ok, err := m.Signup(ctx, "Impostor", "john@example.com", "hunter2")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, m.Current())

	// the existing account is untouched
	u, err := s.Users().GetByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	require.Equal(t, "John Doe", u.Name)
	require.Equal(t, "password123", u.Password)
}

func TestSignup_ThenLogin(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	ok, err := m.Signup(ctx, "New User", "new@example.com", "secret")
	require.NoError(t, err)
	require.True(t, ok)
	created := m.Current()
	require.NotNil(t, created)
	require.NotEmpty(t, created.ID)

	require.NoError(t, m.Logout(ctx))
	require.Nil(t, m.Current())

	ok, err = m.Login(ctx, "new@example.com", "secret")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, created.ID, m.Current().ID)
}

func TestLogout_ClearsSlot(t *testing.T) {
	m, _, slot := newTestManager(t)
	ctx := context.Background()

	ok, err := m.Login(ctx, "jane@example.com", "password123")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = slot.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))
	_, err = slot.Load(ctx)
	require.ErrorIs(t, err, ErrSlotEmpty)
}

func TestRestore_RoundTrip(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	require.NoError(t, fixture.Seed(ctx, s))
	dir := t.TempDir()

	first := NewManager(s, NewFileSlot(dir), zerolog.Nop())
	ok, err := first.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)
	require.True(t, ok)

	// a second manager over the same slot simulates a restart
	second := NewManager(s, NewFileSlot(dir), zerolog.Nop())
	u, err := second.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "user_1", u.ID)
	require.Equal(t, "user_1", second.Current().ID)
}

func TestRestore_EmptyAndStaleSlot(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	require.NoError(t, fixture.Seed(ctx, s))
	dir := t.TempDir()
	slot := NewFileSlot(dir)

	m := NewManager(s, slot, zerolog.Nop())
	u, err := m.Restore(ctx)
	require.NoError(t, err)
	require.Nil(t, u)

	// a slot naming a user the store no longer knows is discarded
	raw, _ := json.Marshal(model.User{ID: "user_gone", Email: "gone@example.com"})
	require.NoError(t, slot.Save(ctx, raw))
	u, err = m.Restore(ctx)
	require.NoError(t, err)
	require.Nil(t, u)
	_, err = slot.Load(ctx)
	require.ErrorIs(t, err, ErrSlotEmpty)
}

func TestUpdateProfile(t *testing.T) {
	m, s, slot := newTestManager(t)
	ctx := context.Background()

	// without a session: no-op
	u, err := m.UpdateProfile(ctx, "Nobody")
	require.NoError(t, err)
	require.Nil(t, u)

	ok, err := m.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)
	require.True(t, ok)

	u, err = m.UpdateProfile(ctx, "Johnny")
	require.NoError(t, err)
	require.Equal(t, "Johnny", u.Name)
	require.Equal(t, "Johnny", m.Current().Name)

	// write-through to the Users table
	rec, err := s.Users().Get(ctx, "user_1")
	require.NoError(t, err)
	require.Equal(t, "Johnny", rec.Name)

	// re-persisted identity carries the new name
	raw, err := slot.Load(ctx)
	require.NoError(t, err)
	var saved model.User
	require.NoError(t, json.Unmarshal(raw, &saved))
	require.Equal(t, "Johnny", saved.Name)
}

func TestSubscribe_NotifiedOnEveryChange(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx := context.Background()

	var events []string
	m.Subscribe(func(u *model.User) {
		if u == nil {
			events = append(events, "nil")
		} else {
			events = append(events, u.ID)
		}
	})

	ok, err := m.Login(ctx, "john@example.com", "password123")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, m.Logout(ctx))
	ok, err = m.Signup(ctx, "S", "s@example.com", "pw")
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, "user_1", events[0])
	require.Equal(t, "nil", events[1])
	require.Len(t, events, 3)
}
