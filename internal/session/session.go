// Package session owns the active user. All record visibility in the
// repositories derives from it. Exactly one session is active at a time; the
// identity is persisted to a key-value slot so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/store"
)

// Manager resolves, activates and persists the session user.
//
// Slot I/O is best-effort: a failed write is logged and the in-memory session
// still changes, so a broken disk degrades persistence, not the session.
type Manager struct {
	store store.Store
	slot  Slot
	log   zerolog.Logger

	mu      sync.RWMutex
	current *model.User
	subs    []func(*model.User)
}

func NewManager(s store.Store, slot Slot, log zerolog.Logger) *Manager {
	return &Manager{store: s, slot: slot, log: log}
}

// Subscribe registers a callback invoked synchronously on every session
// change (restore, login, signup, logout) with the new user, nil when the
// session ended. Not safe to call once operations are in flight.
func (m *Manager) Subscribe(fn func(*model.User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Current returns the active user, nil when no session is active.
func (m *Manager) Current() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	out := *m.current
	return &out
}

// Restore reads the persisted identity and reactivates it if the user still
// exists. A missing slot, an unreadable slot or a stale identity all yield a
// nil user without error; only store failures propagate.
func (m *Manager) Restore(ctx context.Context) (*model.User, error) {
	raw, err := m.slot.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			m.log.Error().Err(err).Msg("failed to load session slot")
		}
		return nil, nil
	}

	var saved model.User
	if err := json.Unmarshal(raw, &saved); err != nil {
		m.log.Error().Err(err).Msg("corrupt session slot, discarding")
		m.clearSlot(ctx)
		return nil, nil
	}

	u, err := m.store.Users().Get(ctx, saved.ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			m.log.Warn().Str("user_id", saved.ID).Msg("persisted session user no longer exists")
			m.clearSlot(ctx)
			return nil, nil
		}
		return nil, err
	}

	m.activate(u)
	m.log.Info().Str("user_id", u.ID).Msg("session restored")
	return m.Current(), nil
}

// Login scans for an exact (email, password) match. Bad credentials are a
// normal negative result, not an error.
func (m *Manager) Login(ctx context.Context, email, password string) (bool, error) {
	u, err := m.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if u.Password != password {
		return false, nil
	}

	m.persist(ctx, u)
	m.activate(u)
	m.log.Info().Str("user_id", u.ID).Msg("login")
	return true, nil
}

// Signup creates the account and activates it. A duplicate email is a normal
// negative result; the Users table is left untouched.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (bool, error) {
	u, err := m.store.Users().Create(ctx, &model.User{Name: name, Email: email, Password: password})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return false, nil
		}
		return false, err
	}

	m.persist(ctx, u)
	m.activate(u)
	m.log.Info().Str("user_id", u.ID).Msg("signup")
	return true, nil
}

// Logout clears the persisted identity and deactivates the session.
func (m *Manager) Logout(ctx context.Context) error {
	m.clearSlot(ctx)
	m.activate(nil)
	m.log.Info().Msg("logout")
	return nil
}

// UpdateProfile renames the active user, in the session and in the Users
// table, and re-persists the identity. Without an active session it is a
// no-op.
func (m *Manager) UpdateProfile(ctx context.Context, name string) (*model.User, error) {
	cur := m.Current()
	if cur == nil {
		return nil, nil
	}

	u, err := m.store.Users().UpdateName(ctx, cur.ID, name)
	if err != nil {
		return nil, err
	}

	m.persist(ctx, u)

	m.mu.Lock()
	rec := *u
	m.current = &rec
	m.mu.Unlock()

	return u, nil
}

// activate swaps the current user and notifies subscribers synchronously,
// outside the lock.
func (m *Manager) activate(u *model.User) {
	m.mu.Lock()
	if u == nil {
		m.current = nil
	} else {
		rec := *u
		m.current = &rec
	}
	subs := make([]func(*model.User), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

func (m *Manager) persist(ctx context.Context, u *model.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to encode session identity")
		return
	}
	if err := m.slot.Save(ctx, raw); err != nil {
		m.log.Error().Err(err).Msg("failed to persist session identity")
	}
}

func (m *Manager) clearSlot(ctx context.Context) {
	if err := m.slot.Clear(ctx); err != nil {
		m.log.Error().Err(err).Msg("failed to clear session slot")
	}
}
