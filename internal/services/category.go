// Package services holds the session-scoped repositories. Each repository
// keeps a visible list: the slice of the backing table owned by the session
// user, recomputed synchronously whenever the session changes. Mutations
// write through to the backing store and mirror into the visible list.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/session"
	"github.com/reminisce-app/journal-server/internal/store"
)

// CategoryService is the category repository for the active session user.
type CategoryService struct {
	store store.Store
	sess  *session.Manager
	log   zerolog.Logger

	mu      sync.RWMutex
	visible []*model.Category
}

func NewCategoryService(s store.Store, sess *session.Manager, log zerolog.Logger) *CategoryService {
	svc := &CategoryService{store: s, sess: sess, log: log}
	sess.Subscribe(svc.onSessionChange)
	return svc
}

func (s *CategoryService) onSessionChange(u *model.User) {
	if u == nil {
		s.mu.Lock()
		s.visible = nil
		s.mu.Unlock()
		return
	}
	lst, err := s.store.Categories().List(context.Background(), u.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", u.ID).Msg("failed to load categories for session")
		lst = nil
	}
	s.mu.Lock()
	s.visible = lst
	s.mu.Unlock()
}

// List returns the session user's categories in insertion order.
func (s *CategoryService) List(ctx context.Context) ([]*model.Category, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Category, len(s.visible))
	for i, c := range s.visible {
		rec := *c
		out[i] = &rec
	}
	return out, nil
}

// Create appends a category owned by the session user.
func (s *CategoryService) Create(ctx context.Context, name, color string) (*model.Category, error) {
	u, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	c, err := s.store.Categories().Create(ctx, &model.Category{UserID: u.ID, Name: name, Color: color})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.mu.Lock()
	s.visible = append(s.visible, c)
	s.mu.Unlock()

	rec := *c
	return &rec, nil
}

// Update replaces name and color in place. ErrNotFound when the id is not
// owned by the session user.
func (s *CategoryService) Update(ctx context.Context, id, name, color string) (*model.Category, error) {
	u, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	c, err := s.store.Categories().Update(ctx, u.ID, id, name, color)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i, v := range s.visible {
		if v.ID == id {
			rec := *c
			s.visible[i] = &rec
			break
		}
	}
	s.mu.Unlock()

	return c, nil
}

// Remove deletes an owned category. It refuses with ErrCategoryInUse while
// memories still reference the category; the store itself stays unguarded.
func (s *CategoryService) Remove(ctx context.Context, id string) error {
	u, err := s.requireUser()
	if err != nil {
		return err
	}

	refs, err := s.store.Memories().ListByCategory(ctx, u.ID, id)
	if err != nil {
		return fmt.Errorf("check category references: %w", err)
	}
	if len(refs) > 0 {
		return model.ErrCategoryInUse
	}

	if err := s.store.Categories().Delete(ctx, u.ID, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i, v := range s.visible {
		if v.ID == id {
			s.visible = append(s.visible[:i], s.visible[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	return nil
}

// GetByID looks up within the visible list only, so the session scope is
// implicit.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*model.Category, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.visible {
		if c.ID == id {
			rec := *c
			return &rec, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *CategoryService) requireUser() (*model.User, error) {
	u := s.sess.Current()
	if u == nil {
		return nil, model.ErrNotAuthenticated
	}
	return u, nil
}
