package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/reminisce-app/journal-server/internal/model"
	"github.com/reminisce-app/journal-server/internal/session"
	"github.com/reminisce-app/journal-server/internal/store"
)

// MemoryService is the memory repository for the active session user.
type MemoryService struct {
	store store.Store
	sess  *session.Manager
	log   zerolog.Logger

	mu      sync.RWMutex
	visible []*model.Memory
}

func NewMemoryService(s store.Store, sess *session.Manager, log zerolog.Logger) *MemoryService {
	svc := &MemoryService{store: s, sess: sess, log: log}
	sess.Subscribe(svc.onSessionChange)
	return svc
}

func (s *MemoryService) onSessionChange(u *model.User) {
	if u == nil {
		s.mu.Lock()
		s.visible = nil
		s.mu.Unlock()
		return
	}
	lst, err := s.store.Memories().List(context.Background(), u.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", u.ID).Msg("failed to load memories for session")
		lst = nil
	}
	s.mu.Lock()
	s.visible = lst
	s.mu.Unlock()
}

// List returns the session user's memories in insertion order. Display
// ordering (date descending on the timeline) is the caller's concern.
func (s *MemoryService) List(ctx context.Context) ([]*model.Memory, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.visible), nil
}

// Create assigns id, owner and creation time, then appends.
func (s *MemoryService) Create(ctx context.Context, req model.CreateMemoryRequest) (*model.Memory, error) {
	u, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	m, err := s.store.Memories().Create(ctx, &model.Memory{
		UserID:      u.ID,
		Title:       req.Title,
		Description: req.Description,
		ImageURI:    req.ImageURI,
		Date:        req.Date,
		CategoryID:  req.CategoryID,
		Location:    req.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("create memory: %w", err)
	}

	s.mu.Lock()
	s.visible = append(s.visible, m)
	s.mu.Unlock()

	return clone(m), nil
}

// Update merges the partial request onto the owned record; nil fields keep
// their prior value. ErrNotFound when the id is not owned by the session
// user.
func (s *MemoryService) Update(ctx context.Context, id string, req model.UpdateMemoryRequest) (*model.Memory, error) {
	u, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	m, err := s.store.Memories().Update(ctx, u.ID, id, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i, v := range s.visible {
		if v.ID == id {
			s.visible[i] = clone(m)
			break
		}
	}
	s.mu.Unlock()

	return clone(m), nil
}

// Remove deletes an owned memory. ErrNotFound the second time around.
func (s *MemoryService) Remove(ctx context.Context, id string) error {
	u, err := s.requireUser()
	if err != nil {
		return err
	}

	if err := s.store.Memories().Delete(ctx, u.ID, id); err != nil {
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

// GetByID looks up within the visible list only.
func (s *MemoryService) GetByID(ctx context.Context, id string) (*model.Memory, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.visible {
		if m.ID == id {
			return clone(m), nil
		}
	}
	return nil, model.ErrNotFound
}

// GetByCategory filters the visible list by category id.
func (s *MemoryService) GetByCategory(ctx context.Context, categoryID string) ([]*model.Memory, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Memory, 0)
	for _, m := range s.visible {
		if m.CategoryID == categoryID {
			out = append(out, clone(m))
		}
	}
	return out, nil
}

// Search matches the query case-insensitively against title and description,
// and case-sensitively as a substring of the calendar date. An empty query
// matches everything; callers treat blank queries as "no search".
func (s *MemoryService) Search(ctx context.Context, query string) ([]*model.Memory, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(query)
	out := make([]*model.Memory, 0)
	for _, m := range s.visible {
		if strings.Contains(strings.ToLower(m.Title), lower) ||
			strings.Contains(strings.ToLower(m.Description), lower) ||
			strings.Contains(m.Date, query) {
			out = append(out, clone(m))
		}
	}
	return out, nil
}

func (s *MemoryService) requireUser() (*model.User, error) {
	u := s.sess.Current()
	if u == nil {
		return nil, model.ErrNotAuthenticated
	}
	return u, nil
}

func clone(m *model.Memory) *model.Memory {
	out := *m
	if m.Location != nil {
		loc := *m.Location
		out.Location = &loc
	}
	return &out
}

func cloneAll(lst []*model.Memory) []*model.Memory {
	out := make([]*model.Memory, len(lst))
	for i, m := range lst {
		out[i] = clone(m)
	}
	return out
}
