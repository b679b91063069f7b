package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// slotKey names the persisted identity record. It is the file stem under the
// state dir.
const slotKey = "user"

// ErrSlotEmpty is returned by Load when no identity has been persisted.
var ErrSlotEmpty = errors.New("session slot empty")

// Slot is the key-value slot holding the serialized session identity.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// FileSlot stores the identity as a single JSON file.
type FileSlot struct{ path string }

// NewFileSlot places the slot file inside dir.
func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{path: filepath.Join(dir, slotKey+".json")}
}

func (s *FileSlot) Load(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return b, nil
}

func (s *FileSlot) Save(_ context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileSlot) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
