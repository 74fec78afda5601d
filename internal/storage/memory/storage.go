package memory

import (
	"context"
	"sync"

	"github.com/mcoot/sportfinder/internal/model"
	"github.com/mcoot/sportfinder/internal/storage"
)

// entry mirrors the two persisted values of a session slot
type entry struct {
	record []byte
	role   string
}

// Storage is an in-memory implementation of the session store
type Storage struct {
	mu       sync.RWMutex
	sessions map[model.SessionKey]entry
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionKey]entry),
	}
}

// Ensure Storage implements the interface
var _ storage.SessionStore = (*Storage)(nil)

func (s *Storage) Save(ctx context.Context, key model.SessionKey, user *model.User) error {
	record, role, err := storage.Encode(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = entry{record: record, role: role}
	return nil
}

func (s *Storage) Load(ctx context.Context, key model.SessionKey) (*model.User, error) {
	s.mu.RLock()
	e, ok := s.sessions[key]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrNoSession
	}
	return storage.Decode(e.record, e.role)
}

func (s *Storage) Clear(ctx context.Context, key model.SessionKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

// Role returns the raw role marker stored for a slot
func (s *Storage) Role(key model.SessionKey) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[key]
	return e.role, ok
}
