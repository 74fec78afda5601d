package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/sportfinder/internal/dependencies/ids"
	"github.com/mcoot/sportfinder/internal/model"
)

// MockIDs is a mock implementation of ids.Generator for testing
type MockIDs struct {
	mu      sync.Mutex
	queued  []model.SessionKey
	counter int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// SessionKey returns the next queued key, or a deterministic generated one if none remain
func (m *MockIDs) SessionKey() model.SessionKey {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queued) > 0 {
		key := m.queued[0]
		m.queued = m.queued[1:]
		return key
	}
	m.counter++
	return model.SessionKey(fmt.Sprintf("00000000-0000-4000-8000-%012d", m.counter))
}

// QueueSessionKey adds keys to the result queue
func (m *MockIDs) QueueSessionKey(keys ...model.SessionKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = append(m.queued, keys...)
}
