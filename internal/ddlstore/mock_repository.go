package ddlstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MockRepository is an in-memory Repository, used by default and in
// tests that don't need a real database, mirroring the role of
// dsl-ob-poc's mocks.MockStore behind the DataStore interface.
type MockRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]Session
}

// NewMockRepository creates an empty in-memory repository.
func NewMockRepository() *MockRepository {
	return &MockRepository{sessions: make(map[uuid.UUID]Session)}
}

func (m *MockRepository) Close() error { return nil }

func (m *MockRepository) RecordSession(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *MockRepository) GetSession(_ context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MockRepository) ListSessions(_ context.Context) ([]Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sessions := make([]Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ParsedAt.After(sessions[j].ParsedAt)
	})
	return sessions, nil
}
