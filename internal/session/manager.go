package session

import (
	"sync"

	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/google/uuid"
)

// Manager tracks live sessions by ID, evicting the oldest when at
// capacity. Sessions never share frames with each other.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
	maxSize  int
}

// NewManager creates a manager holding at most maxSize sessions.
func NewManager(maxSize int) *Manager {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Manager{
		sessions: make(map[string]*Session),
		order:    make([]string, 0, maxSize),
		maxSize:  maxSize,
	}
}

// Create starts a new empty session.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.maxSize && len(m.order) > 0 {
		oldest := m.order[0]
		delete(m.sessions, oldest)
		m.order = m.order[1:]
	}

	s := &Session{ID: uuid.New().String()}
	m.sessions[s.ID] = s
	m.order = append(m.order, s.ID)
	return s
}

// Get retrieves a session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	for i, sid := range m.order {
		if sid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
