package session

import (
	"context"
	"sync"
	"time"

	"burnoutlens/domain/filters"
	"burnoutlens/internal/errors"

	"github.com/google/uuid"
)

// Session is one browser's view state. Values handed out by the manager are
// copies; the stored selection is only changed through SetSelection.
type Session struct {
	ID        uuid.UUID         `json:"id"`
	Selection filters.Selection `json:"selection"`
	CreatedAt time.Time         `json:"created_at"`
	LastSeen  time.Time         `json:"last_seen"`
}

func (s *Session) snapshot() Session {
	out := *s
	out.Selection = s.Selection.Clone()
	return out
}

// Manager keeps sessions in memory and expires them after a period of inactivity
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a manager whose sessions expire ttl after their last use
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session with the empty selection
func (m *Manager) Create() Session {
	now := m.now()
	s := &Session{
		ID:        uuid.New(),
		Selection: filters.NewSelection(),
		CreatedAt: now,
		LastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s.snapshot()
}

// Get returns a live session and refreshes its expiry
func (m *Manager) Get(id string) (Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return Session{}, errors.InvalidInput("invalid session ID: " + err.Error())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || m.expired(s) {
		delete(m.sessions, sessionID)
		return Session{}, errors.NotFound("session " + id)
	}
	s.LastSeen = m.now()
	return s.snapshot(), nil
}

// GetOrCreate resolves id, starting a new session when it is unknown, invalid or expired
func (m *Manager) GetOrCreate(id string) (Session, bool) {
	if id != "" {
		if s, err := m.Get(id); err == nil {
			return s, false
		}
	}
	return m.Create(), true
}

// SetSelection replaces the selection of a live session
func (m *Manager) SetSelection(id uuid.UUID, sel filters.Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || m.expired(s) {
		return errors.NotFound("session " + id.String())
	}
	s.Selection = sel.Clone()
	s.LastSeen = m.now()
	return nil
}

// Delete removes a session
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of stored sessions, including expired ones not yet swept
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops expired sessions and returns how many were removed
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Manager) expired(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.LastSeen) > m.ttl
}
