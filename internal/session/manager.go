// internal/session/manager.go
package session

import "log"

// Manager holds at most one running session. Beginning a new one disposes
// the previous match first.
type Manager struct {
	current *Session
}

func NewManager() *Manager {
	return &Manager{}
}

// Begin creates and starts a session from opts.
func (m *Manager) Begin(opts Options) (*Session, error) {
	if err := m.End(); err != nil {
		log.Printf("WARNING: ending previous session: %v", err)
	}
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	s.Start()
	m.current = s
	return s, nil
}

// Adopt takes ownership of an already started session, such as one returned
// by Connect.
func (m *Manager) Adopt(s *Session) {
	if m.current == s {
		return
	}
	if err := m.End(); err != nil {
		log.Printf("WARNING: ending previous session: %v", err)
	}
	m.current = s
}

// Current returns the running session, or nil.
func (m *Manager) Current() *Session {
	return m.current
}

// End disposes the running session, if any.
func (m *Manager) End() error {
	if m.current == nil {
		return nil
	}
	s := m.current
	m.current = nil
	return s.Dispose()
}
