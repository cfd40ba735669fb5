// Package editor tracks manual edit sessions for versioned long-text fields.
// A session is the transient buffer between "begin edit" and "commit" or
// "cancel"; it never touches the document itself. Documents are only mutated
// by the caller once a commit hands the buffer back.
package editor

import (
	"errors"
	"sync"
)

var (
	ErrAlreadyEditing = errors.New("an edit is already in progress for this field")
	ErrNotEditing     = errors.New("no edit is in progress for this field")
)

type sessionKey struct {
	tenderId string
	field    string
}

type session struct {
	buffer string
}

// Manager holds at most one edit session per (tender, field) pair. A field
// with a live session is in the Editing state; everything else is Viewing.
type Manager struct {
	mu       sync.Mutex
	sessions map[sessionKey]*session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[sessionKey]*session)}
}

// Begin moves a field from Viewing to Editing, seeding the buffer with the
// active content of its document.
func (m *Manager) Begin(tenderId string, field string, activeContent string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey{tenderId, field}
	if _, ok := m.sessions[key]; ok {
		return ErrAlreadyEditing
	}

	m.sessions[key] = &session{buffer: activeContent}

	return nil
}

// SetBuffer replaces the transient buffer of a live session.
func (m *Manager) SetBuffer(tenderId string, field string, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionKey{tenderId, field}]
	if !ok {
		return ErrNotEditing
	}

	s.buffer = content

	return nil
}

// Commit ends the session and returns the buffer content for the caller to
// turn into a new document version.
func (m *Manager) Commit(tenderId string, field string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey{tenderId, field}
	s, ok := m.sessions[key]
	if !ok {
		return "", ErrNotEditing
	}

	delete(m.sessions, key)

	return s.buffer, nil
}

// Cancel ends the session and discards the buffer. No document mutation
// follows a cancel.
func (m *Manager) Cancel(tenderId string, field string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey{tenderId, field}
	if _, ok := m.sessions[key]; !ok {
		return ErrNotEditing
	}

	delete(m.sessions, key)

	return nil
}

// IsEditing reports whether the field is in the Editing state. Version
// switching and AI text application are rejected while it is.
func (m *Manager) IsEditing(tenderId string, field string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sessions[sessionKey{tenderId, field}]

	return ok
}

// DropTender discards every live session of one tender, used when a tender
// is deleted.
func (m *Manager) DropTender(tenderId string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.sessions {
		if key.tenderId == tenderId {
			delete(m.sessions, key)
		}
	}
}
