// Package session holds the dataset the user is currently working with.
package session

import (
	"sync"
	"time"

	"llm_data_assistant/internal/dataset"
)

// Session is one loaded dataset. A reload produces a new Session rather
// than mutating the current one.
type Session struct {
	Table    *dataset.Table
	Filename string
	LoadedAt time.Time
}

func New(filename string, table *dataset.Table) *Session {
	return &Session{
		Table:    table,
		Filename: filename,
		LoadedAt: time.Now(),
	}
}

// Store keeps at most one current session. It is empty until the first
// successful load.
type Store struct {
	mu      sync.RWMutex
	current *Session
}

func NewStore() *Store {
	return &Store{}
}

// Current returns the active session, or nil when nothing is loaded
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace makes sess the active session and returns the one it replaced
func (s *Store) Replace(sess *Session) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.current = sess
	return prev
}

// Reset returns the store to its fresh state
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
