package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultName is used when a session is created without a name
const DefaultName = "New Session"

// ErrNotFound is returned for an unknown session ID
var ErrNotFound = errors.New("session not found")

// Session groups the executions of one engagement
type Session struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// Execution is a finished tool run recorded against a session
type Execution struct {
	ID        string            `json:"id"`
	ToolID    string            `json:"tool_name"`
	Params    map[string]string `json:"parameters"`
	Status    string            `json:"status"`
	Output    string            `json:"output"`
	Duration  time.Duration     `json:"execution_time"`
	Timestamp time.Time         `json:"timestamp"`
}

// Store keeps sessions and their executions in memory
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	executions map[string][]Execution
	now        func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		sessions:   make(map[string]*Session),
		executions: make(map[string][]Execution),
		now:        time.Now,
	}
}

// Create adds a session; a blank name becomes DefaultName
func (s *Store) Create(name string) Session {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}

	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return *sess
}

// Get returns a copy of the session
func (s *Store) Get(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *sess, nil
}

// List returns all sessions, most recently updated first
func (s *Store) List() []Session {
	s.mu.RLock()
	out := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, *sess)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// Delete removes the session and its executions
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.sessions, id)
	delete(s.executions, id)
	return nil
}

// RecordExecution appends exec to the session and bumps its message count
func (s *Store) RecordExecution(sessionID string, exec Execution) (Execution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Execution{}, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}

	if exec.ID == "" {
		exec.ID = uuid.NewString()
	}
	if exec.Timestamp.IsZero() {
		exec.Timestamp = s.now()
	}

	s.executions[sessionID] = append(s.executions[sessionID], exec)
	sess.MessageCount++
	sess.UpdatedAt = exec.Timestamp
	return exec, nil
}

// Executions returns the session's executions, newest first
func (s *Store) Executions(sessionID string) ([]Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}

	recorded := s.executions[sessionID]
	out := make([]Execution, len(recorded))
	for i, exec := range recorded {
		out[len(recorded)-1-i] = exec
	}
	return out, nil
}

// Len is the number of sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CountLabel renders the sidebar execution counter, empty for zero
func (s Session) CountLabel() string {
	switch s.MessageCount {
	case 0:
		return ""
	case 1:
		return "1 execution"
	default:
		return fmt.Sprintf("%d executions", s.MessageCount)
	}
}
