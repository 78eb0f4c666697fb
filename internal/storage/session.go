package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aliskhannn/interview-quiz-bot/internal/domain/entities"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionEntry struct {
	data      []byte
	updatedAt time.Time
}

// SessionStorage provides in-memory storage for quiz sessions by user ID.
// Sessions are stored encoded so callers never share a mutable value.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]sessionEntry
	now      func() time.Time
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]sessionEntry),
		now:      time.Now,
	}
}

// Load returns the session of userID or ErrSessionNotFound.
func (s *SessionStorage) Load(_ context.Context, userID int64) (*entities.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[userID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	return Decode(entry.data)
}

// Save replaces the session of userID.
func (s *SessionStorage) Save(_ context.Context, userID int64, session *entities.Session) error {
	data, err := Encode(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sessionEntry{data: data, updatedAt: s.now()}

	return nil
}

// Purge removes sessions not saved since idleSince.
func (s *SessionStorage) Purge(_ context.Context, idleSince time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for userID, entry := range s.sessions {
		if entry.updatedAt.Before(idleSince) {
			delete(s.sessions, userID)
			removed++
		}
	}

	return removed, nil
}

// Len returns the number of stored sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Encode serializes a session for a key-value backend.
func Encode(session *entities.Session) ([]byte, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// Decode parses a stored session and fills missing fields.
func Decode(data []byte) (*entities.Session, error) {
	var session entities.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	session.Normalize()
	return &session, nil
}
