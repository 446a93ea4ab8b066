// Package session holds transient in-memory editor sessions. A session is a
// single markdown document plus the active editor mode; nothing survives a
// process restart and nothing is written anywhere.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/types"
)

// DefaultTTL is how long an untouched session is kept before the sweeper
// drops it.
const DefaultTTL = 2 * time.Hour

// NotFoundError indicates no live session exists for the given ID.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// InvalidModeError indicates an unknown editor mode was requested.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid editor mode: %q", e.Mode)
}

// Store is a mutex-guarded in-memory session map.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*types.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store with the given idle TTL; ttl <= 0 uses DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[uuid.UUID]*types.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create allocates a new session in edit mode holding the given text.
func (s *Store) Create(text string) *types.Session {
	now := s.now()
	sess := &types.Session{
		ID:        uuid.New(),
		Text:      text,
		Mode:      types.ModeEdit,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return copySession(sess)
}

// Get returns a snapshot of the session.
func (s *Store) Get(id uuid.UUID) (*types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return copySession(sess), nil
}

// SetText replaces the session's document text.
func (s *Store) SetText(id uuid.UUID, text string) (*types.Session, error) {
	return s.update(id, func(sess *types.Session) error {
		sess.Text = text
		return nil
	})
}

// SetMode switches between edit and preview. The document text is the single
// source for both views, so switching never changes it.
func (s *Store) SetMode(id uuid.UUID, mode types.EditorMode) (*types.Session, error) {
	if !mode.Valid() {
		return nil, &InvalidModeError{Mode: string(mode)}
	}
	return s.update(id, func(sess *types.Session) error {
		sess.Mode = mode
		return nil
	})
}

// ApplyResult records a successful optimization: the rewritten text replaces
// the document and the result metadata is kept for the UI. Callers only
// invoke this after the optimization fully succeeded, so a failed request
// never touches session state.
func (s *Store) ApplyResult(id uuid.UUID, result *types.OptimizationResult) (*types.Session, error) {
	return s.update(id, func(sess *types.Session) error {
		sess.Text = result.OptimizedText
		sess.LastResult = result
		return nil
	})
}

func (s *Store) update(id uuid.UUID, fn func(*types.Session) error) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = s.now()
	return copySession(sess), nil
}

// PruneExpired drops sessions idle for longer than the TTL and returns how
// many were removed.
func (s *Store) PruneExpired() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func copySession(sess *types.Session) *types.Session {
	dup := *sess
	if sess.LastResult != nil {
		res := *sess.LastResult
		dup.LastResult = &res
	}
	return &dup
}
