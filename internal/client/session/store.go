// Package session keeps the admin token pair.
//
// A Store is created once per process and injected into the API client,
// the auth service and the admin route gate. Reads are served from memory
// and never block on I/O; writes go through a Backend first so that what
// is in memory always matches what would be loaded after a restart.
//
// The pair is all-or-nothing: SetTokens stores both values and Clear
// removes both.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrEmptyAccessToken is returned by SetTokens when no access token is given.
var ErrEmptyAccessToken = errors.New("access token is empty")

// Backend persists the token pair outside the process.
type Backend interface {
	// Load returns the stored pair; ok is false when nothing is stored.
	Load(ctx context.Context) (access, refresh string, ok bool, err error)
	// Save overwrites the stored pair atomically.
	Save(ctx context.Context, access, refresh string) error
	// Clear removes the stored pair. Clearing an empty backend is not an error.
	Clear(ctx context.Context) error
}

type Store struct {
	mu      sync.RWMutex
	access  string
	refresh string
	present bool
	backend Backend
}

// NewStore loads any persisted pair from backend.
func NewStore(ctx context.Context, backend Backend) (*Store, error) {
	s := &Store{backend: backend}

	access, refresh, ok, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if ok && access != "" {
		s.access, s.refresh, s.present = access, refresh, true
	}
	return s, nil
}

// NewMemoryStore returns a store that forgets everything on exit.
func NewMemoryStore() *Store {
	return &Store{backend: NewMemoryBackend()}
}

// SetTokens persists both values, replacing any previous pair.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) error {
	if access == "" {
		return ErrEmptyAccessToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Save(ctx, access, refresh); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.access, s.refresh, s.present = access, refresh, true
	return nil
}

func (s *Store) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.present
}

func (s *Store) RefreshToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh, s.present
}

// Clear drops the pair. The in-memory copy is always cleared, even when the
// backend fails; the backend error is still returned.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access, s.refresh, s.present = "", "", false

	if err := s.backend.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether an access token is held. Expiry is not
// checked; the server decides that.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.present
}
