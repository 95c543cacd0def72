// Package memory provides an in-process session store for tests and single-node use.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dukex/approved-premises/pkg/session"
)

// Store keeps sessions as encoded JSON so callers never share state between requests.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewStore() *Store {
	return &Store{sessions: make(map[string][]byte)}
}

func (s *Store) Load(_ context.Context, id string) (*session.State, error) {
	s.mu.RLock()
	raw, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, session.ErrNotFound
	}

	var state session.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}

	return &state, nil
}

func (s *Store) Save(_ context.Context, state *session.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", state.ID, err)
	}

	s.mu.Lock()
	s.sessions[state.ID] = raw
	s.mu.Unlock()

	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	return nil
}

func (s *Store) Close() error {
	return nil
}
