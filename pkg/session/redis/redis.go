// Package redis provides a session store backed by Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dukex/approved-premises/pkg/session"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "approved-premises:session:"

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 8 * time.Hour

// Store keeps each session as a JSON document under its own key, refreshed on every save.
type Store struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewStore wraps an existing client.
func NewStore(client redis.UniversalClient, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{client: client, ttl: ttl}
}

// Connect parses a redis:// URL, checks the connection and returns a store.
func Connect(ctx context.Context, url string, ttl time.Duration) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewStore(client, ttl), nil
}

func (s *Store) Load(ctx context.Context, id string) (*session.State, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}

		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var state session.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}

	return &state, nil
}

func (s *Store) Save(ctx context.Context, state *session.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", state.ID, err)
	}

	err = s.client.Set(ctx, keyPrefix+state.ID, raw, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", state.ID, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.client.Del(ctx, keyPrefix+id).Err()
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
