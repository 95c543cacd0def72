package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukex/approved-premises/pkg/session"
	"github.com/dukex/approved-premises/pkg/session/memory"
	"github.com/dukex/approved-premises/pkg/session/redis"
)

// NewSessionStore selects the session store from the scheme of sessionURL: redis:// and
// rediss:// use Redis, anything else keeps sessions in memory.
func NewSessionStore(ctx context.Context, sessionURL string) session.Store {
	if !strings.HasPrefix(sessionURL, "redis://") && !strings.HasPrefix(sessionURL, "rediss://") {
		return memory.NewStore()
	}

	store, err := redis.Connect(ctx, sessionURL, redis.DefaultTTL)
	if err != nil {
		panic(fmt.Errorf("failed to connect session store: %w", err))
	}

	return store
}
