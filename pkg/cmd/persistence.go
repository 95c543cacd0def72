package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/approved-premises/pkg/apiclient"
	"github.com/dukex/approved-premises/pkg/persistence"
	"github.com/dukex/approved-premises/pkg/persistence/file"
	"github.com/dukex/approved-premises/pkg/persistence/postgresql"
	"github.com/dukex/approved-premises/pkg/reference"
)

var supportedPersistenceProviders = []string{"file", "postgres", "postgresql", "http", "https"}

// NewPersistence selects the artifact backend from the scheme of databaseURL. Anything
// without a known scheme is treated as a directory for the file backend.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Backend {
	provider := parsePersistenceProvider(databaseURL)

	switch provider {
	case "postgres", "postgresql":
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to create PostgreSQL persistence: %w", err))
		}

		return p
	case "http", "https":
		return apiclient.New(databaseURL, logger)
	default:
		return file.NewPersistence(databaseURL)
	}
}

// NewReferences returns the reference lookups served by the API at apiURL, or none when
// no API is configured.
func NewReferences(logger *slog.Logger, apiURL string) reference.Services {
	if apiURL == "" {
		return reference.Services{}
	}

	return apiclient.New(apiURL, logger).Services()
}

func parsePersistenceProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	for _, supported := range supportedPersistenceProviders {
		if provider == supported {
			return provider
		}
	}

	return "file"
}
