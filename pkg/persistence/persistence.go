// Package persistence provides the storage abstraction for form artifacts.
package persistence

import (
	"context"

	"github.com/dukex/approved-premises/pkg/models"
)

// Backend stores artifacts of every journey. The token identifies the acting user and is
// forwarded to remote backends; local backends ignore it.
type Backend interface {
	Find(ctx context.Context, token string, journey models.JourneyType, id string) (*models.Artifact, error)
	List(ctx context.Context, token string, journey models.JourneyType) ([]*models.Artifact, error)
	Create(ctx context.Context, token string, artifact *models.Artifact) error
	Update(ctx context.Context, token string, artifact *models.Artifact) error
	// Submit stores the document of a completed artifact and marks it submitted.
	Submit(ctx context.Context, token string, artifact *models.Artifact) error
	Withdraw(ctx context.Context, token string, journey models.JourneyType, id, reason string) error
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
