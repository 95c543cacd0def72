package persistence

import (
	"errors"
	"fmt"

	"github.com/dukex/approved-premises/pkg/models"
)

var (
	// ErrArtifactNotFound indicates no artifact exists for the given journey and id.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrArtifactAlreadyExists indicates an artifact with the same id already exists.
	ErrArtifactAlreadyExists = errors.New("artifact already exists")

	// ErrArtifactClosed indicates the artifact was already submitted or withdrawn.
	ErrArtifactClosed = errors.New("artifact is already submitted or withdrawn")
)

// ArtifactError wraps artifact storage errors with the operation and artifact involved.
type ArtifactError struct {
	Op         string // Operation being performed (e.g., "Find", "Update", "Submit")
	Journey    models.JourneyType
	ArtifactID string
	Err        error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("%s operation failed for %s %s: %v", e.Op, e.Journey, e.ArtifactID, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for artifact errors.
func (e *ArtifactError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewArtifactError creates a new artifact error with context.
func NewArtifactError(op string, journey models.JourneyType, id string, err error) *ArtifactError {
	return &ArtifactError{
		Op:         op,
		Journey:    journey,
		ArtifactID: id,
		Err:        err,
	}
}

// IsArtifactNotFound checks if an error indicates an artifact was not found.
func IsArtifactNotFound(err error) bool {
	return errors.Is(err, ErrArtifactNotFound)
}

// IsArtifactClosed checks if an error indicates the artifact no longer accepts changes.
func IsArtifactClosed(err error) bool {
	return errors.Is(err, ErrArtifactClosed)
}
