// Package services implements the artifact operations behind every journey: showing and
// saving pages, building the task list, submitting and withdrawing.
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dukex/approved-premises/pkg/persistence"
)

var (
	// ErrInvalidRequest indicates the caller sent something the service cannot act on.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrArtifactSubmitted indicates a change was attempted on a submitted or withdrawn
	// artifact.
	ErrArtifactSubmitted = errors.New("artifact has already been submitted")

	// ErrArtifactNotFound is returned when the artifact does not exist.
	ErrArtifactNotFound = persistence.ErrArtifactNotFound

	// ErrInvalidDocument indicates the document built on submission has the wrong shape.
	ErrInvalidDocument = errors.New("invalid document")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// DocumentError lists the reasons a built document was rejected.
type DocumentError struct {
	Problems []string
}

func (e *DocumentError) Error() string {
	return "invalid document: " + strings.Join(e.Problems, "; ")
}

func (e *DocumentError) Unwrap() error {
	return ErrInvalidDocument
}

// IsConflictError checks if an error is a state conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrArtifactSubmitted)
}

// IsNotFound checks if an error means the artifact does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrArtifactNotFound)
}

// IsInvalidRequest checks if an error is a caller mistake that should return HTTP 400.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

func newConflict(op string) *ServiceError {
	return &ServiceError{Op: op, Code: "artifact_submitted", Message: ErrArtifactSubmitted.Error(), Err: ErrArtifactSubmitted}
}
