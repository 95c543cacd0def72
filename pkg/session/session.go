// Package session holds the per-user state carried between requests: a cache of the
// artifacts being edited, the previous-page hint and a one-request flash.
package session

import (
	"context"
	"errors"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound indicates no state is stored for a session id.
var ErrNotFound = errors.New("session not found")

// Flash carries validation feedback to the next render of a page and is dropped after it.
type Flash struct {
	// Page is the path of the page the flash was left for.
	Page         string                  `json:"page,omitempty"`
	Errors       form.FieldErrors        `json:"errors"`
	ErrorSummary []form.ErrorSummaryItem `json:"error_summary"`
	UserInput    form.Body               `json:"user_input"`
}

// FlashFrom builds the flash for a failed save.
func FlashFrom(errs form.FieldErrors, input form.Body) Flash {
	return Flash{Errors: errs, ErrorSummary: errs.Summary(), UserInput: input}
}

// State is the session of one user.
type State struct {
	ID           string                      `json:"id"`
	Artifacts    map[string]*models.Artifact `json:"artifacts"`
	PreviousPage string                      `json:"previous_page,omitempty"`
	Flash        *Flash                      `json:"flash,omitempty"`
}

// New returns an empty session with a fresh id.
func New() *State {
	return &State{ID: uuid.New().String(), Artifacts: make(map[string]*models.Artifact)}
}

func artifactKey(journey models.JourneyType, id string) string {
	return string(journey) + "/" + id
}

// Artifact returns the cached artifact for journey and id.
func (s *State) Artifact(journey models.JourneyType, id string) (*models.Artifact, bool) {
	a, ok := s.Artifacts[artifactKey(journey, id)]
	if !ok || a == nil || a.ID != id {
		return nil, false
	}

	return a, true
}

// Cache stores an artifact, replacing any earlier copy.
func (s *State) Cache(a *models.Artifact) {
	if s.Artifacts == nil {
		s.Artifacts = make(map[string]*models.Artifact)
	}

	s.Artifacts[artifactKey(a.Type, a.ID)] = a
}

// Forget drops an artifact from the cache.
func (s *State) Forget(journey models.JourneyType, id string) {
	delete(s.Artifacts, artifactKey(journey, id))
}

// SetFlash replaces the pending flash.
func (s *State) SetFlash(f Flash) {
	s.Flash = &f
}

// TakeFlash returns and clears the pending flash.
func (s *State) TakeFlash() (Flash, bool) {
	if s.Flash == nil {
		return Flash{}, false
	}

	f := *s.Flash
	s.Flash = nil

	return f, true
}

// Store persists session state between requests.
type Store interface {
	Load(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, id string) error
	Close() error
}
