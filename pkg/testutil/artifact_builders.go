// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"time"

	"github.com/dukex/approved-premises/pkg/models"
	"github.com/google/uuid"
)

// CreateTestArtifact creates an in-progress application with default values that can be
// overridden.
func CreateTestArtifact(overrides ...func(*models.Artifact)) *models.Artifact {
	now := time.Now().UTC()

	artifact := &models.Artifact{
		ID:        uuid.New().String(),
		Type:      models.JourneyApplications,
		Person:    models.Person{CRN: "X320741", Name: "Robert Brown"},
		Status:    models.ArtifactStatusInProgress,
		Data:      models.Data{},
		CreatedBy: "test-user",
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, override := range overrides {
		override(artifact)
	}

	return artifact
}

// WithJourney sets the journey of the artifact.
func WithJourney(journey models.JourneyType) func(*models.Artifact) {
	return func(a *models.Artifact) {
		a.Type = journey
	}
}

// WithStatus sets the status of the artifact.
func WithStatus(status models.ArtifactStatus) func(*models.Artifact) {
	return func(a *models.Artifact) {
		a.Status = status
	}
}

// WithPage stores a page body on the artifact.
func WithPage(taskID, pageID string, body models.PageData) func(*models.Artifact) {
	return func(a *models.Artifact) {
		a.Data = a.Data.WithPage(taskID, pageID, body)
	}
}
