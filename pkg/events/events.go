// Package events defines the artifact lifecycle events published after each change.
package events

import (
	"time"

	"github.com/dukex/approved-premises/pkg/models"
	"github.com/google/uuid"
)

type EventType string

// Topic carries every artifact event.
const Topic = "approved-premises.artifacts"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	ArtifactCreatedEvent   EventType = "artifact.created"
	PageSavedEvent         EventType = "artifact.page.saved"
	ArtifactSubmittedEvent EventType = "artifact.submitted"
	ArtifactWithdrawnEvent EventType = "artifact.withdrawn"
)

type BaseEvent struct {
	ID         string             `json:"id"`
	Type       EventType          `json:"type"`
	Timestamp  time.Time          `json:"timestamp"`
	Journey    models.JourneyType `json:"journey"`
	ArtifactID string             `json:"artifact_id"`
	UserID     string             `json:"user_id,omitempty"`
}

func newBase(t EventType, journey models.JourneyType, artifactID, userID string) BaseEvent {
	return BaseEvent{
		ID:         uuid.New().String(),
		Type:       t,
		Timestamp:  time.Now().UTC(),
		Journey:    journey,
		ArtifactID: artifactID,
		UserID:     userID,
	}
}

type ArtifactCreated struct {
	BaseEvent

	CRN string `json:"crn"`
}

func NewArtifactCreated(a *models.Artifact, userID string) *ArtifactCreated {
	return &ArtifactCreated{BaseEvent: newBase(ArtifactCreatedEvent, a.Type, a.ID, userID), CRN: a.Person.CRN}
}

func (e ArtifactCreated) GetType() EventType {
	return ArtifactCreatedEvent
}

// PageSaved is published after a page body passes validation and is stored.
type PageSaved struct {
	BaseEvent

	TaskID string `json:"task_id"`
	PageID string `json:"page_id"`
}

func NewPageSaved(journey models.JourneyType, artifactID, taskID, pageID, userID string) *PageSaved {
	return &PageSaved{
		BaseEvent: newBase(PageSavedEvent, journey, artifactID, userID),
		TaskID:    taskID,
		PageID:    pageID,
	}
}

func (e PageSaved) GetType() EventType {
	return PageSavedEvent
}

type ArtifactSubmitted struct {
	BaseEvent

	Tasks    int    `json:"tasks"`
	Decision string `json:"decision,omitempty"`
}

func NewArtifactSubmitted(a *models.Artifact, userID string) *ArtifactSubmitted {
	return &ArtifactSubmitted{
		BaseEvent: newBase(ArtifactSubmittedEvent, a.Type, a.ID, userID),
		Tasks:     len(a.Document),
		Decision:  a.Decision,
	}
}

func (e ArtifactSubmitted) GetType() EventType {
	return ArtifactSubmittedEvent
}

type ArtifactWithdrawn struct {
	BaseEvent

	Reason string `json:"reason"`
}

func NewArtifactWithdrawn(journey models.JourneyType, artifactID, reason, userID string) *ArtifactWithdrawn {
	return &ArtifactWithdrawn{BaseEvent: newBase(ArtifactWithdrawnEvent, journey, artifactID, userID), Reason: reason}
}

func (e ArtifactWithdrawn) GetType() EventType {
	return ArtifactWithdrawnEvent
}

// Decode returns an empty event value for t, ready to be unmarshalled into.
func Decode(t EventType) (any, bool) {
	switch t {
	case ArtifactCreatedEvent:
		return &ArtifactCreated{}, true
	case PageSavedEvent:
		return &PageSaved{}, true
	case ArtifactSubmittedEvent:
		return &ArtifactSubmitted{}, true
	case ArtifactWithdrawnEvent:
		return &ArtifactWithdrawn{}, true
	default:
		return nil, false
	}
}
