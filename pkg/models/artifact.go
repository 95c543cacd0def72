// Package models defines the core domain models for form artifacts and reference data.
package models

import (
	"time"
)

// JourneyType selects which questionnaire an artifact belongs to.
type JourneyType string

const (
	JourneyApplications          JourneyType = "applications"
	JourneyAssessments           JourneyType = "assessments"
	JourneyPlacementApplications JourneyType = "placement-applications"
)

// JourneyTypes lists every journey in display order.
func JourneyTypes() []JourneyType {
	return []JourneyType{JourneyApplications, JourneyAssessments, JourneyPlacementApplications}
}

// Valid reports whether the journey type is one of the known journeys.
func (j JourneyType) Valid() bool {
	switch j {
	case JourneyApplications, JourneyAssessments, JourneyPlacementApplications:
		return true
	default:
		return false
	}
}

type ArtifactStatus string

const (
	ArtifactStatusInProgress ArtifactStatus = "in_progress"
	ArtifactStatusSubmitted  ArtifactStatus = "submitted"
	ArtifactStatusWithdrawn  ArtifactStatus = "withdrawn"
)

// PageData is the stored body of a single page. Its content is opaque to the artifact.
type PageData map[string]any

// TaskData maps page ids to their stored bodies.
type TaskData map[string]PageData

// Data maps task ids to the pages answered so far. Only visited tasks and pages are present.
type Data map[string]TaskData

// Page returns the stored body for a task/page pair.
func (d Data) Page(taskID, pageID string) (PageData, bool) {
	task, ok := d[taskID]
	if !ok {
		return nil, false
	}

	body, ok := task[pageID]

	return body, ok
}

// WithPage returns a copy of d with only the given task/page slot replaced.
func (d Data) WithPage(taskID, pageID string, body PageData) Data {
	out := make(Data, len(d)+1)
	for t, pages := range d {
		copied := make(TaskData, len(pages))
		for p, b := range pages {
			copied[p] = b
		}

		out[t] = copied
	}

	if out[taskID] == nil {
		out[taskID] = make(TaskData)
	}

	out[taskID][pageID] = body

	return out
}

// QuestionAnswer is one entry of a submitted document.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   any    `json:"answer"`
}

// Document is the submission-ready translation of Data, keyed by task id.
type Document map[string][]QuestionAnswer

// Person is the subject of an artifact.
type Person struct {
	CRN  string `json:"crn"`
	Name string `json:"name"`
}

// Artifact is the persisted form document shared by applications, assessments and
// placement applications.
type Artifact struct {
	ID               string         `json:"id"`
	Type             JourneyType    `json:"type"`
	Person           Person         `json:"person"`
	Status           ArtifactStatus `json:"status"`
	Data             Data           `json:"data"`
	Document         Document       `json:"document,omitempty"`
	Risks            *PersonRisks   `json:"risks,omitempty"`
	OutdatedSchema   bool           `json:"outdated_schema"`
	Decision         string         `json:"decision,omitempty"`
	ApplicationID    string         `json:"application_id,omitempty"`
	WithdrawalReason string         `json:"withdrawal_reason,omitempty"`
	CreatedBy        string         `json:"created_by,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	SubmittedAt      *time.Time     `json:"submitted_at,omitempty"`
}

// Submitted reports whether the artifact has reached a terminal state.
func (a *Artifact) Submitted() bool {
	return a.Status == ArtifactStatusSubmitted || a.Status == ArtifactStatusWithdrawn
}
