// Package web provides the HTTP handlers of the questionnaire: page rendering and saving,
// task lists, artifact creation, submission and withdrawal.
package web

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/session"
)

// CreateArtifactRequest represents the request body for starting a new artifact.
type CreateArtifactRequest struct {
	CRN           string `form:"crn"            json:"crn"            validate:"required,alphanum,max=16"`
	Name          string `form:"name"           json:"name"`
	ApplicationID string `form:"application_id" json:"application_id" validate:"omitempty,uuid"`
}

// WithdrawArtifactRequest represents the request body for withdrawing an artifact.
type WithdrawArtifactRequest struct {
	Reason string `form:"reason" json:"reason" validate:"required,max=255"`
}

// PageView is the view context of a single page.
type PageView struct {
	View         string                  `json:"view"`
	Journey      models.JourneyType      `json:"journey"`
	ArtifactID   string                  `json:"artifact_id"`
	TaskID       string                  `json:"task"`
	Page         string                  `json:"page"`
	Title        string                  `json:"title"`
	PreviousPage string                  `json:"previous_page,omitempty"`
	Body         form.Body               `json:"body"`
	Errors       map[string]string       `json:"errors"`
	ErrorSummary []form.ErrorSummaryItem `json:"error_summary"`
	Data         map[string]any          `json:"data,omitempty"`
}

// TaskListView is the view context of an artifact's task list.
type TaskListView struct {
	View     string              `json:"view"`
	Artifact ArtifactSummary     `json:"artifact"`
	Sections []form.SectionState `json:"sections"`
}

// ArtifactSummary is the part of an artifact shown outside its pages.
type ArtifactSummary struct {
	ID             string                `json:"id"`
	Type           models.JourneyType    `json:"type"`
	Person         models.Person         `json:"person"`
	Status         models.ArtifactStatus `json:"status"`
	Decision       string                `json:"decision,omitempty"`
	OutdatedSchema bool                  `json:"outdated_schema"`
	Risks          *models.PersonRisks   `json:"risks,omitempty"`
	Document       models.Document       `json:"document,omitempty"`
}

// NewArtifactSummary builds the summary of an artifact.
func NewArtifactSummary(a *models.Artifact) ArtifactSummary {
	return ArtifactSummary{
		ID:             a.ID,
		Type:           a.Type,
		Person:         a.Person,
		Status:         a.Status,
		Decision:       a.Decision,
		OutdatedSchema: a.OutdatedSchema,
		Risks:          a.Risks,
		Document:       a.Document,
	}
}

func newPageView(req form.Request, page form.Page, flash session.Flash) PageView {
	view := PageView{
		View:         string(req.Journey) + "/pages/" + req.TaskID + "/" + req.PageID,
		Journey:      req.Journey,
		ArtifactID:   req.ArtifactID,
		TaskID:       req.TaskID,
		Page:         page.Name(),
		Title:        page.Title(),
		PreviousPage: page.Previous(),
		Body:         page.Body(),
		Errors:       flash.Errors.Map(),
		ErrorSummary: flash.Errors.Summary(),
	}

	if v, ok := page.(form.Viewer); ok {
		view.Data = v.ViewData()
	}

	return view
}
