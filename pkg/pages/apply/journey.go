// Package apply defines the pages of the application journey.
package apply

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

const (
	BasicInformationTask       = "basic-information"
	OasysImportTask            = "oasys-import"
	RiskManagementFeaturesTask = "risk-management-features"
	AccessAndHealthcareTask    = "access-and-healthcare"
	CheckYourAnswersTask       = "check-your-answers"

	ReviewPage = "review"
)

// Journey returns the section tree of an application.
func Journey() form.Journey {
	return form.Journey{
		Type: models.JourneyApplications,
		Sections: []form.Section{
			{
				Name:  "reasons-for-placement",
				Title: "Reasons for placement",
				Tasks: []form.Task{
					{
						ID:    BasicInformationTask,
						Title: "Basic Information",
						Pages: []form.PageFactory{
							form.Simple(IsExceptionalCasePage, NewIsExceptionalCase),
							form.Simple(NotEligiblePage, NewNotEligible),
							form.Simple(ExceptionDetailsPage, NewExceptionDetails),
							form.Simple(SentenceTypePage, NewSentenceType),
							form.Simple(ReleaseTypePage, NewReleaseType),
							form.Simple(SituationPage, NewSituation),
							form.Simple(ReleaseDatePage, NewReleaseDate),
							form.Simple(OralHearingPage, NewOralHearing),
							form.Simple(PlacementDatePage, NewPlacementDate),
							form.Simple(PlacementPurposePage, NewPlacementPurpose),
						},
					},
				},
			},
			{
				Name:  "risk-and-need-factors",
				Title: "Risk and need factors",
				Tasks: []form.Task{
					{
						ID:    OasysImportTask,
						Title: "Choose sections of OASys to import",
						Pages: []form.PageFactory{
							form.Async(OptionalOasysSectionsPage, NewOptionalOasysSections, InitializeOptionalOasysSections),
							form.Async(RoshSummaryPage, NewRoshSummary, InitializeRoshSummary),
						},
					},
					{
						ID:    RiskManagementFeaturesTask,
						Title: "Add detail about managing risks and needs",
						Pages: []form.PageFactory{
							form.Simple(RiskManagementFeaturesPage, NewRiskManagementFeatures),
						},
					},
					{
						ID:    AccessAndHealthcareTask,
						Title: "Add access, cultural and healthcare needs",
						Pages: []form.PageFactory{
							form.Simple(AccessNeedsPage, NewAccessNeeds),
							form.Simple(AccessNeedsMobilityPage, NewAccessNeedsMobility),
						},
					},
				},
			},
			{
				Name:  "check-your-answers",
				Title: "Check your answers",
				Tasks: []form.Task{
					{
						ID:    CheckYourAnswersTask,
						Title: "Check your answers",
						Pages: []form.PageFactory{
							form.Simple(ReviewPage, NewReview),
						},
					},
				},
			},
		},
	}
}

// Review confirms the applicant has checked every answer.
type Review struct {
	form.Meta

	Reviewed string `json:"reviewed,omitempty"`
}

func NewReview(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &Review{
		Meta:     form.Meta{PageName: ReviewPage, PageTitle: "Check your answers"},
		Reviewed: body.String("reviewed"),
	}, nil
}

func (p *Review) Body() form.Body {
	return form.Encode(p)
}

func (p *Review) Next() (string, error) {
	return "", nil
}

func (p *Review) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if p.Reviewed != "1" {
		errs.Add("reviewed", "You must confirm the information provided is complete, accurate and up to date.")
	}

	return errs
}

func (p *Review) Response() form.Response {
	return form.Response{}
}
