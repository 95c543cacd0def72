// Package assess defines the pages of the assessment journey.
package assess

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

const (
	ReviewApplicationTask     = "review-application"
	SufficientInformationTask = "sufficient-information"
	SuitabilityAssessmentTask = "suitability-assessment"
	MakeADecisionTask         = "make-a-decision"
	MatchingInformationTask   = "matching-information"

	ReviewPage                = "review"
	SufficientInformationPage = "sufficient-information"
	SuitabilityAssessmentPage = "suitability-assessment"
	ApplicationTimelinessPage = "application-timeliness"
	MakeADecisionPage         = "make-a-decision"
	MatchingInformationPage   = "matching-information"
)

// Journey returns the section tree of an assessment.
func Journey() form.Journey {
	return form.Journey{
		Type: models.JourneyAssessments,
		Sections: []form.Section{
			{
				Name:  "assess-application",
				Title: "Assess application",
				Tasks: []form.Task{
					{
						ID:    ReviewApplicationTask,
						Title: "Review application and documents",
						Pages: []form.PageFactory{form.Simple(ReviewPage, NewReview)},
					},
					{
						ID:    SufficientInformationTask,
						Title: "Check there is sufficient information to make a decision",
						Pages: []form.PageFactory{form.Simple(SufficientInformationPage, NewSufficientInformation)},
					},
					{
						ID:    SuitabilityAssessmentTask,
						Title: "Assess suitability of application",
						Pages: []form.PageFactory{
							form.Simple(SuitabilityAssessmentPage, NewSuitabilityAssessment),
							form.Simple(ApplicationTimelinessPage, NewApplicationTimeliness),
						},
					},
				},
			},
			{
				Name:  "make-a-decision",
				Title: "Make a decision",
				Tasks: []form.Task{
					{
						ID:    MakeADecisionTask,
						Title: "Make a decision",
						Pages: []form.PageFactory{form.Simple(MakeADecisionPage, NewMakeADecision)},
					},
					{
						ID:    MatchingInformationTask,
						Title: "Provide matching information",
						Pages: []form.PageFactory{form.Simple(MatchingInformationPage, NewMatchingInformation)},
					},
				},
			},
		},
	}
}

// DecisionOf returns the decision recorded on the make-a-decision page.
func DecisionOf(artifact *models.Artifact) (string, bool) {
	if artifact == nil {
		return "", false
	}

	data, ok := artifact.Data.Page(MakeADecisionTask, MakeADecisionPage)
	if !ok {
		return "", false
	}

	decision := form.BodyFrom(data).String("decision")
	if _, known := decisions[decision]; !known {
		return "", false
	}

	return decision, true
}
