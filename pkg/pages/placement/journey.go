// Package placement defines the pages of the placement application journey, used to
// request further placements on an assessed application.
package placement

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

const (
	RequestAPlacementTask = "request-a-placement"
	CheckYourAnswersTask  = "check-your-answers"

	ReasonForPlacementPage         = "reason-for-placement"
	PreviousRotlPlacementPage      = "previous-rotl-placement"
	SameApPage                     = "same-ap"
	DecisionToReleasePage          = "decision-to-release"
	AdditionalPlacementDetailsPage = "additional-placement-details"
	DatesOfPlacementPage           = "dates-of-placement"
	ConfirmationPage               = "check-your-answers"
)

// Journey returns the section tree of a placement application.
func Journey() form.Journey {
	return form.Journey{
		Type: models.JourneyPlacementApplications,
		Sections: []form.Section{
			{
				Name:  "request-a-placement",
				Title: "Request a placement",
				Tasks: []form.Task{
					{
						ID:    RequestAPlacementTask,
						Title: "Request a placement",
						Pages: []form.PageFactory{
							form.Simple(ReasonForPlacementPage, NewReasonForPlacement),
							form.Simple(PreviousRotlPlacementPage, NewPreviousRotlPlacement),
							form.Simple(SameApPage, NewSameAp),
							form.Simple(DecisionToReleasePage, NewDecisionToRelease),
							form.Simple(AdditionalPlacementDetailsPage, NewAdditionalPlacementDetails),
							form.Simple(DatesOfPlacementPage, NewDatesOfPlacement),
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
						Pages: []form.PageFactory{form.Simple(ConfirmationPage, NewConfirmation)},
					},
				},
			},
		},
	}
}

// ReasonForPlacementOf returns the reason chosen on the first page of the request.
func ReasonForPlacementOf(artifact *models.Artifact) (string, bool) {
	if artifact == nil {
		return "", false
	}

	data, ok := artifact.Data.Page(RequestAPlacementTask, ReasonForPlacementPage)
	if !ok {
		return "", false
	}

	reason := form.BodyFrom(data).String("reason")
	if _, known := reasons[reason]; !known {
		return "", false
	}

	return reason, true
}
