package pages_test

import (
	"testing"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/pages"
	"github.com/dukex/approved-premises/pkg/pages/apply"
	"github.com/dukex/approved-premises/pkg/pages/assess"
	"github.com/dukex/approved-premises/pkg/pages/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	registry, err := pages.NewRegistry()
	require.NoError(t, err)

	assert.Equal(t, models.JourneyTypes(), registry.Journeys())

	for _, journey := range registry.Journeys() {
		for _, section := range registry.Sections(journey) {
			for _, task := range section.Tasks {
				require.NotEmpty(t, task.Pages, "%s/%s has no pages", journey, task.ID)

				for _, factory := range task.Pages {
					assert.NotNil(t, factory.New, "%s/%s/%s", journey, task.ID, factory.Name)

					if factory.Kind == form.KindAsync {
						assert.NotNil(t, factory.Initialize, "%s/%s/%s", journey, task.ID, factory.Name)
					}
				}
			}
		}
	}
}

// Every branch a page can take must land on a page of the same task, or end the task.
func TestBranchesStayInTask(t *testing.T) {
	registry := pages.MustRegistry()

	life := &models.Artifact{
		Person: models.Person{CRN: "X320741", Name: "Jane Doe"},
		Data: models.Data{
			apply.BasicInformationTask: {apply.SentenceTypePage: {"sentenceType": "life"}},
		},
	}
	community := &models.Artifact{
		Person: models.Person{CRN: "X320741", Name: "Jane Doe"},
		Data: models.Data{
			apply.BasicInformationTask: {apply.SentenceTypePage: {"sentenceType": "communityOrder"}},
		},
	}
	empty := &models.Artifact{Person: models.Person{CRN: "X320741", Name: "Jane Doe"}, Data: models.Data{}}

	tests := []struct {
		journey  models.JourneyType
		task     string
		page     string
		body     form.Body
		artifact *models.Artifact
	}{
		{models.JourneyApplications, apply.BasicInformationTask, apply.IsExceptionalCasePage, form.Body{"isExceptionalCase": "yes"}, empty},
		{models.JourneyApplications, apply.BasicInformationTask, apply.IsExceptionalCasePage, form.Body{"isExceptionalCase": "no"}, empty},
		{models.JourneyApplications, apply.BasicInformationTask, apply.NotEligiblePage, form.Body{}, empty},
		{models.JourneyApplications, apply.BasicInformationTask, apply.ExceptionDetailsPage, form.Body{}, empty},
		{models.JourneyApplications, apply.BasicInformationTask, apply.SentenceTypePage, form.Body{"sentenceType": "life"}, empty},
		{models.JourneyApplications, apply.BasicInformationTask, apply.SentenceTypePage, form.Body{"sentenceType": "bailPlacement"}, empty},
		{models.JourneyApplications, apply.BasicInformationTask, apply.ReleaseTypePage, form.Body{"releaseType": "rotl"}, life},
		{models.JourneyApplications, apply.BasicInformationTask, apply.SituationPage, form.Body{"situation": "riskManagement"}, community},
		{models.JourneyApplications, apply.BasicInformationTask, apply.ReleaseDatePage, form.Body{"knowReleaseDate": "yes"}, empty},
		{models.JourneyApplications, apply.BasicInformationTask, apply.ReleaseDatePage, form.Body{"knowReleaseDate": "no"}, empty},
		{models.JourneyApplications, apply.BasicInformationTask, apply.OralHearingPage, form.Body{}, empty},
		{models.JourneyApplications, apply.BasicInformationTask, apply.PlacementDatePage, form.Body{}, empty},
		{models.JourneyApplications, apply.BasicInformationTask, apply.PlacementPurposePage, form.Body{}, empty},
		{models.JourneyApplications, apply.OasysImportTask, apply.OptionalOasysSectionsPage, form.Body{}, empty},
		{models.JourneyApplications, apply.OasysImportTask, apply.RoshSummaryPage, form.Body{}, empty},
		{models.JourneyApplications, apply.RiskManagementFeaturesTask, apply.RiskManagementFeaturesPage, form.Body{}, empty},
		{models.JourneyApplications, apply.AccessAndHealthcareTask, apply.AccessNeedsPage, form.Body{"additionalNeeds": []any{"mobility"}}, empty},
		{models.JourneyApplications, apply.AccessAndHealthcareTask, apply.AccessNeedsPage, form.Body{"additionalNeeds": []any{"none"}}, empty},
		{models.JourneyApplications, apply.AccessAndHealthcareTask, apply.AccessNeedsMobilityPage, form.Body{}, empty},
		{models.JourneyApplications, apply.CheckYourAnswersTask, apply.ReviewPage, form.Body{}, empty},
		{models.JourneyAssessments, assess.ReviewApplicationTask, assess.ReviewPage, form.Body{}, empty},
		{models.JourneyAssessments, assess.SufficientInformationTask, assess.SufficientInformationPage, form.Body{}, empty},
		{models.JourneyAssessments, assess.SuitabilityAssessmentTask, assess.SuitabilityAssessmentPage, form.Body{}, empty},
		{models.JourneyAssessments, assess.SuitabilityAssessmentTask, assess.ApplicationTimelinessPage, form.Body{}, empty},
		{models.JourneyAssessments, assess.MakeADecisionTask, assess.MakeADecisionPage, form.Body{}, empty},
		{models.JourneyAssessments, assess.MatchingInformationTask, assess.MatchingInformationPage, form.Body{}, empty},
		{models.JourneyPlacementApplications, placement.RequestAPlacementTask, placement.ReasonForPlacementPage, form.Body{"reason": "rotl"}, empty},
		{models.JourneyPlacementApplications, placement.RequestAPlacementTask, placement.ReasonForPlacementPage, form.Body{"reason": "releaseFollowingDecision"}, empty},
		{models.JourneyPlacementApplications, placement.RequestAPlacementTask, placement.ReasonForPlacementPage, form.Body{"reason": "additionalPlacement"}, empty},
		{models.JourneyPlacementApplications, placement.RequestAPlacementTask, placement.PreviousRotlPlacementPage, form.Body{"previousRotl": "yes"}, empty},
		{models.JourneyPlacementApplications, placement.RequestAPlacementTask, placement.PreviousRotlPlacementPage, form.Body{"previousRotl": "no"}, empty},
		{models.JourneyPlacementApplications, placement.RequestAPlacementTask, placement.SameApPage, form.Body{}, empty},
		{models.JourneyPlacementApplications, placement.RequestAPlacementTask, placement.DecisionToReleasePage, form.Body{}, empty},
		{models.JourneyPlacementApplications, placement.RequestAPlacementTask, placement.AdditionalPlacementDetailsPage, form.Body{}, empty},
		{models.JourneyPlacementApplications, placement.RequestAPlacementTask, placement.DatesOfPlacementPage, form.Body{}, empty},
		{models.JourneyPlacementApplications, placement.CheckYourAnswersTask, placement.ConfirmationPage, form.Body{}, empty},
	}

	for _, tt := range tests {
		t.Run(string(tt.journey)+"/"+tt.page, func(t *testing.T) {
			factory, err := registry.Page(tt.journey, tt.task, tt.page)
			require.NoError(t, err)

			page, err := factory.New(tt.body, tt.artifact, "")
			require.NoError(t, err)
			assert.Equal(t, tt.page, page.Name())

			next, err := page.Next()
			require.NoError(t, err)

			if next == "" {
				return
			}

			task, ok := registry.Task(tt.journey, tt.task)
			require.True(t, ok)

			_, ok = task.Page(next)
			assert.True(t, ok, "%s leads to %s outside task %s", tt.page, next, tt.task)
		})
	}
}
