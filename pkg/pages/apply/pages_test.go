package apply_test

import (
	"context"
	"testing"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/mocks"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/pages/apply"
	"github.com/dukex/approved-premises/pkg/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func artifactWith(data models.Data) *models.Artifact {
	return &models.Artifact{
		ID:     "a-1",
		Type:   models.JourneyApplications,
		Person: models.Person{CRN: "X320741", Name: "Jane Doe"},
		Status: models.ArtifactStatusInProgress,
		Data:   data,
	}
}

func withSentence(sentence string) *models.Artifact {
	return artifactWith(models.Data{
		apply.BasicInformationTask: {apply.SentenceTypePage: {"sentenceType": sentence}},
	})
}

func TestSentenceType(t *testing.T) {
	tests := []struct {
		name     string
		body     form.Body
		wantNext string
		wantErrs map[string]string
	}{
		{
			name:     "custodial sentence goes to release type",
			body:     form.Body{"sentenceType": "standardDeterminate"},
			wantNext: apply.ReleaseTypePage,
			wantErrs: map[string]string{},
		},
		{
			name:     "life sentence goes to release type",
			body:     form.Body{"sentenceType": "life"},
			wantNext: apply.ReleaseTypePage,
			wantErrs: map[string]string{},
		},
		{
			name:     "community order goes to situation",
			body:     form.Body{"sentenceType": "communityOrder"},
			wantNext: apply.SituationPage,
			wantErrs: map[string]string{},
		},
		{
			name:     "bail placement goes to situation",
			body:     form.Body{"sentenceType": "bailPlacement"},
			wantNext: apply.SituationPage,
			wantErrs: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := apply.NewSentenceType(tt.body, nil, "")
			require.NoError(t, err)

			next, err := page.Next()
			require.NoError(t, err)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantErrs, page.Errors().Map())
		})
	}

	t.Run("unanswered", func(t *testing.T) {
		page, err := apply.NewSentenceType(form.Body{}, nil, "")
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"sentenceType": "You must choose a sentence type"}, page.Errors().Map())

		_, err = page.Next()
		var invalid *form.InvalidStateError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("response uses the sentence label", func(t *testing.T) {
		page, err := apply.NewSentenceType(form.Body{"sentenceType": "ipp"}, nil, "")
		require.NoError(t, err)

		answer, ok := page.Response().Get(page.Title())
		require.True(t, ok)
		assert.Equal(t, "Indeterminate Public Protection (IPP)", answer.Text)
	})
}

func TestPlacementPurpose(t *testing.T) {
	t.Run("other reason needs an explanation", func(t *testing.T) {
		page, err := apply.NewPlacementPurpose(form.Body{"placementPurposes": []any{"otherReason"}}, nil, "")
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"otherReason": "You must explain the reason"}, page.Errors().Map())
	})

	t.Run("other reason with an explanation", func(t *testing.T) {
		page, err := apply.NewPlacementPurpose(form.Body{
			"placementPurposes": []any{"otherReason"},
			"otherReason":       "foo",
		}, nil, "")
		require.NoError(t, err)

		assert.Empty(t, page.Errors())

		answer, ok := page.Response().Get("Other purpose for AP Placement")
		require.True(t, ok)
		assert.Equal(t, "foo", answer.Text)

		next, err := page.Next()
		require.NoError(t, err)
		assert.Equal(t, "", next)
	})

	t.Run("nothing chosen", func(t *testing.T) {
		page, err := apply.NewPlacementPurpose(form.Body{}, nil, "")
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"placementPurposes": "You must choose at least one placement purpose"}, page.Errors().Map())
	})

	t.Run("unknown purpose", func(t *testing.T) {
		page, err := apply.NewPlacementPurpose(form.Body{"placementPurposes": "sightseeing"}, nil, "")
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"placementPurposes": "You must choose a valid placement purpose"}, page.Errors().Map())
	})

	t.Run("other answer is omitted without other reason", func(t *testing.T) {
		page, err := apply.NewPlacementPurpose(form.Body{"placementPurposes": []any{"publicProtection", "readjust"}}, nil, "")
		require.NoError(t, err)

		response := page.Response()
		assert.False(t, response.Has("Other purpose for AP Placement"))

		answer, ok := response.Get("What is the purpose of AP placement?")
		require.True(t, ok)
		assert.Contains(t, answer.Text, "Public protection")
	})
}

func TestReleaseType(t *testing.T) {
	t.Run("without a sentence type", func(t *testing.T) {
		_, err := apply.NewReleaseType(form.Body{}, artifactWith(models.Data{}), "")

		var sessionErr *form.SessionDataError
		assert.ErrorAs(t, err, &sessionErr)
	})

	t.Run("sentence without release types", func(t *testing.T) {
		_, err := apply.NewReleaseType(form.Body{}, withSentence("communityOrder"), "")

		var sessionErr *form.SessionDataError
		assert.ErrorAs(t, err, &sessionErr)
	})

	tests := []struct {
		name     string
		sentence string
		release  string
		wantErrs map[string]string
	}{
		{"allowed for life", "life", "licence", map[string]string{}},
		{"missing", "life", "", map[string]string{"releaseType": "You must choose a release type"}},
		{"not allowed for life", "life", "hdc", map[string]string{"releaseType": "You must choose a valid release type for this sentence"}},
		{"allowed for standard determinate", "standardDeterminate", "hdc", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := apply.NewReleaseType(form.Body{"releaseType": tt.release}, withSentence(tt.sentence), "")
			require.NoError(t, err)

			assert.Equal(t, tt.wantErrs, page.Errors().Map())

			next, err := page.Next()
			require.NoError(t, err)
			assert.Equal(t, apply.ReleaseDatePage, next)
		})
	}

	t.Run("options follow the sentence", func(t *testing.T) {
		page, err := apply.NewReleaseType(form.Body{}, withSentence("life"), "")
		require.NoError(t, err)

		viewer, ok := page.(form.Viewer)
		require.True(t, ok)
		assert.Len(t, viewer.ViewData()["options"], 2)
	})
}

func TestSituation(t *testing.T) {
	page, err := apply.NewSituation(form.Body{"situation": "riskManagement"}, withSentence("communityOrder"), "")
	require.NoError(t, err)
	assert.Empty(t, page.Errors())

	page, err = apply.NewSituation(form.Body{"situation": "bailSentence"}, withSentence("communityOrder"), "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"situation": "You must choose a situation"}, page.Errors().Map())

	_, err = apply.NewSituation(form.Body{}, withSentence("life"), "")
	var sessionErr *form.SessionDataError
	assert.ErrorAs(t, err, &sessionErr)
}

func TestReleaseDate(t *testing.T) {
	tests := []struct {
		name     string
		body     form.Body
		wantNext string
		wantErrs map[string]string
	}{
		{
			name: "known date",
			body: form.Body{
				"knowReleaseDate":   "yes",
				"releaseDate-day":   "3",
				"releaseDate-month": "11",
				"releaseDate-year":  "2026",
			},
			wantNext: apply.PlacementDatePage,
			wantErrs: map[string]string{},
		},
		{
			name:     "unknown date",
			body:     form.Body{"knowReleaseDate": "no"},
			wantNext: apply.OralHearingPage,
			wantErrs: map[string]string{},
		},
		{
			name:     "known but missing",
			body:     form.Body{"knowReleaseDate": "yes"},
			wantNext: apply.PlacementDatePage,
			wantErrs: map[string]string{"releaseDate": "You must specify the release date"},
		},
		{
			name: "known but impossible",
			body: form.Body{
				"knowReleaseDate":   "yes",
				"releaseDate-day":   "31",
				"releaseDate-month": "2",
				"releaseDate-year":  "2026",
			},
			wantNext: apply.PlacementDatePage,
			wantErrs: map[string]string{"releaseDate": "The release date is an invalid date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := apply.NewReleaseDate(tt.body, nil, "")
			require.NoError(t, err)

			next, err := page.Next()
			require.NoError(t, err)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantErrs, page.Errors().Map())
		})
	}

	t.Run("body keeps the date parts and its ISO form", func(t *testing.T) {
		page, err := apply.NewReleaseDate(tests[0].body, nil, "")
		require.NoError(t, err)

		body := page.Body()
		assert.Equal(t, "2026-11-03", body["releaseDate"])
		assert.Equal(t, "3", body["releaseDate-day"])

		rebuilt, err := apply.NewReleaseDate(body, nil, "")
		require.NoError(t, err)
		assert.Equal(t, body, rebuilt.Body())
	})

	t.Run("date is dropped when unknown", func(t *testing.T) {
		page, err := apply.NewReleaseDate(form.Body{
			"knowReleaseDate":   "no",
			"releaseDate-day":   "3",
			"releaseDate-month": "11",
			"releaseDate-year":  "2026",
		}, nil, "")
		require.NoError(t, err)

		assert.Equal(t, form.Body{"knowReleaseDate": "no"}, page.Body())
	})
}

func TestPlacementDate(t *testing.T) {
	knownRelease := artifactWith(models.Data{
		apply.BasicInformationTask: {
			apply.ReleaseDatePage: {
				"knowReleaseDate":   "yes",
				"releaseDate-day":   "3",
				"releaseDate-month": "11",
				"releaseDate-year":  "2026",
			},
		},
	})

	t.Run("title offers the release date", func(t *testing.T) {
		page, err := apply.NewPlacementDate(form.Body{}, knownRelease, "")
		require.NoError(t, err)

		assert.Equal(t, "Is 3 November 2026 the date you want the placement to start?", page.Title())
		assert.Equal(t, map[string]string{
			"startDateSameAsReleaseDate": "You must say if the start date is the same as the release date",
		}, page.Errors().Map())
	})

	t.Run("same as release date needs no start date", func(t *testing.T) {
		page, err := apply.NewPlacementDate(form.Body{"startDateSameAsReleaseDate": "yes"}, knownRelease, "")
		require.NoError(t, err)

		assert.Empty(t, page.Errors())
	})

	t.Run("no release date asks for a start date", func(t *testing.T) {
		page, err := apply.NewPlacementDate(form.Body{}, artifactWith(models.Data{}), "")
		require.NoError(t, err)

		assert.Equal(t, "When do you want the placement to start?", page.Title())
		assert.Equal(t, map[string]string{"startDate": "You must specify the placement start date"}, page.Errors().Map())
	})

	t.Run("previous page follows the hint", func(t *testing.T) {
		page, err := apply.NewPlacementDate(form.Body{}, knownRelease, apply.SituationPage)
		require.NoError(t, err)
		assert.Equal(t, apply.SituationPage, page.Previous())

		page, err = apply.NewPlacementDate(form.Body{}, knownRelease, apply.ReviewPage)
		require.NoError(t, err)
		assert.Equal(t, apply.ReleaseDatePage, page.Previous())
	})
}

func TestIsExceptionalCase(t *testing.T) {
	page, err := apply.NewIsExceptionalCase(form.Body{"isExceptionalCase": "yes"}, nil, "")
	require.NoError(t, err)

	next, err := page.Next()
	require.NoError(t, err)
	assert.Equal(t, apply.ExceptionDetailsPage, next)

	page, err = apply.NewIsExceptionalCase(form.Body{"isExceptionalCase": "no"}, nil, "")
	require.NoError(t, err)

	next, err = page.Next()
	require.NoError(t, err)
	assert.Equal(t, apply.NotEligiblePage, next)

	page, err = apply.NewIsExceptionalCase(form.Body{}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"isExceptionalCase": "You must state if this is an exceptional case"}, page.Errors().Map())
}

func TestOptionalOasysSections(t *testing.T) {
	artifact := artifactWith(models.Data{})

	t.Run("splits linked and other sections", func(t *testing.T) {
		oasys := new(mocks.MockOasysClient)
		oasys.On("OasysSections", mock.Anything, "token", "X320741", []int(nil)).Return(&models.OasysSections{
			Sections: []models.OasysSection{
				{Section: 3, Name: "Accommodation", LinkedToHarm: true},
				{Section: 6, Name: "Relationships"},
				{Section: 8, Name: "Drug misuse", LinkedToReOffending: true},
			},
		}, nil)

		page, err := apply.InitializeOptionalOasysSections(context.Background(), form.Body{}, artifact, "", "token", reference.Services{Oasys: oasys})
		require.NoError(t, err)

		data := page.(form.Viewer).ViewData()
		assert.Len(t, data["linkedSections"], 2)
		assert.Len(t, data["otherSections"], 1)
		assert.Equal(t, false, data["oasysUnavailable"])
		oasys.AssertExpectations(t)
	})

	t.Run("unavailable oasys still renders", func(t *testing.T) {
		oasys := new(mocks.MockOasysClient)
		oasys.On("OasysSections", mock.Anything, "token", "X320741", []int(nil)).Return(nil, reference.ErrUnavailable)

		page, err := apply.InitializeOptionalOasysSections(context.Background(), form.Body{}, artifact, "", "token", reference.Services{Oasys: oasys})
		require.NoError(t, err)

		assert.Equal(t, true, page.(form.Viewer).ViewData()["oasysUnavailable"])
	})

	t.Run("missing client", func(t *testing.T) {
		_, err := apply.InitializeOptionalOasysSections(context.Background(), form.Body{}, artifact, "", "token", reference.Services{})
		assert.Error(t, err)
	})

	t.Run("rejects unknown sections", func(t *testing.T) {
		page, err := apply.NewOptionalOasysSections(form.Body{"otherNeeds": []any{"6", "99"}}, artifact, "")
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"otherNeeds": "You must choose valid OASys sections"}, page.Errors().Map())
	})

	t.Run("response labels sections", func(t *testing.T) {
		page, err := apply.NewOptionalOasysSections(form.Body{"needsLinkedToReoffending": []any{"3"}}, artifact, "")
		require.NoError(t, err)

		answer, ok := page.Response().Get("Needs linked to reoffending")
		require.True(t, ok)
		assert.Equal(t, "3. Accommodation", answer.Text)
	})
}

func TestRoshSummary(t *testing.T) {
	artifact := artifactWith(models.Data{
		apply.OasysImportTask: {
			apply.OptionalOasysSectionsPage: {
				"needsLinkedToReoffending": []any{"3"},
				"otherNeeds":               []any{"6"},
			},
		},
	})

	oasys := new(mocks.MockOasysClient)
	oasys.On("OasysSections", mock.Anything, "token", "X320741", []int{3, 6}).Return(&models.OasysSections{
		RoshSummary: []models.OasysQuestion{
			{QuestionNumber: "R10.1", Label: "Who is at risk", Answer: "the public"},
			{QuestionNumber: "R10.2", Label: "What is the nature of the risk", Answer: "violence"},
		},
	}, nil)

	body := form.Body{"roshAnswers": map[string]any{"R10.2": "edited"}}

	page, err := apply.InitializeRoshSummary(context.Background(), body, artifact, "", "token", reference.Services{Oasys: oasys})
	require.NoError(t, err)
	oasys.AssertExpectations(t)

	assert.Equal(t, "Edit risk information for Jane Doe", page.Title())
	assert.Empty(t, page.Errors())
	assert.Equal(t, map[string]any{"R10.1": "the public", "R10.2": "edited"}, page.Body()["roshAnswers"])

	answer, ok := page.Response().Get("RoSH summary")
	require.True(t, ok)
	require.Len(t, answer.Records, 2)
	assert.Equal(t, "R10.1", answer.Records[0]["questionNumber"])
	assert.Equal(t, "edited", answer.Records[1]["answer"])

	t.Run("no oasys record", func(t *testing.T) {
		missing := new(mocks.MockOasysClient)
		missing.On("OasysSections", mock.Anything, "token", "X320741", []int{3, 6}).Return(nil, reference.ErrUnavailable)

		body := form.Body{"roshAnswers": map[string]any{"R10.1": "typed by hand"}}

		page, err := apply.InitializeRoshSummary(context.Background(), body, artifact, "", "token", reference.Services{Oasys: missing})
		require.NoError(t, err)
		missing.AssertExpectations(t)

		assert.Equal(t, true, page.(form.Viewer).ViewData()["oasysUnavailable"])
		assert.Empty(t, page.Errors())
		assert.Equal(t, map[string]any{"R10.1": "typed by hand"}, page.Body()["roshAnswers"])
	})

	t.Run("oasys failure", func(t *testing.T) {
		broken := new(mocks.MockOasysClient)
		broken.On("OasysSections", mock.Anything, "token", "X320741", []int{3, 6}).Return(nil, assert.AnError)

		_, err := apply.InitializeRoshSummary(context.Background(), form.Body{}, artifact, "", "token", reference.Services{Oasys: broken})
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("unknown question", func(t *testing.T) {
		page, err := apply.NewRoshSummary(form.Body{"roshAnswers": map[string]any{"R99": "x", "R98": "y"}}, artifact, "")
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"roshAnswers": "The RoSH summary contains an unknown question R98",
		}, page.Errors().Map())
	})
}
