package session_test

import (
	"testing"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_ArtifactCache(t *testing.T) {
	t.Parallel()

	s := session.New()
	assert.NotEmpty(t, s.ID)

	_, ok := s.Artifact(models.JourneyApplications, "app-1")
	assert.False(t, ok)

	s.Cache(&models.Artifact{ID: "app-1", Type: models.JourneyApplications})

	cached, ok := s.Artifact(models.JourneyApplications, "app-1")
	require.True(t, ok)
	assert.Equal(t, "app-1", cached.ID)

	_, ok = s.Artifact(models.JourneyAssessments, "app-1")
	assert.False(t, ok, "cache is keyed by journey")

	s.Forget(models.JourneyApplications, "app-1")
	_, ok = s.Artifact(models.JourneyApplications, "app-1")
	assert.False(t, ok)
}

func TestState_FlashIsReadOnce(t *testing.T) {
	t.Parallel()

	var errs form.FieldErrors
	errs.Add("sentenceType", "You must choose a sentence type")

	s := session.New()
	s.SetFlash(session.FlashFrom(errs, form.Body{"sentenceType": ""}))

	flash, ok := s.TakeFlash()
	require.True(t, ok)
	assert.Equal(t, map[string]string{"sentenceType": "You must choose a sentence type"}, flash.Errors.Map())
	assert.Equal(t, []form.ErrorSummaryItem{{Text: "You must choose a sentence type", Href: "#sentenceType"}}, flash.ErrorSummary)
	assert.Equal(t, form.Body{"sentenceType": ""}, flash.UserInput)

	_, ok = s.TakeFlash()
	assert.False(t, ok)
}
