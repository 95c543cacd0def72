package placement_test

import (
	"testing"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/pages/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withReason(reason string) *models.Artifact {
	return &models.Artifact{
		ID:     "placement-1",
		Type:   models.JourneyPlacementApplications,
		Person: models.Person{CRN: "X320741", Name: "Jane Doe"},
		Data: models.Data{
			placement.RequestAPlacementTask: {placement.ReasonForPlacementPage: {"reason": reason}},
		},
	}
}

func TestReasonForPlacement(t *testing.T) {
	tests := []struct {
		reason string
		want   string
	}{
		{"rotl", placement.PreviousRotlPlacementPage},
		{"releaseFollowingDecision", placement.DecisionToReleasePage},
		{"additionalPlacement", placement.AdditionalPlacementDetailsPage},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			page, err := placement.NewReasonForPlacement(form.Body{"reason": tt.reason}, nil, "")
			require.NoError(t, err)

			assert.Empty(t, page.Errors())

			next, err := page.Next()
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}

	t.Run("unknown reason", func(t *testing.T) {
		page, err := placement.NewReasonForPlacement(form.Body{"reason": "holiday"}, nil, "")
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"reason": "You must choose a reason for the placement request"}, page.Errors().Map())

		_, err = page.Next()
		var invalid *form.InvalidStateError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestPreviousRotlPlacement(t *testing.T) {
	page, err := placement.NewPreviousRotlPlacement(form.Body{"previousRotl": "yes"}, nil, "")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"previousRotlDetails": "You must provide details of the previous ROTL placement"}, page.Errors().Map())

	next, err := page.Next()
	require.NoError(t, err)
	assert.Equal(t, placement.SameApPage, next)

	page, err = placement.NewPreviousRotlPlacement(form.Body{"previousRotl": "no"}, nil, "")
	require.NoError(t, err)

	next, err = page.Next()
	require.NoError(t, err)
	assert.Equal(t, placement.DatesOfPlacementPage, next)
}

func TestReasonForPlacementOf(t *testing.T) {
	reason, ok := placement.ReasonForPlacementOf(withReason("rotl"))
	assert.True(t, ok)
	assert.Equal(t, "rotl", reason)

	_, ok = placement.ReasonForPlacementOf(withReason("holiday"))
	assert.False(t, ok)

	_, ok = placement.ReasonForPlacementOf(nil)
	assert.False(t, ok)
}

func TestDatesOfPlacement(t *testing.T) {
	t.Run("previous page", func(t *testing.T) {
		tests := []struct {
			name     string
			artifact *models.Artifact
			hint     string
			want     string
		}{
			{"hint wins", withReason("rotl"), placement.SameApPage, placement.SameApPage},
			{"rotl", withReason("rotl"), "", placement.PreviousRotlPlacementPage},
			{"decision", withReason("releaseFollowingDecision"), "", placement.DecisionToReleasePage},
			{"additional", withReason("additionalPlacement"), "", placement.AdditionalPlacementDetailsPage},
			{"unknown hint is ignored", withReason("additionalPlacement"), "check-your-answers", placement.AdditionalPlacementDetailsPage},
			{"no reason", nil, "", placement.ReasonForPlacementPage},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				page, err := placement.NewDatesOfPlacement(form.Body{}, tt.artifact, tt.hint)
				require.NoError(t, err)

				assert.Equal(t, tt.want, page.Previous())
			})
		}
	})

	t.Run("duration", func(t *testing.T) {
		page, err := placement.NewDatesOfPlacement(form.Body{
			"arrivalDate-day":   "1",
			"arrivalDate-month": "12",
			"arrivalDate-year":  "2026",
			"durationWeeks":     "1",
			"durationDays":      "2",
		}, withReason("rotl"), "")
		require.NoError(t, err)

		assert.Empty(t, page.Errors())
		assert.Equal(t, 9, page.(*placement.DatesOfPlacement).Duration)

		body := page.Body()
		assert.Equal(t, "2026-12-01", body["arrivalDate"])

		answer, ok := page.Response().Get("How long should the Approved Premises placement last?")
		require.True(t, ok)
		assert.Equal(t, "1 week, 2 days", answer.Text)
	})

	t.Run("missing answers", func(t *testing.T) {
		page, err := placement.NewDatesOfPlacement(form.Body{}, withReason("rotl"), "")
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"arrivalDate": "You must enter the date the person is required to arrive",
			"duration":    "You must state the length of the placement",
		}, page.Errors().Map())
	})
}
