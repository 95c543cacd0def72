package form

import (
	"github.com/dukex/approved-premises/pkg/models"
)

// Request is the part of an incoming HTTP request the engine consumes. Task and page ids
// come from the route, never from the body.
type Request struct {
	Journey    models.JourneyType
	ArtifactID string
	TaskID     string
	PageID     string
	Token      string
	UserID     string
	// Body is the raw submitted form body. It is empty on GET requests.
	Body Body
	// Submitted marks a form post. Its body is used as it is, even when empty, so a page
	// whose every box was unchecked is validated as unanswered.
	Submitted bool
}

// GetBody decides what a page is seeded with: user input carried over from a failed
// validation, then the submitted body (always, on a form post), then the answers already stored on the artifact,
// then nothing.
func GetBody(factory PageFactory, artifact *models.Artifact, req Request, userInput Body) Body {
	if len(userInput) > 0 {
		return userInput
	}

	if req.Submitted {
		if req.Body == nil {
			return Body{}
		}

		return req.Body
	}

	if len(req.Body) > 0 {
		return req.Body
	}

	if artifact != nil {
		if stored, ok := artifact.Data.Page(req.TaskID, factory.Name); ok {
			return BodyFrom(stored).Clone()
		}
	}

	return Body{}
}
