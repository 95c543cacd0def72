package services

import (
	"github.com/dukex/approved-premises/pkg/models"
)

// Journeys holds one service per registered journey.
type Journeys map[models.JourneyType]*Artifacts

// NewJourneys creates a service for every journey in deps.Registry. deciders supplies the
// outcome extractor of the journeys that record one.
func NewJourneys(deps Deps, deciders map[models.JourneyType]Decider) Journeys {
	out := make(Journeys)
	for _, journey := range deps.Registry.Journeys() {
		out[journey] = NewArtifacts(journey, deps, deciders[journey])
	}

	return out
}

// Get returns the service for journey.
func (j Journeys) Get(journey models.JourneyType) (*Artifacts, bool) {
	a, ok := j[journey]

	return a, ok
}
