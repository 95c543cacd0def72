// Package cmd provides common initialization functions for command-line applications.
package cmd

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/pages"
	"github.com/dukex/approved-premises/pkg/pages/assess"
	"github.com/dukex/approved-premises/pkg/services"
)

func NewRegistry() *form.Registry {
	registry, err := pages.NewRegistry()
	if err != nil {
		panic(err)
	}

	return registry
}

// Deciders returns the decision extractors of the journeys that record an outcome.
func Deciders() map[models.JourneyType]services.Decider {
	return map[models.JourneyType]services.Decider{
		models.JourneyAssessments: assess.DecisionOf,
	}
}
