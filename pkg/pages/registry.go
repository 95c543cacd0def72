// Package pages wires every journey into one registry.
package pages

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/pages/apply"
	"github.com/dukex/approved-premises/pkg/pages/assess"
	"github.com/dukex/approved-premises/pkg/pages/placement"
)

// NewRegistry returns the registry of applications, assessments and placement applications.
func NewRegistry() (*form.Registry, error) {
	return form.NewRegistry(apply.Journey(), assess.Journey(), placement.Journey())
}

// MustRegistry is like NewRegistry but panics on a malformed journey.
func MustRegistry() *form.Registry {
	return form.MustRegistry(apply.Journey(), assess.Journey(), placement.Journey())
}
