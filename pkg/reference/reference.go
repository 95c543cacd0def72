// Package reference defines the read-only reference data lookups used by pages that
// need data not held on the artifact.
package reference

import (
	"context"
	"errors"

	"github.com/dukex/approved-premises/pkg/models"
)

// ErrUnavailable is returned when a lookup has no data for the person.
var ErrUnavailable = errors.New("reference data unavailable")

// OasysClient fetches OASys assessment sections for a person.
type OasysClient interface {
	// OasysSections returns the available sections. selected narrows the RoSH summary and
	// section answers to the given section numbers; nil returns everything.
	OasysSections(ctx context.Context, token, crn string, selected []int) (*models.OasysSections, error)
}

// RisksClient fetches the risk profile of a person.
type RisksClient interface {
	PersonRisks(ctx context.Context, token, crn string) (*models.PersonRisks, error)
}

// Services is the set of lookups handed to pages that initialize asynchronously.
type Services struct {
	Oasys OasysClient
	Risks RisksClient
}
