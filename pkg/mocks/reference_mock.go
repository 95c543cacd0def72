package mocks

import (
	"context"

	"github.com/dukex/approved-premises/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockOasysClient is a mock implementation of reference.OasysClient interface.
type MockOasysClient struct {
	mock.Mock
}

func (m *MockOasysClient) OasysSections(ctx context.Context, token, crn string, selected []int) (*models.OasysSections, error) {
	args := m.Called(ctx, token, crn, selected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.OasysSections), args.Error(1)
}

// MockRisksClient is a mock implementation of reference.RisksClient interface.
type MockRisksClient struct {
	mock.Mock
}

func (m *MockRisksClient) PersonRisks(ctx context.Context, token, crn string) (*models.PersonRisks, error) {
	args := m.Called(ctx, token, crn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.PersonRisks), args.Error(1)
}
