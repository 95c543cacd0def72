package mocks

import (
	"context"

	"github.com/dukex/approved-premises/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of persistence.Backend interface.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Find(ctx context.Context, token string, journey models.JourneyType, id string) (*models.Artifact, error) {
	args := m.Called(ctx, token, journey, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Artifact), args.Error(1)
}

func (m *MockBackend) List(ctx context.Context, token string, journey models.JourneyType) ([]*models.Artifact, error) {
	args := m.Called(ctx, token, journey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Artifact), args.Error(1)
}

func (m *MockBackend) Create(ctx context.Context, token string, artifact *models.Artifact) error {
	args := m.Called(ctx, token, artifact)

	return args.Error(0)
}

func (m *MockBackend) Update(ctx context.Context, token string, artifact *models.Artifact) error {
	args := m.Called(ctx, token, artifact)

	return args.Error(0)
}

func (m *MockBackend) Submit(ctx context.Context, token string, artifact *models.Artifact) error {
	args := m.Called(ctx, token, artifact)

	return args.Error(0)
}

func (m *MockBackend) Withdraw(ctx context.Context, token string, journey models.JourneyType, id, reason string) error {
	args := m.Called(ctx, token, journey, id, reason)

	return args.Error(0)
}

func (m *MockBackend) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockBackend) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
