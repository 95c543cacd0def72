package mocks

import (
	"context"

	"github.com/dukex/approved-premises/pkg/eventbus"
	"github.com/dukex/approved-premises/pkg/events"
	"github.com/stretchr/testify/mock"
)

var _ eventbus.EventBus = (*MockEventBus)(nil)

// MockEventBus is a mock implementation of eventbus.EventBus interface.
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, key string, event eventbus.Event) error {
	args := m.Called(ctx, key, event)

	return args.Error(0)
}

// Published lists the artifact events handed to Publish, in order, with the key each was
// published under.
func (m *MockEventBus) Published() []PublishedEvent {
	var out []PublishedEvent

	for _, call := range m.Calls {
		if call.Method != "Publish" {
			continue
		}

		event := call.Arguments.Get(2).(eventbus.Event)
		out = append(out, PublishedEvent{Key: call.Arguments.String(1), Type: event.GetType(), Event: event})
	}

	return out
}

// PublishedEvent is one recorded Publish call.
type PublishedEvent struct {
	Key   string
	Type  events.EventType
	Event eventbus.Event
}

func (m *MockEventBus) Handle(eventType events.EventType, handler eventbus.EventHandler) error {
	args := m.Called(eventType, handler)

	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockEventBus) Close() error {
	args := m.Called()

	return args.Error(0)
}

func (m *MockEventBus) GenerateID() string {
	args := m.Called()

	return args.String(0)
}
