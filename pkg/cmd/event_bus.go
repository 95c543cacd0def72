package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/dukex/approved-premises/pkg/channels/gochannel"
	"github.com/dukex/approved-premises/pkg/channels/kafka"
	"github.com/dukex/approved-premises/pkg/eventbus"
)

const serviceName = "approved-premises"

// NewEventBus creates the bus artifact lifecycle events are published on. An empty
// provider disables publishing.
func NewEventBus(provider string, brokers []string, logger *slog.Logger) eventbus.EventBus {
	wmLogger := watermill.NewSlogLogger(logger)

	switch provider {
	case "", "none":
		return eventbus.Noop{}
	case "gochannel":
		pub, sub, err := gochannel.CreateChannel(wmLogger)
		if err != nil {
			panic(fmt.Errorf("failed to create gochannel pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub, logger)
	case "kafka":
		pub, sub, err := kafka.CreateChannel(wmLogger, brokers, serviceName)
		if err != nil {
			panic(fmt.Errorf("failed to create Kafka pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub, logger)
	default:
		panic("Unsupported event bus provider: " + provider)
	}
}
