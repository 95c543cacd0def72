package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/dukex/approved-premises/pkg/cmd"
	"github.com/dukex/approved-premises/pkg/eventbus"
	"github.com/dukex/approved-premises/pkg/events"
	"github.com/dukex/approved-premises/pkg/log"
	"github.com/urfave/cli/v3"
)

func NewEventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Follow artifact lifecycle events and log them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "event-bus",
				Usage:    "Event bus type (kafka or gochannel)",
				Required: true,
				Sources:  cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringSliceFlag{
				Name:    "kafka-brokers",
				Usage:   "Kafka broker addresses",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("ap-admin").With("action", "events")

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			bus := cmd.NewEventBus(command.String("event-bus"), command.StringSlice("kafka-brokers"), logger)
			defer func() {
				if err := bus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			err := followEvents(ctx, bus, func(ctx context.Context, event any) error {
				logger.InfoContext(ctx, "Artifact event", "event", event)

				return nil
			})
			if err != nil {
				return err
			}

			<-ctx.Done()

			return nil
		},
	}
}

func followEvents(ctx context.Context, bus eventbus.EventSubscriber, handler eventbus.EventHandler) error {
	for _, eventType := range []events.EventType{
		events.ArtifactCreatedEvent,
		events.PageSavedEvent,
		events.ArtifactSubmittedEvent,
		events.ArtifactWithdrawnEvent,
	} {
		if err := bus.Handle(eventType, handler); err != nil {
			return err
		}
	}

	return bus.Subscribe(ctx)
}
