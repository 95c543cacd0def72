package main

import (
	"context"
	"os"

	"github.com/dukex/approved-premises/pkg/cmd"
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/log"
	"github.com/dukex/approved-premises/pkg/otelhelper"
	"github.com/dukex/approved-premises/pkg/services"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 3000

func main() {
	command := &cli.Command{
		Name:                  "ap-api",
		Usage:                 "Serve the Approved Premises application, assessment and placement questionnaires",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Artifact backend URL (file://, postgres:// or http(s):// for the case API)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "Base URL of the API serving OASys and risk lookups",
				Sources: cli.EnvVars("API_URL"),
			},
			&cli.StringFlag{
				Name:    "session-url",
				Usage:   "Session store URL (redis:// or memory://)",
				Value:   "memory://",
				Sources: cli.EnvVars("SESSION_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (gochannel, kafka or none)",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
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

			logger := log.WithModule("api")

			logger.InfoContext(ctx, "Initializing Approved Premises API")

			tracer, shutdown, err := otelhelper.NewTracer(ctx, "approved-premises")
			if err != nil {
				return err
			}

			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to shutdown tracer", "error", err)
				}
			}()

			catalog, err := form.DefaultCatalog()
			if err != nil {
				return err
			}

			backend := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			defer func() {
				if err := backend.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			sessions := cmd.NewSessionStore(ctx, command.String("session-url"))
			defer func() {
				if err := sessions.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close session store", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), command.StringSlice("kafka-brokers"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			journeys := services.NewJourneys(services.Deps{
				Registry:   cmd.NewRegistry(),
				Backend:    backend,
				References: cmd.NewReferences(logger, command.String("api-url")),
				Catalog:    catalog,
				Bus:        eventBus,
				Tracer:     tracer,
				Logger:     logger,
			}, cmd.Deciders())

			api := NewAPI(logger, journeys, sessions)

			err = api.Start(command.Int("port"))
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
