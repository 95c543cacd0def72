package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dukex/approved-premises/pkg/cmd"
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/log"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/persistence"
	"github.com/dukex/approved-premises/pkg/services"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v3"
)

// ErrOutdatedArtifacts is returned when stored artifacts no longer match the registry.
var ErrOutdatedArtifacts = errors.New("outdated artifacts found")

func NewValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Check that every stored page still resolves against the registered journeys",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Artifact backend URL",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Bearer token passed to an HTTP backend",
				Sources: cli.EnvVars("API_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "schedule",
				Usage:   "Cron expression to keep validating on a schedule instead of running once",
				Sources: cli.EnvVars("VALIDATE_SCHEDULE"),
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

			logger := log.WithModule("ap-admin").With("action", "validate")

			backend := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			defer func() {
				if err := backend.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			registry := cmd.NewRegistry()
			token := command.String("token")

			expr := command.String("schedule")
			if expr == "" {
				return validateArtifacts(ctx, os.Stdout, registry, backend, token)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return scheduleValidation(ctx, logger, expr, func() {
				err := validateArtifacts(ctx, os.Stdout, registry, backend, token)
				if err != nil {
					logger.WarnContext(ctx, "Scheduled validation failed", "error", err)
				}
			})
		},
	}
}

// validateArtifacts rebuilds the document of every in-progress artifact. Submitted and
// withdrawn artifacts are skipped: their documents were built when they were closed.
func validateArtifacts(ctx context.Context, w io.Writer, registry *form.Registry, backend persistence.Backend, token string) error {
	valid := 0
	outdated := 0

	for _, journey := range registry.Journeys() {
		artifacts, err := backend.List(ctx, token, journey)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", journey, err)
		}

		_, _ = fmt.Fprintf(w, "\nJourney: %s (%d artifacts)\n", journey, len(artifacts))

		for _, artifact := range artifacts {
			if artifact.Status != models.ArtifactStatusInProgress {
				continue
			}

			if artifact.Type == "" {
				artifact.Type = journey
			}

			_, err := services.BuildDocument(registry, artifact)

			var unknown *form.UnknownPageError

			switch {
			case errors.As(err, &unknown):
				_, _ = fmt.Fprintf(w, "  %s (%s): OUTDATED, unknown page %q\n", artifact.ID, artifact.Person.CRN, unknown.PageID)
				outdated++
			case err != nil:
				_, _ = fmt.Fprintf(w, "  %s (%s): OUTDATED, %v\n", artifact.ID, artifact.Person.CRN, err)
				outdated++
			default:
				valid++
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\nValidation Summary:\n")
	_, _ = fmt.Fprintf(w, "  Valid artifacts: %d\n", valid)
	_, _ = fmt.Fprintf(w, "  Outdated artifacts: %d\n", outdated)

	if outdated > 0 {
		return fmt.Errorf("%w: %d", ErrOutdatedArtifacts, outdated)
	}

	return nil
}

// scheduleValidation runs validate on the cron expression expr until ctx is done. A run
// still in progress when the next one is due is skipped.
func scheduleValidation(ctx context.Context, logger *slog.Logger, expr string, validate func()) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", expr, err)
	}

	scheduler := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	entryID, err := scheduler.AddFunc(expr, validate)
	if err != nil {
		return fmt.Errorf("failed to schedule validation: %w", err)
	}

	scheduler.Start()
	logger.InfoContext(ctx, "Scheduled validation", "schedule", expr, "next", scheduler.Entry(entryID).Next)

	<-ctx.Done()

	<-scheduler.Stop().Done()
	logger.InfoContext(ctx, "Stopped scheduled validation")

	return nil
}
