package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/approved-premises/pkg/eventbus"
	"github.com/dukex/approved-premises/pkg/events"
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/otelhelper"
	"github.com/dukex/approved-premises/pkg/persistence"
	"github.com/dukex/approved-premises/pkg/reference"
	"github.com/dukex/approved-premises/pkg/session"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Decider extracts the outcome recorded on an artifact at submission, if the journey has one.
type Decider func(artifact *models.Artifact) (string, bool)

// Deps are the collaborators shared by every journey's service.
type Deps struct {
	Registry   *form.Registry
	Backend    persistence.Backend
	References reference.Services
	Catalog    form.Catalog
	Bus        eventbus.EventPublisher
	Tracer     trace.Tracer
	Logger     *slog.Logger
}

// Artifacts runs the page lifecycle for one journey.
type Artifacts struct {
	journey  models.JourneyType
	registry *form.Registry
	backend  persistence.Backend
	refs     reference.Services
	catalog  form.Catalog
	bus      eventbus.EventPublisher
	tracer   trace.Tracer
	logger   *slog.Logger
	decide   Decider
}

// NewArtifacts creates the service for journey. decide may be nil.
func NewArtifacts(journey models.JourneyType, deps Deps, decide Decider) *Artifacts {
	bus := deps.Bus
	if bus == nil {
		bus = eventbus.Noop{}
	}

	tracer := deps.Tracer
	if tracer == nil {
		tracer = otelhelper.NoopTracer()
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Artifacts{
		journey:  journey,
		registry: deps.Registry,
		backend:  deps.Backend,
		refs:     deps.References,
		catalog:  deps.Catalog,
		bus:      bus,
		tracer:   tracer,
		logger:   logger.With("module", "artifacts", "journey", string(journey)),
		decide:   decide,
	}
}

// Journey returns the journey this service handles.
func (a *Artifacts) Journey() models.JourneyType {
	return a.journey
}

// HealthCheck checks the health of the backend.
func (a *Artifacts) HealthCheck(ctx context.Context) (string, bool) {
	if a.backend == nil {
		return "Backend not initialized", false
	}

	err := a.backend.HealthCheck(ctx)
	if err != nil {
		return "Backend is unhealthy: " + err.Error(), false
	}

	return "Backend is healthy", true
}

func (a *Artifacts) span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String(otelhelper.JourneyKey, string(a.journey)))

	return otelhelper.StartSpan(ctx, a.tracer, "artifacts."+name, attrs...)
}

// Find returns the artifact, from the session cache when the session already holds it.
func (a *Artifacts) Find(ctx context.Context, sess *session.State, token, id string) (*models.Artifact, error) {
	if cached, ok := sess.Artifact(a.journey, id); ok {
		return cached, nil
	}

	artifact, err := a.backend.Find(ctx, token, a.journey, id)
	if err != nil {
		return nil, err
	}

	if artifact.Type == "" {
		artifact.Type = a.journey
	}

	sess.Cache(artifact)

	return artifact, nil
}

// Page resolves the factory for a request.
func (a *Artifacts) Page(req form.Request) (form.PageFactory, error) {
	return a.registry.Page(a.journey, req.TaskID, req.PageID)
}

// InitializePage builds the page for a request. userInput is the input carried over from a
// failed save and takes precedence over everything else.
func (a *Artifacts) InitializePage(ctx context.Context, sess *session.State, factory form.PageFactory, req form.Request, userInput form.Body) (form.Page, error) {
	ctx, span := a.span(ctx, "initialize_page",
		attribute.String(otelhelper.ArtifactIDKey, req.ArtifactID),
		attribute.String(otelhelper.TaskIDKey, req.TaskID),
		attribute.String(otelhelper.PageIDKey, req.PageID),
		attribute.String(otelhelper.PageKindKey, factory.Kind.String()),
	)
	defer span.End()

	artifact, err := a.Find(ctx, sess, req.Token, req.ArtifactID)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	body := form.GetBody(factory, artifact, req, userInput)

	page, err := factory.Build(ctx, body, artifact, sess.PreviousPage, req.Token, a.refs)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	return page, nil
}

// Save stores a valid page body on the artifact. Invalid pages return *form.ValidationError
// and leave the artifact untouched. Only the slot of the saved page is replaced; every
// other stored page is kept as it was.
func (a *Artifacts) Save(ctx context.Context, sess *session.State, page form.Page, req form.Request) error {
	ctx, span := a.span(ctx, "save",
		attribute.String(otelhelper.ArtifactIDKey, req.ArtifactID),
		attribute.String(otelhelper.TaskIDKey, req.TaskID),
		attribute.String(otelhelper.PageIDKey, req.PageID),
	)
	defer span.End()

	if errs := page.Errors(); len(errs) > 0 {
		return form.NewValidationError(errs)
	}

	artifact, err := a.Find(ctx, sess, req.Token, req.ArtifactID)
	if err != nil {
		otelhelper.SetError(span, err)

		return err
	}

	if artifact.Submitted() {
		return newConflict("Save")
	}

	updated := *artifact
	updated.Data = artifact.Data.WithPage(req.TaskID, req.PageID, page.Body().PageData())

	err = a.backend.Update(ctx, req.Token, &updated)
	if err != nil {
		err = a.backendError("Save", err)
		if !form.IsValidationError(err) {
			otelhelper.SetError(span, err)
		}

		return err
	}

	sess.Cache(&updated)
	sess.PreviousPage = req.PageID

	a.publish(ctx, updated.ID, events.NewPageSaved(a.journey, updated.ID, req.TaskID, req.PageID, req.UserID))

	return nil
}

// TaskList returns the sections of the artifact with the status of every task.
func (a *Artifacts) TaskList(ctx context.Context, sess *session.State, token, id string) (*models.Artifact, []form.SectionState, error) {
	artifact, err := a.Find(ctx, sess, token, id)
	if err != nil {
		return nil, nil, err
	}

	sections, err := a.registry.TaskList(artifact)
	if err != nil {
		return nil, nil, err
	}

	sess.PreviousPage = ""

	return artifact, sections, nil
}

// Create starts a new artifact for a person. The person's risks are attached when the
// lookup has them.
func (a *Artifacts) Create(ctx context.Context, sess *session.State, token, userID string, person models.Person, applicationID string) (*models.Artifact, error) {
	ctx, span := a.span(ctx, "create", attribute.String(otelhelper.UserIDKey, userID))
	defer span.End()

	if strings.TrimSpace(person.CRN) == "" {
		return nil, &ServiceError{Op: "Create", Code: "crn_required", Message: "a CRN is required", Err: ErrInvalidRequest}
	}

	artifact := &models.Artifact{
		Type:          a.journey,
		Person:        person,
		Status:        models.ArtifactStatusInProgress,
		Data:          models.Data{},
		ApplicationID: applicationID,
		CreatedBy:     userID,
	}

	if a.refs.Risks != nil {
		risks, err := a.refs.Risks.PersonRisks(ctx, token, person.CRN)

		switch {
		case err == nil:
			artifact.Risks = risks
		case errors.Is(err, reference.ErrUnavailable):
			a.logger.InfoContext(ctx, "No risks available for person", "crn", person.CRN)
		default:
			otelhelper.SetError(span, err)

			return nil, fmt.Errorf("failed to fetch risks: %w", err)
		}
	}

	err := a.backend.Create(ctx, token, artifact)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, a.backendError("Create", err)
	}

	sess.Cache(artifact)
	a.publish(ctx, artifact.ID, events.NewArtifactCreated(artifact, userID))

	return artifact, nil
}

// Submit builds the document from every stored page and hands the artifact to the backend.
func (a *Artifacts) Submit(ctx context.Context, sess *session.State, token, userID, id string) (*models.Artifact, error) {
	ctx, span := a.span(ctx, "submit", attribute.String(otelhelper.ArtifactIDKey, id))
	defer span.End()

	artifact, err := a.Find(ctx, sess, token, id)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	if artifact.Submitted() {
		return nil, newConflict("Submit")
	}

	doc, err := BuildDocument(a.registry, artifact)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	err = ValidateDocument(doc)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	submitted := *artifact
	submitted.Document = doc

	if a.decide != nil {
		if decision, ok := a.decide(&submitted); ok {
			submitted.Decision = decision
		}
	}

	err = a.backend.Submit(ctx, token, &submitted)
	if err != nil {
		err = a.backendError("Submit", err)
		if !form.IsValidationError(err) {
			otelhelper.SetError(span, err)
		}

		return nil, err
	}

	submitted.Status = models.ArtifactStatusSubmitted
	sess.Cache(&submitted)

	a.publish(ctx, submitted.ID, events.NewArtifactSubmitted(&submitted, userID))
	a.logger.InfoContext(ctx, "Artifact submitted", "artifact_id", submitted.ID, "tasks", len(doc))

	return &submitted, nil
}

// Withdraw closes the artifact with a reason.
func (a *Artifacts) Withdraw(ctx context.Context, sess *session.State, token, userID, id, reason string) error {
	ctx, span := a.span(ctx, "withdraw", attribute.String(otelhelper.ArtifactIDKey, id))
	defer span.End()

	if strings.TrimSpace(reason) == "" {
		return &ServiceError{Op: "Withdraw", Code: "reason_required", Message: "a withdrawal reason is required", Err: ErrInvalidRequest}
	}

	err := a.backend.Withdraw(ctx, token, a.journey, id, reason)
	if err != nil {
		otelhelper.SetError(span, err)

		return a.backendError("Withdraw", err)
	}

	sess.Forget(a.journey, id)
	a.publish(ctx, id, events.NewArtifactWithdrawn(a.journey, id, reason, userID))

	return nil
}

// backendError maps backend failures to service errors. Backend validation failures are
// translated through the message catalog into a *form.ValidationError; a pair missing
// from the catalog is returned as *form.CatalogError.
func (a *Artifacts) backendError(op string, err error) error {
	var invalid *form.InvalidParamsError
	if errors.As(err, &invalid) {
		errs, catalogErr := a.catalog.Translate(invalid.Params)
		if catalogErr != nil {
			return catalogErr
		}

		return form.NewValidationError(errs)
	}

	if persistence.IsArtifactClosed(err) {
		return newConflict(op)
	}

	return err
}

func (a *Artifacts) publish(ctx context.Context, key string, event eventbus.Event) {
	err := a.bus.Publish(ctx, key, event)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to publish event", "event_type", event.GetType(), "error", err)
	}
}
