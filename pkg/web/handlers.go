package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/services"
	"github.com/dukex/approved-premises/pkg/session"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	journeys  services.Journeys
	sessions  session.Store
	validator *validator.Validate
	logger    *slog.Logger
}

func NewHandlers(
	journeys services.Journeys,
	sessions session.Store,
	validator *validator.Validate,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		journeys:  journeys,
		sessions:  sessions,
		validator: validator,
		logger:    logger.With("module", "web"),
	}
}

// Mount registers the questionnaire routes on r.
func Mount(r fiber.Router, h *Handlers) {
	r.Get("/health", h.HealthCheck)

	j := r.Group("/:journey", h.Auth, h.Session)
	j.Post("/", h.CreateArtifact)
	j.Get("/:id", h.TaskList)
	j.Post("/:id/submission", h.SubmitArtifact)
	j.Post("/:id/withdrawal", h.WithdrawArtifact)
	j.Get("/:id/tasks/:task/pages/:page", h.ShowPage)
	j.Post("/:id/tasks/:task/pages/:page", h.SavePage)
}

func pagePath(journey models.JourneyType, id, task, page string) string {
	return "/" + url.PathEscape(string(journey)) + "/" + url.PathEscape(id) +
		"/tasks/" + url.PathEscape(task) + "/pages/" + url.PathEscape(page)
}

func artifactPath(journey models.JourneyType, id string) string {
	return "/" + url.PathEscape(string(journey)) + "/" + url.PathEscape(id)
}

func (h *Handlers) service(c fiber.Ctx) (*services.Artifacts, bool) {
	return h.journeys.Get(models.JourneyType(c.Params("journey")))
}

func pageRequest(c fiber.Ctx, journey models.JourneyType, body form.Body) form.Request {
	return form.Request{
		Journey:    journey,
		ArtifactID: c.Params("id"),
		TaskID:     c.Params("task"),
		PageID:     c.Params("page"),
		Token:      tokenOf(c),
		UserID:     userOf(c),
		Body:       body,
	}
}

func (h *Handlers) ShowPage(c fiber.Ctx) error {
	svc, ok := h.service(c)
	if !ok {
		return notFound(c, "unknown_journey", "journey not found")
	}

	sess := sessionOf(c)
	req := pageRequest(c, svc.Journey(), nil)

	factory, err := svc.Page(req)
	if err != nil {
		return handleServiceError(c, err)
	}

	flash := takeFlash(sess, pagePath(req.Journey, req.ArtifactID, req.TaskID, req.PageID))

	page, err := svc.InitializePage(c.Context(), sess, factory, req, flash.UserInput)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(newPageView(req, page, flash))
}

func (h *Handlers) SavePage(c fiber.Ctx) error {
	svc, ok := h.service(c)
	if !ok {
		return notFound(c, "unknown_journey", "journey not found")
	}

	body, err := formBody(c)
	if err != nil {
		return badRequest(c, "Invalid form body")
	}

	sess := sessionOf(c)
	req := pageRequest(c, svc.Journey(), body)
	req.Submitted = true
	self := pagePath(req.Journey, req.ArtifactID, req.TaskID, req.PageID)

	factory, err := svc.Page(req)
	if err != nil {
		return handleServiceError(c, err)
	}

	page, err := svc.InitializePage(c.Context(), sess, factory, req, nil)
	if err != nil {
		return handleServiceError(c, err)
	}

	err = svc.Save(c.Context(), sess, page, req)

	var invalid *form.ValidationError
	if errors.As(err, &invalid) {
		return redirectWithErrors(c, sess, invalid.Errors, body, self)
	}

	if err != nil {
		return handleServiceError(c, err)
	}

	next, err := page.Next()
	if err != nil {
		return handleServiceError(c, err)
	}

	if next == "" {
		return c.Redirect().Status(fiber.StatusSeeOther).To(artifactPath(req.Journey, req.ArtifactID))
	}

	return c.Redirect().Status(fiber.StatusSeeOther).To(pagePath(req.Journey, req.ArtifactID, req.TaskID, next))
}

func (h *Handlers) TaskList(c fiber.Ctx) error {
	svc, ok := h.service(c)
	if !ok {
		return notFound(c, "unknown_journey", "journey not found")
	}

	artifact, sections, err := svc.TaskList(c.Context(), sessionOf(c), tokenOf(c), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(TaskListView{
		View:     string(svc.Journey()) + "/show",
		Artifact: NewArtifactSummary(artifact),
		Sections: sections,
	})
}

func (h *Handlers) CreateArtifact(c fiber.Ctx) error {
	svc, ok := h.service(c)
	if !ok {
		return notFound(c, "unknown_journey", "journey not found")
	}

	var req CreateArtifactRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	person := models.Person{CRN: req.CRN, Name: req.Name}

	artifact, err := svc.Create(c.Context(), sessionOf(c), tokenOf(c), userOf(c), person, req.ApplicationID)
	if err != nil {
		return handleServiceError(c, err)
	}

	c.Location(artifactPath(artifact.Type, artifact.ID))

	return c.Status(fiber.StatusCreated).JSON(NewArtifactSummary(artifact))
}

func (h *Handlers) SubmitArtifact(c fiber.Ctx) error {
	svc, ok := h.service(c)
	if !ok {
		return notFound(c, "unknown_journey", "journey not found")
	}

	artifact, err := svc.Submit(c.Context(), sessionOf(c), tokenOf(c), userOf(c), c.Params("id"))

	var invalid *form.ValidationError
	if errors.As(err, &invalid) {
		problem := validationProblem(c, invalid)

		return c.Status(fiber.StatusBadRequest).JSON(problem)
	}

	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(NewArtifactSummary(artifact))
}

func (h *Handlers) WithdrawArtifact(c fiber.Ctx) error {
	svc, ok := h.service(c)
	if !ok {
		return notFound(c, "unknown_journey", "journey not found")
	}

	var req WithdrawArtifactRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := svc.Withdraw(c.Context(), sessionOf(c), tokenOf(c), userOf(c), c.Params("id"), req.Reason)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) HealthCheck(c fiber.Ctx) error {
	checkers := fiber.Map{}
	healthy := len(h.journeys) > 0

	for _, journey := range models.JourneyTypes() {
		svc, ok := h.journeys.Get(journey)
		if !ok {
			continue
		}

		message, ok := svc.HealthCheck(c.Context())
		checkers[string(journey)] = message
		healthy = healthy && ok
	}

	status := "unhealthy"
	message := "Approved Premises API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if healthy {
		status = "healthy"
		message = "Approved Premises API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"checkers":  checkers,
		"timestamp": time.Now().UTC(),
	})
}
