package web

import (
	"errors"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/services"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func unauthorized(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(401).
		WithInstance(c.Path()).
		WithType("unauthorized").
		WithDetail(detail)

	return c.Status(fiber.StatusUnauthorized).JSON(problem)
}

func notFound(c fiber.Ctx, kind, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType(kind).
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError maps service and engine errors to problem documents. Validation
// errors never reach here on page saves; they are turned into a flash and a redirect.
func handleServiceError(c fiber.Ctx, err error) error {
	var unknown *form.UnknownPageError

	switch {
	case errors.As(err, &unknown):
		return notFound(c, "unknown_page", "page not found: "+unknown.PageID)

	case services.IsNotFound(err):
		return notFound(c, "artifact_not_found", "artifact not found")

	case services.IsConflictError(err):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("conflict").
			WithDetail(err.Error())

		return c.Status(fiber.StatusConflict).JSON(problem)

	case services.IsInvalidRequest(err), form.IsValidationError(err):
		return badRequest(c, err.Error())

	default:
		return internalError(c, err)
	}
}

// ValidationProblem is a 400 problem document that also lists the failing fields.
type ValidationProblem struct {
	*problems.Problem

	Errors map[string]string `json:"errors"`
}

func validationProblem(c fiber.Ctx, invalid *form.ValidationError) ValidationProblem {
	return ValidationProblem{
		Problem: problems.NewStatusProblem(400).
			WithInstance(c.Path()).
			WithType("validation_error").
			WithDetail(invalid.Error()),
		Errors: invalid.Errors.Map(),
	}
}
