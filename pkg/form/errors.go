package form

import (
	"errors"
	"fmt"
)

// FieldError is a validation message for a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is an ordered set of field errors, one per field.
type FieldErrors []FieldError

// Add records a message for field. A second message for the same field is ignored.
func (e *FieldErrors) Add(field, message string) {
	if e.Has(field) {
		return
	}

	*e = append(*e, FieldError{Field: field, Message: message})
}

// Has reports whether field has an error.
func (e FieldErrors) Has(field string) bool {
	_, ok := e.Get(field)

	return ok
}

// Get returns the message for field.
func (e FieldErrors) Get(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}

	return "", false
}

// Map returns field → message.
func (e FieldErrors) Map() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Message
	}

	return out
}

// ErrorSummaryItem is an entry of the error summary shown above a form.
type ErrorSummaryItem struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Summary returns the ordered error summary linking each message to its field.
func (e FieldErrors) Summary() []ErrorSummaryItem {
	out := make([]ErrorSummaryItem, 0, len(e))
	for _, fe := range e {
		out = append(out, ErrorSummaryItem{Text: fe.Message, Href: "#" + fe.Field})
	}

	return out
}

// ValidationError is returned when a page body fails validation. It is recoverable: the
// page is shown again with the messages and the user's input.
type ValidationError struct {
	Errors FieldErrors
}

// NewValidationError wraps the field errors of a page that failed validation.
func NewValidationError(errs FieldErrors) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Errors))
}

// UnknownPageError is returned when no page is registered under the requested id.
type UnknownPageError struct {
	PageID string
}

func (e *UnknownPageError) Error() string {
	return "unknown page: " + e.PageID
}

// SessionDataError means a page needs an earlier answer that is missing or contradictory.
type SessionDataError struct {
	Message string
}

func (e *SessionDataError) Error() string {
	return "session data error: " + e.Message
}

// InvalidStateError means a branching field holds a value no route is declared for.
type InvalidStateError struct {
	Page  string
	Field string
	Value string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state on page %s: %s=%q has no route", e.Page, e.Field, e.Value)
}

// InvalidParam is one entry of a backend 400 invalid-params payload.
type InvalidParam struct {
	PropertyName string `json:"propertyName"`
	ErrorType    string `json:"errorType"`
}

// InvalidParamsError is a backend validation failure.
type InvalidParamsError struct {
	Params []InvalidParam
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("backend rejected %d parameter(s)", len(e.Params))
}

// IsValidationError checks if err is a page validation error.
func IsValidationError(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}

// IsUnknownPage checks if err is an unknown page error.
func IsUnknownPage(err error) bool {
	var ue *UnknownPageError

	return errors.As(err, &ue)
}

// IsInvalidParams checks if err carries a backend invalid-params payload.
func IsInvalidParams(err error) bool {
	var ip *InvalidParamsError

	return errors.As(err, &ip)
}
