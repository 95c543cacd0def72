package form

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed errors.yaml
var defaultCatalog []byte

// Catalog maps field → error type → display message.
type Catalog map[string]map[string]string

// CatalogError is raised for a field/error type pair that has no message. It indicates a
// configuration problem, never a user mistake.
type CatalogError struct {
	Field     string
	ErrorType string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("no error message configured for %s.%s", e.Field, e.ErrorType)
}

// DefaultCatalog parses the built-in message catalog.
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog parses a YAML message catalog.
func ParseCatalog(raw []byte) (Catalog, error) {
	catalog := make(Catalog)
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse error catalog: %w", err)
	}

	return catalog, nil
}

// Message returns the message configured for field and error type.
func (c Catalog) Message(field, errorType string) (string, error) {
	messages, ok := c[field]
	if !ok {
		return "", &CatalogError{Field: field, ErrorType: errorType}
	}

	message, ok := messages[errorType]
	if !ok {
		return "", &CatalogError{Field: field, ErrorType: errorType}
	}

	return message, nil
}

// Translate converts a backend invalid-params list into field errors. The property name
// loses its leading JSON-path segment ("$.releaseDate" → "releaseDate").
func (c Catalog) Translate(params []InvalidParam) (FieldErrors, error) {
	errs := make(FieldErrors, 0, len(params))

	for _, param := range params {
		field := param.PropertyName
		if _, rest, found := strings.Cut(field, "."); found {
			field = rest
		}

		message, err := c.Message(field, param.ErrorType)
		if err != nil {
			return nil, err
		}

		errs.Add(field, message)
	}

	return errs, nil
}
