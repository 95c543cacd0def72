// Package form implements the multi-step questionnaire engine: pages grouped into tasks
// and sections, page resolution, body seeding and task-list status.
package form

import (
	"context"
	"fmt"

	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/reference"
)

// Page is one screen of a questionnaire. Pages are built fresh on every request and only
// their Body is persisted.
type Page interface {
	// Name is the page id, matching its slot in the artifact data.
	Name() string
	Title() string
	Body() Body
	// Next returns the id of the following page, or "" when the task is finished.
	Next() (string, error)
	// Previous returns the id of the preceding page, or "" for the first page.
	Previous() string
	Errors() FieldErrors
	Response() Response
}

// Constructor builds a page from its raw body without any I/O.
type Constructor func(body Body, artifact *models.Artifact, previous string) (Page, error)

// Initializer builds a page after fetching the reference data it needs.
type Initializer func(ctx context.Context, body Body, artifact *models.Artifact, previous, token string, svc reference.Services) (Page, error)

// Kind tags how a page is built.
type Kind int

const (
	// KindSimple pages are built by their constructor alone.
	KindSimple Kind = iota
	// KindAsync pages fetch reference data before being built.
	KindAsync
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindAsync:
		return "async"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// PageFactory registers a page under its id. Every factory has a constructor, used when
// rebuilding stored pages for review and submission; async factories also carry an
// initializer used when the page is shown or saved.
type PageFactory struct {
	Name       string
	Kind       Kind
	New        Constructor
	Initialize Initializer
}

// Simple registers a page built by its constructor alone.
func Simple(name string, c Constructor) PageFactory {
	return PageFactory{Name: name, Kind: KindSimple, New: c}
}

// Async registers a page that fetches reference data when initialized.
func Async(name string, c Constructor, init Initializer) PageFactory {
	return PageFactory{Name: name, Kind: KindAsync, New: c, Initialize: init}
}

// Build dispatches on the factory kind.
func (f PageFactory) Build(ctx context.Context, body Body, artifact *models.Artifact, previous, token string, svc reference.Services) (Page, error) {
	switch f.Kind {
	case KindSimple:
		return f.New(body, artifact, previous)
	case KindAsync:
		return f.Initialize(ctx, body, artifact, previous, token, svc)
	default:
		return nil, fmt.Errorf("page %s has unsupported kind %s", f.Name, f.Kind)
	}
}
