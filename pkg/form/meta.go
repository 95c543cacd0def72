package form

// Meta holds the identity every page shares. Pages embed it to satisfy Name, Title and
// Previous.
type Meta struct {
	PageName     string `json:"-"`
	PageTitle    string `json:"-"`
	PreviousPage string `json:"-"`
}

// Name returns the page id used in URLs and as the key of the stored body.
func (m Meta) Name() string {
	return m.PageName
}

// Title returns the heading shown on the page.
func (m Meta) Title() string {
	return m.PageTitle
}

// Previous returns the id of the page the back link points to, or "" when there is none.
func (m Meta) Previous() string {
	return m.PreviousPage
}

// Viewer is implemented by pages that expose extra read-only data to their view, such as
// option lists or fetched reference data.
type Viewer interface {
	ViewData() map[string]any
}

// PreviousFrom returns hint when it is one of the allowed predecessors, otherwise fallback.
func PreviousFrom(hint, fallback string, allowed ...string) string {
	for _, a := range allowed {
		if hint == a {
			return hint
		}
	}

	return fallback
}

// CheckDate validates a composite date as one unit, keyed to field.
func CheckDate(errs *FieldErrors, field string, d Date, emptyMessage, invalidMessage string) {
	switch {
	case d.Empty():
		errs.Add(field, emptyMessage)
	case !d.Valid():
		errs.Add(field, invalidMessage)
	}
}

// CheckYesNo validates a required yes/no answer.
func CheckYesNo(errs *FieldErrors, field, value, message string) {
	if value != "yes" && value != "no" {
		errs.Add(field, message)
	}
}

// Contains reports whether values holds v.
func Contains(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}

	return false
}
