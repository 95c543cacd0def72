package apply

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

const (
	ReleaseDatePage   = "release-date"
	OralHearingPage   = "oral-hearing"
	PlacementDatePage = "placement-date"
)

// ReleaseDate asks whether the release date is known and, if so, what it is.
type ReleaseDate struct {
	form.Meta

	KnowReleaseDate string    `json:"knowReleaseDate,omitempty"`
	ReleaseDate     form.Date `json:"-"`
}

func NewReleaseDate(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &ReleaseDate{
		Meta: form.Meta{
			PageName:     ReleaseDatePage,
			PageTitle:    "Do you know the person's release date?",
			PreviousPage: ReleaseTypePage,
		},
		KnowReleaseDate: body.String("knowReleaseDate"),
		ReleaseDate:     body.Date("releaseDate"),
	}, nil
}

func (p *ReleaseDate) Body() form.Body {
	b := form.Encode(p)
	if p.KnowReleaseDate == "yes" {
		b.PutDate("releaseDate", p.ReleaseDate)
	}

	return b
}

func (p *ReleaseDate) Next() (string, error) {
	switch p.KnowReleaseDate {
	case "yes":
		return PlacementDatePage, nil
	case "no":
		return OralHearingPage, nil
	default:
		return "", &form.InvalidStateError{Page: p.PageName, Field: "knowReleaseDate", Value: p.KnowReleaseDate}
	}
}

func (p *ReleaseDate) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckYesNo(&errs, "knowReleaseDate", p.KnowReleaseDate, "You must choose either Yes or No")

	if p.KnowReleaseDate == "yes" {
		form.CheckDate(&errs, "releaseDate", p.ReleaseDate, "You must specify the release date", "The release date is an invalid date")
	}

	return errs
}

func (p *ReleaseDate) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, form.YesNo(p.KnowReleaseDate))

	if p.KnowReleaseDate == "yes" {
		r.Add("Release Date", p.ReleaseDate.Display())
	}

	return r
}

// OralHearing asks for the oral hearing date when no release date is known yet.
type OralHearing struct {
	form.Meta

	KnowOralHearingDate string    `json:"knowOralHearingDate,omitempty"`
	OralHearingDate     form.Date `json:"-"`
}

func NewOralHearing(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &OralHearing{
		Meta: form.Meta{
			PageName:     OralHearingPage,
			PageTitle:    "Do you know the person's oral hearing date?",
			PreviousPage: ReleaseDatePage,
		},
		KnowOralHearingDate: body.String("knowOralHearingDate"),
		OralHearingDate:     body.Date("oralHearingDate"),
	}, nil
}

func (p *OralHearing) Body() form.Body {
	b := form.Encode(p)
	if p.KnowOralHearingDate == "yes" {
		b.PutDate("oralHearingDate", p.OralHearingDate)
	}

	return b
}

func (p *OralHearing) Next() (string, error) {
	return PlacementDatePage, nil
}

func (p *OralHearing) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckYesNo(&errs, "knowOralHearingDate", p.KnowOralHearingDate, "You must specify if you know the oral hearing date")

	if p.KnowOralHearingDate == "yes" {
		form.CheckDate(&errs, "oralHearingDate", p.OralHearingDate, "You must specify the oral hearing date", "The oral hearing date is an invalid date")
	}

	return errs
}

func (p *OralHearing) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, form.YesNo(p.KnowOralHearingDate))

	if p.KnowOralHearingDate == "yes" {
		r.Add("Oral Hearing Date", p.OralHearingDate.Display())
	}

	return r
}

// PlacementDate asks when the placement should start. When a release date is known the
// page offers it as the default start date.
type PlacementDate struct {
	form.Meta

	StartDateSameAsReleaseDate string    `json:"startDateSameAsReleaseDate,omitempty"`
	StartDate                  form.Date `json:"-"`

	releaseDate      form.Date
	knowsReleaseDate bool
}

func NewPlacementDate(body form.Body, artifact *models.Artifact, previous string) (form.Page, error) {
	releaseDate, known := ReleaseDateOf(artifact)

	title := "When do you want the placement to start?"
	if known {
		title = "Is " + releaseDate.Display() + " the date you want the placement to start?"
	}

	return &PlacementDate{
		Meta: form.Meta{
			PageName:     PlacementDatePage,
			PageTitle:    title,
			PreviousPage: form.PreviousFrom(previous, ReleaseDatePage, ReleaseDatePage, OralHearingPage, SituationPage),
		},
		StartDateSameAsReleaseDate: body.String("startDateSameAsReleaseDate"),
		StartDate:                  body.Date("startDate"),
		releaseDate:                releaseDate,
		knowsReleaseDate:           known,
	}, nil
}

func (p *PlacementDate) needsStartDate() bool {
	return !p.knowsReleaseDate || p.StartDateSameAsReleaseDate == "no"
}

func (p *PlacementDate) Body() form.Body {
	b := form.Encode(p)
	if p.needsStartDate() {
		b.PutDate("startDate", p.StartDate)
	}

	return b
}

func (p *PlacementDate) Next() (string, error) {
	return PlacementPurposePage, nil
}

func (p *PlacementDate) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if p.knowsReleaseDate {
		form.CheckYesNo(&errs, "startDateSameAsReleaseDate", p.StartDateSameAsReleaseDate, "You must say if the start date is the same as the release date")
	}

	if p.needsStartDate() && !errs.Has("startDateSameAsReleaseDate") {
		form.CheckDate(&errs, "startDate", p.StartDate, "You must specify the placement start date", "The placement start date is an invalid date")
	}

	return errs
}

func (p *PlacementDate) Response() form.Response {
	var r form.Response

	if p.knowsReleaseDate {
		r.Add(p.PageTitle, form.YesNo(p.StartDateSameAsReleaseDate))
	}

	if p.needsStartDate() {
		r.Add("Placement Start Date", p.StartDate.Display())
	}

	return r
}

func (p *PlacementDate) ViewData() map[string]any {
	return map[string]any{
		"releaseDate":      p.releaseDate.Display(),
		"knowsReleaseDate": p.knowsReleaseDate,
	}
}
