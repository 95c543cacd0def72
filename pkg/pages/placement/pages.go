package placement

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

var reasons = map[string]string{
	"rotl":                     "Release on Temporary Licence (ROTL)",
	"releaseFollowingDecision": "Release directed following parole board or other hearing/decision",
	"additionalPlacement":      "An additional placement on an existing application",
}

var reasonOrder = []string{"rotl", "releaseFollowingDecision", "additionalPlacement"}

// ReasonForPlacement picks which branch of the request the user goes through.
type ReasonForPlacement struct {
	form.Meta

	Reason string `json:"reason,omitempty"`
}

func NewReasonForPlacement(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &ReasonForPlacement{
		Meta: form.Meta{
			PageName:  ReasonForPlacementPage,
			PageTitle: "Why are you requesting a placement?",
		},
		Reason: body.String("reason"),
	}, nil
}

func (p *ReasonForPlacement) Body() form.Body { return form.Encode(p) }

func (p *ReasonForPlacement) Next() (string, error) {
	switch p.Reason {
	case "rotl":
		return PreviousRotlPlacementPage, nil
	case "releaseFollowingDecision":
		return DecisionToReleasePage, nil
	case "additionalPlacement":
		return AdditionalPlacementDetailsPage, nil
	default:
		return "", &form.InvalidStateError{Page: p.PageName, Field: "reason", Value: p.Reason}
	}
}

func (p *ReasonForPlacement) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if _, ok := reasons[p.Reason]; !ok {
		errs.Add("reason", "You must choose a reason for the placement request")
	}

	return errs
}

func (p *ReasonForPlacement) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, form.Lookup(reasons, p.Reason))

	return r
}

func (p *ReasonForPlacement) ViewData() map[string]any {
	opts := make([]map[string]string, 0, len(reasonOrder))
	for _, v := range reasonOrder {
		opts = append(opts, map[string]string{"value": v, "text": reasons[v]})
	}

	return map[string]any{"reasons": opts}
}

// PreviousRotlPlacement asks whether the person has had a ROTL placement before.
type PreviousRotlPlacement struct {
	form.Meta

	PreviousRotl        string `json:"previousRotl,omitempty"`
	PreviousRotlDetails string `json:"previousRotlDetails,omitempty"`
}

func NewPreviousRotlPlacement(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &PreviousRotlPlacement{
		Meta: form.Meta{
			PageName:     PreviousRotlPlacementPage,
			PageTitle:    "Has this person previously had a placement at an AP on ROTL?",
			PreviousPage: ReasonForPlacementPage,
		},
		PreviousRotl:        body.String("previousRotl"),
		PreviousRotlDetails: body.String("previousRotlDetails"),
	}, nil
}

func (p *PreviousRotlPlacement) Body() form.Body { return form.Encode(p) }

func (p *PreviousRotlPlacement) Next() (string, error) {
	switch p.PreviousRotl {
	case "yes":
		return SameApPage, nil
	case "no":
		return DatesOfPlacementPage, nil
	default:
		return "", &form.InvalidStateError{Page: p.PageName, Field: "previousRotl", Value: p.PreviousRotl}
	}
}

func (p *PreviousRotlPlacement) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckYesNo(&errs, "previousRotl", p.PreviousRotl, "You must state if the person has had a previous ROTL placement")

	if p.PreviousRotl == "yes" && p.PreviousRotlDetails == "" {
		errs.Add("previousRotlDetails", "You must provide details of the previous ROTL placement")
	}

	return errs
}

func (p *PreviousRotlPlacement) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, form.YesNo(p.PreviousRotl))

	if p.PreviousRotl == "yes" {
		r.Add("Provide details of the previous ROTL placement", p.PreviousRotlDetails)
	}

	return r
}

// SameAp asks whether the person should return to the AP of their previous ROTL placement.
type SameAp struct {
	form.Meta

	SameAp string `json:"sameAp,omitempty"`
}

func NewSameAp(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &SameAp{
		Meta: form.Meta{
			PageName:     SameApPage,
			PageTitle:    "Do you want this person to stay at the same Approved Premises (AP)?",
			PreviousPage: PreviousRotlPlacementPage,
		},
		SameAp: body.String("sameAp"),
	}, nil
}

func (p *SameAp) Body() form.Body       { return form.Encode(p) }
func (p *SameAp) Next() (string, error) { return DatesOfPlacementPage, nil }

func (p *SameAp) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckYesNo(&errs, "sameAp", p.SameAp, "You must state if you want the person to stay at the same AP")

	return errs
}

func (p *SameAp) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, form.YesNo(p.SameAp))

	return r
}

// DecisionToRelease records the hearing or decision that directed release.
type DecisionToRelease struct {
	form.Meta

	DecisionToReleaseDate    form.Date `json:"-"`
	InformationFromDirection string    `json:"informationFromDirectionToRelease,omitempty"`
}

func NewDecisionToRelease(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &DecisionToRelease{
		Meta: form.Meta{
			PageName:     DecisionToReleasePage,
			PageTitle:    "Enter the date of decision",
			PreviousPage: ReasonForPlacementPage,
		},
		DecisionToReleaseDate:    body.Date("decisionToReleaseDate"),
		InformationFromDirection: body.String("informationFromDirectionToRelease"),
	}, nil
}

func (p *DecisionToRelease) Body() form.Body {
	b := form.Encode(p)
	b.PutDate("decisionToReleaseDate", p.DecisionToReleaseDate)

	return b
}

func (p *DecisionToRelease) Next() (string, error) { return DatesOfPlacementPage, nil }

func (p *DecisionToRelease) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckDate(&errs, "decisionToReleaseDate", p.DecisionToReleaseDate,
		"You must enter the date of decision", "The date of decision is an invalid date")

	if p.InformationFromDirection == "" {
		errs.Add("informationFromDirectionToRelease", "You must provide relevant information from the direction to release")
	}

	return errs
}

func (p *DecisionToRelease) Response() form.Response {
	var r form.Response

	r.Add("Date of decision", p.DecisionToReleaseDate.Display())
	r.Add("Relevant information from the direction to release", p.InformationFromDirection)

	return r
}

// AdditionalPlacementDetails explains why a further placement is needed.
type AdditionalPlacementDetails struct {
	form.Meta

	Reason string `json:"additionalPlacementReason,omitempty"`
}

func NewAdditionalPlacementDetails(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &AdditionalPlacementDetails{
		Meta: form.Meta{
			PageName:     AdditionalPlacementDetailsPage,
			PageTitle:    "Why is an additional placement needed?",
			PreviousPage: ReasonForPlacementPage,
		},
		Reason: body.String("additionalPlacementReason"),
	}, nil
}

func (p *AdditionalPlacementDetails) Body() form.Body       { return form.Encode(p) }
func (p *AdditionalPlacementDetails) Next() (string, error) { return DatesOfPlacementPage, nil }

func (p *AdditionalPlacementDetails) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if p.Reason == "" {
		errs.Add("additionalPlacementReason", "You must explain why an additional placement is needed")
	}

	return errs
}

func (p *AdditionalPlacementDetails) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, p.Reason)

	return r
}

// DatesOfPlacement is the last page of every branch and asks for arrival and duration.
type DatesOfPlacement struct {
	form.Meta

	ArrivalDate   form.Date `json:"-"`
	DurationWeeks string    `json:"durationWeeks,omitempty"`
	DurationDays  string    `json:"durationDays,omitempty"`
	Duration      int       `json:"duration,omitempty"`
}

func NewDatesOfPlacement(body form.Body, artifact *models.Artifact, previous string) (form.Page, error) {
	p := &DatesOfPlacement{
		Meta: form.Meta{
			PageName:     DatesOfPlacementPage,
			PageTitle:    "Dates of placement",
			PreviousPage: previousForDates(artifact, previous),
		},
		ArrivalDate:   body.Date("arrivalDate"),
		DurationWeeks: body.String("durationWeeks"),
		DurationDays:  body.String("durationDays"),
	}

	p.Duration, _ = form.ParseDuration(p.DurationWeeks, p.DurationDays)

	return p, nil
}

func previousForDates(artifact *models.Artifact, hint string) string {
	allowed := []string{PreviousRotlPlacementPage, SameApPage, DecisionToReleasePage, AdditionalPlacementDetailsPage}
	if form.Contains(allowed, hint) {
		return hint
	}

	reason, _ := ReasonForPlacementOf(artifact)

	switch reason {
	case "releaseFollowingDecision":
		return DecisionToReleasePage
	case "additionalPlacement":
		return AdditionalPlacementDetailsPage
	case "rotl":
		return PreviousRotlPlacementPage
	default:
		return ReasonForPlacementPage
	}
}

func (p *DatesOfPlacement) Body() form.Body {
	b := form.Encode(p)
	b.PutDate("arrivalDate", p.ArrivalDate)

	return b
}

func (p *DatesOfPlacement) Next() (string, error) { return "", nil }

func (p *DatesOfPlacement) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckDate(&errs, "arrivalDate", p.ArrivalDate,
		"You must enter the date the person is required to arrive", "The arrival date is an invalid date")

	if p.Duration == 0 {
		errs.Add("duration", "You must state the length of the placement")
	}

	return errs
}

func (p *DatesOfPlacement) Response() form.Response {
	var r form.Response

	r.Add("When will the person arrive?", p.ArrivalDate.Display())

	if p.Duration > 0 {
		r.Add("How long should the Approved Premises placement last?", form.FormatDuration(p.Duration))
	}

	return r
}

// Confirmation is the final declaration before the request is submitted.
type Confirmation struct {
	form.Meta

	Confirmed string `json:"confirmed,omitempty"`
}

func NewConfirmation(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &Confirmation{
		Meta:      form.Meta{PageName: ConfirmationPage, PageTitle: "Confirm the placement request"},
		Confirmed: body.String("confirmed"),
	}, nil
}

func (p *Confirmation) Body() form.Body       { return form.Encode(p) }
func (p *Confirmation) Next() (string, error) { return "", nil }

func (p *Confirmation) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if p.Confirmed != "1" {
		errs.Add("confirmed", "You must confirm the information provided is accurate")
	}

	return errs
}

func (p *Confirmation) Response() form.Response {
	return form.Response{}
}
