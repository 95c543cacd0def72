package assess

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

// Review confirms the assessor has read the application.
type Review struct {
	form.Meta

	Reviewed string `json:"reviewed,omitempty"`
}

func NewReview(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &Review{
		Meta:     form.Meta{PageName: ReviewPage, PageTitle: "Review application"},
		Reviewed: body.String("reviewed"),
	}, nil
}

func (p *Review) Body() form.Body       { return form.Encode(p) }
func (p *Review) Next() (string, error) { return "", nil }

func (p *Review) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if p.Reviewed != "yes" {
		errs.Add("reviewed", "You must review all of the application and documents provided before proceeding")
	}

	return errs
}

func (p *Review) Response() form.Response {
	var r form.Response

	r.Add("Have you reviewed all of the application and documents provided?", form.YesNo(p.Reviewed))

	return r
}

// SufficientInformation asks whether a decision can be made without further information.
type SufficientInformation struct {
	form.Meta

	SufficientInformation string `json:"sufficientInformation,omitempty"`
	Query                 string `json:"query,omitempty"`
}

func NewSufficientInformation(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &SufficientInformation{
		Meta: form.Meta{
			PageName:  SufficientInformationPage,
			PageTitle: "Is there enough information in the application for you to make a decision?",
		},
		SufficientInformation: body.String("sufficientInformation"),
		Query:                 body.String("query"),
	}, nil
}

func (p *SufficientInformation) Body() form.Body       { return form.Encode(p) }
func (p *SufficientInformation) Next() (string, error) { return "", nil }

func (p *SufficientInformation) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckYesNo(&errs, "sufficientInformation", p.SufficientInformation, "You must confirm if there is enough information in the application to make a decision")

	if p.SufficientInformation == "no" && p.Query == "" {
		errs.Add("query", "You must specify what additional information is required")
	}

	return errs
}

func (p *SufficientInformation) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, form.YesNo(p.SufficientInformation))

	if p.SufficientInformation == "no" {
		r.Add("What additional information is required?", p.Query)
	}

	return r
}

type suitabilityQuestion struct {
	field    string
	question string
	message  string
}

var suitabilityQuestions = []suitabilityQuestion{
	{"riskFactors", "Does the application identify the risk factors of the person?", "You must confirm if the application identifies the risk factors"},
	{"riskManagement", "Does the application explain how an AP placement would be a suitable option to manage the risk?", "You must confirm if an AP placement would be a suitable option to manage the risk"},
	{"locationOfPlacement", "Are there factors to consider regarding the location of placement?", "You must confirm if there are factors to consider regarding the location of placement"},
	{"moveOnPlan", "Are the move on arrangements on completion of the placement suitable?", "You must confirm if the move on arrangements are suitable"},
}

// SuitabilityAssessment records the assessor's view on four suitability questions, each
// with optional comments.
type SuitabilityAssessment struct {
	form.Meta

	Answers  map[string]string `json:"answers"`
	Comments map[string]string `json:"comments"`
}

func NewSuitabilityAssessment(body form.Body, artifact *models.Artifact, _ string) (form.Page, error) {
	p := &SuitabilityAssessment{
		Meta: form.Meta{
			PageName:  SuitabilityAssessmentPage,
			PageTitle: "Suitability assessment for " + artifact.Person.Name,
		},
		Answers:  make(map[string]string),
		Comments: make(map[string]string),
	}

	for _, q := range suitabilityQuestions {
		if v := body.String(q.field); v != "" {
			p.Answers[q.field] = v
		}

		if v := body.String(q.field + "Comments"); v != "" {
			p.Comments[q.field] = v
		}
	}

	return p, nil
}

func (p *SuitabilityAssessment) Body() form.Body {
	b := form.Body{}
	for field, v := range p.Answers {
		b[field] = v
	}

	for field, v := range p.Comments {
		b[field+"Comments"] = v
	}

	return b
}

func (p *SuitabilityAssessment) Next() (string, error) { return ApplicationTimelinessPage, nil }

func (p *SuitabilityAssessment) Errors() form.FieldErrors {
	var errs form.FieldErrors

	for _, q := range suitabilityQuestions {
		form.CheckYesNo(&errs, q.field, p.Answers[q.field], q.message)
	}

	return errs
}

func (p *SuitabilityAssessment) Response() form.Response {
	var r form.Response

	for _, q := range suitabilityQuestions {
		r.Add(q.question, form.YesNo(p.Answers[q.field]))

		if comment := p.Comments[q.field]; comment != "" {
			r.Add(q.question+" Additional comments", comment)
		}
	}

	return r
}

// ApplicationTimeliness asks whether the assessor accepts a late application.
type ApplicationTimeliness struct {
	form.Meta

	AgreeWithShortNoticeReason         string `json:"agreeWithShortNoticeReason,omitempty"`
	AgreeWithShortNoticeReasonComments string `json:"agreeWithShortNoticeReasonComments,omitempty"`
}

func NewApplicationTimeliness(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &ApplicationTimeliness{
		Meta: form.Meta{
			PageName:     ApplicationTimelinessPage,
			PageTitle:    "Application timeliness",
			PreviousPage: SuitabilityAssessmentPage,
		},
		AgreeWithShortNoticeReason:         body.String("agreeWithShortNoticeReason"),
		AgreeWithShortNoticeReasonComments: body.String("agreeWithShortNoticeReasonComments"),
	}, nil
}

func (p *ApplicationTimeliness) Body() form.Body       { return form.Encode(p) }
func (p *ApplicationTimeliness) Next() (string, error) { return "", nil }

func (p *ApplicationTimeliness) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckYesNo(&errs, "agreeWithShortNoticeReason", p.AgreeWithShortNoticeReason,
		"You must confirm if you agree with the applicant's reason for submission within 4 months of expected arrival")

	return errs
}

func (p *ApplicationTimeliness) Response() form.Response {
	var r form.Response

	r.Add("Do you agree with the applicant's reason for submission within 4 months of expected arrival?", form.YesNo(p.AgreeWithShortNoticeReason))

	if p.AgreeWithShortNoticeReasonComments != "" {
		r.Add("Additional comments", p.AgreeWithShortNoticeReasonComments)
	}

	return r
}
