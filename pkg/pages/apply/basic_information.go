package apply

import (
	"fmt"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

const (
	IsExceptionalCasePage = "is-exceptional-case"
	NotEligiblePage       = "not-eligible"
	ExceptionDetailsPage  = "exception-details"
	SentenceTypePage      = "sentence-type"
	ReleaseTypePage       = "release-type"
	SituationPage         = "situation"
)

var sentenceTypeOrder = []string{
	"standardDeterminate", "life", "ipp", "extendedDeterminate", "communityOrder", "bailPlacement", "nonStatutory",
}

var sentenceTypes = map[string]string{
	"standardDeterminate": "Standard determinate custody",
	"life":                "Life sentence",
	"ipp":                 "Indeterminate Public Protection (IPP)",
	"extendedDeterminate": "Extended determinate custody",
	"communityOrder":      "Community Order / Suspended Sentence Order (SSO)",
	"bailPlacement":       "Bail placement",
	"nonStatutory":        "Non-statutory, MAPPA case",
}

var releaseTypes = map[string]string{
	"licence":               "Licence",
	"rotl":                  "Release on Temporary Licence (ROTL)",
	"hdc":                   "Home detention curfew (HDC)",
	"pss":                   "Post Sentence Supervision (PSS)",
	"paroleDirectedLicence": "Parole directed licence",
}

var releaseTypesBySentence = map[string][]string{
	"standardDeterminate": {"licence", "rotl", "hdc", "pss"},
	"extendedDeterminate": {"rotl", "licence", "paroleDirectedLicence"},
	"life":                {"rotl", "licence"},
	"ipp":                 {"rotl", "licence"},
	"nonStatutory":        {"rotl", "licence"},
}

var situations = map[string]string{
	"riskManagement":      "Referral for risk management",
	"residencyManagement": "Residency management",
	"bailAssessment":      "Bail assessment for residential requirement as part of a community order",
	"bailSentence":        "Bail placement",
	"awaitingSentence":    "Awaiting sentence",
}

var situationsBySentence = map[string][]string{
	"communityOrder": {"riskManagement", "residencyManagement"},
	"bailPlacement":  {"bailAssessment", "bailSentence", "awaitingSentence"},
}

type option struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

func options(values []string, labels map[string]string) []option {
	out := make([]option, 0, len(values))
	for _, v := range values {
		out = append(out, option{Value: v, Text: labels[v]})
	}

	return out
}

// IsExceptionalCase asks whether the application should go ahead as an exceptional case.
type IsExceptionalCase struct {
	form.Meta

	IsExceptionalCase string `json:"isExceptionalCase,omitempty"`
}

func NewIsExceptionalCase(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &IsExceptionalCase{
		Meta:              form.Meta{PageName: IsExceptionalCasePage, PageTitle: "Is this an exceptional case?"},
		IsExceptionalCase: body.String("isExceptionalCase"),
	}, nil
}

func (p *IsExceptionalCase) Body() form.Body {
	return form.Encode(p)
}

func (p *IsExceptionalCase) Next() (string, error) {
	switch p.IsExceptionalCase {
	case "yes":
		return ExceptionDetailsPage, nil
	case "no":
		return NotEligiblePage, nil
	default:
		return "", &form.InvalidStateError{Page: p.PageName, Field: "isExceptionalCase", Value: p.IsExceptionalCase}
	}
}

func (p *IsExceptionalCase) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckYesNo(&errs, "isExceptionalCase", p.IsExceptionalCase, "You must state if this is an exceptional case")

	return errs
}

func (p *IsExceptionalCase) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, form.YesNo(p.IsExceptionalCase))

	return r
}

// NotEligible ends the journey for applications that are neither eligible nor exceptional.
type NotEligible struct {
	form.Meta
}

func NewNotEligible(_ form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &NotEligible{
		Meta: form.Meta{
			PageName:     NotEligiblePage,
			PageTitle:    "This application is not eligible",
			PreviousPage: IsExceptionalCasePage,
		},
	}, nil
}

func (p *NotEligible) Body() form.Body { return form.Body{} }
func (p *NotEligible) Next() (string, error) { return "", nil }
func (p *NotEligible) Errors() form.FieldErrors { return nil }
func (p *NotEligible) Response() form.Response { return form.Response{} }

// ExceptionDetails records the senior manager's agreement to an exceptional case.
type ExceptionDetails struct {
	form.Meta

	AgreedCaseWithManager string    `json:"agreedCaseWithManager,omitempty"`
	ManagerName           string    `json:"managerName,omitempty"`
	AgreementSummary      string    `json:"agreementSummary,omitempty"`
	AgreementDate         form.Date `json:"-"`
}

func NewExceptionDetails(body form.Body, artifact *models.Artifact, _ string) (form.Page, error) {
	return &ExceptionDetails{
		Meta: form.Meta{
			PageName:     ExceptionDetailsPage,
			PageTitle:    fmt.Sprintf("Provide details of why %s is an exceptional case", artifact.Person.Name),
			PreviousPage: IsExceptionalCasePage,
		},
		AgreedCaseWithManager: body.String("agreedCaseWithManager"),
		ManagerName:           body.String("managerName"),
		AgreementSummary:      body.String("agreementSummary"),
		AgreementDate:         body.Date("agreementDate"),
	}, nil
}

func (p *ExceptionDetails) Body() form.Body {
	b := form.Encode(p)
	b.PutDate("agreementDate", p.AgreementDate)

	return b
}

func (p *ExceptionDetails) Next() (string, error) {
	return SentenceTypePage, nil
}

func (p *ExceptionDetails) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckYesNo(&errs, "agreedCaseWithManager", p.AgreedCaseWithManager, "You must state if you have agreed the case with a senior manager")

	if p.AgreedCaseWithManager == "yes" {
		if p.ManagerName == "" {
			errs.Add("managerName", "You must provide the name of the senior manager")
		}

		form.CheckDate(&errs, "agreementDate", p.AgreementDate, "You must provide an agreement date", "The agreement date is an invalid date")
	}

	if p.AgreementSummary == "" {
		errs.Add("agreementSummary", "You must provide a summary of why this is an exception")
	}

	return errs
}

func (p *ExceptionDetails) Response() form.Response {
	var r form.Response

	r.Add("Has the exceptional case been agreed by a senior manager?", form.YesNo(p.AgreedCaseWithManager))

	if p.AgreedCaseWithManager == "yes" {
		r.Add("Name of senior manager", p.ManagerName)
		r.Add("Date of agreement", p.AgreementDate.Display())
	}

	r.Add("Summary of why this is an exception", p.AgreementSummary)

	return r
}

// SentenceType asks which sentence the person is serving; the answer decides whether
// the journey continues to the release type or the situation.
type SentenceType struct {
	form.Meta

	SentenceType string `json:"sentenceType,omitempty"`
}

func NewSentenceType(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &SentenceType{
		Meta: form.Meta{
			PageName:     SentenceTypePage,
			PageTitle:    "Which of the following best describes the sentence type?",
			PreviousPage: ExceptionDetailsPage,
		},
		SentenceType: body.String("sentenceType"),
	}, nil
}

func (p *SentenceType) Body() form.Body {
	return form.Encode(p)
}

func (p *SentenceType) Next() (string, error) {
	switch p.SentenceType {
	case "standardDeterminate", "life", "ipp", "extendedDeterminate", "nonStatutory":
		return ReleaseTypePage, nil
	case "communityOrder", "bailPlacement":
		return SituationPage, nil
	default:
		return "", &form.InvalidStateError{Page: p.PageName, Field: "sentenceType", Value: p.SentenceType}
	}
}

func (p *SentenceType) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if _, ok := sentenceTypes[p.SentenceType]; !ok {
		errs.Add("sentenceType", "You must choose a sentence type")
	}

	return errs
}

func (p *SentenceType) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, form.Lookup(sentenceTypes, p.SentenceType))

	return r
}

func (p *SentenceType) ViewData() map[string]any {
	return map[string]any{"options": options(sentenceTypeOrder, sentenceTypes)}
}

// ReleaseType offers the release types valid for the sentence chosen earlier.
type ReleaseType struct {
	form.Meta

	ReleaseType string `json:"releaseType,omitempty"`

	allowed []string
}

func NewReleaseType(body form.Body, artifact *models.Artifact, _ string) (form.Page, error) {
	sentence, ok := SentenceTypeOf(artifact)
	if !ok {
		return nil, &form.SessionDataError{Message: "sentence type has not been answered"}
	}

	allowed, ok := releaseTypesBySentence[sentence]
	if !ok {
		return nil, &form.SessionDataError{Message: "no release types apply to sentence type " + sentence}
	}

	return &ReleaseType{
		Meta: form.Meta{
			PageName:     ReleaseTypePage,
			PageTitle:    "What type of release will the application support?",
			PreviousPage: SentenceTypePage,
		},
		ReleaseType: body.String("releaseType"),
		allowed:     allowed,
	}, nil
}

func (p *ReleaseType) Body() form.Body {
	return form.Encode(p)
}

func (p *ReleaseType) Next() (string, error) {
	return ReleaseDatePage, nil
}

func (p *ReleaseType) Errors() form.FieldErrors {
	var errs form.FieldErrors

	switch {
	case p.ReleaseType == "":
		errs.Add("releaseType", "You must choose a release type")
	case !form.Contains(p.allowed, p.ReleaseType):
		errs.Add("releaseType", "You must choose a valid release type for this sentence")
	}

	return errs
}

func (p *ReleaseType) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, form.Lookup(releaseTypes, p.ReleaseType))

	return r
}

func (p *ReleaseType) ViewData() map[string]any {
	return map[string]any{"options": options(p.allowed, releaseTypes)}
}

// Situation replaces the release type for community and bail cases.
type Situation struct {
	form.Meta

	Situation string `json:"situation,omitempty"`

	allowed []string
}

func NewSituation(body form.Body, artifact *models.Artifact, _ string) (form.Page, error) {
	sentence, ok := SentenceTypeOf(artifact)
	if !ok {
		return nil, &form.SessionDataError{Message: "sentence type has not been answered"}
	}

	allowed, ok := situationsBySentence[sentence]
	if !ok {
		return nil, &form.SessionDataError{Message: "no situations apply to sentence type " + sentence}
	}

	return &Situation{
		Meta: form.Meta{
			PageName:     SituationPage,
			PageTitle:    "Which of the following options best describes the situation?",
			PreviousPage: SentenceTypePage,
		},
		Situation: body.String("situation"),
		allowed:   allowed,
	}, nil
}

func (p *Situation) Body() form.Body {
	return form.Encode(p)
}

func (p *Situation) Next() (string, error) {
	return PlacementDatePage, nil
}

func (p *Situation) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if !form.Contains(p.allowed, p.Situation) {
		errs.Add("situation", "You must choose a situation")
	}

	return errs
}

func (p *Situation) Response() form.Response {
	var r form.Response

	r.Add(p.PageTitle, form.Lookup(situations, p.Situation))

	return r
}

func (p *Situation) ViewData() map[string]any {
	return map[string]any{"options": options(p.allowed, situations)}
}
