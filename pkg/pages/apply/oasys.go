package apply

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/reference"
)

const (
	OptionalOasysSectionsPage = "optional-oasys-sections"
	RoshSummaryPage           = "rosh-summary"
)

var oasysSectionNames = map[int]string{
	3:  "Accommodation",
	4:  "Education, training and employment",
	5:  "Financial management and income",
	6:  "Relationships",
	7:  "Lifestyle and associates",
	8:  "Drug misuse",
	9:  "Alcohol misuse",
	10: "Emotional wellbeing",
	11: "Thinking and behaviour",
	12: "Attitudes",
	13: "Health",
}

var roshQuestionLabels = map[string]string{
	"R10.1": "Who is at risk",
	"R10.2": "What is the nature of the risk",
	"R10.3": "When is the risk likely to be the greatest",
	"R10.4": "What circumstances are likely to increase risk",
	"R10.5": "What factors are likely to reduce the risk",
}

func sectionLabels(values []string) string {
	labels := make(map[string]string, len(values))

	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}

		if name, ok := oasysSectionNames[n]; ok {
			labels[v] = fmt.Sprintf("%d. %s", n, name)
		}
	}

	return form.LookupAll(labels, values)
}

// OptionalOasysSections lets the applicant pick which OASys needs sections to import.
type OptionalOasysSections struct {
	form.Meta

	NeedsLinkedToReoffending []string `json:"needsLinkedToReoffending"`
	OtherNeeds               []string `json:"otherNeeds"`

	linkedSections   []models.OasysSection
	otherSections    []models.OasysSection
	oasysUnavailable bool
}

func NewOptionalOasysSections(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &OptionalOasysSections{
		Meta: form.Meta{
			PageName:  OptionalOasysSectionsPage,
			PageTitle: "Which of the following sections of OASys do you want to import?",
		},
		NeedsLinkedToReoffending: body.Strings("needsLinkedToReoffending"),
		OtherNeeds:               body.Strings("otherNeeds"),
	}, nil
}

// InitializeOptionalOasysSections fetches the sections available for the person.
func InitializeOptionalOasysSections(ctx context.Context, body form.Body, artifact *models.Artifact, previous, token string, svc reference.Services) (form.Page, error) {
	if svc.Oasys == nil {
		return nil, errors.New("oasys client is not configured")
	}

	page, err := NewOptionalOasysSections(body, artifact, previous)
	if err != nil {
		return nil, err
	}

	p := page.(*OptionalOasysSections)

	sections, err := svc.Oasys.OasysSections(ctx, token, artifact.Person.CRN, nil)
	if errors.Is(err, reference.ErrUnavailable) {
		p.oasysUnavailable = true

		return p, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch oasys sections: %w", err)
	}

	for _, s := range sections.Sections {
		if s.LinkedToHarm || s.LinkedToReOffending {
			p.linkedSections = append(p.linkedSections, s)
		} else {
			p.otherSections = append(p.otherSections, s)
		}
	}

	return p, nil
}

func (p *OptionalOasysSections) Body() form.Body {
	return form.Encode(p)
}

func (p *OptionalOasysSections) Next() (string, error) {
	return RoshSummaryPage, nil
}

func (p *OptionalOasysSections) Errors() form.FieldErrors {
	var errs form.FieldErrors

	for _, v := range append(p.NeedsLinkedToReoffending, p.OtherNeeds...) {
		n, err := strconv.Atoi(v)
		if _, known := oasysSectionNames[n]; err != nil || !known {
			errs.Add("otherNeeds", "You must choose valid OASys sections")
		}
	}

	return errs
}

func (p *OptionalOasysSections) Response() form.Response {
	var r form.Response

	r.Add("Needs linked to reoffending", sectionLabels(p.NeedsLinkedToReoffending))
	r.Add("Other needs", sectionLabels(p.OtherNeeds))

	return r
}

func (p *OptionalOasysSections) ViewData() map[string]any {
	return map[string]any{
		"linkedSections":   p.linkedSections,
		"otherSections":    p.otherSections,
		"oasysUnavailable": p.oasysUnavailable,
	}
}

// RoshSummary shows the imported RoSH answers and lets the applicant amend them.
type RoshSummary struct {
	form.Meta

	RoshAnswers map[string]string `json:"roshAnswers"`

	questions        []models.OasysQuestion
	oasysUnavailable bool
}

func NewRoshSummary(body form.Body, artifact *models.Artifact, _ string) (form.Page, error) {
	return &RoshSummary{
		Meta: form.Meta{
			PageName:     RoshSummaryPage,
			PageTitle:    "Edit risk information for " + artifact.Person.Name,
			PreviousPage: OptionalOasysSectionsPage,
		},
		RoshAnswers: body.StringMap("roshAnswers"),
	}, nil
}

// InitializeRoshSummary fetches the RoSH summary for the sections chosen on the previous
// page and pre-fills any answer the applicant has not edited yet. Without an OASys record the
// page keeps the stored answers so the applicant can enter them by hand.
func InitializeRoshSummary(ctx context.Context, body form.Body, artifact *models.Artifact, previous, token string, svc reference.Services) (form.Page, error) {
	if svc.Oasys == nil {
		return nil, errors.New("oasys client is not configured")
	}

	page, err := NewRoshSummary(body, artifact, previous)
	if err != nil {
		return nil, err
	}

	p := page.(*RoshSummary)

	selected, _ := SelectedOasysSectionsOf(artifact)

	sections, err := svc.Oasys.OasysSections(ctx, token, artifact.Person.CRN, selected)
	if errors.Is(err, reference.ErrUnavailable) {
		p.oasysUnavailable = true

		return p, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to fetch rosh summary: %w", err)
	}

	p.questions = sections.RoshSummary

	for _, q := range sections.RoshSummary {
		if _, edited := p.RoshAnswers[q.QuestionNumber]; !edited {
			p.RoshAnswers[q.QuestionNumber] = q.Answer
		}
	}

	return p, nil
}

func (p *RoshSummary) Body() form.Body {
	return form.Encode(p)
}

func (p *RoshSummary) Next() (string, error) {
	return "", nil
}

func (p *RoshSummary) Errors() form.FieldErrors {
	var errs form.FieldErrors

	for _, number := range p.questionNumbers() {
		if _, ok := roshQuestionLabels[number]; !ok {
			errs.Add("roshAnswers", "The RoSH summary contains an unknown question "+number)
		}
	}

	return errs
}

func (p *RoshSummary) questionNumbers() []string {
	numbers := make([]string, 0, len(p.RoshAnswers))
	for number := range p.RoshAnswers {
		numbers = append(numbers, number)
	}

	sort.Strings(numbers)

	return numbers
}

func (p *RoshSummary) Response() form.Response {
	numbers := p.questionNumbers()

	records := make([]form.Record, 0, len(numbers))
	for _, number := range numbers {
		records = append(records, form.Record{
			"questionNumber": number,
			"label":          form.Lookup(roshQuestionLabels, number),
			"answer":         p.RoshAnswers[number],
		})
	}

	var r form.Response

	r.AddRecords("RoSH summary", records)

	return r
}

func (p *RoshSummary) ViewData() map[string]any {
	return map[string]any{
		"questions":        p.questions,
		"oasysUnavailable": p.oasysUnavailable,
	}
}
