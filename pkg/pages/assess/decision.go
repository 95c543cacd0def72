package assess

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

var decisions = map[string]string{
	"releaseDate":             "Proceed to match, using release date",
	"hdcLicenceDate":          "Proceed to match, using HDC licence date",
	"insufficientMoveOnPlan":  "Reject, insufficient move on plan",
	"riskTooLow":              "Reject, risk too low",
	"riskTooHighForCommunity": "Reject, risk too high (must be approved by an AP Area Manager)",
	"otherReasons":            "Reject, other reasons",
}

var rejections = []string{"insufficientMoveOnPlan", "riskTooLow", "riskTooHighForCommunity", "otherReasons"}

// IsRejection reports whether the decision rejects the application.
func IsRejection(decision string) bool {
	return form.Contains(rejections, decision)
}

// MakeADecision records the outcome of the assessment.
type MakeADecision struct {
	form.Meta

	Decision          string `json:"decision,omitempty"`
	DecisionRationale string `json:"decisionRationale,omitempty"`
}

func NewMakeADecision(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &MakeADecision{
		Meta:              form.Meta{PageName: MakeADecisionPage, PageTitle: "Make a decision"},
		Decision:          body.String("decision"),
		DecisionRationale: body.String("decisionRationale"),
	}, nil
}

func (p *MakeADecision) Body() form.Body       { return form.Encode(p) }
func (p *MakeADecision) Next() (string, error) { return "", nil }

func (p *MakeADecision) Errors() form.FieldErrors {
	var errs form.FieldErrors

	switch _, known := decisions[p.Decision]; {
	case p.Decision == "":
		errs.Add("decision", "You must select a decision")
	case !known:
		errs.Add("decision", "You must select a valid decision")
	case IsRejection(p.Decision) && p.DecisionRationale == "":
		errs.Add("decisionRationale", "You must provide a rationale for your decision")
	}

	return errs
}

func (p *MakeADecision) Response() form.Response {
	var r form.Response

	r.Add("Decision", form.Lookup(decisions, p.Decision))

	if p.DecisionRationale != "" {
		r.Add("Decision rationale", p.DecisionRationale)
	}

	return r
}

var apTypes = map[string]string{
	"normal":           "Standard AP",
	"pipe":             "Psychologically Informed Planned Environment (PIPE)",
	"esap":             "Enhanced Security AP (ESAP)",
	"rfap":             "Recovery Focused AP (RFAP)",
	"mhapStJosephs":    "Specialist Mental Health AP (Birmingham)",
	"mhapElliottHouse": "Specialist Mental Health AP (Manchester)",
}

// MatchingInformation records what kind of placement an accepted application needs. After a
// rejection the page asks nothing: answers stored before the decision changed are neither
// validated nor reported.
type MatchingInformation struct {
	form.Meta

	notNeeded bool

	ApType             string `json:"apType,omitempty"`
	LengthOfStayAgreed string `json:"lengthOfStayAgreed,omitempty"`
	LengthOfStayWeeks  string `json:"lengthOfStayWeeks,omitempty"`
	LengthOfStayDays   string `json:"lengthOfStayDays,omitempty"`
	CruInformation     string `json:"cruInformation,omitempty"`
}

func NewMatchingInformation(body form.Body, artifact *models.Artifact, _ string) (form.Page, error) {
	decision, ok := DecisionOf(artifact)

	return &MatchingInformation{
		Meta: form.Meta{
			PageName:  MatchingInformationPage,
			PageTitle: "Matching information",
		},
		notNeeded:          ok && IsRejection(decision),
		ApType:             body.String("apType"),
		LengthOfStayAgreed: body.String("lengthOfStayAgreed"),
		LengthOfStayWeeks:  body.String("lengthOfStayWeeks"),
		LengthOfStayDays:   body.String("lengthOfStayDays"),
		CruInformation:     body.String("cruInformation"),
	}, nil
}

func (p *MatchingInformation) Body() form.Body       { return form.Encode(p) }
func (p *MatchingInformation) Next() (string, error) { return "", nil }

// NotNeeded reports whether the assessment rejected the application.
func (p *MatchingInformation) NotNeeded() bool { return p.notNeeded }

func (p *MatchingInformation) ViewData() map[string]any {
	return map[string]any{"notNeeded": p.notNeeded}
}

func (p *MatchingInformation) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if p.notNeeded {
		return errs
	}

	if _, ok := apTypes[p.ApType]; !ok {
		errs.Add("apType", "You must select the type of AP required")
	}

	form.CheckYesNo(&errs, "lengthOfStayAgreed", p.LengthOfStayAgreed, "You must state if you agree with the length of the stay")

	if p.LengthOfStayAgreed == "no" {
		if _, ok := form.ParseDuration(p.LengthOfStayWeeks, p.LengthOfStayDays); !ok {
			errs.Add("lengthOfStay", "You must provide a recommended length of stay")
		}
	}

	return errs
}

func (p *MatchingInformation) Response() form.Response {
	var r form.Response

	if p.notNeeded {
		return r
	}

	r.Add("What type of AP is required?", form.Lookup(apTypes, p.ApType))
	r.Add("Do you agree with the suggested length of stay?", form.YesNo(p.LengthOfStayAgreed))

	if p.LengthOfStayAgreed == "no" {
		days, _ := form.ParseDuration(p.LengthOfStayWeeks, p.LengthOfStayDays)
		r.Add("Recommended length of stay", form.FormatDuration(days))
	}

	if p.CruInformation != "" {
		r.Add("Information for Central Referral Unit (CRU) manager", p.CruInformation)
	}

	return r
}
