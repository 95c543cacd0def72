package apply

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

const (
	RiskManagementFeaturesPage = "risk-management-features"
	AccessNeedsPage            = "access-needs"
	AccessNeedsMobilityPage    = "access-needs-mobility"
)

var additionalNeedsOrder = []string{
	"mobility", "learningDisability", "neurodivergentConditions", "healthConditions", "pregnancy", "none",
}

var additionalNeeds = map[string]string{
	"mobility":                 "Mobility",
	"learningDisability":       "Learning disability",
	"neurodivergentConditions": "Neurodivergent conditions",
	"healthConditions":         "Health conditions",
	"pregnancy":                "Pregnancy",
	"none":                     "None of the above",
}

// RiskManagementFeatures describes how the AP will support risk management.
type RiskManagementFeatures struct {
	form.Meta

	ManageRiskDetails         string `json:"manageRiskDetails,omitempty"`
	AdditionalFeaturesDetails string `json:"additionalFeaturesDetails,omitempty"`
}

func NewRiskManagementFeatures(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &RiskManagementFeatures{
		Meta: form.Meta{
			PageName:  RiskManagementFeaturesPage,
			PageTitle: "What features of AP will support the management of risk?",
		},
		ManageRiskDetails:         body.String("manageRiskDetails"),
		AdditionalFeaturesDetails: body.String("additionalFeaturesDetails"),
	}, nil
}

func (p *RiskManagementFeatures) Body() form.Body {
	return form.Encode(p)
}

func (p *RiskManagementFeatures) Next() (string, error) {
	return "", nil
}

func (p *RiskManagementFeatures) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if p.ManageRiskDetails == "" {
		errs.Add("manageRiskDetails", "You must describe the features of an AP that will help manage the risk")
	}

	return errs
}

func (p *RiskManagementFeatures) Response() form.Response {
	var r form.Response

	r.Add("Describe why an AP placement is needed to manage the risk of the person", p.ManageRiskDetails)

	if p.AdditionalFeaturesDetails != "" {
		r.Add("Provide details of any additional measures that will be necessary for the management of risk", p.AdditionalFeaturesDetails)
	}

	return r
}

// AccessNeeds records additional, religious and care needs.
type AccessNeeds struct {
	form.Meta

	AdditionalNeeds                 []string `json:"additionalNeeds"`
	ReligiousOrCulturalNeeds        string   `json:"religiousOrCulturalNeeds,omitempty"`
	ReligiousOrCulturalNeedsDetails string   `json:"religiousOrCulturalNeedsDetails,omitempty"`
	CareActAssessmentCompleted      string   `json:"careActAssessmentCompleted,omitempty"`
}

func NewAccessNeeds(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &AccessNeeds{
		Meta: form.Meta{
			PageName:  AccessNeedsPage,
			PageTitle: "Access, cultural and healthcare needs",
		},
		AdditionalNeeds:                 body.Strings("additionalNeeds"),
		ReligiousOrCulturalNeeds:        body.String("religiousOrCulturalNeeds"),
		ReligiousOrCulturalNeedsDetails: body.String("religiousOrCulturalNeedsDetails"),
		CareActAssessmentCompleted:      body.String("careActAssessmentCompleted"),
	}, nil
}

func (p *AccessNeeds) Body() form.Body {
	return form.Encode(p)
}

func (p *AccessNeeds) Next() (string, error) {
	if form.Contains(p.AdditionalNeeds, "mobility") {
		return AccessNeedsMobilityPage, nil
	}

	return "", nil
}

func (p *AccessNeeds) Errors() form.FieldErrors {
	var errs form.FieldErrors

	switch {
	case len(p.AdditionalNeeds) == 0:
		errs.Add("additionalNeeds", "You must confirm whether they have any additional needs")
	case form.Contains(p.AdditionalNeeds, "none") && len(p.AdditionalNeeds) > 1:
		errs.Add("additionalNeeds", "You cannot select 'None of the above' together with other needs")
	}

	for _, need := range p.AdditionalNeeds {
		if _, ok := additionalNeeds[need]; !ok {
			errs.Add("additionalNeeds", "You must choose valid additional needs")
		}
	}

	form.CheckYesNo(&errs, "religiousOrCulturalNeeds", p.ReligiousOrCulturalNeeds, "You must confirm whether they have any religious or cultural needs")

	if p.ReligiousOrCulturalNeeds == "yes" && p.ReligiousOrCulturalNeedsDetails == "" {
		errs.Add("religiousOrCulturalNeedsDetails", "You must provide details of their religious or cultural needs")
	}

	switch p.CareActAssessmentCompleted {
	case "yes", "no", "iDontKnow":
	default:
		errs.Add("careActAssessmentCompleted", "You must confirm whether a Care Act assessment has been completed")
	}

	return errs
}

func (p *AccessNeeds) Response() form.Response {
	var r form.Response

	r.Add("Does the person have any of the following needs?", form.LookupAll(additionalNeeds, p.AdditionalNeeds))
	r.Add("Does the person have any religious or cultural needs?", form.YesNo(p.ReligiousOrCulturalNeeds))

	if p.ReligiousOrCulturalNeeds == "yes" {
		r.Add("Details of religious or cultural needs", p.ReligiousOrCulturalNeedsDetails)
	}

	r.Add("Has a care act assessment been completed?", form.YesNo(p.CareActAssessmentCompleted))

	return r
}

func (p *AccessNeeds) ViewData() map[string]any {
	return map[string]any{"options": options(additionalNeedsOrder, additionalNeeds)}
}

// AccessNeedsMobility asks for mobility detail when mobility needs were declared.
type AccessNeedsMobility struct {
	form.Meta

	NeedsWheelchair  string `json:"needsWheelchair,omitempty"`
	MobilityNeeds    string `json:"mobilityNeeds,omitempty"`
	VisualImpairment string `json:"visualImpairment,omitempty"`
}

func NewAccessNeedsMobility(body form.Body, artifact *models.Artifact, _ string) (form.Page, error) {
	return &AccessNeedsMobility{
		Meta: form.Meta{
			PageName:     AccessNeedsMobilityPage,
			PageTitle:    "Access needs for " + artifact.Person.Name,
			PreviousPage: AccessNeedsPage,
		},
		NeedsWheelchair:  body.String("needsWheelchair"),
		MobilityNeeds:    body.String("mobilityNeeds"),
		VisualImpairment: body.String("visualImpairment"),
	}, nil
}

func (p *AccessNeedsMobility) Body() form.Body {
	return form.Encode(p)
}

func (p *AccessNeedsMobility) Next() (string, error) {
	return "", nil
}

func (p *AccessNeedsMobility) Errors() form.FieldErrors {
	var errs form.FieldErrors

	form.CheckYesNo(&errs, "needsWheelchair", p.NeedsWheelchair, "You must confirm the need for a wheelchair")

	return errs
}

func (p *AccessNeedsMobility) Response() form.Response {
	var r form.Response

	r.Add("Does the person require the use of a wheelchair?", form.YesNo(p.NeedsWheelchair))

	if p.MobilityNeeds != "" {
		r.Add("Mobility needs", p.MobilityNeeds)
	}

	if p.VisualImpairment != "" {
		r.Add("Visual Impairment", p.VisualImpairment)
	}

	return r
}
