package apply

import (
	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
)

const PlacementPurposePage = "placement-purpose"

var placementPurposeOrder = []string{
	"publicProtection", "preventContact", "readjust", "drugAlcoholMonitoring", "preventSelfHarm", "otherReason",
}

var placementPurposes = map[string]string{
	"publicProtection":      "Public protection",
	"preventContact":        "Prevent contact",
	"readjust":              "Help individual readjust to life outside custody",
	"drugAlcoholMonitoring": "Provide drug or alcohol monitoring",
	"preventSelfHarm":       "Prevent self harm or suicide",
	"otherReason":           "Other (please specify)",
}

// PlacementPurpose records why an AP placement is needed.
type PlacementPurpose struct {
	form.Meta

	PlacementPurposes []string `json:"placementPurposes"`
	OtherReason       string   `json:"otherReason,omitempty"`
}

func NewPlacementPurpose(body form.Body, _ *models.Artifact, _ string) (form.Page, error) {
	return &PlacementPurpose{
		Meta: form.Meta{
			PageName:     PlacementPurposePage,
			PageTitle:    "What is the purpose of the AP placement?",
			PreviousPage: PlacementDatePage,
		},
		PlacementPurposes: body.Strings("placementPurposes"),
		OtherReason:       body.String("otherReason"),
	}, nil
}

func (p *PlacementPurpose) Body() form.Body {
	return form.Encode(p)
}

func (p *PlacementPurpose) Next() (string, error) {
	return "", nil
}

func (p *PlacementPurpose) Errors() form.FieldErrors {
	var errs form.FieldErrors

	if len(p.PlacementPurposes) == 0 {
		errs.Add("placementPurposes", "You must choose at least one placement purpose")
	}

	for _, purpose := range p.PlacementPurposes {
		if _, ok := placementPurposes[purpose]; !ok {
			errs.Add("placementPurposes", "You must choose a valid placement purpose")
		}
	}

	if form.Contains(p.PlacementPurposes, "otherReason") && p.OtherReason == "" {
		errs.Add("otherReason", "You must explain the reason")
	}

	return errs
}

func (p *PlacementPurpose) Response() form.Response {
	var r form.Response

	r.Add("What is the purpose of AP placement?", form.LookupAll(placementPurposes, p.PlacementPurposes))

	if form.Contains(p.PlacementPurposes, "otherReason") {
		r.Add("Other purpose for AP Placement", p.OtherReason)
	}

	return r
}

func (p *PlacementPurpose) ViewData() map[string]any {
	return map[string]any{"options": options(placementPurposeOrder, placementPurposes)}
}
