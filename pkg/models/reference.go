package models

// OasysSection is a single OASys needs section available for import.
type OasysSection struct {
	Section             int    `json:"section"`
	Name                string `json:"name"`
	LinkedToHarm        bool   `json:"linked_to_harm"`
	LinkedToReOffending bool   `json:"linked_to_re_offending"`
}

// OasysQuestion is an imported OASys question with the assessor's answer.
type OasysQuestion struct {
	Label          string `json:"label"`
	QuestionNumber string `json:"question_number"`
	Answer         string `json:"answer"`
}

// OasysSections is the OASys assessment data for a person.
type OasysSections struct {
	AssessmentID    int             `json:"assessment_id"`
	AssessmentState string          `json:"assessment_state"`
	Sections        []OasysSection  `json:"sections"`
	RoshSummary     []OasysQuestion `json:"rosh_summary"`
}

// RiskLevel is a RoSH risk level.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelVeryHigh RiskLevel = "Very High"
)

// PersonRisks is the risk profile of a person at the time it was fetched.
type PersonRisks struct {
	CRN         string    `json:"crn"`
	OverallRisk RiskLevel `json:"overall_risk,omitempty"`
	Tier        string    `json:"tier,omitempty"`
	Flags       []string  `json:"flags,omitempty"`
	Mappa       string    `json:"mappa,omitempty"`
}
