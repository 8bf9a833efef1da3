package domain

// MaxScore is the ceiling of the visual condition score.
const MaxScore = 100

// NotAvailable is rendered in place of any value the engine could not estimate.
const NotAvailable = "N/A"

// AssessmentReport is the engine's output, handed to a ReportStore.
type AssessmentReport struct {
	VehicleDetails          VehicleDetails   `json:"vehicleDetails"`
	VisualScore             int              `json:"visualScore"`
	MaxScore                int              `json:"maxScore"`
	ScoreDescription        string           `json:"scoreDescription"`
	ConditionIssues         []ConditionIssue `json:"conditionIssues"`
	MarketValueRange        string           `json:"marketValueRange"`
	TradeInValue            string           `json:"tradeInValue"`
	TradeInDescription      string           `json:"tradeInDescription"`
	AIConfidence            int              `json:"aiConfidence"`
	AIConfidenceDescription string           `json:"aiConfidenceDescription"`
}

type VehicleDetails struct {
	Make    string `json:"make"`
	Model   string `json:"model"`
	Year    int    `json:"year"`
	Mileage string `json:"mileage"`
	VIN     string `json:"vin"`
}

// ConditionIssue is a Finding without severity and confidence. The projection
// is one-way: a report cannot be re-scored from its condition issues.
type ConditionIssue struct {
	IssueKey    IssueKey `json:"issueKey"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
}

// ToConditionIssues projects findings in order.
func ToConditionIssues(findings []Finding) []ConditionIssue {
	issues := make([]ConditionIssue, 0, len(findings))
	for _, f := range findings {
		issues = append(issues, ConditionIssue{
			IssueKey:    f.IssueKey,
			Title:       f.Title,
			Description: f.Description,
			Icon:        f.Icon,
		})
	}
	return issues
}

// ReportEntry is one line of assessment history.
type ReportEntry struct {
	SubmissionID    string `json:"submission_id"`
	Timestamp       string `json:"timestamp"`
	Vehicle         string `json:"vehicle"`
	VisualScore     int    `json:"visual_score"`
	TradeInValue    string `json:"trade_in_value"`
	AIConfidence    int    `json:"ai_confidence"`
	ProfileRevision string `json:"profile_revision,omitempty"`
}
