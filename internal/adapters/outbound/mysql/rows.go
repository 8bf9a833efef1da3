package mysql

import (
	"time"

	"github.com/tradecheck/tradecheck/internal/domain"
)

// VehicleDetailsRow is one decoded vehicle. An assessment owns exactly one.
type VehicleDetailsRow struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Make    string `gorm:"column:make;type:varchar(64);not null"`
	Model   string `gorm:"column:model;type:varchar(64);not null"`
	Year    int    `gorm:"column:year;not null"`
	Mileage string `gorm:"column:mileage;type:varchar(16);not null"`
	VIN     string `gorm:"column:vin;type:varchar(32);not null;index:idx_vin"`
}

func (VehicleDetailsRow) TableName() string { return "vehicle_details" }

// AssessmentRow is one finished report keyed by submission id.
type AssessmentRow struct {
	ID                      uint                `gorm:"column:id;primaryKey;autoIncrement"`
	SubmissionID            string              `gorm:"column:submission_id;type:varchar(64);not null;uniqueIndex:uk_submission"`
	VehicleDetailsID        uint                `gorm:"column:vehicle_details_id;not null"`
	VehicleDetails          VehicleDetailsRow   `gorm:"foreignKey:VehicleDetailsID"`
	VisualScore             int                 `gorm:"column:visual_score;not null"`
	MaxScore                int                 `gorm:"column:max_score;not null"`
	ScoreDescription        string              `gorm:"column:score_description;type:varchar(255)"`
	MarketValueRange        string              `gorm:"column:market_value_range;type:varchar(64)"`
	TradeInValue            string              `gorm:"column:trade_in_value;type:varchar(32)"`
	TradeInDescription      string              `gorm:"column:trade_in_description;type:text"`
	AIConfidence            int                 `gorm:"column:ai_confidence;not null"`
	AIConfidenceDescription string              `gorm:"column:ai_confidence_description;type:varchar(255)"`
	ConditionIssues         []ConditionIssueRow `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE"`
	CreatedAt               time.Time           `gorm:"column:created_at;not null;index:idx_created_at"`
}

func (AssessmentRow) TableName() string { return "assessments" }

// ConditionIssueRow is one issue of an assessment; Position keeps finding order.
type ConditionIssueRow struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement"`
	AssessmentID uint   `gorm:"column:assessment_id;not null;index:idx_assessment"`
	Position     int    `gorm:"column:position;not null"`
	IssueKey     string `gorm:"column:issue_key;type:varchar(32);not null"`
	Title        string `gorm:"column:title;type:varchar(255);not null"`
	Description  string `gorm:"column:description;type:text"`
	Icon         string `gorm:"column:icon;type:varchar(64)"`
}

func (ConditionIssueRow) TableName() string { return "condition_issues" }

func toRow(submissionID string, r *domain.AssessmentReport, now time.Time) AssessmentRow {
	issues := make([]ConditionIssueRow, len(r.ConditionIssues))
	for i, ci := range r.ConditionIssues {
		issues[i] = ConditionIssueRow{
			Position:    i,
			IssueKey:    string(ci.IssueKey),
			Title:       ci.Title,
			Description: ci.Description,
			Icon:        ci.Icon,
		}
	}

	v := r.VehicleDetails
	return AssessmentRow{
		SubmissionID: submissionID,
		VehicleDetails: VehicleDetailsRow{
			Make:    v.Make,
			Model:   v.Model,
			Year:    v.Year,
			Mileage: v.Mileage,
			VIN:     v.VIN,
		},
		VisualScore:             r.VisualScore,
		MaxScore:                r.MaxScore,
		ScoreDescription:        r.ScoreDescription,
		MarketValueRange:        r.MarketValueRange,
		TradeInValue:            r.TradeInValue,
		TradeInDescription:      r.TradeInDescription,
		AIConfidence:            r.AIConfidence,
		AIConfidenceDescription: r.AIConfidenceDescription,
		ConditionIssues:         issues,
		CreatedAt:               now,
	}
}

func fromRow(row AssessmentRow) *domain.AssessmentReport {
	issues := make([]domain.ConditionIssue, len(row.ConditionIssues))
	for i, ci := range row.ConditionIssues {
		issues[i] = domain.ConditionIssue{
			IssueKey:    domain.IssueKey(ci.IssueKey),
			Title:       ci.Title,
			Description: ci.Description,
			Icon:        ci.Icon,
		}
	}

	v := row.VehicleDetails
	return &domain.AssessmentReport{
		VehicleDetails: domain.VehicleDetails{
			Make:    v.Make,
			Model:   v.Model,
			Year:    v.Year,
			Mileage: v.Mileage,
			VIN:     v.VIN,
		},
		VisualScore:             row.VisualScore,
		MaxScore:                row.MaxScore,
		ScoreDescription:        row.ScoreDescription,
		ConditionIssues:         issues,
		MarketValueRange:        row.MarketValueRange,
		TradeInValue:            row.TradeInValue,
		TradeInDescription:      row.TradeInDescription,
		AIConfidence:            row.AIConfidence,
		AIConfidenceDescription: row.AIConfidenceDescription,
	}
}
