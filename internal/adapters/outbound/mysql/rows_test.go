package mysql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecheck/tradecheck/internal/domain"
)

func report() *domain.AssessmentReport {
	return &domain.AssessmentReport{
		VehicleDetails:   domain.VehicleDetails{Make: "Honda", Model: "Civic", Year: 2019, Mileage: "30000", VIN: "2HGFC2F59KH000001"},
		VisualScore:      76,
		MaxScore:         100,
		ScoreDescription: "Average condition; several cosmetic items noted.",
		ConditionIssues: []domain.ConditionIssue{
			{IssueKey: domain.IssueDents, Title: "Door ding", Description: "Rear left door", Icon: "Car"},
			{IssueKey: domain.IssueExteriorScratches, Title: "Bumper scuff", Description: "Front bumper", Icon: "Brush"},
		},
		MarketValueRange:        "$17,000 - $19,000",
		TradeInValue:            "$15,480",
		TradeInDescription:      "Estimated trade-in assumes ~10% dealer margin.",
		AIConfidence:            74,
		AIConfidenceDescription: "Medium confidence based on 3 photos and coverage.",
	}
}

func TestToRow(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	row := toRow("sub-1", report(), now)

	assert.Equal(t, "sub-1", row.SubmissionID)
	assert.Equal(t, "Civic", row.VehicleDetails.Model)
	assert.Equal(t, "30000", row.VehicleDetails.Mileage)
	assert.Equal(t, now, row.CreatedAt)
	require.Len(t, row.ConditionIssues, 2)
	assert.Equal(t, 0, row.ConditionIssues[0].Position)
	assert.Equal(t, 1, row.ConditionIssues[1].Position)
	assert.Equal(t, "exterior_scratches", row.ConditionIssues[1].IssueKey)
}

func TestRowRoundTrip(t *testing.T) {
	assert.Equal(t, report(), fromRow(toRow("sub-1", report(), time.Now())))
}

func TestRowRoundTrip_NoIssues(t *testing.T) {
	r := report()
	r.ConditionIssues = []domain.ConditionIssue{}

	assert.Equal(t, r, fromRow(toRow("sub-2", r, time.Now())))
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "vehicle_details", VehicleDetailsRow{}.TableName())
	assert.Equal(t, "assessments", AssessmentRow{}.TableName())
	assert.Equal(t, "condition_issues", ConditionIssueRow{}.TableName())
}
