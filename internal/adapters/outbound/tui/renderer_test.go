package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/tui"
	"github.com/tradecheck/tradecheck/internal/domain"
	"github.com/tradecheck/tradecheck/internal/domain/appraisal"
)

func sampleReport() *domain.AssessmentReport {
	return &domain.AssessmentReport{
		VehicleDetails:   domain.VehicleDetails{Make: "Honda", Model: "Civic", Year: 2019, Mileage: "30000", VIN: "2HGFC2F59KH000001"},
		VisualScore:      76,
		MaxScore:         100,
		ScoreDescription: "Average condition; several cosmetic items noted.",
		ConditionIssues: []domain.ConditionIssue{
			{IssueKey: domain.IssueDents, Title: "Door ding", Description: "Rear left door", Icon: "AlertTriangle"},
		},
		MarketValueRange:        "$17,000 - $19,000",
		TradeInValue:            "$15,480",
		TradeInDescription:      "Estimated trade-in assumes ~10% dealer margin.",
		AIConfidence:            74,
		AIConfidenceDescription: "Medium confidence based on 3 photos and coverage (front, rear, interior).",
	}
}

func TestRenderReport_ContainsScore(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "76 / 100")
	assert.Contains(t, output, "Average")
	assert.Contains(t, output, "several cosmetic items")
}

func TestRenderReport_ContainsVehicleAndValue(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "Civic")
	assert.Contains(t, output, "2HGFC2F59KH000001")
	assert.Contains(t, output, "$17,000 - $19,000")
	assert.Contains(t, output, "$15,480")
	assert.Contains(t, output, "Medium confidence")
}

func TestRenderReport_ContainsIssues(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "Door ding")
	assert.Contains(t, output, "alert triangle")
}

func TestRenderReport_NoIssues(t *testing.T) {
	r := sampleReport()
	r.ConditionIssues = nil
	assert.Contains(t, tui.RenderReport(r), "No visible condition issues.")
}

func TestRenderScore(t *testing.T) {
	output := tui.RenderScore(
		appraisal.ConditionScore{TotalDeduction: 24, Score: 76, Description: "Average condition; several cosmetic items noted."},
		appraisal.Confidence{Score: 66, Description: "Medium confidence based on 3 photos and coverage."},
		sampleReport().ConditionIssues,
		[]domain.Rejection{{Category: domain.CategoryOther, Index: 0, Reason: `unknown issueKey "flood"`}},
	)
	assert.Contains(t, output, "76")
	assert.Contains(t, output, "-24")
	assert.Contains(t, output, "1 findings dropped")
	assert.Contains(t, output, `other[0]: unknown issueKey "flood"`)
}

func TestRenderMarket(t *testing.T) {
	mv := domain.MarketValues{P25: domain.Known(17000), P50: domain.Known(18000), P75: domain.Unknown()}
	output := tui.RenderMarket(mv, "N/A", 4)
	assert.Contains(t, output, "$17,000")
	assert.Contains(t, output, "$18,000")
	assert.Contains(t, output, "N/A")
	assert.Contains(t, output, "4 listings")
}

func TestHumanizeIcon(t *testing.T) {
	assert.Equal(t, "alert triangle", tui.HumanizeIcon("AlertTriangle"))
	assert.Equal(t, "car", tui.HumanizeIcon("Car"))
	assert.Equal(t, "tire wear", tui.HumanizeIcon("tireWear"))
	assert.Equal(t, "", tui.HumanizeIcon(""))
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No assessment history found.")
}

func TestRenderHistory_Entries(t *testing.T) {
	output := tui.RenderHistory([]domain.ReportEntry{
		{SubmissionID: "a", Timestamp: "2026-02-25T10:00:00Z", Vehicle: "2019 Honda Civic", VisualScore: 76, TradeInValue: "$15,480", AIConfidence: 74, ProfileRevision: "abc1234"},
		{SubmissionID: "b", Timestamp: "2026-02-26T10:00:00Z", Vehicle: "2015 Ford F-150", VisualScore: 58, TradeInValue: "N/A", AIConfidence: 40},
	})
	assert.Contains(t, output, "2026-02-25")
	assert.Contains(t, output, "abc1234")
	assert.Contains(t, output, "2015 Ford F-150")
	assert.Contains(t, output, "58/100")
}
