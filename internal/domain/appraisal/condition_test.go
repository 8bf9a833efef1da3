package appraisal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tradecheck/tradecheck/internal/domain"
)

func f(key domain.IssueKey, severity int, confidence float64) domain.Finding {
	return domain.Finding{IssueKey: key, Title: "t " + string(key), Description: "d", Icon: "Car", Severity: severity, Confidence: confidence}
}

func TestScoreCondition_DentsAndScratches(t *testing.T) {
	p := domain.DefaultProfile()
	got := ScoreCondition(&p, []domain.Finding{
		f(domain.IssueDents, 2, 0.9),
		f(domain.IssueExteriorScratches, 1, 0.7),
	})

	assert.Equal(t, 24, got.TotalDeduction)
	assert.Equal(t, 76, got.Score)
	assert.Equal(t, "Average condition; several cosmetic items noted.", got.Description)
}

func TestScoreCondition_NoFindings(t *testing.T) {
	p := domain.DefaultProfile()
	got := ScoreCondition(&p, nil)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, "Excellent visual condition with minimal wear.", got.Description)
}

func TestScoreCondition_ClampsAtZero(t *testing.T) {
	p := domain.DefaultProfile()
	got := ScoreCondition(&p, []domain.Finding{
		f(domain.IssueDashboardWarning, 5, 1),
		f(domain.IssueUndercarriageLeak, 5, 1),
	})
	assert.Equal(t, 120, got.TotalDeduction)
	assert.Equal(t, 0, got.Score)
}

func TestScoreCondition_UnmappedKeyDeductsNothing(t *testing.T) {
	p := domain.DefaultProfile()
	got := ScoreCondition(&p, []domain.Finding{f("flood_damage", 5, 1)})
	assert.Equal(t, 100, got.Score)
}

func TestScoreCondition_MonotonicInSeverity(t *testing.T) {
	p := domain.DefaultProfile()
	for _, key := range domain.AllIssueKeys {
		prev := domain.MaxScore + 1
		for sev := domain.MinSeverity; sev <= domain.MaxSeverity; sev++ {
			got := ScoreCondition(&p, []domain.Finding{
				f(domain.IssueTireWear, 2, 0.5),
				f(key, sev, 0.5),
			})
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, domain.MaxScore)
			assert.LessOrEqual(t, got.Score, prev, "%s severity %d", key, sev)
			prev = got.Score
		}
	}
}

func TestScoreCondition_Deterministic(t *testing.T) {
	p := domain.DefaultProfile()
	findings := []domain.Finding{f(domain.IssueRust, 3, 0.6), f(domain.IssueOdor, 1, 0.4)}
	assert.Equal(t, ScoreCondition(&p, findings), ScoreCondition(&p, findings))
}

func TestDescribeScore_Bands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Excellent visual condition with minimal wear."},
		{90, "Excellent visual condition with minimal wear."},
		{89, "Clean vehicle with light, typical wear."},
		{80, "Clean vehicle with light, typical wear."},
		{79, "Average condition; several cosmetic items noted."},
		{70, "Average condition; several cosmetic items noted."},
		{69, "Below-average condition; visible defects and wear."},
		{60, "Below-average condition; visible defects and wear."},
		{59, "Rough condition with notable visible issues."},
		{0, "Rough condition with notable visible issues."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DescribeScore(tt.score), "score %d", tt.score)
	}
}

func TestGrade(t *testing.T) {
	assert.Equal(t, "Excellent", Grade(95))
	assert.Equal(t, "Average", Grade(76))
	assert.Equal(t, "Rough", Grade(12))
}
