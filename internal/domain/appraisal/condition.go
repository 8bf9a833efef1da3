package appraisal

import "github.com/tradecheck/tradecheck/internal/domain"

// ConditionScore is the visual condition outcome for a set of findings.
type ConditionScore struct {
	TotalDeduction int    `json:"total_deduction"`
	Score          int    `json:"visual_score"`
	Description    string `json:"score_description"`
}

// ScoreCondition subtracts deduction weight × severity for every finding from
// MaxScore and clamps to [0, MaxScore]. Unmapped issue keys deduct nothing.
func ScoreCondition(p *domain.AssessmentProfile, findings []domain.Finding) ConditionScore {
	total := 0
	for _, f := range findings {
		total += p.Deduction(f.IssueKey) * f.Severity
	}

	score := Clamp(domain.MaxScore-total, 0, domain.MaxScore)
	return ConditionScore{
		TotalDeduction: total,
		Score:          score,
		Description:    DescribeScore(score),
	}
}

// DescribeScore maps a visual score to its qualitative band. Each band is
// inclusive at its lower bound.
func DescribeScore(score int) string {
	switch {
	case score >= 90:
		return "Excellent visual condition with minimal wear."
	case score >= 80:
		return "Clean vehicle with light, typical wear."
	case score >= 70:
		return "Average condition; several cosmetic items noted."
	case score >= 60:
		return "Below-average condition; visible defects and wear."
	default:
		return "Rough condition with notable visible issues."
	}
}

// Grade is a short label for the score band, used by renderers.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Clean"
	case score >= 70:
		return "Average"
	case score >= 60:
		return "Below average"
	default:
		return "Rough"
	}
}
