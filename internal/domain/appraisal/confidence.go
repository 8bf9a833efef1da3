package appraisal

import (
	"fmt"
	"strings"

	"github.com/tradecheck/tradecheck/internal/domain"
)

// Confidence is the blended trust in an assessment.
type Confidence struct {
	AvgFindingConfidence float64 `json:"avg_finding_confidence"`
	CoverageFactor       float64 `json:"coverage_factor"`
	Score                int     `json:"ai_confidence"`
	Description          string  `json:"ai_confidence_description"`
}

// BlendConfidence combines the mean finding confidence with photo coverage.
// With no findings the mean falls back to p.DefaultFindingConfidence: an empty
// issue list is not evidence of a confident inspection.
func BlendConfidence(p *domain.AssessmentProfile, findings []domain.Finding, coverage domain.Coverage) Confidence {
	avg := p.DefaultFindingConfidence
	if len(findings) > 0 {
		var sum float64
		for _, f := range findings {
			sum += f.Confidence
		}
		avg = sum / float64(len(findings))
	}

	var angleCredit float64
	if p.MaxAngles > 0 {
		angleCredit = min(1, float64(len(coverage.Angles))/float64(p.MaxAngles))
	}
	factor := coverage.PhotoQualityScore*p.QualityWeight + angleCredit*p.AngleWeight

	blend := avg*p.FindingBlendWeight + factor*(1-p.FindingBlendWeight)
	score := Clamp(int(roundHalfUp(blend*100)), 0, 100)

	return Confidence{
		AvgFindingConfidence: avg,
		CoverageFactor:       factor,
		Score:                score,
		Description:          DescribeConfidence(p, score, coverage),
	}
}

// DescribeConfidence renders the bucket label, photo count and observed angles.
func DescribeConfidence(p *domain.AssessmentProfile, score int, coverage domain.Coverage) string {
	bucket := "Low"
	switch {
	case score >= p.HighConfidence:
		bucket = "High"
	case score >= p.MediumConfidence:
		bucket = "Medium"
	}

	angles := ""
	if len(coverage.Angles) > 0 {
		names := make([]string, len(coverage.Angles))
		for i, a := range coverage.Angles {
			names[i] = string(a)
		}
		angles = " (" + strings.Join(names, ", ") + ")"
	}

	return fmt.Sprintf("%s confidence based on %d photos and coverage%s.", bucket, coverage.PhotoCount, angles)
}
