package appraisal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tradecheck/tradecheck/internal/domain"
)

func TestBlendConfidence_NoFindingsNoCoverage(t *testing.T) {
	p := domain.DefaultProfile()
	c := BlendConfidence(&p, nil, domain.Coverage{})

	assert.Equal(t, 0.4, c.AvgFindingConfidence)
	assert.Equal(t, 0.0, c.CoverageFactor)
	assert.Equal(t, 20, c.Score)
	assert.Equal(t, "Low confidence based on 0 photos and coverage.", c.Description)
}

func TestBlendConfidence_High(t *testing.T) {
	p := domain.DefaultProfile()
	coverage := domain.Coverage{
		Angles: []domain.Angle{
			domain.AngleFront, domain.AngleRear, domain.AngleLeft,
			domain.AngleRight, domain.AngleInterior, domain.AngleDash,
		},
		PhotoCount:        8,
		PhotoQualityScore: 0.9,
	}
	c := BlendConfidence(&p, []domain.Finding{f(domain.IssueDents, 1, 0.9), f(domain.IssueRust, 1, 0.9)}, coverage)

	assert.Equal(t, 92, c.Score)
	assert.Equal(t, "High confidence based on 8 photos and coverage (front, rear, left, right, interior, dash).", c.Description)
}

func TestBlendConfidence_Medium(t *testing.T) {
	p := domain.DefaultProfile()
	coverage := domain.Coverage{
		Angles:            []domain.Angle{domain.AngleFront, domain.AngleRear, domain.AngleOdometer},
		PhotoCount:        3,
		PhotoQualityScore: 0.7,
	}
	c := BlendConfidence(&p, []domain.Finding{f(domain.IssueTireWear, 2, 0.7)}, coverage)

	assert.Equal(t, 66, c.Score)
	assert.Equal(t, "Medium confidence based on 3 photos and coverage (front, rear, odometer).", c.Description)
}

func TestBlendConfidence_AngleCreditCapped(t *testing.T) {
	p := domain.DefaultProfile()
	all := domain.Coverage{Angles: domain.AllAngles, PhotoCount: 8, PhotoQualityScore: 1}
	c := BlendConfidence(&p, []domain.Finding{f(domain.IssueDents, 1, 1)}, all)

	assert.InDelta(t, 1.0, c.CoverageFactor, 1e-12)
	assert.Equal(t, 100, c.Score)
}

func TestBlendConfidence_AlwaysInRange(t *testing.T) {
	p := domain.DefaultProfile()
	for _, conf := range []float64{0, 0.25, 0.5, 0.75, 1} {
		for _, q := range []float64{0, 0.5, 1} {
			c := BlendConfidence(&p, []domain.Finding{f(domain.IssueOdor, 1, conf)}, domain.Coverage{PhotoQualityScore: q})
			assert.GreaterOrEqual(t, c.Score, 0)
			assert.LessOrEqual(t, c.Score, 100)
		}
	}
}

func TestDescribeConfidence_Buckets(t *testing.T) {
	p := domain.DefaultProfile()
	cov := domain.Coverage{PhotoCount: 2}
	assert.Equal(t, "High confidence based on 2 photos and coverage.", DescribeConfidence(&p, 85, cov))
	assert.Equal(t, "Medium confidence based on 2 photos and coverage.", DescribeConfidence(&p, 84, cov))
	assert.Equal(t, "Medium confidence based on 2 photos and coverage.", DescribeConfidence(&p, 65, cov))
	assert.Equal(t, "Low confidence based on 2 photos and coverage.", DescribeConfidence(&p, 64, cov))
}
