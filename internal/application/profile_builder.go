package application

import "github.com/tradecheck/tradecheck/internal/domain"

// BuildProfile constructs an AssessmentProfile from defaults and user overrides.
// Weight overrides replace single entries; unlisted issue keys keep defaults.
func BuildProfile(cfg domain.ProfileConfig) domain.AssessmentProfile {
	base := domain.DefaultProfile()

	for k, v := range cfg.DeductionWeights {
		base.DeductionWeights[domain.IssueKey(k)] = v
	}
	for k, v := range cfg.ReconWeights {
		base.ReconWeights[domain.IssueKey(k)] = v
	}
	if cfg.DealerMargin != nil {
		base.DealerMargin = *cfg.DealerMargin
	}
	if cfg.MinComparables != nil {
		base.MinComparables = *cfg.MinComparables
	}

	c := cfg.Confidence
	if c.DefaultFindingConfidence != nil {
		base.DefaultFindingConfidence = *c.DefaultFindingConfidence
	}
	if c.HighThreshold != nil {
		base.HighConfidence = *c.HighThreshold
	}
	if c.MediumThreshold != nil {
		base.MediumConfidence = *c.MediumThreshold
	}

	return base
}
