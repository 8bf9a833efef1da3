package domain

import (
	"fmt"
	"math"
	"sort"
)

// ProfileConfig holds assessment overrides loaded from .tradecheck.yaml.
// Pointer types distinguish "not specified" from zero values.
type ProfileConfig struct {
	DeductionWeights map[string]int     `yaml:"deduction_weights" json:"deduction_weights,omitempty"`
	ReconWeights     map[string]float64 `yaml:"recon_weights"     json:"recon_weights,omitempty"`
	DealerMargin     *float64           `yaml:"dealer_margin"     json:"dealer_margin,omitempty"`
	MinComparables   *int               `yaml:"min_comparables"   json:"min_comparables,omitempty"`
	Confidence       ConfidenceConfig   `yaml:"confidence"        json:"confidence,omitempty"`
}

// ConfidenceConfig overrides the confidence blend.
type ConfidenceConfig struct {
	DefaultFindingConfidence *float64 `yaml:"default_finding_confidence" json:"default_finding_confidence,omitempty"`
	HighThreshold            *int     `yaml:"high_threshold"             json:"high_threshold,omitempty"`
	MediumThreshold          *int     `yaml:"medium_threshold"           json:"medium_threshold,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProfileConfig {
	return ProfileConfig{}
}

// IsDefault reports whether the config overrides nothing.
func (c ProfileConfig) IsDefault() bool {
	return len(c.DeductionWeights) == 0 && len(c.ReconWeights) == 0 &&
		c.DealerMargin == nil && c.MinComparables == nil &&
		c.Confidence.DefaultFindingConfidence == nil &&
		c.Confidence.HighThreshold == nil && c.Confidence.MediumThreshold == nil
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProfileConfig) Validate() error {
	for _, k := range sortedKeys(c.DeductionWeights) {
		if !IssueKey(k).Valid() {
			return fmt.Errorf("unknown issue key %q in deduction_weights", k)
		}
		if v := c.DeductionWeights[k]; v < 0 || v > MaxScore {
			return fmt.Errorf("deduction_weights[%q] = %d (must be between 0 and %d)", k, v, MaxScore)
		}
	}

	for _, k := range sortedKeys(c.ReconWeights) {
		if !IssueKey(k).Valid() {
			return fmt.Errorf("unknown issue key %q in recon_weights", k)
		}
		if v := c.ReconWeights[k]; v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("recon_weights[%q] = %v (must be a non-negative number)", k, v)
		}
	}

	if c.DealerMargin != nil {
		if m := *c.DealerMargin; !(m >= 0 && m < 1) {
			return fmt.Errorf("dealer_margin must be in [0.0, 1.0) (got %.2f)", m)
		}
	}

	if c.MinComparables != nil && *c.MinComparables < 1 {
		return fmt.Errorf("min_comparables must be > 0 (got %d)", *c.MinComparables)
	}

	return c.Confidence.validate()
}

func (c ConfidenceConfig) validate() error {
	if c.DefaultFindingConfidence != nil {
		if v := *c.DefaultFindingConfidence; !(v >= 0 && v <= 1) {
			return fmt.Errorf("confidence.default_finding_confidence must be between 0.0 and 1.0 (got %.2f)", v)
		}
	}

	thresholds := map[string]*int{
		"high_threshold":   c.HighThreshold,
		"medium_threshold": c.MediumThreshold,
	}
	for _, name := range []string{"high_threshold", "medium_threshold"} {
		if ptr := thresholds[name]; ptr != nil && (*ptr < 0 || *ptr > 100) {
			return fmt.Errorf("confidence.%s must be between 0 and 100 (got %d)", name, *ptr)
		}
	}

	// An override of one threshold is checked against the default of the other.
	defaults := DefaultProfile()
	high, medium := defaults.HighConfidence, defaults.MediumConfidence
	if c.HighThreshold != nil {
		high = *c.HighThreshold
	}
	if c.MediumThreshold != nil {
		medium = *c.MediumThreshold
	}
	if medium > high {
		return fmt.Errorf("confidence.medium_threshold (%d) must not exceed high_threshold (%d)", medium, high)
	}
	return nil
}

// sortedKeys keeps validation errors deterministic across map iteration.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
