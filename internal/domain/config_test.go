package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tradecheck/tradecheck/internal/domain"
)

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestProfileConfig_DefaultIsValid(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsDefault())
}

func TestProfileConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.ProfileConfig
		wantErr string
	}{
		{
			name: "valid overrides",
			cfg: domain.ProfileConfig{
				DeductionWeights: map[string]int{"dents": 5},
				ReconWeights:     map[string]float64{"rust": 500},
				DealerMargin:     floatPtr(0.15),
			},
		},
		{
			name:    "unknown deduction key",
			cfg:     domain.ProfileConfig{DeductionWeights: map[string]int{"hail": 5}},
			wantErr: `unknown issue key "hail" in deduction_weights`,
		},
		{
			name:    "negative deduction",
			cfg:     domain.ProfileConfig{DeductionWeights: map[string]int{"dents": -1}},
			wantErr: "deduction_weights",
		},
		{
			name:    "unknown recon key",
			cfg:     domain.ProfileConfig{ReconWeights: map[string]float64{"hail": 5}},
			wantErr: "recon_weights",
		},
		{
			name:    "margin of one",
			cfg:     domain.ProfileConfig{DealerMargin: floatPtr(1)},
			wantErr: "dealer_margin",
		},
		{
			name:    "zero min comparables",
			cfg:     domain.ProfileConfig{MinComparables: intPtr(0)},
			wantErr: "min_comparables",
		},
		{
			name:    "threshold out of range",
			cfg:     domain.ProfileConfig{Confidence: domain.ConfidenceConfig{HighThreshold: intPtr(120)}},
			wantErr: "confidence.high_threshold",
		},
		{
			name: "medium above high",
			cfg: domain.ProfileConfig{Confidence: domain.ConfidenceConfig{
				HighThreshold: intPtr(60), MediumThreshold: intPtr(70),
			}},
			wantErr: "must not exceed",
		},
		{
			name:    "nan margin",
			cfg:     domain.ProfileConfig{DealerMargin: floatPtr(math.NaN())},
			wantErr: "dealer_margin",
		},
		{
			name:    "infinite default confidence",
			cfg:     domain.ProfileConfig{Confidence: domain.ConfidenceConfig{DefaultFindingConfidence: floatPtr(math.Inf(1))}},
			wantErr: "default_finding_confidence",
		},
		{
			name:    "nan default confidence",
			cfg:     domain.ProfileConfig{Confidence: domain.ConfidenceConfig{DefaultFindingConfidence: floatPtr(math.NaN())}},
			wantErr: "default_finding_confidence",
		},
		{
			name:    "medium alone above default high",
			cfg:     domain.ProfileConfig{Confidence: domain.ConfidenceConfig{MediumThreshold: intPtr(90)}},
			wantErr: "must not exceed high_threshold (85)",
		},
		{
			name:    "high alone below default medium",
			cfg:     domain.ProfileConfig{Confidence: domain.ConfidenceConfig{HighThreshold: intPtr(50)}},
			wantErr: "must not exceed",
		},
		{
			name: "medium alone within default high",
			cfg:  domain.ProfileConfig{Confidence: domain.ConfidenceConfig{MediumThreshold: intPtr(80)}},
		},
		{
			name:    "default confidence above one",
			cfg:     domain.ProfileConfig{Confidence: domain.ConfidenceConfig{DefaultFindingConfidence: floatPtr(1.5)}},
			wantErr: "default_finding_confidence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
