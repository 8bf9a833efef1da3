package application

import (
	"fmt"

	"github.com/tradecheck/tradecheck/internal/domain"
	"github.com/tradecheck/tradecheck/internal/domain/appraisal"
)

// ScoreService runs the offline stages against an already interpreted
// observation or a listings file: validate → condition → confidence, or the
// market estimator alone. It never calls the vision model.
type ScoreService struct {
	configLoader domain.ProfileLoader
}

func NewScoreService(configLoader domain.ProfileLoader) *ScoreService {
	return &ScoreService{configLoader: configLoader}
}

// ObservationScore is the offline result for one observation.
type ObservationScore struct {
	Condition     appraisal.ConditionScore `json:"condition"`
	Confidence    appraisal.Confidence     `json:"confidence"`
	Grade         string                   `json:"grade"`
	Issues        []domain.ConditionIssue  `json:"condition_issues"`
	Rejections    []domain.Rejection       `json:"rejections,omitempty"`
	ReconCost     float64                  `json:"recon_cost"`
	AppliedConfig *domain.ProfileConfig    `json:"applied_config,omitempty"`
}

// MarketEstimate is the offline result for a set of comparables.
type MarketEstimate struct {
	Values        domain.MarketValues   `json:"values"`
	Range         string                `json:"market_value_range"`
	Listings      int                   `json:"listings"`
	SubjectMiles  int                   `json:"subject_miles"`
	AppliedConfig *domain.ProfileConfig `json:"applied_config,omitempty"`
}

// LoadProfile reads overrides from dir and builds the profile.
func (s *ScoreService) LoadProfile(dir string) (domain.AssessmentProfile, *domain.ProfileConfig, error) {
	cfg, err := s.configLoader.Load(dir)
	if err != nil {
		return domain.AssessmentProfile{}, nil, fmt.Errorf("loading config: %w", err)
	}
	var applied *domain.ProfileConfig
	if !cfg.IsDefault() {
		applied = &cfg
	}
	return BuildProfile(cfg), applied, nil
}

func (s *ScoreService) ScoreObservation(dir string, obs domain.VisualObservation) (*ObservationScore, error) {
	profile, applied, err := s.LoadProfile(dir)
	if err != nil {
		return nil, err
	}

	clean, rejections, err := domain.ValidateObservation(obs)
	if err != nil {
		return nil, fmt.Errorf("validating observation: %w", err)
	}

	findings := clean.Findings()
	condition := appraisal.ScoreCondition(&profile, findings)
	return &ObservationScore{
		Condition:     condition,
		Confidence:    appraisal.BlendConfidence(&profile, findings, clean.Coverage),
		Grade:         appraisal.Grade(condition.Score),
		Issues:        domain.ToConditionIssues(findings),
		Rejections:    rejections,
		ReconCost:     appraisal.ReconCost(&profile, findings),
		AppliedConfig: applied,
	}, nil
}

func (s *ScoreService) EstimateMarket(dir string, listings []domain.Listing, miles int) (*MarketEstimate, error) {
	profile, applied, err := s.LoadProfile(dir)
	if err != nil {
		return nil, err
	}

	mv := appraisal.ComputeMarketValues(&profile, listings, float64(miles))
	rng := domain.NotAvailable
	if mv.P25.IsKnown() && mv.P75.IsKnown() {
		rng = appraisal.FormatUSD(mv.P25) + " - " + appraisal.FormatUSD(mv.P75)
	}
	return &MarketEstimate{
		Values:        mv,
		Range:         rng,
		Listings:      len(listings),
		SubjectMiles:  miles,
		AppliedConfig: applied,
	}, nil
}
