package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tradecheck/tradecheck/internal/domain"
	"github.com/tradecheck/tradecheck/internal/domain/appraisal"
)

const unknownField = "Unknown"

// AssessService orchestrates one assessment:
// vision → validate → flatten → condition → market → valuation → confidence → report.
// The vision call is the only blocking step and the only one that can fail.
type AssessService struct {
	vision  domain.VisionInterpreter
	profile *domain.AssessmentProfile
	logger  *zap.Logger
	now     func() time.Time
}

// AssessOption customizes an AssessService.
type AssessOption func(*AssessService)

// WithClock sets the clock used for the model-year fallback.
func WithClock(now func() time.Time) AssessOption {
	return func(s *AssessService) { s.now = now }
}

func NewAssessService(
	vision domain.VisionInterpreter,
	profile domain.AssessmentProfile,
	logger *zap.Logger,
	opts ...AssessOption,
) *AssessService {
	p := profile.Clone()
	s := &AssessService{
		vision:  vision,
		profile: &p,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile returns a copy of the profile in use.
func (s *AssessService) Profile() domain.AssessmentProfile {
	return s.profile.Clone()
}

func (s *AssessService) Assess(ctx context.Context, in domain.AssessmentInput) (*domain.AssessmentReport, error) {
	details := s.vehicleDetails(in)

	raw, err := s.vision.Interpret(ctx, domain.VisionRequest{
		Mileage:     in.Mileage,
		Description: in.Description,
		Photos:      in.Photos,
	})
	if err != nil {
		return nil, fmt.Errorf("interpreting photos: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("interpreting photos: %w: empty response", domain.ErrMalformedObservation)
	}

	obs, rejections, err := domain.ValidateObservation(*raw)
	for _, r := range rejections {
		s.logger.Warn("dropped finding", zap.Stringer("rejection", r))
	}
	if err != nil {
		return nil, fmt.Errorf("validating observation: %w", err)
	}

	findings := obs.Findings()
	condition := appraisal.ScoreCondition(s.profile, findings)
	market := appraisal.ComputeMarketValues(s.profile, in.MarketComparables, float64(in.Mileage))
	valuation := appraisal.SynthesizeValuation(s.profile, market, findings, in.Mileage)
	confidence := appraisal.BlendConfidence(s.profile, findings, obs.Coverage)

	s.logger.Debug("assessment computed",
		zap.String("vin", details.VIN),
		zap.Int("findings", len(findings)),
		zap.Int("comparables", len(in.MarketComparables)),
		zap.Int("visual_score", condition.Score),
		zap.Int("ai_confidence", confidence.Score),
	)

	return &domain.AssessmentReport{
		VehicleDetails:          details,
		VisualScore:             condition.Score,
		MaxScore:                domain.MaxScore,
		ScoreDescription:        condition.Description,
		ConditionIssues:         domain.ToConditionIssues(findings),
		MarketValueRange:        valuation.MarketValueRange,
		TradeInValue:            valuation.TradeInValue,
		TradeInDescription:      valuation.TradeInDescription,
		AIConfidence:            confidence.Score,
		AIConfidenceDescription: confidence.Description,
	}, nil
}

// vehicleDetails applies the fallback policy: Unknown make/model, the
// current calendar year, and the caller VIN ahead of the decoded one.
func (s *AssessService) vehicleDetails(in domain.AssessmentInput) domain.VehicleDetails {
	d := domain.VehicleDetails{
		Make:    unknownField,
		Model:   unknownField,
		Year:    s.now().Year(),
		Mileage: strconv.Itoa(in.Mileage),
	}

	vin := strings.TrimSpace(in.VIN)
	if id := in.VehicleIdentity; id != nil {
		if m := strings.TrimSpace(id.Make); m != "" {
			d.Make = m
		}
		if m := strings.TrimSpace(id.Model); m != "" {
			d.Model = m
		}
		if id.Year > 0 {
			d.Year = id.Year
		}
		if vin == "" {
			vin = strings.TrimSpace(id.VIN)
		}
	}
	if vin == "" {
		vin = unknownField
	}
	d.VIN = vin
	return d
}
