package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tradecheck/tradecheck/internal/domain"
)

// SubmissionDeps wires the collaborators of a SubmissionService. Decoder,
// Market and History are optional.
type SubmissionDeps struct {
	Photos   domain.PhotoSource
	Decoder  domain.VINDecoder
	Market   domain.MarketLookup
	Assessor *AssessService
	Store    domain.ReportStore
	History  domain.ReportHistory
	Retry    RetryOptions
	Logger   *zap.Logger

	// ProfileRevision is stamped on history entries.
	ProfileRevision string
}

// SubmissionService runs a stored submission end to end:
// load photos → decode VIN → look up comparables → assess → save.
// Enrichment failures degrade the report; photo, assessment and save failures
// fail the submission.
type SubmissionService struct {
	deps SubmissionDeps
	now  func() time.Time
}

func NewSubmissionService(deps SubmissionDeps) *SubmissionService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Retry.Attempts == 0 {
		deps.Retry = DefaultRetry
	}
	return &SubmissionService{deps: deps, now: time.Now}
}

func (s *SubmissionService) Process(ctx context.Context, sub domain.Submission) (*domain.AssessmentReport, error) {
	log := s.deps.Logger.With(zap.String("submission_id", sub.ID))
	log.Info("starting assessment", zap.Int("photo_refs", len(sub.PhotoRefs)))

	photos, err := s.loadPhotos(ctx, log, sub.PhotoRefs)
	if err != nil {
		return nil, err
	}

	identity := s.decode(ctx, log, sub.VIN)

	listings := sub.Listings
	if len(listings) == 0 {
		listings = s.comparables(ctx, log, identity, sub.Mileage)
	}

	report, err := s.deps.Assessor.Assess(ctx, domain.AssessmentInput{
		Mileage:           sub.Mileage,
		Description:       sub.Description,
		Photos:            photos,
		VIN:               sub.VIN,
		MarketComparables: listings,
		VehicleIdentity:   identity,
	})
	if err != nil {
		return nil, fmt.Errorf("assessing submission %s: %w", sub.ID, err)
	}

	if err := s.deps.Store.Save(ctx, sub.ID, report); err != nil {
		return nil, fmt.Errorf("saving assessment %s: %w", sub.ID, err)
	}

	if s.deps.History != nil {
		if err := s.deps.History.Record(s.entry(sub.ID, report)); err != nil {
			log.Warn("recording history failed", zap.Error(err))
		}
	}

	log.Info("assessment completed",
		zap.Int("visual_score", report.VisualScore),
		zap.String("trade_in", report.TradeInValue),
		zap.Int("ai_confidence", report.AIConfidence),
	)
	return report, nil
}

// loadPhotos skips references that fail to load. Zero loaded photos is fatal.
func (s *SubmissionService) loadPhotos(ctx context.Context, log *zap.Logger, refs []string) ([]domain.Photo, error) {
	photos := make([]domain.Photo, 0, len(refs))
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := s.deps.Photos.Load(ctx, ref)
		if err != nil {
			log.Warn("photo load failed", zap.String("ref", ref), zap.Error(err))
			continue
		}
		photos = append(photos, p)
	}
	if len(photos) == 0 {
		return nil, fmt.Errorf("loading %d photo refs: %w", len(refs), domain.ErrNoPhotos)
	}
	return photos, nil
}

func (s *SubmissionService) decode(ctx context.Context, log *zap.Logger, vin string) *domain.VehicleIdentity {
	vin = strings.TrimSpace(vin)
	if s.deps.Decoder == nil || vin == "" {
		return nil
	}
	id, err := Retry(ctx, s.deps.Retry, func(ctx context.Context) (*domain.VehicleIdentity, error) {
		return s.deps.Decoder.Decode(ctx, vin)
	})
	if err != nil {
		log.Warn("vin decode failed", zap.String("vin", vin), zap.Error(err))
		return nil
	}
	return id
}

// comparables needs a decoded make and model to query the market.
func (s *SubmissionService) comparables(ctx context.Context, log *zap.Logger, id *domain.VehicleIdentity, mileage int) []domain.Listing {
	if s.deps.Market == nil || id == nil || id.Make == "" || id.Model == "" {
		return nil
	}
	q := domain.MarketQuery{Year: id.Year, Make: id.Make, Model: id.Model, Mileage: mileage}
	listings, err := Retry(ctx, s.deps.Retry, func(ctx context.Context) ([]domain.Listing, error) {
		return s.deps.Market.Comparables(ctx, q)
	})
	if err != nil {
		log.Warn("market lookup failed", zap.Error(err))
		return nil
	}
	log.Info("market data fetched", zap.Int("listings", len(listings)))
	return listings
}

func (s *SubmissionService) entry(id string, r *domain.AssessmentReport) domain.ReportEntry {
	v := r.VehicleDetails
	return domain.ReportEntry{
		SubmissionID:    id,
		Timestamp:       s.now().UTC().Format(time.RFC3339),
		Vehicle:         fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model),
		VisualScore:     r.VisualScore,
		TradeInValue:    r.TradeInValue,
		AIConfidence:    r.AIConfidence,
		ProfileRevision: s.deps.ProfileRevision,
	}
}
