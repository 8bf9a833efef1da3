package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tradecheck/tradecheck/internal/domain"
)

type fakeVision struct {
	obs   *domain.VisualObservation
	err   error
	calls []domain.VisionRequest
}

func (f *fakeVision) Interpret(_ context.Context, req domain.VisionRequest) (*domain.VisualObservation, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.obs, nil
}

type fakeDecoder struct {
	identity *domain.VehicleIdentity
	failures int // calls that fail before succeeding; -1 fails forever
	calls    int
}

func (f *fakeDecoder) Decode(_ context.Context, vin string) (*domain.VehicleIdentity, error) {
	f.calls++
	if f.failures < 0 || f.calls <= f.failures {
		return nil, fmt.Errorf("decode %s: upstream unavailable", vin)
	}
	return f.identity, nil
}

type fakeMarket struct {
	listings []domain.Listing
	err      error
	queries  []domain.MarketQuery
}

func (f *fakeMarket) Comparables(_ context.Context, q domain.MarketQuery) ([]domain.Listing, error) {
	f.queries = append(f.queries, q)
	return f.listings, f.err
}

type fakePhotos struct {
	missing map[string]bool
}

func (f *fakePhotos) Load(_ context.Context, ref string) (domain.Photo, error) {
	if f.missing[ref] {
		return domain.Photo{}, errors.New("not found: " + ref)
	}
	return domain.InlinePhoto([]byte(ref), "image/png"), nil
}

type memStore struct {
	mu      sync.Mutex
	reports map[string]*domain.AssessmentReport
	entries []domain.ReportEntry
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{reports: map[string]*domain.AssessmentReport{}}
}

func (m *memStore) Save(_ context.Context, id string, r *domain.AssessmentReport) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[id] = r
	return nil
}

func (m *memStore) Load(_ context.Context, id string) (*domain.AssessmentReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return r, nil
}

func (m *memStore) Record(e domain.ReportEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memStore) Entries() ([]domain.ReportEntry, error) { return m.entries, nil }

type fakeLoader struct {
	cfg domain.ProfileConfig
	err error
}

func (f fakeLoader) Load(string) (domain.ProfileConfig, error) { return f.cfg, f.err }

func finding(key domain.IssueKey, severity int, confidence float64) domain.Finding {
	return domain.Finding{
		IssueKey:    key,
		Title:       "Title for " + string(key),
		Description: "Visible " + string(key),
		Icon:        "AlertTriangle",
		Severity:    severity,
		Confidence:  confidence,
	}
}

// scenarioObservation is two exterior findings with partial coverage.
func scenarioObservation() *domain.VisualObservation {
	return &domain.VisualObservation{
		Observations: domain.Observations{
			Exterior: []domain.Finding{
				finding(domain.IssueDents, 2, 0.9),
				finding(domain.IssueExteriorScratches, 1, 0.7),
			},
		},
		Cleanliness:    domain.CleanlinessAverage,
		OverallComment: "Daily driver with light cosmetic wear.",
		Coverage: domain.Coverage{
			Angles:            []domain.Angle{domain.AngleFront, domain.AngleRear, domain.AngleInterior},
			PhotoCount:        3,
			PhotoQualityScore: 0.8,
		},
	}
}

func linearListings() []domain.Listing {
	miles := []float64{10000, 20000, 30000, 40000, 50000}
	prices := []float64{20000, 19000, 18000, 17000, 16000}
	out := make([]domain.Listing, len(miles))
	for i := range miles {
		p, m := prices[i], miles[i]
		out[i] = domain.Listing{Price: &p, Miles: &m}
	}
	return out
}
