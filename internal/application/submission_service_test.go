package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradecheck/tradecheck/internal/application"
	"github.com/tradecheck/tradecheck/internal/domain"
)

type submissionFixture struct {
	vision  *fakeVision
	decoder *fakeDecoder
	market  *fakeMarket
	photos  *fakePhotos
	store   *memStore
}

func newFixture() *submissionFixture {
	return &submissionFixture{
		vision: &fakeVision{obs: scenarioObservation()},
		decoder: &fakeDecoder{identity: &domain.VehicleIdentity{
			Make: "Honda", Model: "Civic", Year: 2019, VIN: "2HGFC2F59KH000001",
		}},
		market: &fakeMarket{listings: linearListings()},
		photos: &fakePhotos{},
		store:  newMemStore(),
	}
}

func (f *submissionFixture) service() *application.SubmissionService {
	return application.NewSubmissionService(application.SubmissionDeps{
		Photos:          f.photos,
		Decoder:         f.decoder,
		Market:          f.market,
		Assessor:        newAssessor(f.vision),
		Store:           f.store,
		History:         f.store,
		Retry:           application.RetryOptions{Attempts: 3, InitialWait: time.Millisecond},
		Logger:          zap.NewNop(),
		ProfileRevision: "abc1234",
	})
}

func submission() domain.Submission {
	return domain.Submission{
		ID:          "sub-1",
		VIN:         "2HGFC2F59KH000001",
		Mileage:     30000,
		Description: "minor door ding",
		PhotoRefs:   []string{"front.jpg", "rear.png"},
	}
}

func TestSubmission_FullPipeline(t *testing.T) {
	f := newFixture()

	report, err := f.service().Process(context.Background(), submission())
	require.NoError(t, err)

	assert.Equal(t, "Honda", report.VehicleDetails.Make)
	assert.Equal(t, 2019, report.VehicleDetails.Year)
	assert.Equal(t, "$18,000 - $18,000", report.MarketValueRange)

	require.Len(t, f.market.queries, 1)
	assert.Equal(t, domain.MarketQuery{Year: 2019, Make: "Honda", Model: "Civic", Mileage: 30000}, f.market.queries[0])

	require.Len(t, f.vision.calls, 1)
	assert.Len(t, f.vision.calls[0].Photos, 2)

	saved, err := f.store.Load(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, report, saved)

	require.Len(t, f.store.entries, 1)
	e := f.store.entries[0]
	assert.Equal(t, "sub-1", e.SubmissionID)
	assert.Equal(t, "2019 Honda Civic", e.Vehicle)
	assert.Equal(t, 76, e.VisualScore)
	assert.Equal(t, "abc1234", e.ProfileRevision)
}

func TestSubmission_SkipsFailedPhotos(t *testing.T) {
	f := newFixture()
	f.photos.missing = map[string]bool{"front.jpg": true}

	_, err := f.service().Process(context.Background(), submission())
	require.NoError(t, err)
	assert.Len(t, f.vision.calls[0].Photos, 1)
}

func TestSubmission_NoPhotosFails(t *testing.T) {
	f := newFixture()
	f.photos.missing = map[string]bool{"front.jpg": true, "rear.png": true}

	_, err := f.service().Process(context.Background(), submission())
	assert.ErrorIs(t, err, domain.ErrNoPhotos)
	assert.Empty(t, f.vision.calls)
	assert.Empty(t, f.store.reports)
}

func TestSubmission_DecodeRetried(t *testing.T) {
	f := newFixture()
	f.decoder.failures = 2

	report, err := f.service().Process(context.Background(), submission())
	require.NoError(t, err)
	assert.Equal(t, 3, f.decoder.calls)
	assert.Equal(t, "Civic", report.VehicleDetails.Model)
}

func TestSubmission_EnrichmentFailuresTolerated(t *testing.T) {
	f := newFixture()
	f.decoder.failures = -1

	report, err := f.service().Process(context.Background(), submission())
	require.NoError(t, err)

	assert.Equal(t, 3, f.decoder.calls)
	assert.Empty(t, f.market.queries, "no market lookup without identity")
	assert.Equal(t, "Unknown", report.VehicleDetails.Make)
	assert.Equal(t, "N/A", report.TradeInValue)
	assert.Contains(t, f.store.reports, "sub-1")
}

func TestSubmission_MarketFailureTolerated(t *testing.T) {
	f := newFixture()
	f.market.err = errors.New("quota exceeded")

	report, err := f.service().Process(context.Background(), submission())
	require.NoError(t, err)

	assert.Len(t, f.market.queries, 3)
	assert.Equal(t, "Insufficient market comps to estimate trade-in value.", report.TradeInDescription)
}

func TestSubmission_CallerListingsSkipLookup(t *testing.T) {
	f := newFixture()
	sub := submission()
	sub.Listings = linearListings()

	_, err := f.service().Process(context.Background(), sub)
	require.NoError(t, err)
	assert.Empty(t, f.market.queries)
}

func TestSubmission_AssessFailureNotSaved(t *testing.T) {
	f := newFixture()
	f.vision.err = errors.New("model unavailable")

	_, err := f.service().Process(context.Background(), submission())
	assert.ErrorContains(t, err, "assessing submission sub-1")
	assert.Empty(t, f.store.reports)
	assert.Empty(t, f.store.entries)
}

func TestSubmission_SaveFailureReturned(t *testing.T) {
	f := newFixture()
	f.store.saveErr = errors.New("disk full")

	_, err := f.service().Process(context.Background(), submission())
	assert.ErrorContains(t, err, "saving assessment sub-1")
	assert.Empty(t, f.store.entries)
}
