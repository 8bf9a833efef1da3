package appraisal

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradecheck/tradecheck/internal/domain"
)

func price(v float64) *float64 { return &v }

func listings(miles, prices []float64) []domain.Listing {
	out := make([]domain.Listing, len(miles))
	for i := range miles {
		out[i] = domain.Listing{Price: price(prices[i]), Miles: price(miles[i])}
	}
	return out
}

func assertUnknown(t *testing.T, mv domain.MarketValues) {
	t.Helper()
	assert.False(t, mv.P25.IsKnown(), "p25")
	assert.False(t, mv.P50.IsKnown(), "p50")
	assert.False(t, mv.P75.IsKnown(), "p75")
}

func TestComputeMarketValues_InsufficientData(t *testing.T) {
	p := domain.DefaultProfile()

	assertUnknown(t, ComputeMarketValues(&p, nil, 30000))
	assertUnknown(t, ComputeMarketValues(&p, []domain.Listing{}, 30000))

	noPrices := []domain.Listing{{Miles: price(1000)}, {Miles: price(2000)}, {Miles: price(3000)}}
	assertUnknown(t, ComputeMarketValues(&p, noPrices, 30000))

	two := listings([]float64{1000, 2000}, []float64{20000, 19000})
	assertUnknown(t, ComputeMarketValues(&p, two, 30000))
}

func TestComputeMarketValues_InvalidRowsDoNotCount(t *testing.T) {
	p := domain.DefaultProfile()
	rows := listings([]float64{1000, 2000}, []float64{20000, 19000})
	rows = append(rows,
		domain.Listing{Miles: price(3000)},
		domain.Listing{Price: price(math.NaN()), Miles: price(4000)},
		domain.Listing{Price: price(18000), Miles: price(math.NaN())},
		domain.Listing{Price: price(18000)},
		domain.Listing{Price: price(math.Inf(1)), Miles: price(5000)},
	)

	assertUnknown(t, ComputeMarketValues(&p, rows, 30000))
}

func TestComputeMarketValues_DecodedListingWithoutMiles(t *testing.T) {
	p := domain.DefaultProfile()
	var rows []domain.Listing
	require.NoError(t, json.Unmarshal([]byte(`[
		{"price":20000,"miles":10000},
		{"price":18000,"miles":30000},
		{"price":5000}]`), &rows))
	require.Len(t, rows, 3)
	assert.Nil(t, rows[2].Miles)

	assertUnknown(t, ComputeMarketValues(&p, rows, 30000))
}

func TestComputeMarketValues_MileageAdjustmentRecoversLine(t *testing.T) {
	p := domain.DefaultProfile()
	miles := []float64{10000, 20000, 30000, 40000, 50000}
	prices := []float64{20000, 19000, 18000, 17000, 16000}

	mv := ComputeMarketValues(&p, listings(miles, prices), 30000)

	for name, a := range map[string]domain.Amount{"p25": mv.P25, "p50": mv.P50, "p75": mv.P75} {
		v, ok := a.Value()
		require.True(t, ok, name)
		assert.InDelta(t, 18000, v, 0.01, name)
	}
	assert.Equal(t, "$18,000", FormatUSD(mv.P25))
	assert.Equal(t, "$18,000", FormatUSD(mv.P75))
}

func TestComputeMarketValues_ExactRecoveryAtOtherMileage(t *testing.T) {
	p := domain.DefaultProfile()
	// price = 30000 - 0.08*miles, no noise
	miles := []float64{5000, 25000, 45000, 65000, 85000, 105000}
	prices := make([]float64, len(miles))
	for i, m := range miles {
		prices[i] = 30000 - 0.08*m
	}

	mv := ComputeMarketValues(&p, listings(miles, prices), 60000)

	want := 30000 - 0.08*60000
	for _, a := range []domain.Amount{mv.P25, mv.P50, mv.P75} {
		v, ok := a.Value()
		require.True(t, ok)
		assert.InDelta(t, want, v, 0.01)
	}
}

func TestComputeMarketValues_ClipsExtremeOutlier(t *testing.T) {
	p := domain.DefaultProfile()
	// Identical mileage: slope is zero and prices pass through unadjusted.
	miles := []float64{40000, 40000, 40000, 40000, 40000, 40000, 40000, 40000}
	prices := []float64{18000, 18200, 17800, 18100, 17900, 18050, 17950, 180000}

	mv := ComputeMarketValues(&p, listings(miles, prices), 40000)

	p75, ok := mv.P75.Value()
	require.True(t, ok)
	assert.Less(t, p75, 19000.0, "outlier should not lift p75")

	p50, _ := mv.P50.Value()
	assert.InDelta(t, 18000, p50, 100)
}

func TestComputeMarketValues_MinComparablesFromProfile(t *testing.T) {
	p := domain.DefaultProfile()
	p.MinComparables = 6
	miles := []float64{10000, 20000, 30000, 40000, 50000}
	prices := []float64{20000, 19000, 18000, 17000, 16000}

	assertUnknown(t, ComputeMarketValues(&p, listings(miles, prices), 30000))
}

func TestClipOutliers_KeepsOrder(t *testing.T) {
	out := clipOutliers([]float64{1, 2, 3, 4, 100}, 1.5)
	assert.Equal(t, []float64{1, 2, 3, 4}, out)
}
