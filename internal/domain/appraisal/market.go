package appraisal

import (
	"math"
	"sort"

	"github.com/tradecheck/tradecheck/internal/domain"
)

// ComputeMarketValues estimates the p25/p50/p75 price of the subject vehicle
// from comparable listings. Each listing price is first moved along the
// price-vs-mileage regression line to subjectMiles, then an IQR fence drops
// mispriced outliers. Fewer than p.MinComparables usable rows yields unknown
// values.
func ComputeMarketValues(p *domain.AssessmentProfile, listings []domain.Listing, subjectMiles float64) domain.MarketValues {
	miles, prices := usableRows(listings)
	if len(prices) == 0 || len(prices) < p.MinComparables {
		return domain.UnknownMarketValues()
	}

	reg := SimpleRegression(miles, prices)

	adjusted := make([]float64, len(prices))
	for i := range prices {
		adjusted[i] = prices[i] + reg.Slope*(subjectMiles-miles[i])
	}
	sort.Float64s(adjusted)

	clipped := clipOutliers(adjusted, p.FenceMultiplier)

	p25, ok25 := Percentile(clipped, 0.25)
	p50, ok50 := Percentile(clipped, 0.50)
	p75, ok75 := Percentile(clipped, 0.75)
	if !ok25 || !ok50 || !ok75 {
		return domain.UnknownMarketValues()
	}
	return domain.MarketValues{P25: domain.Known(p25), P50: domain.Known(p50), P75: domain.Known(p75)}
}

// usableRows keeps listings with a finite price and finite mileage.
func usableRows(listings []domain.Listing) (miles, prices []float64) {
	for _, l := range listings {
		if l.Price == nil || l.Miles == nil || !finite(*l.Price) || !finite(*l.Miles) {
			continue
		}
		miles = append(miles, *l.Miles)
		prices = append(prices, *l.Price)
	}
	return miles, prices
}

// clipOutliers keeps values inside [Q1 - k*IQR, Q3 + k*IQR]. sorted must be
// ascending; the result stays ascending.
func clipOutliers(sorted []float64, k float64) []float64 {
	q1, _ := Percentile(sorted, 0.25)
	q3, _ := Percentile(sorted, 0.75)
	iqr := q3 - q1
	lo, hi := q1-k*iqr, q3+k*iqr

	out := make([]float64, 0, len(sorted))
	for _, v := range sorted {
		if v >= lo && v <= hi {
			out = append(out, v)
		}
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
