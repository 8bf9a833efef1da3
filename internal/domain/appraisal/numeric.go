// Package appraisal holds the deterministic stages of a vehicle assessment:
// market value estimation, condition scoring, valuation and confidence
// blending. Every function is pure and safe for concurrent use.
package appraisal

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tradecheck/tradecheck/internal/domain"
)

// Clamp saturates n into [lo, hi].
func Clamp[T int | float64](n, lo, hi T) T {
	return max(lo, min(hi, n))
}

// Regression is an ordinary least-squares line y = Slope*x + Intercept.
type Regression struct {
	Slope     float64
	Intercept float64
}

// SimpleRegression fits y against x. Slope is 0 for empty input or when x has
// no variance.
func SimpleRegression(x, y []float64) Regression {
	n := min(len(x), len(y))
	if n == 0 {
		return Regression{}
	}

	var sx, sy float64
	for i := 0; i < n; i++ {
		sx += x[i]
		sy += y[i]
	}
	mx, my := sx/float64(n), sy/float64(n)

	var cov, varx float64
	for i := 0; i < n; i++ {
		dx := x[i] - mx
		cov += dx * (y[i] - my)
		varx += dx * dx
	}

	var slope float64
	if varx != 0 {
		slope = cov / varx
	}
	return Regression{Slope: slope, Intercept: my - slope*mx}
}

// Percentile interpolates linearly on an ascending slice. ok is false for
// empty input.
func Percentile(sorted []float64, p float64) (v float64, ok bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}
	p = Clamp(p, 0, 1)

	pos := float64(n-1) * p
	base := int(math.Floor(pos))
	rest := pos - float64(base)
	if base+1 < n {
		return sorted[base] + (sorted[base+1]-sorted[base])*rest, true
	}
	return sorted[base], true
}

// roundHalfUp matches the rounding used for every displayed dollar figure.
func roundHalfUp(n float64) float64 {
	return math.Floor(n + 0.5)
}

// groupThousands renders a whole number with US thousands separators.
func groupThousands(n float64) string {
	return message.NewPrinter(language.AmericanEnglish).Sprintf("%.0f", roundHalfUp(n))
}

// NumberToUSD formats n as whole US dollars, or N/A when n is not a positive
// finite number.
func NumberToUSD(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return domain.NotAvailable
	}
	return "$" + groupThousands(n)
}

// FormatUSD formats a known amount, or N/A.
func FormatUSD(a domain.Amount) string {
	v, ok := a.Value()
	if !ok {
		return domain.NotAvailable
	}
	return NumberToUSD(v)
}
