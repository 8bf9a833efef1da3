package domain

import (
	"encoding/json"
	"math"
)

// Amount is a dollar value that may be unknown. Unknown replaces NaN so that
// "no estimate" is checked explicitly before formatting.
type Amount struct {
	value float64
	known bool
}

// Known wraps v. Non-finite values collapse to Unknown.
func Known(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Amount{value: v, known: true}
}

// Unknown is the "insufficient data" amount.
func Unknown() Amount { return Amount{} }

// Value returns the amount and whether it is known.
func (a Amount) Value() (float64, bool) { return a.value, a.known }

func (a Amount) IsKnown() bool { return a.known }

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.known {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Unknown()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Known(v)
	return nil
}

// MarketValues is the robust price distribution of comparables adjusted to
// the subject mileage.
type MarketValues struct {
	P25 Amount `json:"p25"`
	P50 Amount `json:"p50"`
	P75 Amount `json:"p75"`
}

// UnknownMarketValues is returned when comparables are absent or insufficient.
func UnknownMarketValues() MarketValues {
	return MarketValues{P25: Unknown(), P50: Unknown(), P75: Unknown()}
}
