package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradecheck/tradecheck/internal/domain"
)

func TestKnown_NonFiniteCollapsesToUnknown(t *testing.T) {
	assert.False(t, domain.Known(math.NaN()).IsKnown())
	assert.False(t, domain.Known(math.Inf(1)).IsKnown())
	v, ok := domain.Known(18000).Value()
	assert.True(t, ok)
	assert.Equal(t, 18000.0, v)
}

func TestAmount_JSON(t *testing.T) {
	data, err := json.Marshal(domain.MarketValues{P25: domain.Known(100), P50: domain.Unknown(), P75: domain.Known(300.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"p25":100,"p50":null,"p75":300.5}`, string(data))

	var mv domain.MarketValues
	require.NoError(t, json.Unmarshal(data, &mv))
	assert.True(t, mv.P25.IsKnown())
	assert.False(t, mv.P50.IsKnown())
}

func TestUnknownMarketValues(t *testing.T) {
	mv := domain.UnknownMarketValues()
	assert.False(t, mv.P25.IsKnown())
	assert.False(t, mv.P50.IsKnown())
	assert.False(t, mv.P75.IsKnown())
}
