package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurum/internal/contracts"
)

func TestRealPriceRebasesToLatestCPI(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	prices := contracts.Series{
		{Date: base, Value: 100},
		{Date: base.AddDate(0, 1, 0), Value: 110},
	}
	cpi := contracts.Series{
		{Date: base, Value: 100},
		{Date: base.AddDate(0, 1, 0), Value: 110},
	}

	real := RealPrice(prices, cpi)
	require.Len(t, real, 2)

	// Latest point reads in current money; the older one is inflated
	assert.InDelta(t, 110.0, real[0].Value, 0.001)
	assert.InDelta(t, 110.0, real[1].Value, 0.001)
}

func TestRealPriceForwardFillsMonthlyCPI(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Daily prices against a single monthly CPI reading
	prices := contracts.Series{
		{Date: base, Value: 200},
		{Date: base.AddDate(0, 0, 10), Value: 210},
		{Date: base.AddDate(0, 0, 20), Value: 220},
	}
	cpi := contracts.Series{{Date: base, Value: 120}}

	real := RealPrice(prices, cpi)
	require.Len(t, real, 3)
	for i := range prices {
		assert.InDelta(t, prices[i].Value, real[i].Value, 0.001)
	}
}

func TestRealPriceDropsDatesBeforeFirstCPI(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	prices := contracts.Series{
		{Date: base, Value: 200},
		{Date: base.AddDate(0, 1, 0), Value: 210},
	}
	cpi := contracts.Series{{Date: base.AddDate(0, 0, 15), Value: 100}}

	real := RealPrice(prices, cpi)
	require.Len(t, real, 1)
	assert.Equal(t, base.AddDate(0, 1, 0), real[0].Date)
}

func TestRollingCorrelation(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 4, 6, 8, 10}
	c := []float64{5, 4, 3, 2, 1}

	pos := RollingCorrelation(a, b, 3)
	require.Len(t, pos, 5)
	assert.True(t, math.IsNaN(pos[0]))
	assert.True(t, math.IsNaN(pos[1]))
	for i := 2; i < 5; i++ {
		assert.InDelta(t, 1.0, pos[i], 1e-9)
	}

	neg := RollingCorrelation(a, c, 3)
	for i := 2; i < 5; i++ {
		assert.InDelta(t, -1.0, neg[i], 1e-9)
	}
}

func TestRollingCorrelationFlatInput(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	flat := []float64{7, 7, 7, 7}

	out := RollingCorrelation(a, flat, 3)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestAnnualizedVolatility(t *testing.T) {
	// Constant returns give zero dispersion once the window fills
	values := []float64{100, 110, 121, 133.1, 146.41}

	out := AnnualizedVolatility(values, 3)
	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[2]))
	assert.InDelta(t, 0.0, out[3], 1e-9)
	assert.InDelta(t, 0.0, out[4], 1e-9)
}

func TestPctChange(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := contracts.Series{
		{Date: base, Value: 100},
		{Date: base.AddDate(0, 0, 1), Value: 125},
	}

	change, ok := PctChange(s)
	require.True(t, ok)
	assert.InDelta(t, 25.0, change, 1e-9)

	_, ok = PctChange(contracts.Series{{Date: base, Value: 100}})
	assert.False(t, ok)

	_, ok = PctChange(contracts.Series{{Date: base, Value: 0}, {Date: base, Value: 5}})
	assert.False(t, ok)
}
