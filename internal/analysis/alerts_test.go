package analysis

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/logger"
)

func dailySeries(values []float64) contracts.Series {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make(contracts.Series, len(values))
	for i, v := range values {
		out[i] = contracts.Point{Date: base.AddDate(0, 0, i), Value: v}
	}
	return out
}

func TestClassifyZScoreBands(t *testing.T) {
	tests := []struct {
		z    float64
		want contracts.AlertLevel
	}{
		{0.0, contracts.AlertNeutral},
		{1.0, contracts.AlertNeutral}, // boundary stays in the milder band
		{1.0001, contracts.AlertHigh},
		{2.0, contracts.AlertHigh},
		{2.0001, contracts.AlertCriticalHigh},
		{-1.0, contracts.AlertNeutral},
		{-1.0001, contracts.AlertLow},
		{-2.0, contracts.AlertLow},
		{-2.0001, contracts.AlertCriticalLow},
	}

	for _, tt := range tests {
		got := classifyZScore(tt.z)
		assert.Equal(t, tt.want, got.Level, "z %.4f", tt.z)
		assert.Equal(t, tt.z, got.ZScore)
	}
}

func TestCheckValuationInsufficientHistory(t *testing.T) {
	v := NewValuationAlertSystem(logger.NewWriter(io.Discard))

	_, err := v.CheckValuation(dailySeries(make([]float64, MinAlertObservations-1)))
	require.Error(t, err)
	assert.True(t, contracts.IsInsufficientData(err))

	var insufficient *contracts.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, MinAlertObservations, insufficient.Needed)
	assert.Equal(t, MinAlertObservations-1, insufficient.Got)
}

func TestCheckValuationFlatSeries(t *testing.T) {
	values := make([]float64, MinAlertObservations)
	for i := range values {
		values[i] = 300000
	}

	status, err := NewValuationAlertSystem(logger.NewWriter(io.Discard)).CheckValuation(dailySeries(values))
	require.NoError(t, err)
	assert.Equal(t, 0.0, status.ZScore) // zero dispersion is defined as fairly valued
	assert.Equal(t, contracts.AlertNeutral, status.Level)
}

func TestCheckValuationSpike(t *testing.T) {
	// A single large jump at the end of an otherwise flat window lands far
	// outside two standard deviations in either direction.
	flat := make([]float64, MinAlertObservations-1)
	for i := range flat {
		flat[i] = 300000
	}

	up := dailySeries(append(append([]float64{}, flat...), 400000))
	status, err := NewValuationAlertSystem(logger.NewWriter(io.Discard)).CheckValuation(up)
	require.NoError(t, err)
	assert.Equal(t, contracts.AlertCriticalHigh, status.Level)
	assert.Greater(t, status.ZScore, 2.0)

	down := dailySeries(append(append([]float64{}, flat...), 200000))
	status, err = NewValuationAlertSystem(logger.NewWriter(io.Discard)).CheckValuation(down)
	require.NoError(t, err)
	assert.Equal(t, contracts.AlertCriticalLow, status.Level)
	assert.Less(t, status.ZScore, -2.0)
}

func TestCheckValuationEffectiveWindow(t *testing.T) {
	// Old history outside the window must not affect the score: with a
	// window of 30, a wild prefix followed by a flat tail reads Neutral.
	values := make([]float64, 100)
	for i := 0; i < 70; i++ {
		values[i] = float64(1000000 * (i%2 + 1))
	}
	for i := 70; i < 100; i++ {
		values[i] = 300000
	}

	v := NewValuationAlertSystem(logger.NewWriter(io.Discard)).WithWindow(30)
	status, err := v.CheckValuation(dailySeries(values))
	require.NoError(t, err)
	assert.Equal(t, contracts.AlertNeutral, status.Level)
	assert.Equal(t, 0.0, status.ZScore)
}

func TestAnalyzeDriver(t *testing.T) {
	tests := []struct {
		commodity float64
		fx        float64
		want      contracts.PriceDriver
	}{
		{0.5, 2.0, contracts.DriverCurrency},
		{2.0, 0.5, contracts.DriverCommodity},
		{1.0, 1.2, contracts.DriverComposite},
		{-2.0, 0.5, contracts.DriverCommodity}, // direction is irrelevant, magnitude decides
		{0.0, 0.0, contracts.DriverComposite},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AnalyzeDriver(tt.commodity, tt.fx), "commodity %.1f fx %.1f", tt.commodity, tt.fx)
	}
}
