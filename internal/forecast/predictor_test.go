package forecast

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/logger"
)

func linearHistory(n int, start, step float64) contracts.Series {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make(contracts.Series, n)
	for i := 0; i < n; i++ {
		out[i] = contracts.Point{Date: base.AddDate(0, 0, i), Value: start + step*float64(i)}
	}
	return out
}

func TestTrainRequiresMinimumHistory(t *testing.T) {
	p := NewPredictor(linearHistory(MinTrainObservations-1, 100, 1), logger.NewWriter(io.Discard))

	err := p.Train()
	require.Error(t, err)
	assert.True(t, contracts.IsInsufficientData(err))

	var insufficient *contracts.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, MinTrainObservations, insufficient.Needed)
	assert.Equal(t, MinTrainObservations-1, insufficient.Got)

	// One more observation is enough
	p = NewPredictor(linearHistory(MinTrainObservations, 100, 1), logger.NewWriter(io.Discard))
	require.NoError(t, p.Train())
}

func TestForecastExtendsLinearTrend(t *testing.T) {
	history := linearHistory(60, 100000, 500)
	p := NewPredictor(history, logger.NewWriter(io.Discard))

	result, err := p.Forecast(10)
	require.NoError(t, err)
	require.Len(t, result.Points, 70)
	assert.Equal(t, 10, result.Horizon)

	// A perfectly linear input leaves no residual: fitted history matches
	// the data and the band collapses onto the point estimate.
	for i, pt := range history {
		assert.InDelta(t, pt.Value, result.Points[i].PointEstimate, 0.01)
		assert.InDelta(t, result.Points[i].PointEstimate, result.Points[i].LowerBound, 0.01)
		assert.InDelta(t, result.Points[i].PointEstimate, result.Points[i].UpperBound, 0.01)
	}

	// Projection continues the slope day by day
	last := history[len(history)-1]
	for d := 1; d <= 10; d++ {
		got := result.Points[59+d]
		assert.Equal(t, last.Date.AddDate(0, 0, d), got.Date)
		assert.InDelta(t, last.Value+500*float64(d), got.PointEstimate, 0.01)
	}
}

func TestForecastDefaultHorizon(t *testing.T) {
	p := NewPredictor(linearHistory(40, 100, 1), logger.NewWriter(io.Discard))

	result, err := p.Forecast(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultHorizon, result.Horizon)
	assert.Len(t, result.Points, 40+DefaultHorizon)
}

func TestForecastNoisyBandIsSymmetric(t *testing.T) {
	history := linearHistory(60, 100000, 500)
	for i := range history {
		if i%2 == 0 {
			history[i].Value += 300
		} else {
			history[i].Value -= 300
		}
	}

	result, err := NewPredictor(history, logger.NewWriter(io.Discard)).Forecast(5)
	require.NoError(t, err)

	for _, pt := range result.Points {
		assert.Less(t, pt.LowerBound, pt.PointEstimate)
		assert.Greater(t, pt.UpperBound, pt.PointEstimate)
		assert.InDelta(t, pt.PointEstimate-pt.LowerBound, pt.UpperBound-pt.PointEstimate, 1e-9)
	}
}

func TestMetrics(t *testing.T) {
	up, err := NewPredictor(linearHistory(60, 100000, 500), logger.NewWriter(io.Discard)).Forecast(30)
	require.NoError(t, err)

	m, err := Metrics(up)
	require.NoError(t, err)
	assert.Equal(t, contracts.TrendUp, m.Trend)
	assert.Greater(t, m.FutureEstimated, m.CurrentEstimated)
	assert.InDelta(t, (m.FutureEstimated-m.CurrentEstimated)/m.CurrentEstimated*100, m.ChangePct, 1e-9)

	down, err := NewPredictor(linearHistory(60, 100000, -500), logger.NewWriter(io.Discard)).Forecast(30)
	require.NoError(t, err)

	m, err = Metrics(down)
	require.NoError(t, err)
	assert.Equal(t, contracts.TrendDown, m.Trend)

	// A flat projection is still labeled UP
	flat, err := NewPredictor(linearHistory(60, 100000, 0), logger.NewWriter(io.Discard)).Forecast(30)
	require.NoError(t, err)

	m, err = Metrics(flat)
	require.NoError(t, err)
	assert.Equal(t, contracts.TrendUp, m.Trend)
	assert.InDelta(t, 0.0, m.ChangePct, 1e-9)
}

func TestMetricsNoForecast(t *testing.T) {
	_, err := Metrics(nil)
	assert.ErrorIs(t, err, contracts.ErrNoData)
}
