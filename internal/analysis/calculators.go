package analysis

import (
	"math"

	"github.com/wonny/aurum/internal/contracts"
)

// TradingDaysPerYear is used to annualize daily volatility
const TradingDaysPerYear = 252

// RealPrice deflates a nominal price series by a (typically monthly) CPI
// series: real = nominal / cpi * baseCPI, rebased to the most recent CPI so
// the latest value reads in current money.
//
// The CPI series is forward-filled onto the price dates. With no CPI data
// the nominal series is returned unchanged.
func RealPrice(prices contracts.Series, cpi contracts.Series) contracts.Series {
	if len(prices) == 0 || len(cpi) == 0 {
		return prices
	}

	cpi.Sort()
	baseCPI := cpi[len(cpi)-1].Value

	out := make(contracts.Series, 0, len(prices))
	ci := -1
	for _, p := range prices {
		// Advance to the last CPI reading at or before this date (ffill)
		for ci+1 < len(cpi) && !cpi[ci+1].Date.After(p.Date) {
			ci++
		}
		if ci < 0 || cpi[ci].Value == 0 {
			continue // no CPI known yet for this date
		}

		out = append(out, contracts.Point{
			Date:  p.Date,
			Value: p.Value / cpi[ci].Value * baseCPI,
		})
	}
	return out
}

// RollingCorrelation computes the Pearson correlation of two aligned series
// over a trailing window. Entries before the window fills are NaN.
func RollingCorrelation(a, b []float64, window int) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	for i := window - 1; i < n; i++ {
		out[i] = correlation(a[i-window+1:i+1], b[i-window+1:i+1])
	}
	return out
}

// AnnualizedVolatility computes the rolling standard deviation of daily
// returns, annualized by sqrt(252). Entries before the window fills are NaN.
func AnnualizedVolatility(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}

	if len(values) < 2 {
		return out
	}

	returns := make([]float64, len(values))
	returns[0] = math.NaN()
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			returns[i] = math.NaN()
			continue
		}
		returns[i] = values[i]/values[i-1] - 1
	}

	for i := window; i < len(values); i++ {
		_, std := meanStd(returns[i-window+1 : i+1])
		out[i] = std * math.Sqrt(TradingDaysPerYear)
	}
	return out
}

// correlation is the Pearson correlation of two equal-length slices
func correlation(a, b []float64) float64 {
	meanA, stdA := meanStd(a)
	meanB, stdB := meanStd(b)
	if stdA == 0 || stdB == 0 {
		return math.NaN()
	}

	var cov float64
	for i := range a {
		cov += (a[i] - meanA) * (b[i] - meanB)
	}
	cov /= float64(len(a) - 1)

	return cov / (stdA * stdB)
}

// PctChange returns the percentage change between the first and last values
// of a series; ok is false when undefined.
func PctChange(series contracts.Series) (float64, bool) {
	if len(series) < 2 || series[0].Value == 0 {
		return 0, false
	}
	return (series[len(series)-1].Value - series[0].Value) / series[0].Value * 100, true
}
