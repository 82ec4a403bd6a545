package contracts

import "time"

// ForecastPoint is one projected value with its confidence band
type ForecastPoint struct {
	Date          time.Time `json:"date"`
	PointEstimate float64   `json:"point_estimate"`
	LowerBound    float64   `json:"lower_bound"`
	UpperBound    float64   `json:"upper_bound"`
}

// ForecastResult is the fitted history plus the forward projection.
// Points are ordered by date; the first len-Horizon entries cover the
// historical fit, the remainder the forward horizon.
type ForecastResult struct {
	Points  []ForecastPoint `json:"points"`
	Horizon int             `json:"horizon"`
}

// Trend direction of a forecast
const (
	TrendUp   = "UP"
	TrendDown = "DOWN"
)

// ForecastMetrics summarizes a forecast into decision-ready numbers:
// the estimate at the last historical index, at the horizon end, and the
// percentage change between them.
type ForecastMetrics struct {
	CurrentEstimated float64 `json:"current_estimated"`
	FutureEstimated  float64 `json:"future_estimated"`
	ChangePct        float64 `json:"change_pct"`
	Trend            string  `json:"trend"`
}
