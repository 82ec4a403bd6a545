package forecast

import (
	"math"
	"time"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/logger"
)

const (
	// MinTrainObservations is the minimum history before a fit is attempted
	MinTrainObservations = 30
	// DefaultHorizon is the forward projection length in days
	DefaultHorizon = 30
	// confidenceZ is the normal quantile for the ~95% band
	confidenceZ = 1.96
)

// Predictor fits a linear trend plus weekday seasonal components to a
// daily price history and projects it forward. The model is refit from
// scratch on every Train call; nothing is persisted.
// ⭐ SSOT: 가격 예측은 여기서만
type Predictor struct {
	history contracts.Series
	logger  *logger.Logger

	trained     bool
	intercept   float64
	slope       float64
	seasonal    [7]float64
	residualStd float64
}

// NewPredictor creates a predictor over the given daily history
func NewPredictor(history contracts.Series, log *logger.Logger) *Predictor {
	return &Predictor{history: history, logger: log}
}

// Train fits trend and seasonality by least squares.
//
// The regressor is the day offset from the first observation, so calendar
// gaps (holidays, missing scrapes) do not distort the slope. Seasonal
// components are the mean detrended residual per weekday.
func (p *Predictor) Train() error {
	if len(p.history) < MinTrainObservations {
		return &contracts.InsufficientDataError{
			Stage:  "forecast training",
			Needed: MinTrainObservations,
			Got:    len(p.history),
		}
	}

	p.history.Sort()
	start := p.history[0].Date

	xs := make([]float64, len(p.history))
	ys := make([]float64, len(p.history))
	for i, pt := range p.history {
		xs[i] = dayOffset(start, pt.Date)
		ys[i] = pt.Value
	}

	p.intercept, p.slope = fitLine(xs, ys)

	// Weekday effects from the detrended residuals
	var sums, counts [7]float64
	for i, pt := range p.history {
		r := ys[i] - (p.intercept + p.slope*xs[i])
		wd := int(pt.Date.Weekday())
		sums[wd] += r
		counts[wd]++
	}
	for wd := range p.seasonal {
		if counts[wd] > 0 {
			p.seasonal[wd] = sums[wd] / counts[wd]
		}
	}

	// Dispersion of what trend + seasonality leave unexplained
	var sq float64
	for i, pt := range p.history {
		r := ys[i] - p.fitted(xs[i], pt.Date)
		sq += r * r
	}
	if len(p.history) > 1 {
		p.residualStd = math.Sqrt(sq / float64(len(p.history)-1))
	}

	p.trained = true

	p.logger.WithFields(map[string]interface{}{
		"observations": len(p.history),
		"slope":        p.slope,
		"residual_std": p.residualStd,
	}).Debug("Forecast model trained")

	return nil
}

// Forecast returns the fitted history plus a forward projection of
// horizon days. A non-positive horizon falls back to DefaultHorizon.
func (p *Predictor) Forecast(horizon int) (*contracts.ForecastResult, error) {
	if !p.trained {
		if err := p.Train(); err != nil {
			return nil, err
		}
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	start := p.history[0].Date
	last := p.history[len(p.history)-1].Date
	band := confidenceZ * p.residualStd

	points := make([]contracts.ForecastPoint, 0, len(p.history)+horizon)
	for _, pt := range p.history {
		points = append(points, p.point(start, pt.Date, band))
	}
	for d := 1; d <= horizon; d++ {
		points = append(points, p.point(start, last.AddDate(0, 0, d), band))
	}

	return &contracts.ForecastResult{Points: points, Horizon: horizon}, nil
}

// Metrics condenses a forecast into an estimate for now, an estimate at
// the horizon end and the change between them. A flat projection counts
// as UP.
func Metrics(result *contracts.ForecastResult) (*contracts.ForecastMetrics, error) {
	if result == nil || len(result.Points) <= result.Horizon {
		return nil, contracts.ErrNoData
	}

	current := result.Points[len(result.Points)-1-result.Horizon].PointEstimate
	future := result.Points[len(result.Points)-1].PointEstimate

	changePct := 0.0
	if current != 0 {
		changePct = (future - current) / current * 100
	}

	trend := contracts.TrendUp
	if changePct < 0 {
		trend = contracts.TrendDown
	}

	return &contracts.ForecastMetrics{
		CurrentEstimated: current,
		FutureEstimated:  future,
		ChangePct:        changePct,
		Trend:            trend,
	}, nil
}

func (p *Predictor) point(start time.Time, date time.Time, band float64) contracts.ForecastPoint {
	estimate := p.fitted(dayOffset(start, date), date)
	return contracts.ForecastPoint{
		Date:          date,
		PointEstimate: estimate,
		LowerBound:    estimate - band,
		UpperBound:    estimate + band,
	}
}

func (p *Predictor) fitted(x float64, date time.Time) float64 {
	return p.intercept + p.slope*x + p.seasonal[int(date.Weekday())]
}

// fitLine is ordinary least squares over (xs, ys)
func fitLine(xs, ys []float64) (intercept, slope float64) {
	n := float64(len(xs))

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX float64
	for i := range xs {
		cov += (xs[i] - meanX) * (ys[i] - meanY)
		varX += (xs[i] - meanX) * (xs[i] - meanX)
	}
	if varX == 0 {
		return meanY, 0
	}

	slope = cov / varX
	return meanY - slope*meanX, slope
}

func dayOffset(start, date time.Time) float64 {
	return math.Round(date.Sub(start).Hours() / 24)
}
