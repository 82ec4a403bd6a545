package analysis

import (
	"math"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/logger"
)

const (
	// DefaultAlertWindow is three years of daily periods
	DefaultAlertWindow = 365 * 3
	// MinAlertObservations is the hard minimum before a z-score is defined
	MinAlertObservations = 30
)

// ValuationAlertSystem flags statistical over/under-valuation of the derived
// metric via a rolling z-score.
// ⭐ SSOT: 밸류에이션 경보는 여기서만
type ValuationAlertSystem struct {
	window int
	logger *logger.Logger
}

// NewValuationAlertSystem creates an alert system with the default window
func NewValuationAlertSystem(log *logger.Logger) *ValuationAlertSystem {
	return &ValuationAlertSystem{
		window: DefaultAlertWindow,
		logger: log,
	}
}

// WithWindow overrides the rolling window length
func (v *ValuationAlertSystem) WithWindow(window int) *ValuationAlertSystem {
	v.window = window
	return v
}

// CheckValuation computes the z-score of the latest value against its
// trailing mean and standard deviation.
//
// The effective window is min(configured, available length). Returns an
// InsufficientDataError below MinAlertObservations; the caller reports it as
// "insufficient history", not as a failure.
func (v *ValuationAlertSystem) CheckValuation(series contracts.Series) (*contracts.AlertStatus, error) {
	if len(series) < MinAlertObservations {
		return nil, &contracts.InsufficientDataError{
			Stage:  "valuation alert",
			Needed: MinAlertObservations,
			Got:    len(series),
		}
	}

	effective := v.window
	if len(series) < effective {
		effective = len(series)
	}

	values := series.Values()
	tail := values[len(values)-effective:]

	mean, std := meanStd(tail)

	latest := values[len(values)-1]
	zScore := 0.0
	if std > 0 {
		zScore = (latest - mean) / std
	}

	status := classifyZScore(zScore)

	v.logger.WithFields(map[string]interface{}{
		"z_score": zScore,
		"level":   status.Level,
		"window":  effective,
	}).Debug("Valuation checked")

	return status, nil
}

// classifyZScore maps a z-score onto its alert band. The ±1 and ±2
// boundaries themselves stay in the milder band.
func classifyZScore(zScore float64) *contracts.AlertStatus {
	status := &contracts.AlertStatus{
		ZScore:  zScore,
		Level:   contracts.AlertNeutral,
		Message: "Fairly Valued",
		Color:   "gray",
	}

	switch {
	case zScore > 2.0:
		status.Level = contracts.AlertCriticalHigh
		status.Message = "Extreme Overvaluation (Sell Signal)"
		status.Color = "red"
	case zScore > 1.0:
		status.Level = contracts.AlertHigh
		status.Message = "Overvalued (Caution)"
		status.Color = "orange"
	case zScore < -2.0:
		status.Level = contracts.AlertCriticalLow
		status.Message = "Extreme Undervaluation (Strong Buy)"
		status.Color = "green"
	case zScore < -1.0:
		status.Level = contracts.AlertLow
		status.Message = "Undervalued (Accumulate)"
		status.Color = "lightgreen"
	}

	return status
}

// AnalyzeDriver attributes a local price move to its dominant input.
// Inputs are percentage changes over the same period.
func AnalyzeDriver(commodityChange, fxChange float64) contracts.PriceDriver {
	switch {
	case math.Abs(fxChange) > math.Abs(commodityChange)*1.5:
		return contracts.DriverCurrency
	case math.Abs(commodityChange) > math.Abs(fxChange)*1.5:
		return contracts.DriverCommodity
	default:
		return contracts.DriverComposite
	}
}

// meanStd returns the mean and sample standard deviation of values
func meanStd(values []float64) (float64, float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	if n < 2 {
		return mean, 0
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / (n - 1))
}
