package analysis

import (
	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/logger"
)

// DefaultTrendWindow is the simple-moving-average window used for per-asset
// trend flags
const DefaultTrendWindow = 50

// trendFlags holds the per-asset UP/DOWN state at one evaluation point.
// UP means the instantaneous value is above its own trailing average.
type trendFlags struct {
	commodityUp bool
	currencyUp  bool
	equityUp    bool
}

// regimeRule pairs a predicate with its label. Rules are evaluated in
// order; the first match wins. The precedence is deliberate and preserved
// from the product definition, so keep this list ordered.
type regimeRule struct {
	label contracts.RegimeLabel
	match func(f trendFlags) bool
}

var regimeRules = []regimeRule{
	// 1. 위험자산 선호: 주식 상승 + 달러 약세
	{contracts.RegimeRiskOn, func(f trendFlags) bool {
		return f.equityUp && !f.currencyUp
	}},
	// 2. 안전자산 도피: 주식 하락 + 금 평균 상회
	{contracts.RegimeRiskOff, func(f trendFlags) bool {
		return !f.equityUp && f.commodityUp
	}},
	// 3. 인플레이션 헤지: 금 상승 + 달러 약세
	{contracts.RegimeInflationHedge, func(f trendFlags) bool {
		return f.commodityUp && !f.currencyUp
	}},
	// 4. 디플레이션: 달러 강세 + 금/주식 하락
	{contracts.RegimeDeflation, func(f trendFlags) bool {
		return f.currencyUp && !f.commodityUp && !f.equityUp
	}},
}

// RegimeClassifier is a stateless rule engine over a multi-asset window.
// ⭐ SSOT: 시장 국면 분류는 여기서만
type RegimeClassifier struct {
	commodityCol string
	currencyCol  string
	equityCol    string
	window       int
	logger       *logger.Logger
}

// NewRegimeClassifier classifies over gold, the dollar index and the S&P 500
func NewRegimeClassifier(log *logger.Logger) *RegimeClassifier {
	return &RegimeClassifier{
		commodityCol: contracts.SymbolGoldUSD,
		currencyCol:  contracts.SymbolDXY,
		equityCol:    contracts.SymbolSPX,
		window:       DefaultTrendWindow,
		logger:       log,
	}
}

// WithColumns overrides the asset column names
func (c *RegimeClassifier) WithColumns(commodity, currency, equity string) *RegimeClassifier {
	c.commodityCol = commodity
	c.currencyCol = currency
	c.equityCol = equity
	return c
}

// WithWindow overrides the trend moving-average window
func (c *RegimeClassifier) WithWindow(window int) *RegimeClassifier {
	c.window = window
	return c
}

// Classify labels the latest row of the series.
//
// Classification needs all three signals simultaneously: a missing column or
// a series shorter than the trend window returns Insufficient Data without
// attempting a partial answer.
func (c *RegimeClassifier) Classify(ms *contracts.MultiSeries) contracts.RegimeLabel {
	if ms == nil || !ms.HasColumns(c.commodityCol, c.currencyCol, c.equityCol) {
		return contracts.RegimeInsufficientData
	}
	if ms.Len() < c.window {
		return contracts.RegimeInsufficientData
	}

	flags := c.flagsAt(ms, ms.Len()-1)
	label := classify(flags)

	c.logger.WithFields(map[string]interface{}{
		"commodity_up": flags.commodityUp,
		"currency_up":  flags.currencyUp,
		"equity_up":    flags.equityUp,
		"regime":       label,
	}).Debug("Regime classified")

	return label
}

// ClassifyHistory applies the same rule cascade per row across the full
// series, skipping rows inside the moving-average warm-up window.
func (c *RegimeClassifier) ClassifyHistory(ms *contracts.MultiSeries) []contracts.RegimeSignal {
	if ms == nil || !ms.HasColumns(c.commodityCol, c.currencyCol, c.equityCol) {
		return nil
	}

	var signals []contracts.RegimeSignal
	for i := c.window - 1; i < ms.Len(); i++ {
		signals = append(signals, contracts.RegimeSignal{
			Date:   ms.Dates[i],
			Regime: classify(c.flagsAt(ms, i)),
		})
	}
	return signals
}

// flagsAt computes trend flags for row i against the trailing SMA ending at i
func (c *RegimeClassifier) flagsAt(ms *contracts.MultiSeries, i int) trendFlags {
	commodity, _ := ms.Column(c.commodityCol)
	currency, _ := ms.Column(c.currencyCol)
	equity, _ := ms.Column(c.equityCol)

	return trendFlags{
		commodityUp: commodity[i] > sma(commodity, i, c.window),
		currencyUp:  currency[i] > sma(currency, i, c.window),
		equityUp:    equity[i] > sma(equity, i, c.window),
	}
}

// classify runs the ordered rule cascade; first match wins
func classify(f trendFlags) contracts.RegimeLabel {
	for _, rule := range regimeRules {
		if rule.match(f) {
			return rule.label
		}
	}
	return contracts.RegimeMixed
}

// sma averages the window ending at index i (inclusive)
func sma(values []float64, i, window int) float64 {
	start := i - window + 1
	if start < 0 {
		start = 0
	}

	var sum float64
	for _, v := range values[start : i+1] {
		sum += v
	}
	return sum / float64(i+1-start)
}
