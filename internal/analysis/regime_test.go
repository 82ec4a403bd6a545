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

// newRegimeSeries builds a two-row table so that with window 2 each asset's
// UP flag is simply "second value above first".
func newRegimeSeries(commodity, currency, equity [2]float64) *contracts.MultiSeries {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ms := contracts.NewMultiSeries()
	ms.Dates = []time.Time{base, base.AddDate(0, 0, 1)}
	ms.Columns[contracts.SymbolGoldUSD] = commodity[:]
	ms.Columns[contracts.SymbolDXY] = currency[:]
	ms.Columns[contracts.SymbolSPX] = equity[:]
	return ms
}

func newTestClassifier() *RegimeClassifier {
	return NewRegimeClassifier(logger.NewWriter(io.Discard)).WithWindow(2)
}

func TestClassifyRegimes(t *testing.T) {
	up := [2]float64{100, 110}
	down := [2]float64{100, 90}

	tests := []struct {
		name      string
		commodity [2]float64
		currency  [2]float64
		equity    [2]float64
		want      contracts.RegimeLabel
	}{
		{"risk on", down, down, up, contracts.RegimeRiskOn},
		{"risk off", up, up, down, contracts.RegimeRiskOff},
		{"deflation", down, up, down, contracts.RegimeDeflation},
		{"mixed", down, down, down, contracts.RegimeMixed},
	}

	c := newTestClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(newRegimeSeries(tt.commodity, tt.currency, tt.equity))
			assert.Equal(t, tt.want, got)
		})
	}
}

// The cascade resolves overlapping predicates strictly by position.
// Gold and equities both rising against a weak dollar matches both the
// risk-on and inflation-hedge rules; risk-on is evaluated first and wins.
// With equities falling instead, rising gold reads risk-off before the
// inflation-hedge rule is ever reached: the earlier rules fully shadow it.
func TestClassifyRuleOrder(t *testing.T) {
	up := [2]float64{100, 110}
	down := [2]float64{100, 90}

	got := newTestClassifier().Classify(newRegimeSeries(up, down, up))
	assert.Equal(t, contracts.RegimeRiskOn, got)

	got = newTestClassifier().Classify(newRegimeSeries(up, down, down))
	assert.Equal(t, contracts.RegimeRiskOff, got)
}

// The inflation-hedge predicate itself still holds its documented meaning
// even though every input that satisfies it is claimed by an earlier rule.
func TestInflationHedgePredicate(t *testing.T) {
	flags := trendFlags{commodityUp: true, currencyUp: false, equityUp: false}

	assert.True(t, regimeRules[2].match(flags))
	assert.Equal(t, contracts.RegimeInflationHedge, regimeRules[2].label)
	assert.Equal(t, contracts.RegimeRiskOff, classify(flags))
}

func TestClassifyInsufficientData(t *testing.T) {
	c := newTestClassifier()

	assert.Equal(t, contracts.RegimeInsufficientData, c.Classify(nil))

	// Missing equity column
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ms := contracts.NewMultiSeries()
	ms.Dates = []time.Time{base, base.AddDate(0, 0, 1)}
	ms.Columns[contracts.SymbolGoldUSD] = []float64{100, 110}
	ms.Columns[contracts.SymbolDXY] = []float64{100, 110}
	assert.Equal(t, contracts.RegimeInsufficientData, c.Classify(ms))

	// Shorter than the trend window
	short := newRegimeSeries([2]float64{100, 110}, [2]float64{100, 90}, [2]float64{100, 110})
	short.Dates = short.Dates[:1]
	for name := range short.Columns {
		short.Columns[name] = short.Columns[name][:1]
	}
	got := NewRegimeClassifier(logger.NewWriter(io.Discard)).WithWindow(5).Classify(short)
	assert.Equal(t, contracts.RegimeInsufficientData, got)
}

func TestClassifyHistorySkipsWarmup(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ms := contracts.NewMultiSeries()
	for i := 0; i < 6; i++ {
		ms.Dates = append(ms.Dates, base.AddDate(0, 0, i))
	}
	ms.Columns[contracts.SymbolGoldUSD] = []float64{100, 101, 102, 103, 104, 105}
	ms.Columns[contracts.SymbolDXY] = []float64{100, 99, 98, 97, 96, 95}
	ms.Columns[contracts.SymbolSPX] = []float64{100, 101, 102, 103, 104, 105}

	signals := NewRegimeClassifier(logger.NewWriter(io.Discard)).WithWindow(3).ClassifyHistory(ms)
	require.Len(t, signals, 4) // rows 0 and 1 are inside the warm-up

	assert.Equal(t, ms.Dates[2], signals[0].Date)
	for _, sig := range signals {
		assert.Equal(t, contracts.RegimeRiskOn, sig.Regime)
	}
}

func TestClassifyHistoryMissingColumn(t *testing.T) {
	ms := contracts.NewMultiSeries()
	assert.Nil(t, newTestClassifier().ClassifyHistory(ms))
}
