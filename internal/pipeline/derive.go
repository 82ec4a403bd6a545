package pipeline

import (
	"context"
	"fmt"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/logger"
)

// CalculationVersion tags every derived row. A fixed identifier, not a
// dispatch key: reruns with the same version overwrite in place.
const CalculationVersion = "v1.0"

// MetricSpec names the inputs and output of one derivation
type MetricSpec struct {
	NumeratorSymbol string // commodity price in USD/oz
	FXSymbol        string // USD/KRW rate
	Metric          string // derived metric identifier
}

// DefaultMetricSpecs covers gold and silver in KRW per don
var DefaultMetricSpecs = []MetricSpec{
	{NumeratorSymbol: contracts.SymbolGoldUSD, FXSymbol: contracts.SymbolUSDKRW, Metric: contracts.MetricGoldKRWDon},
	{NumeratorSymbol: contracts.SymbolSilverUSD, FXSymbol: contracts.SymbolUSDKRW, Metric: contracts.MetricSilverKRWDon},
}

// Deriver pivots raw observations into aligned pairs and upserts the derived
// valuation metric (Raw -> Derived).
// ⭐ SSOT: 지표 파생은 여기서만
type Deriver struct {
	raw     contracts.MacroRawRepository
	derived contracts.DerivedRepository
	logger  *logger.Logger
}

// NewDeriver creates a new metric deriver
func NewDeriver(raw contracts.MacroRawRepository, derived contracts.DerivedRepository, log *logger.Logger) *Deriver {
	return &Deriver{
		raw:     raw,
		derived: derived,
		logger:  log,
	}
}

// Run derives every default metric. Per-metric failures are isolated.
func (d *Deriver) Run(ctx context.Context) (contracts.BatchResult, error) {
	var total contracts.BatchResult

	for _, spec := range DefaultMetricSpecs {
		result, err := d.DeriveMetric(ctx, spec)
		if err != nil {
			return total, err
		}
		total.Add(result)
	}

	return total, nil
}

// DeriveMetric derives one metric across all computable dates.
//
// A date is only derivable when both input symbols have an observation
// (inner-join semantics). A write failure for one date is logged and counted;
// it never aborts the remaining dates.
func (d *Deriver) DeriveMetric(ctx context.Context, spec MetricSpec) (contracts.BatchResult, error) {
	var result contracts.BatchResult

	obs, err := d.raw.GetBySymbols(ctx, spec.NumeratorSymbol, spec.FXSymbol)
	if err != nil {
		return result, fmt.Errorf("load raw observations: %w", err)
	}

	pivot := contracts.PivotObservations(obs, spec.NumeratorSymbol, spec.FXSymbol)
	if pivot.Len() == 0 {
		d.logger.WithField("metric", spec.Metric).Info("No aligned raw data to derive from")
		return result, nil
	}

	numerator, _ := pivot.Column(spec.NumeratorSymbol)
	fx, _ := pivot.Column(spec.FXSymbol)

	for i, date := range pivot.Dates {
		value, ok := DonPriceKRW(numerator[i], fx[i])
		if !ok {
			// Null/zero input: not computable, not a zero result
			result.Skipped++
			continue
		}

		row := &contracts.DerivedMetric{
			Date:               date,
			Metric:             spec.Metric,
			Value:              value,
			CalculationVersion: CalculationVersion,
		}

		if err := d.derived.Upsert(ctx, row); err != nil {
			d.logger.WithError(err).WithFields(map[string]interface{}{
				"metric": spec.Metric,
				"date":   date.Format("2006-01-02"),
			}).Error("Derived metric write failed, continuing batch")
			result.Failed++
			continue
		}
		result.Written++
	}

	d.logger.WithFields(map[string]interface{}{
		"metric":  spec.Metric,
		"written": result.Written,
		"skipped": result.Skipped,
		"failed":  result.Failed,
	}).Info("Derivation completed")

	return result, nil
}
