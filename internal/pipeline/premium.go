package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/logger"
)

// PremiumThresholds are the half-open band edges for premium rates (%).
// Each band includes its lower edge.
type PremiumThresholds struct {
	Discount float64 // rate below this is a discount
	Normal   float64 // rate below this is normal
	High     float64 // rate below this is high demand; at or above, overheating
}

// DefaultPremiumThresholds per the product design document
var DefaultPremiumThresholds = PremiumThresholds{
	Discount: 0.0,
	Normal:   3.5,
	High:     5.5,
}

// ClassifyPremium bands a premium rate into a status
func ClassifyPremium(rate float64, th PremiumThresholds) contracts.PremiumStatus {
	switch {
	case rate < th.Discount:
		return contracts.PremiumStatus{
			Status:  contracts.PremiumStatusDiscount,
			Message: "Unusual: Domestic Price Lower (Liquidity need?)",
		}
	case rate < th.Normal:
		return contracts.PremiumStatus{
			Status:  contracts.PremiumStatusNormal,
			Message: "Standard Operational Premium",
		}
	case rate < th.High:
		return contracts.PremiumStatus{
			Status:  contracts.PremiumStatusHighDemand,
			Message: "Anxiety: Physical Accumulation",
		}
	default:
		return contracts.PremiumStatus{
			Status:  contracts.PremiumStatusOverheating,
			Message: "Panic: Extreme Currency Distrust",
		}
	}
}

// PremiumAnalyzer joins the derived theoretical price with the domestic
// physical price by calendar date and persists one premium record per date.
// ⭐ SSOT: 프리미엄 산출은 여기서만
type PremiumAnalyzer struct {
	derived    contracts.DerivedRepository
	domestic   contracts.DomesticRepository
	premium    contracts.PremiumRepository
	metric     string
	priceType  contracts.PriceType
	thresholds PremiumThresholds
	logger     *logger.Logger
}

// NewPremiumAnalyzer creates a premium analyzer over GOLD_KRW_DON vs BUY quotes
func NewPremiumAnalyzer(
	derived contracts.DerivedRepository,
	domestic contracts.DomesticRepository,
	premium contracts.PremiumRepository,
	log *logger.Logger,
) *PremiumAnalyzer {
	return &PremiumAnalyzer{
		derived:    derived,
		domestic:   domestic,
		premium:    premium,
		metric:     contracts.MetricGoldKRWDon,
		priceType:  contracts.PriceTypeBuy,
		thresholds: DefaultPremiumThresholds,
		logger:     log,
	}
}

// WithThresholds overrides the default band edges
func (a *PremiumAnalyzer) WithThresholds(th PremiumThresholds) *PremiumAnalyzer {
	a.thresholds = th
	return a
}

// Run joins derived and domestic rows and upserts premium records.
// Dates present on only one side are excluded (inner join). Rows whose
// theoretical price is zero or missing are skipped, not emitted as zero.
func (a *PremiumAnalyzer) Run(ctx context.Context) (contracts.BatchResult, error) {
	var result contracts.BatchResult

	theoretical, err := a.derived.GetSeries(ctx, a.metric)
	if err != nil {
		return result, fmt.Errorf("load derived series: %w", err)
	}

	physical, err := a.domestic.GetByPriceType(ctx, a.priceType)
	if err != nil {
		return result, fmt.Errorf("load domestic quotes: %w", err)
	}

	if len(theoretical) == 0 || len(physical) == 0 {
		a.logger.WithFields(map[string]interface{}{
			"derived_rows":  len(theoretical),
			"domestic_rows": len(physical),
		}).Info("Nothing to join for premium analysis")
		return result, nil
	}

	// Join key is the calendar date; time-of-day is discarded
	theoreticalByDate := make(map[time.Time]float64, len(theoretical))
	for _, p := range theoretical {
		theoreticalByDate[contracts.DateOnly(p.Date)] = p.Value
	}

	for _, quote := range physical {
		date := contracts.DateOnly(quote.Date)

		th, ok := theoreticalByDate[date]
		if !ok {
			continue // no theoretical price for this date: excluded by the join
		}
		if th <= 0 {
			// rate is undefined; skip, do not emit a record
			result.Skipped++
			continue
		}

		amount := quote.Value - th
		rate := (amount / th) * 100

		rec := &contracts.PremiumRecord{
			Date:             date,
			TheoreticalPrice: th,
			PhysicalPrice:    quote.Value,
			PremiumAmount:    amount,
			PremiumRate:      rate,
		}

		if err := a.premium.Upsert(ctx, rec); err != nil {
			a.logger.WithError(err).WithField("date", date.Format("2006-01-02")).
				Error("Premium record write failed, continuing batch")
			result.Failed++
			continue
		}
		result.Written++
	}

	a.logger.WithFields(map[string]interface{}{
		"written": result.Written,
		"skipped": result.Skipped,
		"failed":  result.Failed,
	}).Info("Premium analysis completed")

	return result, nil
}

// Status bands the premium rate of a record
func (a *PremiumAnalyzer) Status(rec *contracts.PremiumRecord) contracts.PremiumStatus {
	return ClassifyPremium(rec.PremiumRate, a.thresholds)
}
