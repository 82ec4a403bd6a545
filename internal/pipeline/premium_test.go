package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/internal/store"
	"github.com/wonny/aurum/pkg/logger"
)

func TestClassifyPremiumBands(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{-0.1, contracts.PremiumStatusDiscount},
		{0.0, contracts.PremiumStatusNormal}, // lower edge inclusive
		{3.4, contracts.PremiumStatusNormal},
		{3.5, contracts.PremiumStatusHighDemand}, // lower edge inclusive
		{5.4, contracts.PremiumStatusHighDemand},
		{5.5, contracts.PremiumStatusOverheating}, // lower edge inclusive
		{12.0, contracts.PremiumStatusOverheating},
	}

	for _, tt := range tests {
		got := ClassifyPremium(tt.rate, DefaultPremiumThresholds)
		assert.Equal(t, tt.want, got.Status, "rate %.2f", tt.rate)
	}
}

func seedPremiumInputs(t *testing.T, gw *store.Gateway, days []int, theoretical, physical float64) (*store.DerivedRepository, *store.DomesticRepository, *store.PremiumRepository) {
	t.Helper()
	ctx := context.Background()

	derived := store.NewDerivedRepository(gw)
	domestic := store.NewDomesticRepository(gw)
	premium := store.NewPremiumRepository(gw)

	for _, d := range days {
		require.NoError(t, derived.Upsert(ctx, &contracts.DerivedMetric{
			Date: day(d), Metric: contracts.MetricGoldKRWDon,
			Value: theoretical, CalculationVersion: CalculationVersion,
		}))
		require.NoError(t, domestic.Upsert(ctx, &contracts.DomesticObservation{
			Date: day(d), PriceType: contracts.PriceTypeBuy,
			Value: physical, Unit: "KRW/3.75g", Source: "mock",
		}))
	}

	return derived, domestic, premium
}

func TestPremiumAnalyzerRun(t *testing.T) {
	gw := newTestStore(t)
	ctx := context.Background()

	derived, domestic, premium := seedPremiumInputs(t, gw, []int{1, 2, 3}, 500000.0, 520000.0)

	analyzer := NewPremiumAnalyzer(derived, domestic, premium, logger.NewWriter(io.Discard))
	result, err := analyzer.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Written)

	recs, err := premium.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, 20000.0, recs[0].PremiumAmount)
	assert.InDelta(t, 4.0, recs[0].PremiumRate, 1e-9)
	assert.Equal(t, contracts.PremiumStatusHighDemand, analyzer.Status(&recs[0]).Status)
}

func TestPremiumAnalyzerInnerJoin(t *testing.T) {
	gw := newTestStore(t)
	ctx := context.Background()

	derived := store.NewDerivedRepository(gw)
	domestic := store.NewDomesticRepository(gw)
	premium := store.NewPremiumRepository(gw)

	// Derived on days 1-3, domestic only on day 2 and an unmatched day 9
	for d := 1; d <= 3; d++ {
		require.NoError(t, derived.Upsert(ctx, &contracts.DerivedMetric{
			Date: day(d), Metric: contracts.MetricGoldKRWDon,
			Value: 500000.0, CalculationVersion: CalculationVersion,
		}))
	}
	for _, d := range []int{2, 9} {
		require.NoError(t, domestic.Upsert(ctx, &contracts.DomesticObservation{
			Date: day(d), PriceType: contracts.PriceTypeBuy,
			Value: 510000.0, Unit: "KRW/3.75g", Source: "mock",
		}))
	}

	analyzer := NewPremiumAnalyzer(derived, domestic, premium, logger.NewWriter(io.Discard))
	result, err := analyzer.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Written, "only the matched date joins")

	recs, err := premium.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, day(2), recs[0].Date)
}

func TestPremiumAnalyzerSkipsZeroTheoretical(t *testing.T) {
	gw := newTestStore(t)
	ctx := context.Background()

	derived, domestic, premium := seedPremiumInputs(t, gw, []int{1}, 0.0, 520000.0)

	analyzer := NewPremiumAnalyzer(derived, domestic, premium, logger.NewWriter(io.Discard))
	result, err := analyzer.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Written)
	assert.Equal(t, 1, result.Skipped, "undefined rate must be skipped, not emitted")

	recs, err := premium.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestPremiumAnalyzerRerunOverwrites(t *testing.T) {
	gw := newTestStore(t)
	ctx := context.Background()

	derived, domestic, premium := seedPremiumInputs(t, gw, []int{1, 2}, 500000.0, 520000.0)

	analyzer := NewPremiumAnalyzer(derived, domestic, premium, logger.NewWriter(io.Discard))

	_, err := analyzer.Run(ctx)
	require.NoError(t, err)
	_, err = analyzer.Run(ctx)
	require.NoError(t, err)

	count, err := premium.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count, "rerun must overwrite, never duplicate")
}
