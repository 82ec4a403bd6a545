package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurum/internal/contracts"
)

func testDate(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestMacroRawRepository(t *testing.T) {
	gw := newTestGateway(t)
	repo := NewMacroRawRepository(gw)
	ctx := context.Background()

	for d := 1; d <= 3; d++ {
		require.NoError(t, repo.Upsert(ctx, &contracts.RawObservation{
			Date: testDate(d), Symbol: contracts.SymbolGoldUSD,
			Value: 2000.0 + float64(d), Unit: "USD/oz", Source: "test",
		}))
	}
	require.NoError(t, repo.Upsert(ctx, &contracts.RawObservation{
		Date: testDate(1), Symbol: contracts.SymbolUSDKRW,
		Value: 1300.0, Unit: "KRW/USD", Source: "test",
	}))

	obs, err := repo.GetBySymbols(ctx, contracts.SymbolGoldUSD, contracts.SymbolUSDKRW)
	require.NoError(t, err)
	assert.Len(t, obs, 4)

	series, err := repo.GetSeries(ctx, contracts.SymbolGoldUSD)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, 2001.0, series[0].Value)
	assert.True(t, series[0].Date.Before(series[2].Date), "series must be date ascending")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestDerivedRepositoryIdempotence(t *testing.T) {
	gw := newTestGateway(t)
	repo := NewDerivedRepository(gw)
	ctx := context.Background()

	metric := &contracts.DerivedMetric{
		Date:               testDate(9),
		Metric:             contracts.MetricGoldKRWDon,
		Value:              313493.7,
		CalculationVersion: "v1.0",
	}

	// Rerun with the same version: exactly one row, identical value
	require.NoError(t, repo.Upsert(ctx, metric))
	require.NoError(t, repo.Upsert(ctx, metric))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	series, err := repo.GetSeries(ctx, contracts.MetricGoldKRWDon)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.InDelta(t, 313493.7, series[0].Value, 0.001)
}

func TestDomesticRepository(t *testing.T) {
	gw := newTestGateway(t)
	repo := NewDomesticRepository(gw)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &contracts.DomesticObservation{
		Date: testDate(9), PriceType: contracts.PriceTypeBuy,
		Value: 520000.0, Unit: "KRW/3.75g", Source: "mock",
	}))
	require.NoError(t, repo.Upsert(ctx, &contracts.DomesticObservation{
		Date: testDate(9), PriceType: contracts.PriceTypeSell,
		Value: 480000.0, Unit: "KRW/3.75g", Source: "mock",
	}))

	buys, err := repo.GetByPriceType(ctx, contracts.PriceTypeBuy)
	require.NoError(t, err)
	require.Len(t, buys, 1)
	assert.Equal(t, 520000.0, buys[0].Value)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestPremiumRepository(t *testing.T) {
	gw := newTestGateway(t)
	repo := NewPremiumRepository(gw)
	ctx := context.Background()

	// Empty table is "no data yet", not an error condition
	_, err := repo.GetLatest(ctx)
	assert.ErrorIs(t, err, contracts.ErrNoData)

	for d := 1; d <= 2; d++ {
		require.NoError(t, repo.Upsert(ctx, &contracts.PremiumRecord{
			Date:             testDate(d),
			TheoreticalPrice: 500000.0,
			PhysicalPrice:    520000.0,
			PremiumAmount:    20000.0,
			PremiumRate:      4.0,
		}))
	}

	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, testDate(2), latest.Date)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
