package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/internal/store"
	"github.com/wonny/aurum/pkg/logger"
)

type stubSource struct {
	name string
	obs  []contracts.RawObservation
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Collect(ctx context.Context, from, to time.Time) ([]contracts.RawObservation, error) {
	return s.obs, s.err
}

type stubDomesticSource struct {
	quotes []contracts.DomesticObservation
	err    error
}

func (s *stubDomesticSource) Name() string { return "stub-domestic" }

func (s *stubDomesticSource) Collect(ctx context.Context) ([]contracts.DomesticObservation, error) {
	return s.quotes, s.err
}

func TestIngestorPartialIngestion(t *testing.T) {
	gw := newTestStore(t)
	raw := store.NewMacroRawRepository(gw)
	domestic := store.NewDomesticRepository(gw)
	ctx := context.Background()

	healthy := &stubSource{
		name: "quotes",
		obs: []contracts.RawObservation{
			{Date: day(1), Symbol: contracts.SymbolGoldUSD, Value: 2000.0, Unit: "USD/oz", Source: "quotes"},
			{Date: day(1), Symbol: contracts.SymbolUSDKRW, Value: 1300.0, Unit: "KRW/USD", Source: "quotes"},
		},
	}
	broken := &stubSource{name: "macro", err: errors.New("upstream down")}

	ingestor := NewIngestor(raw, domestic, logger.NewWriter(io.Discard)).
		AddSource(broken).
		AddSource(healthy).
		AddDomesticSource(&stubDomesticSource{
			quotes: []contracts.DomesticObservation{
				{Date: day(1), PriceType: contracts.PriceTypeBuy, Value: 520000.0, Unit: "KRW/3.75g", Source: "mock"},
			},
		})

	result, err := ingestor.Run(ctx, day(1), day(2))
	require.NoError(t, err, "one unavailable source must not fail the run")
	assert.Equal(t, 3, result.Written)
	assert.Equal(t, 0, result.Failed)

	count, err := raw.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	domCount, err := domestic.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), domCount)
}

func TestIngestorRerunIsIdempotent(t *testing.T) {
	gw := newTestStore(t)
	raw := store.NewMacroRawRepository(gw)
	domestic := store.NewDomesticRepository(gw)
	ctx := context.Background()

	src := &stubSource{
		name: "quotes",
		obs: []contracts.RawObservation{
			{Date: day(1), Symbol: contracts.SymbolGoldUSD, Value: 2000.0, Unit: "USD/oz", Source: "quotes"},
		},
	}

	ingestor := NewIngestor(raw, domestic, logger.NewWriter(io.Discard)).AddSource(src)

	_, err := ingestor.Run(ctx, day(1), day(2))
	require.NoError(t, err)

	// Same window again with an updated value: overwrite, no duplicate
	src.obs[0].Value = 2010.0
	_, err = ingestor.Run(ctx, day(1), day(2))
	require.NoError(t, err)

	count, err := raw.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	series, err := raw.GetSeries(ctx, contracts.SymbolGoldUSD)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 2010.0, series[0].Value)
}
