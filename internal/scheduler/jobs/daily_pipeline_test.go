package jobs

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/internal/pipeline"
	"github.com/wonny/aurum/internal/store"
	"github.com/wonny/aurum/pkg/config"
	"github.com/wonny/aurum/pkg/logger"
)

type fixedSource struct {
	obs []contracts.RawObservation
}

func (s *fixedSource) Name() string { return "fixed" }

func (s *fixedSource) Collect(ctx context.Context, from, to time.Time) ([]contracts.RawObservation, error) {
	return s.obs, nil
}

type fixedDomesticSource struct {
	quotes []contracts.DomesticObservation
}

func (s *fixedDomesticSource) Name() string { return "fixed-domestic" }

func (s *fixedDomesticSource) Collect(ctx context.Context) ([]contracts.DomesticObservation, error) {
	return s.quotes, nil
}

// The daily job chains ingest, derive and premium against a live store:
// one raw gold/fx pair must end as one premium row.
func TestDailyPipelineJobEndToEnd(t *testing.T) {
	log := logger.NewWriter(io.Discard)
	ctx := context.Background()

	cfg := &config.Config{
		Database: config.DatabaseConfig{ForceEmbedded: true, EmbeddedPath: ":memory:"},
	}
	gw, err := store.Connect(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { gw.Close() })
	require.NoError(t, gw.EnsureSchema(ctx))

	raw := store.NewMacroRawRepository(gw)
	domestic := store.NewDomesticRepository(gw)
	derived := store.NewDerivedRepository(gw)
	premium := store.NewPremiumRepository(gw)

	quoteDate := contracts.DateOnly(time.Now())
	ingestor := pipeline.NewIngestor(raw, domestic, log).
		AddSource(&fixedSource{obs: []contracts.RawObservation{
			{Date: quoteDate, Symbol: contracts.SymbolGoldUSD, Value: 2000.0, Unit: "USD/oz", Source: "fixed"},
			{Date: quoteDate, Symbol: contracts.SymbolUSDKRW, Value: 1300.0, Unit: "KRW", Source: "fixed"},
		}}).
		AddDomesticSource(&fixedDomesticSource{quotes: []contracts.DomesticObservation{
			{Date: quoteDate, PriceType: contracts.PriceTypeBuy, Value: 330000.0, Unit: "KRW/3.75g", Source: "fixed"},
		}})

	job := NewDailyPipelineJob(
		ingestor,
		pipeline.NewDeriver(raw, derived, log),
		pipeline.NewPremiumAnalyzer(derived, domestic, premium, log),
		7,
		log,
	)

	assert.Equal(t, "daily_pipeline", job.Name())
	require.NoError(t, job.Run(ctx))

	latest, err := premium.GetLatest(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 330000.0, latest.PhysicalPrice, 0.001)
	assert.Greater(t, latest.TheoreticalPrice, 0.0)
}
