package pipeline

import (
	"context"
	"time"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/logger"
)

// Ingestor pulls observations from every registered source into the raw
// stores. One unavailable source never fails the whole run; its failure is
// logged and the remaining sources proceed (partial ingestion).
// ⭐ SSOT: 원시 데이터 적재는 여기서만
type Ingestor struct {
	raw      contracts.MacroRawRepository
	domestic contracts.DomesticRepository

	sources         []contracts.ObservationSource
	domesticSources []contracts.DomesticSource

	logger *logger.Logger
}

// NewIngestor creates a new ingestor
func NewIngestor(raw contracts.MacroRawRepository, domestic contracts.DomesticRepository, log *logger.Logger) *Ingestor {
	return &Ingestor{
		raw:      raw,
		domestic: domestic,
		logger:   log,
	}
}

// AddSource registers a raw observation source
func (in *Ingestor) AddSource(src contracts.ObservationSource) *Ingestor {
	in.sources = append(in.sources, src)
	return in
}

// AddDomesticSource registers a domestic quote source
func (in *Ingestor) AddDomesticSource(src contracts.DomesticSource) *Ingestor {
	in.domesticSources = append(in.domesticSources, src)
	return in
}

// Run collects from every source and upserts into the raw stores.
// Every write is an idempotent upsert, so rerunning a window is safe.
func (in *Ingestor) Run(ctx context.Context, from, to time.Time) (contracts.BatchResult, error) {
	var result contracts.BatchResult

	for _, src := range in.sources {
		obs, err := src.Collect(ctx, from, to)
		if err != nil {
			in.logger.WithError(err).WithField("source", src.Name()).
				Warn("Source unavailable, continuing with remaining sources")
			continue
		}

		for i := range obs {
			if err := in.raw.Upsert(ctx, &obs[i]); err != nil {
				in.logger.WithError(err).WithFields(map[string]interface{}{
					"source": src.Name(),
					"symbol": obs[i].Symbol,
					"date":   obs[i].Date.Format("2006-01-02"),
				}).Error("Raw observation write failed, continuing batch")
				result.Failed++
				continue
			}
			result.Written++
		}

		in.logger.WithFields(map[string]interface{}{
			"source": src.Name(),
			"count":  len(obs),
		}).Info("Source ingested")
	}

	for _, src := range in.domesticSources {
		quotes, err := src.Collect(ctx)
		if err != nil {
			in.logger.WithError(err).WithField("source", src.Name()).
				Warn("Domestic source unavailable, continuing")
			continue
		}

		for i := range quotes {
			if err := in.domestic.Upsert(ctx, &quotes[i]); err != nil {
				in.logger.WithError(err).WithFields(map[string]interface{}{
					"source":     src.Name(),
					"price_type": quotes[i].PriceType,
				}).Error("Domestic quote write failed, continuing batch")
				result.Failed++
				continue
			}
			result.Written++
		}

		in.logger.WithFields(map[string]interface{}{
			"source": src.Name(),
			"count":  len(quotes),
		}).Info("Domestic source ingested")
	}

	return result, nil
}
