package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/aurum/internal/contracts"
)

// Snapshot assembles the current dashboard state for the stream. Empty
// stores yield a partial snapshot rather than an error; only a backend
// failure aborts.
func (h *MarketHandler) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Timestamp: time.Now(),
		Regime:    contracts.RegimeInsufficientData,
	}

	rec, err := h.premium.GetLatest(ctx)
	switch {
	case err == nil:
		snap.Premium = &PremiumResponse{PremiumRecord: *rec, Status: h.analyzer.Status(rec)}
	case errors.Is(err, contracts.ErrNoData):
		// no premium rows yet
	default:
		return nil, fmt.Errorf("load latest premium: %w", err)
	}

	obs, err := h.raw.GetBySymbols(ctx,
		contracts.SymbolGoldUSD, contracts.SymbolDXY, contracts.SymbolSPX)
	if err != nil {
		return nil, fmt.Errorf("load regime inputs: %w", err)
	}
	snap.Regime = h.classifier.Classify(contracts.PivotObservations(obs,
		contracts.SymbolGoldUSD, contracts.SymbolDXY, contracts.SymbolSPX))

	series, err := h.derived.GetSeries(ctx, contracts.MetricGoldKRWDon)
	if err != nil {
		return nil, fmt.Errorf("load derived series: %w", err)
	}
	if status, err := h.alerts.CheckValuation(series); err == nil {
		snap.Alert = status
	} else if !contracts.IsInsufficientData(err) {
		return nil, fmt.Errorf("valuation check: %w", err)
	}

	return snap, nil
}
