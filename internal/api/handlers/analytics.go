package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/wonny/aurum/internal/analysis"
	"github.com/wonny/aurum/internal/contracts"
)

// defaultAnalyticsWindow is the rolling window for the chart statistics
const defaultAnalyticsWindow = 30

// GetRegimeHistory replays the regime cascade across the full history,
// one dated label per row past the trend warm-up
// GET /api/regime/history
func (h *MarketHandler) GetRegimeHistory(w http.ResponseWriter, r *http.Request) {
	obs, err := h.raw.GetBySymbols(r.Context(),
		contracts.SymbolGoldUSD, contracts.SymbolDXY, contracts.SymbolSPX)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load regime inputs")
		respondError(w, http.StatusInternalServerError, "Failed to build regime history")
		return
	}

	ms := contracts.PivotObservations(obs,
		contracts.SymbolGoldUSD, contracts.SymbolDXY, contracts.SymbolSPX)

	signals := h.classifier.ClassifyHistory(ms)
	if len(signals) == 0 {
		respondError(w, http.StatusNotFound, "No regime history available yet")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(signals),
		"signals": signals,
	})
}

// GetAnalytics returns the dashboard chart statistics for the gold price:
// CPI-deflated real price, rolling gold/dollar correlation and annualized
// volatility. Rows inside a rolling warm-up window are omitted.
// GET /api/analytics?window=30
func (h *MarketHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	window := defaultAnalyticsWindow
	if v := r.URL.Query().Get("window"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 2 || parsed > analysis.TradingDaysPerYear {
			respondError(w, http.StatusBadRequest, "window must be between 2 and 252")
			return
		}
		window = parsed
	}

	goldKRW, err := h.derived.GetSeries(ctx, contracts.MetricGoldKRWDon)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load derived series")
		respondError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}
	if len(goldKRW) == 0 {
		respondError(w, http.StatusNotFound, "No derived data yet")
		return
	}

	cpi, err := h.raw.GetSeries(ctx, contracts.IndicatorCPI)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load CPI series")
		respondError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	obs, err := h.raw.GetBySymbols(ctx, contracts.SymbolGoldUSD, contracts.SymbolDXY)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load correlation inputs")
		respondError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}
	pivot := contracts.PivotObservations(obs, contracts.SymbolGoldUSD, contracts.SymbolDXY)
	goldUSD, _ := pivot.Column(contracts.SymbolGoldUSD)
	dollar, _ := pivot.Column(contracts.SymbolDXY)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"window":      window,
		"real_price":  analysis.RealPrice(goldKRW, cpi),
		"correlation": pointsFromValues(pivot.Dates, analysis.RollingCorrelation(goldUSD, dollar, window)),
		"volatility":  pointsFromValues(pivot.Dates, analysis.AnnualizedVolatility(goldUSD, window)),
	})
}

// pointsFromValues zips dates with calculator output, dropping the NaN
// warm-up rows so the payload stays valid JSON.
func pointsFromValues(dates []time.Time, values []float64) contracts.Series {
	series := make(contracts.Series, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		series = append(series, contracts.Point{Date: dates[i], Value: v})
	}
	return series
}
