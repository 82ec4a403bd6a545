package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/aurum/internal/analysis"
	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/internal/forecast"
	"github.com/wonny/aurum/internal/pipeline"
	"github.com/wonny/aurum/pkg/logger"
	"github.com/wonny/aurum/pkg/redis"
)

// driverLookbackDays is the window for price driver attribution
const driverLookbackDays = 30

// MarketHandler handles the dashboard API endpoints
// ⭐ SSOT: 시장 데이터 API 핸들러는 이 구조체에서만
type MarketHandler struct {
	raw        contracts.MacroRawRepository
	derived    contracts.DerivedRepository
	premium    contracts.PremiumRepository
	analyzer   *pipeline.PremiumAnalyzer
	classifier *analysis.RegimeClassifier
	alerts     *analysis.ValuationAlertSystem
	cache      *redis.Cache
	logger     *logger.Logger
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(
	raw contracts.MacroRawRepository,
	derived contracts.DerivedRepository,
	premium contracts.PremiumRepository,
	analyzer *pipeline.PremiumAnalyzer,
	classifier *analysis.RegimeClassifier,
	alerts *analysis.ValuationAlertSystem,
	cache *redis.Cache,
	log *logger.Logger,
) *MarketHandler {
	return &MarketHandler{
		raw:        raw,
		derived:    derived,
		premium:    premium,
		analyzer:   analyzer,
		classifier: classifier,
		alerts:     alerts,
		cache:      cache,
		logger:     log,
	}
}

// GetMetricHistory returns the full derived series for a metric
// GET /api/metrics/{metric}/history
func (h *MarketHandler) GetMetricHistory(w http.ResponseWriter, r *http.Request) {
	metric := mux.Vars(r)["metric"]

	series, err := h.derived.GetSeries(r.Context(), metric)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load derived series")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve metric history")
		return
	}
	if len(series) == 0 {
		respondError(w, http.StatusNotFound, "No data available for metric "+metric)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"metric": metric,
		"count":  len(series),
		"series": series,
	})
}

// PremiumResponse pairs a premium record with its band interpretation
type PremiumResponse struct {
	contracts.PremiumRecord
	Status contracts.PremiumStatus `json:"status"`
}

// GetLatestPremium returns the most recent premium record with its band
// GET /api/premium/latest
func (h *MarketHandler) GetLatestPremium(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cacheKey := "premium:latest"

	var cached PremiumResponse
	if hit, _ := h.cache.Get(ctx, cacheKey, &cached); hit {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	rec, err := h.premium.GetLatest(ctx)
	if errors.Is(err, contracts.ErrNoData) {
		respondError(w, http.StatusNotFound, "No premium data yet")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest premium")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve premium")
		return
	}

	resp := PremiumResponse{PremiumRecord: *rec, Status: h.analyzer.Status(rec)}
	if err := h.cache.Set(ctx, cacheKey, resp, redis.TTLShort); err != nil {
		h.logger.WithError(err).Warn("Premium cache write failed")
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetPremiumHistory returns all premium records with their bands
// GET /api/premium/history
func (h *MarketHandler) GetPremiumHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.premium.GetAll(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load premium history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve premium history")
		return
	}
	if len(records) == 0 {
		respondError(w, http.StatusNotFound, "No premium data yet")
		return
	}

	out := make([]PremiumResponse, 0, len(records))
	for i := range records {
		out = append(out, PremiumResponse{
			PremiumRecord: records[i],
			Status:        h.analyzer.Status(&records[i]),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(out),
		"history": out,
	})
}

// GetRegime classifies the current market regime
// GET /api/regime
func (h *MarketHandler) GetRegime(w http.ResponseWriter, r *http.Request) {
	obs, err := h.raw.GetBySymbols(r.Context(),
		contracts.SymbolGoldUSD, contracts.SymbolDXY, contracts.SymbolSPX)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load regime inputs")
		respondError(w, http.StatusInternalServerError, "Failed to classify regime")
		return
	}

	ms := contracts.PivotObservations(obs,
		contracts.SymbolGoldUSD, contracts.SymbolDXY, contracts.SymbolSPX)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"regime":       h.classifier.Classify(ms),
		"observations": ms.Len(),
	})
}

// GetAlert returns the valuation z-score alert plus driver attribution
// GET /api/alert
func (h *MarketHandler) GetAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	series, err := h.derived.GetSeries(ctx, contracts.MetricGoldKRWDon)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load derived series")
		respondError(w, http.StatusInternalServerError, "Failed to compute alert")
		return
	}
	if len(series) == 0 {
		respondError(w, http.StatusNotFound, "No derived data yet")
		return
	}

	status, err := h.alerts.CheckValuation(series)
	if contracts.IsInsufficientData(err) {
		respondInsufficient(w, err)
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Valuation check failed")
		respondError(w, http.StatusInternalServerError, "Failed to compute alert")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alert":  status,
		"driver": h.attributeDriver(r),
	})
}

// attributeDriver explains the recent move via gold vs FX changes.
// Missing inputs degrade to the composite label.
func (h *MarketHandler) attributeDriver(r *http.Request) contracts.PriceDriver {
	ctx := r.Context()

	gold, err := h.raw.GetSeries(ctx, contracts.SymbolGoldUSD)
	if err != nil {
		return contracts.DriverComposite
	}
	fx, err := h.raw.GetSeries(ctx, contracts.SymbolUSDKRW)
	if err != nil {
		return contracts.DriverComposite
	}

	goldChange, ok := analysis.PctChange(tail(gold, driverLookbackDays))
	if !ok {
		return contracts.DriverComposite
	}
	fxChange, ok := analysis.PctChange(tail(fx, driverLookbackDays))
	if !ok {
		return contracts.DriverComposite
	}

	return analysis.AnalyzeDriver(goldChange, fxChange)
}

// GetForecast projects the theoretical price forward
// GET /api/forecast?days=30
func (h *MarketHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	days := forecast.DefaultHorizon
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 365 {
			respondError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
		days = parsed
	}

	series, err := h.derived.GetSeries(r.Context(), contracts.MetricGoldKRWDon)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load derived series")
		respondError(w, http.StatusInternalServerError, "Failed to compute forecast")
		return
	}
	if len(series) == 0 {
		respondError(w, http.StatusNotFound, "No derived data yet")
		return
	}

	predictor := forecast.NewPredictor(series, h.logger)
	result, err := predictor.Forecast(days)
	if contracts.IsInsufficientData(err) {
		respondInsufficient(w, err)
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Forecast failed")
		respondError(w, http.StatusInternalServerError, "Failed to compute forecast")
		return
	}

	metrics, err := forecast.Metrics(result)
	if err != nil {
		h.logger.WithError(err).Error("Forecast metrics failed")
		respondError(w, http.StatusInternalServerError, "Failed to compute forecast")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"forecast": result,
		"metrics":  metrics,
	})
}

func tail(series contracts.Series, n int) contracts.Series {
	if len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondInsufficient reports "not enough history yet" as a structured
// state rather than a failure.
func respondInsufficient(w http.ResponseWriter, err error) {
	var insufficient *contracts.InsufficientDataError
	resp := map[string]interface{}{
		"status": "insufficient_data",
	}
	if errors.As(err, &insufficient) {
		resp["needed"] = insufficient.Needed
		resp["got"] = insufficient.Got
	}
	respondJSON(w, http.StatusOK, resp)
}
