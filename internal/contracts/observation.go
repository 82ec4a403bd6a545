package contracts

import "time"

// Symbol identifiers for tracked assets
// ⭐ SSOT: 심볼 이름은 여기서만 정의
const (
	SymbolGoldUSD   = "GOLD_USD_OZ"
	SymbolSilverUSD = "SILVER_USD_OZ"
	SymbolUSDKRW    = "USDKRW"
	SymbolDXY       = "DXY"
	SymbolSPX       = "SPX"
	SymbolKOSPI     = "KOSPI"
)

// Macro indicator names (FRED)
const (
	IndicatorCPI     = "CPI"
	IndicatorM2      = "M2"
	IndicatorUS10Y   = "US10Y"
	IndicatorFedRate = "FEDRATE"
)

// Derived metric identifiers
const (
	MetricGoldKRWDon   = "GOLD_KRW_DON"
	MetricSilverKRWDon = "SILVER_KRW_DON"
)

// PriceType distinguishes domestic buy/sell quotes
type PriceType string

const (
	PriceTypeBuy  PriceType = "BUY"
	PriceTypeSell PriceType = "SELL"
)

// RawObservation is a single ingested (date, symbol, value) tuple,
// stored verbatim before any derived computation.
// Unique on (date, symbol); re-ingestion overwrites.
type RawObservation struct {
	Date   time.Time `db:"date" json:"date"`
	Symbol string    `db:"symbol" json:"symbol"`
	Value  float64   `db:"value" json:"value"`
	Unit   string    `db:"unit" json:"unit"`
	Source string    `db:"source" json:"source"`
}

// DomesticObservation is a physical-market quote (per 3.75g).
// Unique on (date, price_type).
type DomesticObservation struct {
	Date      time.Time `db:"date" json:"date"`
	PriceType PriceType `db:"price_type" json:"price_type"`
	Value     float64   `db:"value" json:"value"`
	Unit      string    `db:"unit" json:"unit"`
	Source    string    `db:"source" json:"source"`
}

// DerivedMetric is a value computed from raw observations via a fixed,
// versioned formula. Unique on (date, metric); recomputation overwrites.
type DerivedMetric struct {
	Date               time.Time `db:"date" json:"date"`
	Metric             string    `db:"metric" json:"metric"`
	Value              float64   `db:"value" json:"value"`
	CalculationVersion string    `db:"calculation_version" json:"calculation_version"`
}

// DateOnly truncates an instant to its calendar date (join key for
// derived/domestic matching; time-of-day is discarded).
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
