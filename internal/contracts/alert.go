package contracts

// AlertLevel classifies a valuation z-score band
type AlertLevel string

const (
	AlertCriticalHigh AlertLevel = "Critical High"
	AlertHigh         AlertLevel = "High"
	AlertNeutral      AlertLevel = "Neutral"
	AlertLow          AlertLevel = "Low"
	AlertCriticalLow  AlertLevel = "Critical Low"
)

// AlertStatus is the valuation alert computed from a trailing window of
// derived metric values. Ephemeral; recomputed on demand.
type AlertStatus struct {
	ZScore  float64    `json:"z_score"`
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
	Color   string     `json:"color"`
}

// PriceDriver attributes a local price move to its dominant input
type PriceDriver string

const (
	DriverCurrency  PriceDriver = "Currency Driven (USD/KRW Volatility)"
	DriverCommodity PriceDriver = "Commodity Driven (Global Gold Price)"
	DriverComposite PriceDriver = "Composite (Both Factors)"
)
