package contracts

import "time"

// RegimeLabel is a discrete label summarizing the joint trend state of
// multiple asset classes at a point in time. Never persisted; always
// recomputed from current data.
type RegimeLabel string

const (
	RegimeRiskOn           RegimeLabel = "Risk-On (Growth)"
	RegimeRiskOff          RegimeLabel = "Risk-Off (Fear)"
	RegimeInflationHedge   RegimeLabel = "Inflation Hedge"
	RegimeDeflation        RegimeLabel = "Deflation/Cash is King"
	RegimeMixed            RegimeLabel = "Mixed/Transition"
	RegimeInsufficientData RegimeLabel = "Insufficient Data"
)

// RegimeSignal is one dated label from the batch classifier
type RegimeSignal struct {
	Date   time.Time   `json:"date"`
	Regime RegimeLabel `json:"regime"`
}
