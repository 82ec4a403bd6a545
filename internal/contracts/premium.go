package contracts

import "time"

// PremiumRecord is the per-date gap between the domestic physical price and
// the derived theoretical price. Unique on date; recomputation overwrites.
type PremiumRecord struct {
	Date             time.Time `db:"date" json:"date"`
	TheoreticalPrice float64   `db:"theoretical_price" json:"theoretical_price"`
	PhysicalPrice    float64   `db:"physical_price" json:"physical_price"`
	PremiumAmount    float64   `db:"premium_amount" json:"premium_amount"`
	PremiumRate      float64   `db:"premium_rate" json:"premium_rate"`
}

// PremiumStatus is the banded interpretation of a premium rate.
// Not persisted; recomputed from PremiumRecord on demand.
type PremiumStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Premium status bands
const (
	PremiumStatusDiscount    = "Discount"
	PremiumStatusNormal      = "Normal"
	PremiumStatusHighDemand  = "High Demand"
	PremiumStatusOverheating = "Overheating"
)
