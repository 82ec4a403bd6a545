package store

import (
	"context"
	"fmt"

	"github.com/wonny/aurum/internal/contracts"
)

// DomesticRepository implements contracts.DomesticRepository
// ⭐ SSOT: 국내 실물 시세 저장소는 여기서만
type DomesticRepository struct {
	gw *Gateway
}

// NewDomesticRepository creates a new domestic market repository
func NewDomesticRepository(gw *Gateway) *DomesticRepository {
	return &DomesticRepository{gw: gw}
}

var domesticColumns = []string{"date", "price_type", "value", "unit", "source"}

// Upsert writes one quote, overwriting any row with the same (date, price_type)
func (r *DomesticRepository) Upsert(ctx context.Context, obs *contracts.DomesticObservation) error {
	return r.gw.Upsert(ctx, "domestic_market_raw", []string{"date", "price_type"}, domesticColumns, obs)
}

// GetByPriceType retrieves all quotes of one price type, date ascending
func (r *DomesticRepository) GetByPriceType(ctx context.Context, priceType contracts.PriceType) ([]contracts.DomesticObservation, error) {
	query := r.gw.Rebind(`
		SELECT date, price_type, value, unit, source
		FROM domestic_market_raw
		WHERE price_type = ?
		ORDER BY date ASC
	`)

	var obs []contracts.DomesticObservation
	if err := r.gw.DB().SelectContext(ctx, &obs, query, string(priceType)); err != nil {
		return nil, fmt.Errorf("query domestic_market_raw: %w", err)
	}
	return obs, nil
}

// Count returns the total number of domestic quotes
func (r *DomesticRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.gw.DB().GetContext(ctx, &count, "SELECT COUNT(*) FROM domestic_market_raw"); err != nil {
		return 0, fmt.Errorf("count domestic_market_raw: %w", err)
	}
	return count, nil
}
