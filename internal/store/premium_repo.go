package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wonny/aurum/internal/contracts"
)

// PremiumRepository implements contracts.PremiumRepository
// ⭐ SSOT: 프리미엄 기록 저장소는 여기서만
type PremiumRepository struct {
	gw *Gateway
}

// NewPremiumRepository creates a new premium record repository
func NewPremiumRepository(gw *Gateway) *PremiumRepository {
	return &PremiumRepository{gw: gw}
}

var premiumColumns = []string{"date", "theoretical_price", "physical_price", "premium_amount", "premium_rate"}

// Upsert writes one premium record, overwriting any row with the same date
func (r *PremiumRepository) Upsert(ctx context.Context, rec *contracts.PremiumRecord) error {
	return r.gw.Upsert(ctx, "market_premium_derived", []string{"date"}, premiumColumns, rec)
}

// GetAll retrieves all premium records, date ascending
func (r *PremiumRepository) GetAll(ctx context.Context) ([]contracts.PremiumRecord, error) {
	var recs []contracts.PremiumRecord
	err := r.gw.DB().SelectContext(ctx, &recs, `
		SELECT date, theoretical_price, physical_price, premium_amount, premium_rate
		FROM market_premium_derived
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query market_premium_derived: %w", err)
	}
	return recs, nil
}

// GetLatest retrieves the most recent premium record.
// Returns contracts.ErrNoData when the table is empty ("no data yet").
func (r *PremiumRepository) GetLatest(ctx context.Context) (*contracts.PremiumRecord, error) {
	var rec contracts.PremiumRecord
	err := r.gw.DB().GetContext(ctx, &rec, `
		SELECT date, theoretical_price, physical_price, premium_amount, premium_rate
		FROM market_premium_derived
		ORDER BY date DESC
		LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("query latest premium: %w", err)
	}
	return &rec, nil
}

// Count returns the total number of premium records
func (r *PremiumRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.gw.DB().GetContext(ctx, &count, "SELECT COUNT(*) FROM market_premium_derived"); err != nil {
		return 0, fmt.Errorf("count market_premium_derived: %w", err)
	}
	return count, nil
}
