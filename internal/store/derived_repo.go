package store

import (
	"context"
	"fmt"

	"github.com/wonny/aurum/internal/contracts"
)

// DerivedRepository implements contracts.DerivedRepository
// ⭐ SSOT: 파생 지표 저장소는 여기서만
type DerivedRepository struct {
	gw *Gateway
}

// NewDerivedRepository creates a new derived metric repository
func NewDerivedRepository(gw *Gateway) *DerivedRepository {
	return &DerivedRepository{gw: gw}
}

var derivedColumns = []string{"date", "metric", "value", "calculation_version"}

// Upsert writes one derived metric, overwriting any row with the same
// (date, metric). Rerunning a derivation never duplicates.
func (r *DerivedRepository) Upsert(ctx context.Context, metric *contracts.DerivedMetric) error {
	return r.gw.Upsert(ctx, "macro_derived", []string{"date", "metric"}, derivedColumns, metric)
}

// GetSeries retrieves the (date, value) series for one metric, date ascending
func (r *DerivedRepository) GetSeries(ctx context.Context, metric string) (contracts.Series, error) {
	query := r.gw.Rebind(`
		SELECT date, value
		FROM macro_derived
		WHERE metric = ?
		ORDER BY date ASC
	`)

	var series contracts.Series
	if err := r.gw.DB().SelectContext(ctx, &series, query, metric); err != nil {
		return nil, fmt.Errorf("query macro_derived series: %w", err)
	}
	return series, nil
}

// Count returns the total number of derived metric rows
func (r *DerivedRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.gw.DB().GetContext(ctx, &count, "SELECT COUNT(*) FROM macro_derived"); err != nil {
		return 0, fmt.Errorf("count macro_derived: %w", err)
	}
	return count, nil
}
