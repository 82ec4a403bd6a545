package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/wonny/aurum/internal/contracts"
)

// MacroRawRepository implements contracts.MacroRawRepository
// ⭐ SSOT: 원시 관측치 저장소는 여기서만
type MacroRawRepository struct {
	gw *Gateway
}

// NewMacroRawRepository creates a new raw observation repository
func NewMacroRawRepository(gw *Gateway) *MacroRawRepository {
	return &MacroRawRepository{gw: gw}
}

var macroRawColumns = []string{"date", "symbol", "value", "unit", "source"}

// Upsert writes one observation, overwriting any row with the same (date, symbol)
func (r *MacroRawRepository) Upsert(ctx context.Context, obs *contracts.RawObservation) error {
	return r.gw.Upsert(ctx, "macro_raw", []string{"date", "symbol"}, macroRawColumns, obs)
}

// GetBySymbols retrieves all observations for the given symbols, date ascending
func (r *MacroRawRepository) GetBySymbols(ctx context.Context, symbols ...string) ([]contracts.RawObservation, error) {
	query, args, err := sqlx.In(`
		SELECT date, symbol, value, unit, source
		FROM macro_raw
		WHERE symbol IN (?)
		ORDER BY date ASC
	`, symbols)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var obs []contracts.RawObservation
	if err := r.gw.DB().SelectContext(ctx, &obs, r.gw.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query macro_raw: %w", err)
	}
	return obs, nil
}

// GetSeries retrieves the (date, value) series for one symbol, date ascending
func (r *MacroRawRepository) GetSeries(ctx context.Context, symbol string) (contracts.Series, error) {
	query := r.gw.Rebind(`
		SELECT date, value
		FROM macro_raw
		WHERE symbol = ?
		ORDER BY date ASC
	`)

	var series contracts.Series
	if err := r.gw.DB().SelectContext(ctx, &series, query, symbol); err != nil {
		return nil, fmt.Errorf("query macro_raw series: %w", err)
	}
	return series, nil
}

// Count returns the total number of raw observations
func (r *MacroRawRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.gw.DB().GetContext(ctx, &count, "SELECT COUNT(*) FROM macro_raw"); err != nil {
		return 0, fmt.Errorf("count macro_raw: %w", err)
	}
	return count, nil
}
