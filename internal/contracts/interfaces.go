package contracts

import (
	"context"
	"time"
)

// Repository interfaces
// ⭐ SSOT: 저장소 계약은 여기서만 정의

// MacroRawRepository stores raw per-symbol observations
type MacroRawRepository interface {
	Upsert(ctx context.Context, obs *RawObservation) error
	GetBySymbols(ctx context.Context, symbols ...string) ([]RawObservation, error)
	GetSeries(ctx context.Context, symbol string) (Series, error)
	Count(ctx context.Context) (int64, error)
}

// DomesticRepository stores domestic physical-market quotes
type DomesticRepository interface {
	Upsert(ctx context.Context, obs *DomesticObservation) error
	GetByPriceType(ctx context.Context, priceType PriceType) ([]DomesticObservation, error)
	Count(ctx context.Context) (int64, error)
}

// DerivedRepository stores versioned derived metrics
type DerivedRepository interface {
	Upsert(ctx context.Context, metric *DerivedMetric) error
	GetSeries(ctx context.Context, metric string) (Series, error)
	Count(ctx context.Context) (int64, error)
}

// PremiumRepository stores per-date premium records
type PremiumRepository interface {
	Upsert(ctx context.Context, rec *PremiumRecord) error
	GetAll(ctx context.Context) ([]PremiumRecord, error)
	GetLatest(ctx context.Context) (*PremiumRecord, error)
	Count(ctx context.Context) (int64, error)
}

// Collector interfaces
// 수집기가 실패해도 파이프라인 전체는 계속 진행한다

// ObservationSource is a pluggable upstream returning raw observations
type ObservationSource interface {
	Name() string
	Collect(ctx context.Context, from, to time.Time) ([]RawObservation, error)
}

// DomesticSource returns domestic physical-market quotes
type DomesticSource interface {
	Name() string
	Collect(ctx context.Context) ([]DomesticObservation, error)
}
