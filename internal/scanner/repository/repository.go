package repository

import (
	"context"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/dto"
)

// BarRepository provides daily OHLCV history for a ticker.
// Implementations return series oldest-first and wrap failures in *entity.FetchError.
type BarRepository interface {
	GetDailyBars(ctx context.Context, param dto.GetBarsParam) (entity.BarSeries, error)
}

// UniverseRepository provides the list of tickers to scan.
type UniverseRepository interface {
	GetTickers(ctx context.Context) ([]string, error)
}
