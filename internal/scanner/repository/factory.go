package repository

import (
	"fmt"

	"golang-stock-scanner/internal/scanner/config"
	"golang-stock-scanner/pkg/common"
	"golang-stock-scanner/pkg/logger"

	"gorm.io/gorm"
)

// NewBarRepository builds the configured provider, wrapped with the cache when enabled.
func NewBarRepository(cfg *config.Config, store BarStore, log *logger.Logger) (BarRepository, error) {
	var repo BarRepository
	switch cfg.DataSource.Provider {
	case common.ProviderYahoo:
		repo = NewYahooFinanceRepository(cfg, log)
	case common.ProviderAlpaca:
		repo = NewAlpacaRepository(cfg, log)
	default:
		return nil, fmt.Errorf("unknown data source provider %q", cfg.DataSource.Provider)
	}

	if !cfg.Cache.Enabled {
		return repo, nil
	}
	return NewCachedBarRepository(repo, cfg.DataSource.Provider, store, cfg.Cache.TTL, cfg.Cache.CleanupInterval, log), nil
}

// NewUniverseRepository builds the configured ticker source. db is required for the database source.
func NewUniverseRepository(cfg *config.Config, db *gorm.DB) (UniverseRepository, error) {
	switch cfg.Universe.Source {
	case common.UniverseSourceFile:
		return NewFileUniverseRepository(cfg.Universe.File), nil
	case common.UniverseSourceConfig:
		return NewStaticUniverseRepository(cfg.Universe.Tickers), nil
	case common.UniverseSourceDatabase:
		if db == nil {
			return nil, fmt.Errorf("universe source %q requires the database to be enabled", cfg.Universe.Source)
		}
		return NewStocksRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown universe source %q", cfg.Universe.Source)
	}
}
