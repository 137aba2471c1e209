package repository

import (
	"context"

	"golang-stock-scanner/internal/entity"

	"gorm.io/gorm"
)

type StocksRepository interface {
	UniverseRepository
	GetStocks(ctx context.Context) ([]entity.Stock, error)
}

type stocksRepository struct {
	db *gorm.DB
}

// NewStocksRepository serves the universe from the active rows of the stocks table.
func NewStocksRepository(db *gorm.DB) StocksRepository {
	return &stocksRepository{db: db}
}

func (s *stocksRepository) GetStocks(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("code").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (s *stocksRepository) GetTickers(ctx context.Context) ([]string, error) {
	stocks, err := s.GetStocks(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(stocks))
	for _, stock := range stocks {
		codes = append(codes, stock.Code)
	}
	return entity.NormalizeTickers(codes), nil
}
