package repository

import (
	"context"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/config"
	"golang-stock-scanner/internal/scanner/dto"
	"golang-stock-scanner/pkg/common"
	"golang-stock-scanner/pkg/logger"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// alpacaBarsClient is the subset of the Alpaca market data client used here.
type alpacaBarsClient interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

type alpacaRepository struct {
	client alpacaBarsClient
	feed   string
	log    *logger.Logger
	now    func() time.Time
}

// NewAlpacaRepository creates a BarRepository backed by Alpaca daily bars.
func NewAlpacaRepository(cfg *config.Config, log *logger.Logger) BarRepository {
	client := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    cfg.Alpaca.APIKey,
		APISecret: cfg.Alpaca.APISecret,
		BaseURL:   cfg.Alpaca.BaseURL,
	})
	return newAlpacaRepository(client, cfg.Alpaca.Feed, log)
}

func newAlpacaRepository(client alpacaBarsClient, feed string, log *logger.Logger) *alpacaRepository {
	return &alpacaRepository{
		client: client,
		feed:   feed,
		log:    log,
		now:    time.Now,
	}
}

func (r *alpacaRepository) GetDailyBars(ctx context.Context, param dto.GetBarsParam) (entity.BarSeries, error) {
	if err := ctx.Err(); err != nil {
		return entity.BarSeries{}, r.fetchError(param.Ticker, err)
	}

	now := r.now().UTC()
	start, err := dto.RangeStart(now, param.Range)
	if err != nil {
		return entity.BarSeries{}, r.fetchError(param.Ticker, err)
	}

	bars, err := r.client.GetBars(param.Ticker, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Start:      start,
		End:        now,
		Adjustment: marketdata.Split,
		Feed:       marketdata.Feed(r.feed),
	})
	if err != nil {
		r.log.WarnContext(ctx, "Failed to get bars from Alpaca",
			logger.StringField("ticker", param.Ticker),
			logger.ErrorField(err),
		)
		return entity.BarSeries{}, r.fetchError(param.Ticker, err)
	}
	if len(bars) == 0 {
		return entity.BarSeries{}, r.fetchError(param.Ticker, entity.ErrEmptySeries)
	}

	series := entity.BarSeries{Ticker: param.Ticker, Bars: make([]entity.Bar, 0, len(bars))}
	for _, b := range bars {
		series.Bars = append(series.Bars, entity.Bar{
			Time:   b.Timestamp.UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		})
	}

	r.log.DebugContext(ctx, "Fetched daily bars from Alpaca",
		logger.StringField("ticker", param.Ticker),
		logger.IntField("bars", len(series.Bars)),
	)
	return series, nil
}

func (r *alpacaRepository) fetchError(ticker string, err error) error {
	return &entity.FetchError{Ticker: ticker, Provider: common.ProviderAlpaca, Err: err}
}
