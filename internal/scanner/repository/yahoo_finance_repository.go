package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/config"
	"golang-stock-scanner/internal/scanner/dto"
	"golang-stock-scanner/pkg/common"
	"golang-stock-scanner/pkg/logger"

	"go.uber.org/zap"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// maxHistoryYears bounds the period window sent for the "max" range. The chart
// API coarsens the interval when range=max is requested, so full history is
// asked for as an explicit window instead.
const maxHistoryYears = 99

type yahooFinanceRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
	now        func() time.Time
}

// NewYahooFinanceRepository creates a BarRepository backed by the Yahoo Finance chart API.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) BarRepository {
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.YahooFinance.Timeout,
		},
		now: time.Now,
	}
}

func (r *yahooFinanceRepository) GetDailyBars(ctx context.Context, param dto.GetBarsParam) (entity.BarSeries, error) {
	rng := param.Range
	if rng == "" {
		rng = "max"
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", r.cfg.YahooFinance.BaseURL, url.PathEscape(param.Ticker), r.chartQuery(rng).Encode())

	body, status, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return entity.BarSeries{}, r.fetchError(param.Ticker, err)
	}

	var response dto.YahooChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		if status != http.StatusOK {
			return entity.BarSeries{}, r.fetchError(param.Ticker, fmt.Errorf("unexpected status code %d", status))
		}
		return entity.BarSeries{}, r.fetchError(param.Ticker, fmt.Errorf("failed to decode chart response: %w", err))
	}

	if chartErr := response.Chart.Error; chartErr != nil {
		if chartErr.Code == "Not Found" {
			return entity.BarSeries{}, r.fetchError(param.Ticker, entity.ErrSymbolNotFound)
		}
		return entity.BarSeries{}, r.fetchError(param.Ticker, fmt.Errorf("%s: %s", chartErr.Code, chartErr.Description))
	}
	if status != http.StatusOK {
		return entity.BarSeries{}, r.fetchError(param.Ticker, fmt.Errorf("unexpected status code %d", status))
	}
	if len(response.Chart.Result) == 0 {
		return entity.BarSeries{}, r.fetchError(param.Ticker, entity.ErrSymbolNotFound)
	}

	bars := parseYahooBars(response.Chart.Result[0])
	if len(bars) == 0 {
		return entity.BarSeries{}, r.fetchError(param.Ticker, entity.ErrEmptySeries)
	}

	r.log.DebugContext(ctx, "Fetched daily bars from Yahoo Finance",
		logger.StringField("ticker", param.Ticker),
		logger.StringField("range", rng),
		logger.IntField("bars", len(bars)),
	)

	return entity.BarSeries{Ticker: param.Ticker, Bars: bars}, nil
}

func (r *yahooFinanceRepository) chartQuery(rng string) url.Values {
	query := url.Values{}
	query.Set("interval", "1d")
	if strings.EqualFold(rng, "max") {
		end := r.now().UTC()
		query.Set("period1", strconv.FormatInt(end.AddDate(-maxHistoryYears, 0, 0).Unix(), 10))
		query.Set("period2", strconv.FormatInt(end.Unix(), 10))
	} else {
		query.Set("range", rng)
	}
	query.Set("includePrePost", "false")
	return query
}

// parseYahooBars aligns the quote arrays with the timestamps, skipping
// bars with missing prices and keeping the last bar of duplicated timestamps.
func parseYahooBars(result dto.YahooChartResult) []entity.Bar {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	q := result.Indicators.Quote[0]

	bars := make([]entity.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		open, high, low, closePrice := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
		if open == nil || high == nil || low == nil || closePrice == nil {
			continue
		}
		var volume float64
		if v := at(q.Volume, i); v != nil {
			volume = *v
		}
		bars = append(bars, entity.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   *open,
			High:   *high,
			Low:    *low,
			Close:  *closePrice,
			Volume: volume,
		})
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	deduped := bars[:0]
	for _, b := range bars {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(b.Time) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	return deduped
}

func at(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func (r *yahooFinanceRepository) fetchError(ticker string, err error) error {
	return &entity.FetchError{Ticker: ticker, Provider: common.ProviderYahoo, Err: err}
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, endpoint string) ([]byte, int, error) {
	fields := []zap.Field{
		zap.String("url", endpoint),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, 0, err
	}
	userAgent := r.cfg.YahooFinance.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, 0, err
		}
		fields = append(fields, zap.Error(err))
		r.log.WarnContext(ctx, "Failed to send request to Yahoo Finance API", fields...)
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.WarnContext(ctx, "Failed to read response body from Yahoo Finance API", fields...)
		return nil, resp.StatusCode, err
	}

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.WarnContext(ctx, "Received non-OK response from Yahoo Finance API", fields...)
	}

	return body, resp.StatusCode, nil
}
