package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/config"
	"golang-stock-scanner/internal/scanner/dto"
	"golang-stock-scanner/internal/scanner/screener"
	"golang-stock-scanner/pkg/logger"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// breakoutSeries closes at a new high above the prior bar's high on doubled volume.
func breakoutSeries(ticker string, jump float64) entity.BarSeries {
	const n = 120
	bars := make([]entity.Bar, n)
	for i := 0; i < n; i++ {
		c := 100 + float64(i)*0.1
		if i%2 == 1 {
			c += 0.4
		}
		bars[i] = entity.Bar{Time: day0.AddDate(0, 0, i), Open: c, High: c + 0.5, Low: c - 0.5, Close: c, Volume: 1000}
	}
	prevHigh := bars[n-2].High
	c := prevHigh * (1 + jump)
	bars[n-1] = entity.Bar{Time: bars[n-1].Time, Open: prevHigh, High: c + 0.2, Low: prevHigh - 0.1, Close: c, Volume: 2000}
	return entity.BarSeries{Ticker: ticker, Bars: bars}
}

// fadingSeries closes 10% below its all-time high.
func fadingSeries(ticker string) entity.BarSeries {
	const n = 120
	bars := make([]entity.Bar, n)
	for i := 0; i < n; i++ {
		c := 100.0
		if i == 10 {
			c = 120
		}
		if i == n-1 {
			c = 108
		}
		bars[i] = entity.Bar{Time: day0.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}
	return entity.BarSeries{Ticker: ticker, Bars: bars}
}

func shortSeries(ticker string) entity.BarSeries {
	s := breakoutSeries(ticker, 0.05)
	s.Bars = s.Bars[len(s.Bars)-50:]
	return s
}

type fakeBarRepository struct {
	mu      sync.Mutex
	series  map[string]entity.BarSeries
	errs    map[string]error
	panics  map[string]bool
	release chan struct{}
	calls   []string
}

func (f *fakeBarRepository) GetDailyBars(ctx context.Context, param dto.GetBarsParam) (entity.BarSeries, error) {
	f.mu.Lock()
	f.calls = append(f.calls, param.Ticker)
	f.mu.Unlock()

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return entity.BarSeries{}, &entity.FetchError{Ticker: param.Ticker, Provider: "fake", Err: ctx.Err()}
		}
	}
	if f.panics[param.Ticker] {
		panic("provider exploded")
	}
	if err, ok := f.errs[param.Ticker]; ok {
		return entity.BarSeries{}, &entity.FetchError{Ticker: param.Ticker, Provider: "fake", Err: err}
	}
	s, ok := f.series[param.Ticker]
	if !ok {
		return entity.BarSeries{}, &entity.FetchError{Ticker: param.Ticker, Provider: "fake", Err: entity.ErrSymbolNotFound}
	}
	return s, nil
}

type fakeUniverseRepository struct {
	tickers []string
	err     error
}

func (f *fakeUniverseRepository) GetTickers(ctx context.Context) ([]string, error) {
	return f.tickers, f.err
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeNotifier) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func testConfig(workers int) *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Scanner.Workers = workers
	cfg.Scanner.DisplaySuffix = ".SA"
	return cfg
}

func mixedUniverse() (*fakeBarRepository, *fakeUniverseRepository) {
	bars := &fakeBarRepository{
		series: map[string]entity.BarSeries{
			"AAAA3.SA": breakoutSeries("AAAA3.SA", 0.05),
			"BBBB3.SA": breakoutSeries("BBBB3.SA", 0.08),
			"CCCC3.SA": shortSeries("CCCC3.SA"),
			"EEEE3.SA": fadingSeries("EEEE3.SA"),
		},
		errs: map[string]error{
			"DDDD3.SA": errors.New("connection reset"),
		},
	}
	universe := &fakeUniverseRepository{tickers: []string{"AAAA3.SA", "BBBB3.SA", "CCCC3.SA", "DDDD3.SA", "EEEE3.SA"}}
	return bars, universe
}

func newTestService(cfg *config.Config, bars *fakeBarRepository, universe *fakeUniverseRepository, notifier *fakeNotifier) ScanService {
	var n interface{ SendMessage(string) error }
	if notifier != nil {
		n = notifier
	}
	return NewScanService(cfg, bars, universe, screener.Profiles(), n, logger.NewNop())
}
