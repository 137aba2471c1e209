package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/dto"
	"golang-stock-scanner/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type countingBarRepository struct {
	mu     sync.Mutex
	calls  int
	series entity.BarSeries
	err    error
}

func (c *countingBarRepository) GetDailyBars(ctx context.Context, param dto.GetBarsParam) (entity.BarSeries, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return entity.BarSeries{}, c.err
	}
	s := c.series
	s.Ticker = param.Ticker
	return s, nil
}

type memoryBarStore struct {
	mu   sync.Mutex
	data map[string][]byte
	ttl  time.Duration
}

func newMemoryBarStore() *memoryBarStore {
	return &memoryBarStore{data: map[string][]byte{}}
}

func (m *memoryBarStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return b, nil
}

func (m *memoryBarStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttl = ttl
	return nil
}

func sampleSeries() entity.BarSeries {
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return entity.BarSeries{Bars: []entity.Bar{
		{Time: t0, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100},
		{Time: t0.AddDate(0, 0, 1), Open: 1.5, High: 2.5, Low: 1, Close: 2, Volume: 200},
	}}
}

func TestCachedBarRepository_MemoryHit(t *testing.T) {
	next := &countingBarRepository{series: sampleSeries()}
	repo := NewCachedBarRepository(next, "yahoo", nil, time.Hour, time.Minute, logger.NewNop())

	param := dto.GetBarsParam{Ticker: "PETR4.SA", Range: "max"}
	first, err := repo.GetDailyBars(context.Background(), param)
	require.NoError(t, err)
	second, err := repo.GetDailyBars(context.Background(), param)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)

	_, err = repo.GetDailyBars(context.Background(), dto.GetBarsParam{Ticker: "PETR4.SA", Range: "6mo"})
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedBarRepository_SharedStore(t *testing.T) {
	store := newMemoryBarStore()
	next := &countingBarRepository{series: sampleSeries()}
	param := dto.GetBarsParam{Ticker: "VALE3.SA", Range: "max"}

	writer := NewCachedBarRepository(next, "yahoo", store, time.Hour, time.Minute, logger.NewNop())
	_, err := writer.GetDailyBars(context.Background(), param)
	require.NoError(t, err)
	require.Contains(t, store.data, "bars:yahoo:VALE3.SA:max")
	assert.Equal(t, time.Hour, store.ttl)

	var decoded entity.BarSeries
	require.NoError(t, msgpack.Unmarshal(store.data["bars:yahoo:VALE3.SA:max"], &decoded))
	assert.Len(t, decoded.Bars, 2)

	// A fresh process reads through the shared store without hitting the provider.
	reader := NewCachedBarRepository(next, "yahoo", store, time.Hour, time.Minute, logger.NewNop())
	got, err := reader.GetDailyBars(context.Background(), param)
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 2.0, got.Last().Close)
	assert.True(t, got.Last().Time.Equal(decoded.Last().Time))
}

func TestCachedBarRepository_ErrorsNotCached(t *testing.T) {
	store := newMemoryBarStore()
	next := &countingBarRepository{err: &entity.FetchError{Ticker: "X", Provider: "yahoo", Err: entity.ErrSymbolNotFound}}
	repo := NewCachedBarRepository(next, "yahoo", store, time.Hour, time.Minute, logger.NewNop())

	param := dto.GetBarsParam{Ticker: "X", Range: "max"}
	_, err := repo.GetDailyBars(context.Background(), param)
	assert.True(t, errors.Is(err, entity.ErrSymbolNotFound))
	_, err = repo.GetDailyBars(context.Background(), param)
	assert.Error(t, err)

	assert.Equal(t, 2, next.calls)
	assert.Empty(t, store.data)
}
