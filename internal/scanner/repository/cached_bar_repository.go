package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/dto"
	"golang-stock-scanner/pkg/common"
	"golang-stock-scanner/pkg/logger"

	"github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrCacheMiss is returned by a BarStore when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// BarStore is a shared byte store for encoded bar series.
type BarStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisBarStore struct {
	client goredis.Cmdable
}

// NewRedisBarStore adapts a go-redis client to BarStore.
func NewRedisBarStore(client goredis.Cmdable) BarStore {
	return &redisBarStore{client: client}
}

func (s *redisBarStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (s *redisBarStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

type cachedBarRepository struct {
	next     BarRepository
	provider string
	memory   *cache.Cache
	store    BarStore
	ttl      time.Duration
	log      *logger.Logger
}

// NewCachedBarRepository wraps next with an in-process cache and an optional shared store.
// Only successful fetches are cached. store may be nil.
func NewCachedBarRepository(next BarRepository, provider string, store BarStore, ttl, cleanupInterval time.Duration, log *logger.Logger) BarRepository {
	return &cachedBarRepository{
		next:     next,
		provider: provider,
		memory:   cache.New(ttl, cleanupInterval),
		store:    store,
		ttl:      ttl,
		log:      log,
	}
}

func (r *cachedBarRepository) GetDailyBars(ctx context.Context, param dto.GetBarsParam) (entity.BarSeries, error) {
	key := fmt.Sprintf(common.RedisKeyBarSeries, r.provider, param.Ticker, param.Range)

	if cached, found := r.memory.Get(key); found {
		return cached.(entity.BarSeries), nil
	}

	if r.store != nil {
		if series, ok := r.loadShared(ctx, key); ok {
			r.memory.Set(key, series, cache.DefaultExpiration)
			return series, nil
		}
	}

	series, err := r.next.GetDailyBars(ctx, param)
	if err != nil {
		return entity.BarSeries{}, err
	}

	r.memory.Set(key, series, cache.DefaultExpiration)
	if r.store != nil {
		r.saveShared(ctx, key, series)
	}
	return series, nil
}

func (r *cachedBarRepository) loadShared(ctx context.Context, key string) (entity.BarSeries, bool) {
	b, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			r.log.WarnContext(ctx, "Failed to read bar series from cache", logger.StringField("key", key), logger.ErrorField(err))
		}
		return entity.BarSeries{}, false
	}

	var series entity.BarSeries
	if err := msgpack.Unmarshal(b, &series); err != nil {
		r.log.WarnContext(ctx, "Failed to decode cached bar series", logger.StringField("key", key), logger.ErrorField(err))
		return entity.BarSeries{}, false
	}
	return series, true
}

func (r *cachedBarRepository) saveShared(ctx context.Context, key string, series entity.BarSeries) {
	b, err := msgpack.Marshal(series)
	if err != nil {
		r.log.WarnContext(ctx, "Failed to encode bar series", logger.StringField("key", key), logger.ErrorField(err))
		return
	}
	if err := r.store.Set(ctx, key, b, r.ttl); err != nil {
		r.log.WarnContext(ctx, "Failed to write bar series to cache", logger.StringField("key", key), logger.ErrorField(err))
	}
}
