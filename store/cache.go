package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"monchai-insurance/models"
)

const allCustomersKey = "customers:all"

// Backend is the full set of sheet operations.
type Backend interface {
	FetchAll(ctx context.Context) ([]map[string]any, error)
	Create(ctx context.Context, c models.Customer) error
	Update(ctx context.Context, rowNumber int, c models.Customer) error
	Delete(ctx context.Context, rowNumbers []int) error
}

// Cache is a byte-valued key store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

// CachedStore serves FetchAll from cache for a short TTL and drops the cached
// copy on every write, whatever the write's outcome. A nil cache passes through.
type CachedStore struct {
	backend Backend
	cache   Cache
	ttl     time.Duration
	log     *logrus.Logger
}

func NewCachedStore(backend Backend, cache Cache, ttl time.Duration, logger *logrus.Logger) *CachedStore {
	return &CachedStore{backend: backend, cache: cache, ttl: ttl, log: logger}
}

func (s *CachedStore) FetchAll(ctx context.Context) ([]map[string]any, error) {
	if s.cache == nil {
		return s.backend.FetchAll(ctx)
	}

	if payload, ok, err := s.cache.Get(ctx, allCustomersKey); err != nil {
		s.log.WithField("key", allCustomersKey).Warn("cache read failed: " + err.Error())
	} else if ok {
		var rows []map[string]any
		if err := json.Unmarshal(payload, &rows); err == nil {
			return rows, nil
		}
		s.log.WithField("key", allCustomersKey).Warn("discarding undecodable cache entry")
	}

	rows, err := s.backend.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rows); err == nil {
		if err := s.cache.Set(ctx, allCustomersKey, payload, s.ttl); err != nil {
			s.log.WithField("key", allCustomersKey).Warn("cache write failed: " + err.Error())
		}
	}
	return rows, nil
}

func (s *CachedStore) Create(ctx context.Context, c models.Customer) error {
	defer s.invalidate(ctx)
	return s.backend.Create(ctx, c)
}

func (s *CachedStore) Update(ctx context.Context, rowNumber int, c models.Customer) error {
	defer s.invalidate(ctx)
	return s.backend.Update(ctx, rowNumber, c)
}

func (s *CachedStore) Delete(ctx context.Context, rowNumbers []int) error {
	defer s.invalidate(ctx)
	return s.backend.Delete(ctx, rowNumbers)
}

func (s *CachedStore) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, allCustomersKey); err != nil {
		s.log.WithField("key", allCustomersKey).Warn("cache invalidation failed: " + err.Error())
	}
}
