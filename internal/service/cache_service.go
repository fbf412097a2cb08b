package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appErrors "github.com/culiplan/culiplan-api/pkg/errors"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheMetrics interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveCacheWrite(duration time.Duration)
}

// CacheService provides JSON cache-aside helpers over Redis. A nil
// receiver disables caching entirely so callers never branch on config.
type CacheService struct {
	store   cacheStore
	metrics cacheMetrics
	ttl     time.Duration
}

type CacheServiceParams struct {
	Store   cacheStore
	Metrics cacheMetrics
	TTL     time.Duration
}

func NewCacheService(params CacheServiceParams) *CacheService {
	ttl := params.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CacheService{
		store:   params.Store,
		metrics: params.Metrics,
		ttl:     ttl,
	}
}

// GetJSON loads a cached value into dest. Returns ErrCacheMiss when absent.
func (s *CacheService) GetJSON(ctx context.Context, key string, dest any) error {
	if s == nil || s.store == nil {
		return appErrors.ErrCacheMiss
	}
	start := time.Now()
	raw, err := s.store.Get(ctx, key)
	hit := err == nil
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, time.Since(start))
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode cached value for %s: %w", key, err)
	}
	return nil
}

// SetJSON stores value under key with the configured TTL.
func (s *CacheService) SetJSON(ctx context.Context, key string, value any) error {
	if s == nil || s.store == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %s: %w", key, err)
	}
	start := time.Now()
	if err := s.store.Set(ctx, key, string(raw), s.ttl); err != nil {
		return fmt.Errorf("store cached value for %s: %w", key, err)
	}
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
	return nil
}

// Invalidate removes every key matching pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.DeleteByPattern(ctx, pattern); err != nil {
		return fmt.Errorf("invalidate cache pattern %s: %w", pattern, err)
	}
	return nil
}
