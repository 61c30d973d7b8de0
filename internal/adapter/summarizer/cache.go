package summarizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/n3xa/n3xa/internal/ports"
	"github.com/n3xa/n3xa/internal/service/logger"
)

// RedisCache stores summaries in Redis
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, summary string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, summary, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// cacheTimeout bounds each cache round trip
const cacheTimeout = 200 * time.Millisecond

// CachedSummarizer serves repeated requests from a cache. Cache failures are
// logged and never fail the call.
type CachedSummarizer struct {
	next   ports.Summarizer
	cache  ports.SummaryCache
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedSummarizer(next ports.Summarizer, cache ports.SummaryCache, ttl time.Duration, log logger.Logger) *CachedSummarizer {
	return &CachedSummarizer{next: next, cache: cache, ttl: ttl, logger: log}
}

// CacheKey derives the cache key for req
func CacheKey(req ports.SummaryRequest) string {
	h := sha256.New()
	for _, part := range []string{req.Title, req.Category, req.Description, req.Email} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "summary:" + hex.EncodeToString(h.Sum(nil))
}

func (s *CachedSummarizer) Summarize(ctx context.Context, req ports.SummaryRequest) (string, error) {
	key := CacheKey(req)

	getCtx, cancel := context.WithTimeout(ctx, cacheTimeout)
	cached, found, err := s.cache.Get(getCtx, key)
	cancel()
	if err != nil {
		s.logger.Warn(ctx, "Summary cache read failed", map[string]interface{}{"error": err.Error()})
	} else if found {
		s.logger.Debug(ctx, "Summary cache hit", map[string]interface{}{"key": key})
		return cached, nil
	}

	summary, err := s.next.Summarize(ctx, req)
	if err != nil {
		return "", err
	}

	setCtx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	if err := s.cache.Set(setCtx, key, summary, s.ttl); err != nil {
		s.logger.Warn(ctx, "Summary cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return summary, nil
}
