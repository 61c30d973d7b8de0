package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/n3xa/n3xa/internal/ports"
)

// RateLimitConfig configures NewRateLimitService
type RateLimitConfig struct {
	Enabled  bool
	RedisURL string
}

type rateLimitService struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

// NewRateLimitService returns a Redis-backed fixed-window counter, or a noop
// service when rate limiting is disabled.
func NewRateLimitService(config RateLimitConfig, logger *logrus.Logger) (ports.RateLimitService, error) {
	if !config.Enabled {
		logger.Info("Rate limiting disabled")
		return NoopRateLimitService{}, nil
	}

	opt, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.WithField("redis_addr", opt.Addr).Info("Rate limiting service initialized")
	return NewRedisRateLimitService(client, logger), nil
}

// NewRedisRateLimitService wraps an existing client
func NewRedisRateLimitService(client *redis.Client, logger *logrus.Logger) ports.RateLimitService {
	return &rateLimitService{redisClient: client, logger: logger}
}

// CheckLimit reports whether key is still under limit
func (s *rateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	current, err := s.GetAttempts(ctx, key)
	if err != nil {
		return false, err
	}

	under := current < limit
	s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"key":         key,
		"current":     current,
		"limit":       limit,
		"under_limit": under,
	}).Debug("Rate limit check")
	return under, nil
}

// Increment bumps the counter for key. The window starts at the first hit.
func (s *rateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	count, err := s.redisClient.Incr(ctx, key).Result()
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to increment rate limit counter")
		return fmt.Errorf("failed to increment rate limit: %w", err)
	}
	if count == 1 {
		if err := s.redisClient.Expire(ctx, key, window).Err(); err != nil {
			return fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return nil
}

// GetAttempts returns the current count for key, 0 when absent
func (s *rateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	count, err := s.redisClient.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		s.logger.WithContext(ctx).WithError(err).Error("Failed to get attempts count")
		return 0, fmt.Errorf("failed to get attempts: %w", err)
	}
	return count, nil
}

// NoopRateLimitService allows everything
type NoopRateLimitService struct{}

func (NoopRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (NoopRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	return nil
}

func (NoopRateLimitService) GetAttempts(ctx context.Context, key string) (int, error) {
	return 0, nil
}
