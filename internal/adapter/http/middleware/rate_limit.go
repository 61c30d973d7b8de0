package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/n3xa/n3xa/internal/adapter/http/response"
	"github.com/n3xa/n3xa/internal/ports"
	"github.com/n3xa/n3xa/internal/service/logger"
)

type RateLimitMiddleware struct {
	rateLimitService ports.RateLimitService
	limit            int
	window           time.Duration
	prefix           string
	logger           logger.Logger
}

// NewRateLimitMiddleware allows limit requests per client IP per window.
// prefix namespaces the counters, e.g. "chat".
func NewRateLimitMiddleware(rateLimitService ports.RateLimitService, prefix string, limit int, window time.Duration, logger logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rateLimitService: rateLimitService,
		limit:            limit,
		window:           window,
		prefix:           prefix,
		logger:           logger,
	}
}

func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rateLimitService == nil || m.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		clientIP := getClientIP(r)
		key := fmt.Sprintf("%s:ip:%s", m.prefix, clientIP)

		allowed, err := m.rateLimitService.CheckLimit(ctx, key, m.limit, m.window)
		if err != nil {
			m.logger.Error(ctx, "Failed to check rate limit", err, map[string]interface{}{
				"ip":  clientIP,
				"key": key,
			})
			// continue with request on error
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			logger.LogSecurityEvent(ctx, m.logger, "rate_limit_exceeded", "MEDIUM", map[string]interface{}{
				"ip":        clientIP,
				"path":      r.URL.Path,
				"key":       key,
				"userAgent": r.UserAgent(),
			})

			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(m.window.Seconds())))
			response.TooManyRequests(w, "Too many requests. Please try again later.")
			return
		}

		if err := m.rateLimitService.Increment(ctx, key, m.window); err != nil {
			m.logger.Error(ctx, "Failed to increment rate limit", err, map[string]interface{}{
				"ip":  clientIP,
				"key": key,
			})
		}

		next.ServeHTTP(w, r)
	})
}

// getClientIP extracts client IP from request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
