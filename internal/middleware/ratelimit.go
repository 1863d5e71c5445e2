package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/udhekryqi/udhekryqi-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed counting window per IP
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window
	RateLimitMaxRequests = 60
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs
	BlockedIPKeyPrefix = "blocked_ip:"
	// BlockedIPDuration is how long an IP stays blocked
	BlockedIPDuration = 24 * time.Hour
)

// RateLimit provides per-IP rate limiting with temporary IP blocking, backed
// by Redis. When rdb is nil or Redis is unreachable the limiter fails open.
func RateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ipAddress := clientip.RealClientIP(r)

			blockedKey := BlockedIPKeyPrefix + ipAddress
			isBlocked, err := rdb.Exists(ctx, blockedKey).Result()
			if err == nil && isBlocked > 0 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"message":"Your IP has been temporarily blocked due to excessive requests. Please try again later."}`))
				return
			}

			rateLimitKey := RateLimitKeyPrefix + ipAddress
			newCount, err := rdb.Incr(ctx, rateLimitKey).Result()
			if err != nil {
				// Redis down: allow the request
				next.ServeHTTP(w, r)
				return
			}
			if newCount == 1 {
				rdb.Expire(ctx, rateLimitKey, RateLimitWindow)
			}

			if newCount > RateLimitMaxRequests {
				rdb.Set(ctx, blockedKey, "1", BlockedIPDuration)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(fmt.Sprintf(`{"message":"Rate limit exceeded. Your IP has been temporarily blocked. Please try again later.","retry_after":%d}`, int(RateLimitWindow.Seconds()))))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(RateLimitMaxRequests-newCount, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(RateLimitWindow).Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}
