package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/agripoint/loyalty-api/internal/pkg/response"
)

// RateLimit returns a fixed-window limiter backed by Redis, keyed by the
// authenticated member (falling back to client IP for anonymous calls).
// The limiter fails open when Redis is unavailable so an infra outage
// does not take the write path down with it.
func RateLimit(rdb *redis.Client, perMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil || perMinute <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := rateLimitKey(r)

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(r.Context(), key, time.Minute)
			}

			if count > int64(perMinute) {
				response.TooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	window := time.Now().Unix() / 60
	if memberID := GetMemberID(r.Context()); memberID != uuid.Nil {
		return fmt.Sprintf("ratelimit:m:%s:%d", memberID, window)
	}
	return fmt.Sprintf("ratelimit:ip:%s:%d", getClientIP(r), window)
}
