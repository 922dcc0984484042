package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/promptelo/promptelo/internal/metrics"
	"github.com/promptelo/promptelo/internal/ratelimit"
)

// ClientIP extracts the caller's address, honoring proxies.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit enforces the sliding-window budget per client IP. The
// health check stays reachable for load balancers even under abuse.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/v1/health" {
				next.ServeHTTP(w, r)
				return
			}

			limit := strconv.Itoa(limiter.Limit())
			windowSeconds := int(limiter.Window() / time.Second)

			allowed, remaining := limiter.Allow(ClientIP(r))
			if !allowed {
				metrics.RateLimitRejections.Inc()

				w.Header().Set("X-RateLimit-Limit", limit)
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Unix()+int64(windowSeconds), 10))
				w.Header().Set("Retry-After", strconv.Itoa(windowSeconds))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]any{
					"detail":      "Rate limit exceeded",
					"retry_after": windowSeconds,
				})
				return
			}

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			next.ServeHTTP(w, r)
		})
	}
}
