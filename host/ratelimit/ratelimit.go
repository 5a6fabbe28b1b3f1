// Package ratelimit wraps the teacher's internal/web/ratelimit limiters as
// chi middleware, keyed by remote address. It is not triggered by anything
// in Rulang's grammar (the language has no rate-limit declaration) — the
// CLI wires it in globally, the way the teacher's own server composes
// cross-cutting middleware ahead of route-specific ones.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"

	"github.com/JangRuBin2/rulang/internal/web/ratelimit"
)

// Middleware returns chi-compatible middleware enforcing limiter's policy
// per remote address, responding 429 Too Many Requests when exceeded.
func Middleware(limiter ratelimit.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := remoteKey(r)
			info, err := limiter.Allow(r.Context(), key)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if info != nil {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			}
			if info != nil && !info.Allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func remoteKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
