// Package auth wraps the teacher's internal/web/auth JWT service as chi
// middleware: it decodes an `Authorization: Bearer <token>` header and, on
// success, stashes the claims in the request context so host/router can
// lift them onto req.user before a handler body runs. Invalid or missing
// tokens are not rejected here — the language's own middleware
// (`req.headers.authorization == null`) decides what to do, per spec §8
// scenario 5.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JangRuBin2/rulang/internal/web/auth"
)

type claimsKey struct{}

// Middleware returns chi-compatible middleware that decodes a bearer token
// with svc and attaches its claims to the request context when valid.
func Middleware(svc *auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := svc.ValidateToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the JWT claims attached by Middleware, if any.
func ClaimsFromContext(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.MapClaims)
	return claims, ok
}
