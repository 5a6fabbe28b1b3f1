package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JangRuBin2/rulang/internal/web/auth"
)

func TestMiddlewareAttachesClaimsForValidToken(t *testing.T) {
	svc := auth.NewAuthService("secret", time.Hour)
	token, err := svc.GenerateToken("u1", "a@b.com", []string{"admin"})
	require.NoError(t, err)

	var sawClaims bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		sawClaims = ok
		if ok {
			assert.Equal(t, "u1", claims["user_id"])
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Middleware(svc)(next).ServeHTTP(rec, req)
	assert.True(t, sawClaims)
}

func TestMiddlewarePassesThroughWithoutHeader(t *testing.T) {
	svc := auth.NewAuthService("secret", time.Hour)

	var sawClaims bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawClaims = ClaimsFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	Middleware(svc)(next).ServeHTTP(rec, req)
	assert.False(t, sawClaims)
}
