package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JangRuBin2/rulang/compiler/lexer"
	"github.com/JangRuBin2/rulang/compiler/parser"
	"github.com/JangRuBin2/rulang/compiler/statecompiler"
	hostauth "github.com/JangRuBin2/rulang/host/auth"
	webauth "github.com/JangRuBin2/rulang/internal/web/auth"
	"github.com/JangRuBin2/rulang/runtime/eval"
)

func buildMux(t *testing.T, source string) *Dispatcher {
	t.Helper()

	l := lexer.New(source)
	tokens, errs := l.ScanTokens()
	require.Empty(t, errs)

	program, err := parser.New(tokens).Parse()
	require.NoError(t, err)

	machines, err := statecompiler.Compile(program)
	require.NoError(t, err)

	rootScope := eval.NewRootScope()
	d := New(rootScope, nil, nil)
	ev := eval.New(d, func(string) {})
	d.SetEvaluator(ev)

	require.NoError(t, ev.Run(program, machines, rootScope))
	return d
}

func TestEndpointWithoutMiddlewareServesJSON(t *testing.T) {
	d := buildMux(t, `endpoint GET "/h" { res.json({m: "hi"}) } server 3000`)
	assert.Equal(t, 3000.0, d.Port())

	mux, err := d.Build()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/h", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"m":"hi"}`, rec.Body.String())
}

func TestAuthMiddlewareShortCircuitsWithoutHeader(t *testing.T) {
	source := `
		middleware auth {
			if (req.headers.authorization == null) {
				res.status(401)
				res.json({error: "u"})
				return
			}
			next()
		}
		use auth
		endpoint GET "/x" { res.json({ok: true}) }
	`
	d := buildMux(t, source)
	mux, err := d.Build()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"u"}`, rec.Body.String())
}

func TestAuthMiddlewareLetsRequestThroughWithHeader(t *testing.T) {
	source := `
		middleware auth {
			if (req.headers.authorization == null) {
				res.status(401)
				res.json({error: "u"})
				return
			}
			next()
		}
		use auth
		endpoint GET "/x" { res.json({ok: true}) }
	`
	d := buildMux(t, source)
	mux, err := d.Build()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestUndeclaredMiddlewareFailsBuild(t *testing.T) {
	d := buildMux(t, `endpoint GET "/x" use [missing] { res.json({ok: true}) }`)
	_, err := d.Build()
	assert.Error(t, err)
}

func TestReqUserIsSetFromValidBearerToken(t *testing.T) {
	d := buildMux(t, `endpoint GET "/me" { res.json({id: req.user.user_id}) }`)
	mux, err := d.Build()
	require.NoError(t, err)

	svc := webauth.NewAuthService("secret", time.Hour)
	token, err := svc.GenerateToken("u1", "a@b.com", []string{"admin"})
	require.NoError(t, err)
	handler := hostauth.Middleware(svc)(mux)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"u1"}`, rec.Body.String())
}

func TestReqUserIsNullWithoutAToken(t *testing.T) {
	d := buildMux(t, `endpoint GET "/me" { res.json({hasUser: req.user != null}) }`)
	mux, err := d.Build()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hasUser":false}`, rec.Body.String())
}
