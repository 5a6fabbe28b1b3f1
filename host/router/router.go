// Package router wires a compiled Rulang program's endpoint, middleware,
// and use declarations into live HTTP dispatch. It implements eval.Hooks to
// collect declarations as the evaluator walks the program, then builds one
// chi route per endpoint on top of the teacher's internal/web/router.Router,
// executing each request's middleware chain and handler body against the
// evaluator's block-execution primitive.
package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JangRuBin2/rulang/compiler/parser"
	"github.com/JangRuBin2/rulang/host/auth"
	"github.com/JangRuBin2/rulang/host/valueconv"
	webrouter "github.com/JangRuBin2/rulang/internal/web/router"
	"github.com/JangRuBin2/rulang/runtime/eval"
	"github.com/JangRuBin2/rulang/runtime/value"
)

type pendingEndpoint struct {
	method      string
	path        string
	middlewares []string
	body        *parser.BlockStmt
}

// Dispatcher collects a program's HTTP-flavored declarations during
// evaluator.Run and, once Build is called, serves them as an http.Handler.
type Dispatcher struct {
	evaluator *eval.Evaluator
	rootScope *value.Scope
	db        *value.Object
	logger    *zap.Logger

	endpoints   []pendingEndpoint
	middlewares map[string]*parser.BlockStmt
	globalUse   []string
	port        float64
}

// New returns a Dispatcher ready to be passed as eval.Hooks to Evaluator.Run.
// db is the Rulang Object bound as `db` in every handler/middleware scope
// (see host/store.Store.AsValue); logger may be nil. Call SetEvaluator
// before Build, since New necessarily runs before the Evaluator that takes
// this Dispatcher as its Hooks can be constructed.
func New(rootScope *value.Scope, db *value.Object, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		rootScope:   rootScope,
		db:          db,
		logger:      logger,
		middlewares: make(map[string]*parser.BlockStmt),
	}
}

// SetEvaluator attaches the Evaluator this Dispatcher was passed to as
// Hooks, so later request handling can call its block-execution primitive.
func (d *Dispatcher) SetEvaluator(ev *eval.Evaluator) {
	d.evaluator = ev
}

func (d *Dispatcher) OnEndpoint(method, path string, middlewares []string, body *parser.BlockStmt) {
	d.endpoints = append(d.endpoints, pendingEndpoint{method: method, path: path, middlewares: middlewares, body: body})
}

func (d *Dispatcher) OnMiddleware(name string, body *parser.BlockStmt) {
	d.middlewares[name] = body
}

func (d *Dispatcher) OnUse(names []string) {
	d.globalUse = append(d.globalUse, names...)
}

func (d *Dispatcher) OnServer(port float64) {
	d.port = port
}

// Port returns the port declared by `server PORT`, or 0 if the program
// never declared one.
func (d *Dispatcher) Port() float64 {
	return d.port
}

// Build registers one chi route per collected endpoint onto a fresh
// webrouter.Router and returns it. Call this after Evaluator.Run has
// finished walking the program, once every middleware/use/endpoint
// declaration has been recorded.
func (d *Dispatcher) Build() (*webrouter.Router, error) {
	r := webrouter.NewRouter()
	for _, ep := range d.endpoints {
		names := make([]string, 0, len(d.globalUse)+len(ep.middlewares))
		names = append(names, d.globalUse...)
		names = append(names, ep.middlewares...)

		chain := make([]*parser.BlockStmt, 0, len(names))
		for _, name := range names {
			body, ok := d.middlewares[name]
			if !ok {
				return nil, fmt.Errorf("endpoint %s %s uses undeclared middleware %q", ep.method, ep.path, name)
			}
			chain = append(chain, body)
		}

		if _, err := r.Handle(ep.method, ep.path, names, d.handlerFor(ep, chain)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// handlerFor returns the http.HandlerFunc that runs chain's middleware
// bodies (in order) and, if none of them short-circuits with a Return
// outcome, the endpoint's own body, then flushes the res state to w.
func (d *Dispatcher) handlerFor(ep pendingEndpoint, chain []*parser.BlockStmt) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqObj, err := d.buildRequest(r)
		if err != nil {
			webrouter.BadRequest(w, err.Error())
			return
		}
		resObj, state := newResponse()

		run := func(body []parser.StmtNode) (eval.Outcome, error) {
			scope := value.NewScope(d.rootScope)
			scope.Define("req", reqObj)
			scope.Define("res", resObj)
			scope.Define("next", eval.NewNextNative())
			if d.db != nil {
				scope.Define("db", d.db)
			}
			return d.evaluator.ExecBlock(body, scope)
		}

		for _, mw := range chain {
			outcome, err := run(mw.Body)
			if err != nil {
				d.logger.Error("middleware error", zap.String("path", ep.path), zap.Error(err))
				webrouter.InternalServerError(w, err)
				return
			}
			if outcome.Kind == eval.OutcomeReturn {
				flush(w, state)
				return
			}
			// OutcomeNext and OutcomeNormal both continue the chain.
		}

		if _, err := run(ep.body.Body); err != nil {
			d.logger.Error("handler error", zap.String("path", ep.path), zap.Error(err))
			webrouter.InternalServerError(w, err)
			return
		}
		flush(w, state)
	}
}

// buildRequest constructs the `req` Object per spec §6: method, path,
// params (chi's matched route parameters), query, headers (lowercased),
// and body (decoded JSON, or Null). If host/auth's middleware decoded a
// valid bearer token for this request, its claims are lifted onto `user`
// (purely additive — absent entirely when there's no valid token).
func (d *Dispatcher) buildRequest(r *http.Request) (*value.Object, error) {
	obj := value.NewObject()
	obj.Set("method", value.String{Val: r.Method})
	obj.Set("path", value.String{Val: r.URL.Path})

	obj.Set("params", paramsObject(r))

	query := make(map[string]string, len(r.URL.Query()))
	for k := range r.URL.Query() {
		query[k] = r.URL.Query().Get(k)
	}
	obj.Set("query", valueconv.StringMapToObject(query))

	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[strings.ToLower(k)] = r.Header.Get(k)
	}
	obj.Set("headers", valueconv.StringMapToObject(headers))

	body, err := decodeBody(r)
	if err != nil {
		return nil, err
	}
	obj.Set("body", body)

	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		obj.Set("user", valueconv.FromJSON(map[string]interface{}(claims)))
	}

	return obj, nil
}

func decodeBody(r *http.Request) (value.Value, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return value.Null{}, nil
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return value.Null{}, nil
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return valueconv.FromJSON(decoded), nil
}

// paramsObject reads every chi route parameter chi matched for r, walking
// chi's RouteContext directly since it names all matched params at once —
// req.params's fixed shape needs every name in one pass, not a one-name-at-
// a-time lookup.
func paramsObject(r *http.Request) *value.Object {
	obj := value.NewObject()
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return obj
	}
	for i, key := range rctx.URLParams.Keys {
		obj.Set(key, value.String{Val: rctx.URLParams.Values[i]})
	}
	return obj
}

// responseState is the mutable state res's Natives accumulate; flush
// writes it to the real http.ResponseWriter once a handler or middleware
// finishes.
type responseState struct {
	status      int
	headers     map[string]string
	body        interface{}
	text        string
	isText      bool
	contentType string
}

func newResponse() (*value.Object, *responseState) {
	state := &responseState{status: http.StatusOK, headers: make(map[string]string)}
	res := value.NewObject()

	res.Set("status", &value.Native{Name: "res.status", Fn: func(args []value.Value) (value.Value, error) {
		n, ok := args[0].(value.Number)
		if !ok {
			return nil, fmt.Errorf("res.status expects a number")
		}
		state.status = int(n.Val)
		return res, nil
	}})

	res.Set("header", &value.Native{Name: "res.header", Fn: func(args []value.Value) (value.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("res.header expects (key, value)")
		}
		k, ok1 := args[0].(value.String)
		v, ok2 := args[1].(value.String)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("res.header expects two strings")
		}
		state.headers[k.Val] = v.Val
		return res, nil
	}})

	res.Set("json", &value.Native{Name: "res.json", Fn: func(args []value.Value) (value.Value, error) {
		state.body = valueconv.ToJSON(args[0])
		state.contentType = "application/json"
		return value.Null{}, nil
	}})

	res.Set("text", &value.Native{Name: "res.text", Fn: func(args []value.Value) (value.Value, error) {
		s, ok := args[0].(value.String)
		if !ok {
			return nil, fmt.Errorf("res.text expects a string")
		}
		state.text = s.Val
		state.isText = true
		state.contentType = "text/plain"
		return value.Null{}, nil
	}})

	res.Set("redirect", &value.Native{Name: "res.redirect", Fn: func(args []value.Value) (value.Value, error) {
		s, ok := args[0].(value.String)
		if !ok {
			return nil, fmt.Errorf("res.redirect expects a string")
		}
		state.status = http.StatusFound
		state.headers["Location"] = s.Val
		return value.Null{}, nil
	}})

	return res, state
}

func flush(w http.ResponseWriter, state *responseState) {
	for k, v := range state.headers {
		w.Header().Set(k, v)
	}
	if state.contentType != "" {
		w.Header().Set("Content-Type", state.contentType)
	}
	w.WriteHeader(state.status)
	if state.isText {
		w.Write([]byte(state.text))
		return
	}
	if state.body != nil {
		_ = json.NewEncoder(w).Encode(state.body)
	}
}
