// Package router dispatches HTTP requests to compiled Rulang endpoint
// bodies. It wraps chi for path matching and keeps an introspection list
// of registered routes the way the REPL/CLI report them to a user.
package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JangRuBin2/rulang/internal/web/middleware"
)

// Router manages HTTP routing for a compiled Rulang program.
type Router struct {
	mux    chi.Router
	routes map[string]*Route
	chain  *middleware.Chain

	registeredRoutes []*RouteInfo
}

// Route represents a single registered endpoint.
type Route struct {
	Pattern    string // /orders/{id}
	Method     string // GET, POST, ...
	Handler    http.HandlerFunc
	Name       string
	Middleware []string // middleware names applied to this endpoint, in order
}

// RouteInfo provides metadata about a route for introspection.
type RouteInfo struct {
	Pattern    string
	Method     string
	Name       string
	Middleware []string
	Parameters []RouteParameter
}

// RouteParameter describes a path parameter in a route pattern.
type RouteParameter struct {
	Name     string
	Type     string // uuid, int, string
	Required bool
	Source   ParameterSource
}

// ParameterSource indicates where a parameter comes from.
type ParameterSource int

const (
	PathParam ParameterSource = iota
	QueryParam
	HeaderParam
)

func (p ParameterSource) String() string {
	switch p {
	case PathParam:
		return "path"
	case QueryParam:
		return "query"
	case HeaderParam:
		return "header"
	default:
		return "unknown"
	}
}

// NewRouter creates a new Router instance.
func NewRouter() *Router {
	return &Router{
		mux:              chi.NewRouter(),
		routes:           make(map[string]*Route),
		chain:            middleware.NewChain(),
		registeredRoutes: make([]*RouteInfo, 0),
	}
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Use adds global middleware to the router's chain.
func (r *Router) Use(middlewares ...middleware.Middleware) {
	for _, m := range middlewares {
		r.chain.Use(m)
		r.mux.Use(func(next http.Handler) http.Handler {
			return m(next)
		})
	}
}

// Handle registers a route for one of the five HTTP verbs the language supports.
func (r *Router) Handle(method, pattern string, names []string, handler http.HandlerFunc) (*Route, error) {
	route := &Route{
		Pattern:    pattern,
		Method:     method,
		Handler:    handler,
		Middleware: names,
	}

	switch method {
	case http.MethodGet:
		r.mux.Get(pattern, handler)
	case http.MethodPost:
		r.mux.Post(pattern, handler)
	case http.MethodPut:
		r.mux.Put(pattern, handler)
	case http.MethodPatch:
		r.mux.Patch(pattern, handler)
	case http.MethodDelete:
		r.mux.Delete(pattern, handler)
	default:
		return nil, fmt.Errorf("unsupported method: %s", method)
	}

	routeKey := fmt.Sprintf("%s:%s", method, pattern)
	r.routes[routeKey] = route

	r.registeredRoutes = append(r.registeredRoutes, &RouteInfo{
		Pattern:    pattern,
		Method:     method,
		Middleware: names,
		Parameters: extractParameters(pattern),
	})

	return route, nil
}

// Named sets a name for the route (for diagnostics only).
func (route *Route) Named(name string) *Route {
	route.Name = name
	return route
}

// GetRoutes returns all registered routes for introspection.
func (r *Router) GetRoutes() []*RouteInfo {
	return r.registeredRoutes
}

// GetRoute returns a route by name.
func (r *Router) GetRoute(name string) (*Route, error) {
	for _, route := range r.routes {
		if route.Name == name {
			return route, nil
		}
	}
	return nil, fmt.Errorf("route not found: %s", name)
}

// NotFound sets the handler for 404 Not Found.
func (r *Router) NotFound(handler http.HandlerFunc) {
	r.mux.NotFound(handler)
}

// MethodNotAllowed sets the handler for 405 Method Not Allowed.
func (r *Router) MethodNotAllowed(handler http.HandlerFunc) {
	r.mux.MethodNotAllowed(handler)
}

// RouteList returns a formatted list of all routes, used by `rulang check --routes`.
func (r *Router) RouteList() string {
	var sb strings.Builder
	sb.WriteString("Registered Routes:\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, info := range r.registeredRoutes {
		sb.WriteString(fmt.Sprintf("%-8s %-40s %v\n", info.Method, info.Pattern, info.Middleware))
	}
	return sb.String()
}

// extractParameters extracts parameter definitions from a route pattern.
func extractParameters(pattern string) []RouteParameter {
	params := make([]RouteParameter, 0)
	for _, part := range strings.Split(pattern, "/") {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := strings.Trim(part, "{}")
			params = append(params, RouteParameter{
				Name:     name,
				Type:     inferParameterType(name),
				Required: true,
				Source:   PathParam,
			})
		}
	}
	return params
}

// inferParameterType infers the type of a parameter from its name.
func inferParameterType(name string) string {
	if name == "id" || strings.HasSuffix(name, "_id") || strings.HasSuffix(name, "Id") {
		return "uuid"
	}
	if strings.HasPrefix(name, "page") || strings.HasPrefix(name, "limit") ||
		strings.HasPrefix(name, "offset") || strings.HasPrefix(name, "count") {
		return "int"
	}
	return "string"
}
