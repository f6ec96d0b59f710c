package router

import (
	"sync"

	"go.uber.org/zap"
)

// allMethods is the set assigned by Any, in the order the registration
// helpers are declared.
var allMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// Router owns an ordered collection of routes and drives matching,
// dispatch, and reverse URL generation. Registration order is match
// priority: the first registered route is the first tested.
//
// A Router is safe for use from concurrent request loops; the route
// collection and its caches are guarded by a single RWMutex.
type Router struct {
	mu            sync.RWMutex
	routes        []*Route
	named         map[string]*Route
	explicitNamed map[string]*Route
	matched       *matchResult
	current       *Route
	logger        *zap.Logger
}

// matchResult is the single-slot cache of the last MatchedRoutes
// computation.
type matchResult struct {
	method string
	path   string
	routes []*Route
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for registration and dispatch events.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// New creates an empty Router.
func New(opts ...Option) *Router {
	r := &Router{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle compiles pattern, binds it to handler with the given middleware
// chain, and appends the route to the collection. The middleware slice
// may be empty; its order is invocation order. The route answers to no
// methods until Via is called on it (the per-method helpers do this).
func (r *Router) Handle(pattern string, handler HandlerFunc, mw []Middleware) (*Route, error) {
	rt, err := NewRoute(pattern, handler)
	if err != nil {
		return nil, err
	}
	rt.SetMiddleware(mw)

	r.mu.Lock()
	r.routes = append(r.routes, rt)
	r.invalidateCaches()
	r.mu.Unlock()

	r.logger.Debug("registered route",
		zap.String("pattern", pattern),
		zap.Int("middleware", len(mw)))
	return rt, nil
}

// GET registers a route answering to GET.
func (r *Router) GET(pattern string, handler HandlerFunc, mw ...Middleware) (*Route, error) {
	return r.handleVia("GET", pattern, handler, mw)
}

// POST registers a route answering to POST.
func (r *Router) POST(pattern string, handler HandlerFunc, mw ...Middleware) (*Route, error) {
	return r.handleVia("POST", pattern, handler, mw)
}

// PUT registers a route answering to PUT.
func (r *Router) PUT(pattern string, handler HandlerFunc, mw ...Middleware) (*Route, error) {
	return r.handleVia("PUT", pattern, handler, mw)
}

// DELETE registers a route answering to DELETE.
func (r *Router) DELETE(pattern string, handler HandlerFunc, mw ...Middleware) (*Route, error) {
	return r.handleVia("DELETE", pattern, handler, mw)
}

// PATCH registers a route answering to PATCH.
func (r *Router) PATCH(pattern string, handler HandlerFunc, mw ...Middleware) (*Route, error) {
	return r.handleVia("PATCH", pattern, handler, mw)
}

// HEAD registers a route answering to HEAD.
func (r *Router) HEAD(pattern string, handler HandlerFunc, mw ...Middleware) (*Route, error) {
	return r.handleVia("HEAD", pattern, handler, mw)
}

// OPTIONS registers a route answering to OPTIONS.
func (r *Router) OPTIONS(pattern string, handler HandlerFunc, mw ...Middleware) (*Route, error) {
	return r.handleVia("OPTIONS", pattern, handler, mw)
}

// Any registers a route answering to every standard method.
func (r *Router) Any(pattern string, handler HandlerFunc, mw ...Middleware) (*Route, error) {
	rt, err := r.Handle(pattern, handler, mw)
	if err != nil {
		return nil, err
	}
	return rt.Via(allMethods...), nil
}

func (r *Router) handleVia(method, pattern string, handler HandlerFunc, mw []Middleware) (*Route, error) {
	rt, err := r.Handle(pattern, handler, mw)
	if err != nil {
		return nil, err
	}
	return rt.Via(method), nil
}

// Routes returns the registered routes in registration order. The slice
// is a copy; the routes are not.
func (r *Router) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Route(nil), r.routes...)
}

// MatchedRoutes returns the routes whose method set contains method and
// whose pattern matches path, in registration order. The result is
// cached in a single slot: when reload is false and a cached result
// exists it is returned unchanged, even for different arguments — stale
// results are the caller's explicit choice. Any mutation of the route
// collection drops the cache, so a warm cache always reflects the
// current collection.
func (r *Router) MatchedRoutes(method, path string, reload bool) []*Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !reload && r.matched != nil {
		return r.matched.routes
	}

	var out []*Route
	for _, rt := range r.routes {
		if !rt.SupportsMethod(method) {
			continue
		}
		if rt.Matches(path) {
			out = append(out, rt)
		}
	}
	r.matched = &matchResult{method: method, path: path, routes: out}
	return out
}

// MatchPath returns every route whose pattern matches path regardless of
// method, in registration order. It recomputes on every call, touches
// neither the match cache nor any route's captured parameters, and is
// therefore safe to call concurrently; hosts use it to tell "no route"
// apart from "route exists, wrong method".
func (r *Router) MatchPath(path string) []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Route
	for _, rt := range r.routes {
		if _, ok := rt.compiled.Match(path); ok {
			out = append(out, rt)
		}
	}
	return out
}

// Dispatch runs rt's middleware chain in registration order, each
// receiving the route, then invokes the handler with the captured
// parameter values positionally in placeholder-declaration order. The
// first middleware error aborts the chain; the handler is not invoked
// and the error propagates unchanged. Dispatch performs no retry and no
// rollback of middleware already run.
func (r *Router) Dispatch(rt *Route) error {
	r.mu.Lock()
	r.current = rt
	r.mu.Unlock()

	for _, mw := range rt.mw {
		if err := mw(rt); err != nil {
			r.logger.Error("middleware aborted dispatch",
				zap.String("pattern", rt.Pattern()),
				zap.Error(err))
			return err
		}
	}
	if err := rt.handler(rt.ParamValues()...); err != nil {
		r.logger.Error("handler failed",
			zap.String("pattern", rt.Pattern()),
			zap.Error(err))
		return err
	}
	return nil
}

// CurrentRoute returns the route last handed to Dispatch, or nil before
// any dispatch.
func (r *Router) CurrentRoute() *Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// invalidateCaches drops the match cache and the name index. Callers
// must hold the write lock. Every route-collection mutation funnels
// through here, so neither cache can go stale.
func (r *Router) invalidateCaches() {
	r.matched = nil
	r.named = nil
}
