package router

import "strings"

// HandlerFunc is invoked last in a dispatch. It receives the values
// captured from the request path, positionally, in the order their
// placeholders appear in the route pattern.
type HandlerFunc func(params ...string) error

// Middleware runs before a route's handler during dispatch. It receives
// the matched route; returning a non-nil error aborts the rest of the
// chain and the handler is never invoked.
type Middleware func(rt *Route) error

// Route binds one path pattern to a handler, together with the HTTP
// methods it answers to, an ordered middleware list, and an optional
// name used for reverse URL generation.
//
// A Route is read-only for matching purposes except for its captured
// parameters and scratch values, which are per-match state.
type Route struct {
	compiled *Pattern
	methods  []string
	mw       []Middleware
	handler  HandlerFunc
	name     string
	params   map[string]string
	values   map[string]any
}

// NewRoute compiles pattern and binds it to handler. The returned route
// answers to no methods until Via is called.
func NewRoute(pattern string, handler HandlerFunc) (*Route, error) {
	p, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Route{compiled: p, handler: handler}, nil
}

// Pattern returns the route's original path template.
func (rt *Route) Pattern() string { return rt.compiled.String() }

// Via adds one or more HTTP method tokens to the set the route answers
// to. Tokens are normalized to upper case; adding a token already in the
// set is a no-op. Via returns the route for chaining.
func (rt *Route) Via(methods ...string) *Route {
	for _, m := range methods {
		m = strings.ToUpper(m)
		if !rt.SupportsMethod(m) {
			rt.methods = append(rt.methods, m)
		}
	}
	return rt
}

// SupportsMethod reports whether method is in the route's method set.
// The test is case-sensitive against the stored upper-case tokens; a
// route with an empty set supports no method.
func (rt *Route) SupportsMethod(method string) bool {
	for _, m := range rt.methods {
		if m == method {
			return true
		}
	}
	return false
}

// Methods returns a copy of the route's method set in assignment order.
func (rt *Route) Methods() []string {
	return append([]string(nil), rt.methods...)
}

// Matches tests path against the route's compiled pattern. On success the
// captured values replace the route's parameters and Matches returns
// true; on failure the previous parameters are cleared so stale captures
// cannot be read after a miss.
func (rt *Route) Matches(path string) bool {
	params, ok := rt.compiled.Match(path)
	if !ok {
		rt.params = nil
		return false
	}
	rt.params = params
	return true
}

// Name sets the route's name and returns the route for chaining. Name
// does not enforce uniqueness; that is the router's responsibility at
// registration time.
func (rt *Route) Name(name string) *Route {
	rt.name = name
	return rt
}

// GetName returns the route's name, or "" when unnamed.
func (rt *Route) GetName() string { return rt.name }

// SetMiddleware replaces the route's middleware sequence wholesale,
// preserving the given order.
func (rt *Route) SetMiddleware(mw []Middleware) {
	rt.mw = append([]Middleware(nil), mw...)
}

// Use appends middleware to the route's chain in invocation order.
func (rt *Route) Use(mw ...Middleware) *Route {
	rt.mw = append(rt.mw, mw...)
	return rt
}

// Params returns the values captured by the last successful Matches call,
// keyed by placeholder name. The result is a copy; it is empty when the
// last match attempt failed or none was made.
func (rt *Route) Params() map[string]string {
	out := make(map[string]string, len(rt.params))
	for k, v := range rt.params {
		out[k] = v
	}
	return out
}

// Param returns one captured value, or "" when absent.
func (rt *Route) Param(name string) string { return rt.params[name] }

// ParamValues returns the captured values in the order their
// placeholders appear in the pattern, skipping placeholders left
// uncaptured by absent optional groups.
func (rt *Route) ParamValues() []string {
	var out []string
	for _, name := range rt.compiled.tokens {
		if v, ok := rt.params[name]; ok {
			out = append(out, v)
		}
	}
	return out
}

// SetValue stores a dispatch-scoped value on the route, for middleware
// that needs to hand state to later middleware or to the caller.
func (rt *Route) SetValue(key string, v any) {
	if rt.values == nil {
		rt.values = make(map[string]any)
	}
	rt.values[key] = v
}

// Value returns a stored dispatch-scoped value, or nil.
func (rt *Route) Value(key string) any { return rt.values[key] }
