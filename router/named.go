package router

import "go.uber.org/zap"

// buildNamed populates the name index when it is cold: first from the
// explicit AddNamedRoute registrations, which survive invalidation, then
// from a scan of the route collection in registration order. If two
// routes carry the same name the first wins and the collision is logged,
// since a cache rebuild has no registration call to fail. Callers must
// hold the write lock.
func (r *Router) buildNamed() {
	if r.named != nil {
		return
	}
	r.named = make(map[string]*Route, len(r.explicitNamed))
	for name, rt := range r.explicitNamed {
		r.named[name] = rt
	}
	for _, rt := range r.routes {
		name := rt.GetName()
		if name == "" {
			continue
		}
		if held, ok := r.named[name]; ok {
			if held != rt {
				r.logger.Warn("duplicate route name, keeping first",
					zap.String("name", name),
					zap.String("pattern", rt.Pattern()))
			}
			continue
		}
		r.named[name] = rt
	}
}

// AddNamedRoute registers rt under name. It returns a
// *DuplicateNameError when the name is already taken, either by an
// earlier AddNamedRoute call or by a named route in the collection. The
// registration sticks even for a route that is not in the collection,
// so a route built with NewRoute stays reachable by name across index
// rebuilds.
func (r *Router) AddNamedRoute(name string, rt *Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buildNamed()
	if _, ok := r.named[name]; ok {
		return &DuplicateNameError{Name: name}
	}
	rt.Name(name)
	r.named[name] = rt
	if r.explicitNamed == nil {
		r.explicitNamed = make(map[string]*Route)
	}
	r.explicitNamed[name] = rt
	return nil
}

// HasNamedRoute reports whether a route is registered under name.
func (r *Router) HasNamedRoute(name string) bool {
	return r.NamedRoute(name) != nil
}

// NamedRoute returns the route registered under name, or nil when there
// is none. Unlike URLFor, an unknown name is not an error here.
func (r *Router) NamedRoute(name string) *Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buildNamed()
	return r.named[name]
}

// NamedRoutes returns a snapshot of the name index.
func (r *Router) NamedRoutes() map[string]*Route {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buildNamed()
	out := make(map[string]*Route, len(r.named))
	for name, rt := range r.named {
		out[name] = rt
	}
	return out
}

// URLFor builds a concrete path from the named route's pattern and the
// given parameter values. Placeholders present in params are
// substituted; optional groups left unpopulated are stripped from the
// result. It returns a *RouteNotFoundError for an unknown name. URLFor
// is deterministic and side-effect-free.
func (r *Router) URLFor(name string, params map[string]string) (string, error) {
	rt := r.NamedRoute(name)
	if rt == nil {
		return "", &RouteNotFoundError{Name: name}
	}
	return rt.compiled.Expand(params), nil
}
