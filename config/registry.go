package config

import (
	"fmt"
	"strings"

	"github.com/yshengliao/relay/router"
)

// Registry maps the symbolic handler and middleware names used in route
// tables to concrete callables. Resolution happens at build time with a
// clear not-found error; nothing is constructed from a name reflectively.
type Registry struct {
	handlers   map[string]router.HandlerFunc
	middleware map[string]router.Middleware
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers:   make(map[string]router.HandlerFunc),
		middleware: make(map[string]router.Middleware),
	}
}

// Handler registers h under name, replacing any previous registration.
func (rg *Registry) Handler(name string, h router.HandlerFunc) *Registry {
	rg.handlers[name] = h
	return rg
}

// Middleware registers m under name, replacing any previous registration.
func (rg *Registry) Middleware(name string, m router.Middleware) *Registry {
	rg.middleware[name] = m
	return rg
}

func (rg *Registry) resolveHandler(name string) (router.HandlerFunc, error) {
	h, ok := rg.handlers[name]
	if !ok {
		return nil, fmt.Errorf("handler %q is not registered", name)
	}
	return h, nil
}

func (rg *Registry) resolveMiddleware(names []string) ([]router.Middleware, error) {
	mw := make([]router.Middleware, 0, len(names))
	for _, name := range names {
		m, ok := rg.middleware[name]
		if !ok {
			return nil, fmt.Errorf("middleware %q is not registered", name)
		}
		mw = append(mw, m)
	}
	return mw, nil
}

// Build registers every entry of the table on r, resolving handler and
// middleware names through the registry. A resolution or registration
// failure aborts the build; entries already registered stay registered.
func Build(table *RouteTable, reg *Registry, r *router.Router) error {
	for _, entry := range table.Routes {
		if err := buildEntry(entry, reg, r); err != nil {
			return fmt.Errorf("route %q: %w", entry.Pattern, err)
		}
	}
	return nil
}

func buildEntry(entry RouteEntry, reg *Registry, r *router.Router) error {
	h, err := reg.resolveHandler(entry.Handler)
	if err != nil {
		return err
	}
	mw, err := reg.resolveMiddleware(entry.Middleware)
	if err != nil {
		return err
	}

	rt, err := r.Handle(entry.Pattern, h, mw)
	if err != nil {
		return err
	}
	for _, method := range entry.Methods {
		if strings.EqualFold(method, "ANY") {
			rt.Via("GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS")
			continue
		}
		rt.Via(method)
	}

	if entry.Name != "" {
		if err := r.AddNamedRoute(entry.Name, rt); err != nil {
			return err
		}
	}
	return nil
}
