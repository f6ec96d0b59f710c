package router

import "fmt"

// PatternError reports a malformed route pattern at compile time. It is
// fatal to the single registration that supplied the pattern and has no
// effect on routes already registered.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid route pattern %q: %s", e.Pattern, e.Reason)
}

// DuplicateNameError reports an attempt to register a route under a name
// that is already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("route name %q is already registered", e.Name)
}

// RouteNotFoundError reports a reverse URL generation request for a name
// with no registered route.
type RouteNotFoundError struct {
	Name string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("no route registered under name %q", e.Name)
}
