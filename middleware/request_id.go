package middleware

import (
	"github.com/google/uuid"

	"github.com/yshengliao/relay/router"
)

// RequestIDKey is the route value key under which RequestID stores the
// generated id.
const RequestIDKey = "request_id"

// RequestID returns middleware that tags each dispatch with a fresh
// UUID, stored on the route under RequestIDKey so later middleware and
// the caller can correlate log lines.
func RequestID() router.Middleware {
	return func(rt *router.Route) error {
		rt.SetValue(RequestIDKey, uuid.NewString())
		return nil
	}
}

// GetRequestID returns the id stored by RequestID for the current
// dispatch, or "" when the middleware did not run.
func GetRequestID(rt *router.Route) string {
	if id, ok := rt.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
