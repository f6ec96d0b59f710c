// Package middleware provides stock middleware in the engine's shape:
// each middleware receives the matched route and may abort the dispatch
// by returning an error.
package middleware

import (
	"go.uber.org/zap"

	"github.com/yshengliao/relay/router"
)

// Logger returns middleware that logs every dispatch it sees, with the
// route pattern and the captured parameters.
func Logger(logger *zap.Logger) router.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(rt *router.Route) error {
		logger.Info("dispatching route",
			zap.String("pattern", rt.Pattern()),
			zap.Any("params", rt.Params()))
		return nil
	}
}
