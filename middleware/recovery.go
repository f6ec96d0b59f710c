package middleware

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/yshengliao/relay/router"
)

// recoverStackSize bounds the stack trace captured on panic.
const recoverStackSize = 4 << 10

// DispatchFunc is the dispatch entry point Recover wraps, usually
// (*router.Router).Dispatch.
type DispatchFunc func(rt *router.Route) error

// Recover wraps a dispatch function so that a panic in any middleware or
// handler is converted into an error instead of unwinding into the host
// request loop. The panic and a truncated stack are logged.
func Recover(logger *zap.Logger, dispatch DispatchFunc) DispatchFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(rt *router.Route) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				perr, ok := rec.(error)
				if !ok {
					perr = fmt.Errorf("%v", rec)
				}

				stack := make([]byte, recoverStackSize)
				stack = stack[:runtime.Stack(stack, false)]

				logger.Error("panic recovered during dispatch",
					zap.String("pattern", rt.Pattern()),
					zap.Error(perr),
					zap.String("stack", string(stack)))
				err = fmt.Errorf("panic during dispatch of %s: %w", rt.Pattern(), perr)
			}
		}()
		return dispatch(rt)
	}
}
