package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"vendora/pkg/logger"
	"vendora/pkg/response"
)

// Recovery catches any panic in downstream handlers, logs the stack trace,
// and returns a detail-free 500 to the client.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Internal(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
