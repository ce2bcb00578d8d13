package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/scoutline/scoutline-api/internal/pkg/logger"
	"github.com/scoutline/scoutline-api/internal/pkg/response"
)

// Recover is a middleware that recovers from panics
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.LogError(r.Context(), fmt.Errorf("panic: %v", err), "Panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				response.InternalError(w)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
