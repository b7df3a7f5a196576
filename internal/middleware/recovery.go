package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"maichat/internal/httputil"
)

// Recovery converts a handler panic into the same problem+json envelope the
// turn endpoint uses for internal faults, so a panicking tool never tears
// down the connection mid-response.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
						"stack", string(debug.Stack()),
					)
					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
