package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
	"pinknote/internal/httputil"
)

// Recovery middleware recovers from panics and returns a 500 error
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("error", err).
						Str("path", r.URL.Path).
						Str("method", r.Method).
						Str("request_id", httputil.GetRequestID(r)).
						Str("stack", string(debug.Stack())).
						Msg("panic recovered")

					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
