package middleware

import (
	"net/http"
	"runtime/debug"

	"seocontrol/internal/api/v1/respond"

	"github.com/rs/zerolog"
)

// Recover turns a panic in any downstream handler into a 500 with a fixed
// message.
func Recover(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Bytes("stack", debug.Stack()).
						Msg("Recovered from panic")
					respond.Error(w, http.StatusInternalServerError, respond.MsgInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
