package middleware

import (
	"context"
	"net/http"

	"seocontrol/internal/api/v1/respond"
	"seocontrol/internal/model"

	"github.com/rs/zerolog"
)

// RoleLookup returns the stored role of a user.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (model.Role, error)
}

// RequireRole must run after RequireUser. A caller whose stored role is not
// role, or whose role cannot be read, gets 401.
func RequireRole(lookup RoleLookup, role string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				respond.Unauthorized(w)
				return
			}
			got, err := lookup.RoleOf(r.Context(), id.UserID)
			if err != nil {
				logger.Warn().Err(err).Str("user_id", id.UserID).Msg("Role lookup failed")
				respond.Unauthorized(w)
				return
			}
			if string(got) != role {
				logger.Warn().Str("user_id", id.UserID).Str("role", string(got)).Msg("Role check failed")
				respond.Unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
