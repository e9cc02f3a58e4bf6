package middleware

import (
	"net/http"

	"github.com/rs/zerolog"
)

const (
	SignInPath    = "/auth/signin"
	DashboardPath = "/dashboard"
)

// PageGuard protects the web pages served next to the API. Unlike the API
// gate it answers with redirects instead of JSON errors.
type PageGuard struct {
	resolver  IdentityResolver
	roles     RoleLookup
	adminRole string
	logger    zerolog.Logger
}

// NewPageGuard returns a PageGuard. adminRole is compared against the stored
// role exactly, without case folding.
func NewPageGuard(resolver IdentityResolver, roles RoleLookup, adminRole string, logger zerolog.Logger) *PageGuard {
	return &PageGuard{resolver: resolver, roles: roles, adminRole: adminRole, logger: logger}
}

// RequireSession redirects visitors without a session to the sign-in page.
func (g *PageGuard) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := g.resolver.Resolve(r)
		if err != nil {
			http.Redirect(w, r, SignInPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireAdmin redirects visitors without a session to the sign-in page and
// signed-in users without the admin page role to the dashboard.
func (g *PageGuard) RequireAdmin(next http.Handler) http.Handler {
	return g.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFrom(r.Context())
		role, err := g.roles.RoleOf(r.Context(), id.UserID)
		if err != nil || string(role) != g.adminRole {
			g.logger.Debug().Str("user_id", id.UserID).Str("role", string(role)).Msg("Admin page denied")
			http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
