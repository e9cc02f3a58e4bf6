package handler

import (
	"net/http"

	"seocontrol/internal/api/v1/respond"
	"seocontrol/internal/middleware"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// currentUser returns the identity placed in the context by the auth
// middleware, answering 401 itself when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (*middleware.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok || id.UserID == "" {
		respond.Unauthorized(w)
		return nil, false
	}
	return id, true
}
