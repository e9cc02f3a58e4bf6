package router

import (
	"net/http"

	"seocontrol/internal/api/v1/respond"
	"seocontrol/internal/config"
	"seocontrol/internal/middleware"

	"github.com/rs/zerolog"
)

// registerPages serves the built web UI from cfg.WebDir. Dashboard pages need
// a session and admin pages need the admin page role; everything else is
// public. Without a WebDir only the API is served.
func registerPages(mux *http.ServeMux, cfg *config.Config, resolver middleware.IdentityResolver, roles middleware.RoleLookup, logger zerolog.Logger) {
	if cfg.WebDir == "" {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			respond.Error(w, http.StatusNotFound, "Not found")
		})
		return
	}

	files := http.FileServer(http.Dir(cfg.WebDir))
	guard := middleware.NewPageGuard(resolver, roles, cfg.AdminPageRole, logger)

	mux.Handle("/dashboard/", guard.RequireSession(files))
	mux.Handle("/admin/", guard.RequireAdmin(files))
	mux.Handle("/", files)
}
