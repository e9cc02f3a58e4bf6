package handler

import (
	"net/http"

	"seocontrol/internal/api/v1/dto"
	"seocontrol/internal/api/v1/respond"
	"seocontrol/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles profile and admin user endpoints
type UserHandler struct {
	profileService service.ProfileService
	logger         zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profileService service.ProfileService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{profileService: profileService, logger: logger.With().Str("handler", "UserHandler").Logger()}
}

// RegisterRoutes mounts profile and admin user routes. adminMw runs after authMw.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw, adminMw Middleware) {
	mux.Handle("GET /api/profile", authMw(http.HandlerFunc(h.getProfile)))
	mux.Handle("GET /api/admin/users", authMw(adminMw(http.HandlerFunc(h.listUsers))))
}

// getProfile godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.ProfileResponseDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch profile"
// @Router /profile [get]
func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := currentUser(w, r)
	if !ok {
		return
	}

	p, err := h.profileService.Get(r.Context(), id.UserID)
	if err != nil {
		respond.FromError(w, h.logger, err, "Failed to fetch profile")
		return
	}
	respond.JSON(w, http.StatusOK, toProfileResponse(p))
}

// listUsers godoc
// @Summary List all users
// @Description Admin only. Lists every profile, newest first, with resource counts.
// @Tags admin
// @Produce json
// @Success 200 {array} dto.AdminUserDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch users"
// @Router /admin/users [get]
func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.profileService.ListUsers(r.Context())
	if err != nil {
		respond.FromError(w, h.logger, err, "Failed to fetch users")
		return
	}

	resp := make([]dto.AdminUserDTO, 0, len(users))
	for i := range users {
		resp = append(resp, toAdminUser(&users[i]))
	}
	respond.JSON(w, http.StatusOK, resp)
}
