package handler

import (
	"net/http"

	"seocontrol/internal/api/v1/dto"
	"seocontrol/internal/api/v1/respond"
	"seocontrol/internal/model"
	"seocontrol/internal/service"
	"seocontrol/internal/validation"

	"github.com/rs/zerolog"
)

// SiteHandler handles site-related endpoints
type SiteHandler struct {
	siteService service.SiteService
	validate    *validation.Validator
	logger      zerolog.Logger
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(siteService service.SiteService, v *validation.Validator, logger zerolog.Logger) *SiteHandler {
	return &SiteHandler{siteService: siteService, validate: v, logger: logger.With().Str("handler", "SiteHandler").Logger()}
}

// RegisterRoutes mounts site routes
func (h *SiteHandler) RegisterRoutes(mux *http.ServeMux, authMw Middleware) {
	mux.Handle("GET /api/sites", authMw(http.HandlerFunc(h.listSites)))
	mux.Handle("POST /api/sites", authMw(http.HandlerFunc(h.createSite)))
}

// listSites godoc
// @Summary List sites
// @Description Lists the caller's sites, newest first, with their audits, keywords and counts.
// @Tags sites
// @Produce json
// @Success 200 {array} dto.SiteListItemDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch sites"
// @Router /sites [get]
func (h *SiteHandler) listSites(w http.ResponseWriter, r *http.Request) {
	// 1. Extract identity from context
	id, ok := currentUser(w, r)
	if !ok {
		return
	}

	// 2. Call service
	sites, err := h.siteService.List(r.Context(), id.UserID)
	if err != nil {
		respond.FromError(w, h.logger, err, "Failed to fetch sites")
		return
	}

	// 3. Map to response DTOs
	resp := make([]dto.SiteListItemDTO, 0, len(sites))
	for i := range sites {
		resp = append(resp, toSiteListItem(&sites[i]))
	}
	respond.JSON(w, http.StatusOK, resp)
}

// createSite godoc
// @Summary Create a site
// @Description Creates a site owned by the caller.
// @Tags sites
// @Accept json
// @Produce json
// @Param site body dto.SiteCreateDTO true "Site creation request"
// @Success 201 {object} dto.SiteResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create site"
// @Router /sites [post]
func (h *SiteHandler) createSite(w http.ResponseWriter, r *http.Request) {
	// 1. Extract identity from context
	id, ok := currentUser(w, r)
	if !ok {
		return
	}

	// 2. Decode and validate DTO
	var req dto.SiteCreateDTO
	if err := h.validate.DecodeAndValidate(r, &req); err != nil {
		respond.FromError(w, h.logger, err, "Failed to create site")
		return
	}

	// 3. Build the model; the owner always comes from the session
	site := &model.Site{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		UserID:      id.UserID,
	}

	// 4. Call service
	created, err := h.siteService.Create(r.Context(), site)
	if err != nil {
		respond.FromError(w, h.logger, err, "Failed to create site")
		return
	}

	// 5. Return response
	respond.JSON(w, http.StatusCreated, toSiteResponse(created))
}
