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

// KeywordHandler handles keyword-related endpoints
type KeywordHandler struct {
	keywordService service.KeywordService
	validate       *validation.Validator
	logger         zerolog.Logger
}

// NewKeywordHandler creates a new KeywordHandler
func NewKeywordHandler(keywordService service.KeywordService, v *validation.Validator, logger zerolog.Logger) *KeywordHandler {
	return &KeywordHandler{keywordService: keywordService, validate: v, logger: logger.With().Str("handler", "KeywordHandler").Logger()}
}

// RegisterRoutes mounts keyword routes
func (h *KeywordHandler) RegisterRoutes(mux *http.ServeMux, authMw Middleware) {
	mux.Handle("GET /api/keywords", authMw(http.HandlerFunc(h.listKeywords)))
	mux.Handle("POST /api/keywords", authMw(http.HandlerFunc(h.createKeyword)))
}

// listKeywords godoc
// @Summary List keywords
// @Description Lists the caller's keywords, newest first, each with its site's name.
// @Tags keywords
// @Produce json
// @Success 200 {array} dto.KeywordListItemDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch keywords"
// @Router /keywords [get]
func (h *KeywordHandler) listKeywords(w http.ResponseWriter, r *http.Request) {
	id, ok := currentUser(w, r)
	if !ok {
		return
	}

	keywords, err := h.keywordService.List(r.Context(), id.UserID)
	if err != nil {
		respond.FromError(w, h.logger, err, "Failed to fetch keywords")
		return
	}

	resp := make([]dto.KeywordListItemDTO, 0, len(keywords))
	for i := range keywords {
		resp = append(resp, dto.KeywordListItemDTO{
			KeywordResponseDTO: toKeywordResponse(&keywords[i]),
			Sites:              dto.SiteNameDTO{Name: keywords[i].SiteName},
		})
	}
	respond.JSON(w, http.StatusOK, resp)
}

// createKeyword godoc
// @Summary Track a keyword
// @Description Adds a keyword to one of the caller's sites.
// @Tags keywords
// @Accept json
// @Produce json
// @Param keyword body dto.KeywordCreateDTO true "Keyword creation request"
// @Success 201 {object} dto.KeywordResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Site not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create keyword"
// @Router /keywords [post]
func (h *KeywordHandler) createKeyword(w http.ResponseWriter, r *http.Request) {
	// 1. Extract identity from context
	id, ok := currentUser(w, r)
	if !ok {
		return
	}

	// 2. Decode and validate DTO
	var req dto.KeywordCreateDTO
	if err := h.validate.DecodeAndValidate(r, &req); err != nil {
		respond.FromError(w, h.logger, err, "Failed to create keyword")
		return
	}

	// 3. Call service; it checks that the site belongs to the caller
	created, err := h.keywordService.Create(r.Context(), &model.Keyword{
		Keyword: req.Keyword,
		SiteID:  req.SiteID,
		UserID:  id.UserID,
	})
	if err != nil {
		respond.FromError(w, h.logger, err, "Failed to create keyword")
		return
	}

	// 4. Return response
	respond.JSON(w, http.StatusCreated, toKeywordResponse(created))
}
