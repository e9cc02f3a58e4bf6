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

// ReportHandler handles report-related endpoints
type ReportHandler struct {
	reportService service.ReportService
	validate      *validation.Validator
	logger        zerolog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService, v *validation.Validator, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, validate: v, logger: logger.With().Str("handler", "ReportHandler").Logger()}
}

// RegisterRoutes mounts report routes
func (h *ReportHandler) RegisterRoutes(mux *http.ServeMux, authMw Middleware) {
	mux.Handle("GET /api/reports", authMw(http.HandlerFunc(h.listReports)))
	mux.Handle("POST /api/reports", authMw(http.HandlerFunc(h.createReport)))
}

// listReports godoc
// @Summary List reports
// @Tags reports
// @Produce json
// @Success 200 {array} dto.ReportListItemDTO
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to fetch reports"
// @Router /reports [get]
func (h *ReportHandler) listReports(w http.ResponseWriter, r *http.Request) {
	id, ok := currentUser(w, r)
	if !ok {
		return
	}

	reports, err := h.reportService.List(r.Context(), id.UserID)
	if err != nil {
		respond.FromError(w, h.logger, err, "Failed to fetch reports")
		return
	}

	resp := make([]dto.ReportListItemDTO, 0, len(reports))
	for i := range reports {
		resp = append(resp, dto.ReportListItemDTO{
			ReportResponseDTO: toReportResponse(&reports[i]),
			Sites:             dto.SiteNameDTO{Name: reports[i].SiteName},
		})
	}
	respond.JSON(w, http.StatusOK, resp)
}

// createReport godoc
// @Summary Request a report
// @Description Queues a report for one of the caller's sites. It starts out PENDING.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.ReportCreateDTO true "Report request"
// @Success 201 {object} dto.ReportResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Site not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create report"
// @Router /reports [post]
func (h *ReportHandler) createReport(w http.ResponseWriter, r *http.Request) {
	id, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.ReportCreateDTO
	if err := h.validate.DecodeAndValidate(r, &req); err != nil {
		respond.FromError(w, h.logger, err, "Failed to create report")
		return
	}

	created, err := h.reportService.Create(r.Context(), &model.Report{
		Title:  req.Title,
		Type:   model.ReportType(req.Type),
		SiteID: req.SiteID,
		UserID: id.UserID,
	})
	if err != nil {
		respond.FromError(w, h.logger, err, "Failed to create report")
		return
	}

	respond.JSON(w, http.StatusCreated, toReportResponse(created))
}
