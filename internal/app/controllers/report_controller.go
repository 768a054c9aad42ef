package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/app/services"
	"github.com/yigit/volunteerhub/internal/middleware"
)

// ReportController handles citizen reports
type ReportController struct {
	reportService services.ReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger.With().Str("controller", "report").Logger(),
	}
}

// CreateReport handles report creation
// @Summary Create a report
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReportRequest true "Report"
// @Success 201 {object} dto.APIResponse{data=models.Report}
// @Failure 400 {object} dto.ErrorResponse "Invalid request or missing position"
// @Router /reports [post]
func (c *ReportController) CreateReport(ctx *gin.Context) {
	var req dto.ReportRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	report, err := c.reportService.CreateReport(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(report, "Report created"))
}

// DeleteReport removes a report
// @Summary Delete a report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Router /reports/{id} [delete]
func (c *ReportController) DeleteReport(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.reportService.DeleteReport(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Report deleted"}, ""))
}

// UploadImage sets the report image
// @Summary Upload report image
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID" Format(int64) minimum(1)
// @Param image formData file true "Report image"
// @Success 200 {object} dto.APIResponse{data=dto.UploadResponse}
// @Router /reports/{id}/image [post]
func (c *ReportController) UploadImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	file, ok := formImage(ctx, "image")
	if !ok {
		return
	}
	resp, err := c.reportService.UploadImage(ctx.Request.Context(), middleware.CurrentActor(ctx), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Image uploaded"))
}

// GetReport returns a report
// @Summary Get a report
// @Tags reports
// @Produce json
// @Param id path int true "Report ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Report}
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Router /reports/{id} [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	report, err := c.reportService.GetReport(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report, ""))
}

// ListReports lists reports newest first
// @Summary List reports
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Report}
// @Router /reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	reports, err := c.reportService.ListReports(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reports, ""))
}
