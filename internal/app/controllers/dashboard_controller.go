package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/app/services"
	"github.com/yigit/volunteerhub/internal/middleware"
)

// DashboardController serves the personal dashboards
type DashboardController struct {
	dashboardService services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger.With().Str("controller", "dashboard").Logger(),
	}
}

// VolunteerDashboard godoc
// @Summary Volunteer dashboard
// @Description Own reports and petitions, donations, upcoming participations and history
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.VolunteerDashboard}
// @Failure 403 {object} dto.ErrorResponse "Volunteers only"
// @Router /dashboard/volunteer [get]
func (c *DashboardController) VolunteerDashboard(ctx *gin.Context) {
	resp, err := c.dashboardService.VolunteerDashboard(ctx.Request.Context(), middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// AssociationDashboard godoc
// @Summary Association dashboard
// @Description Posts, events, campaigns, received donations and history
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AssociationDashboard}
// @Failure 403 {object} dto.ErrorResponse "Associations only"
// @Router /dashboard/association [get]
func (c *DashboardController) AssociationDashboard(ctx *gin.Context) {
	resp, err := c.dashboardService.AssociationDashboard(ctx.Request.Context(), middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
