package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/app/services"
	"github.com/yigit/volunteerhub/internal/middleware"
	"github.com/yigit/volunteerhub/internal/pkg/helpers"
)

// FeedController serves the public feed and the maps
type FeedController struct {
	feedService services.FeedService
	logger      zerolog.Logger
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService services.FeedService, logger zerolog.Logger) *FeedController {
	return &FeedController{
		feedService: feedService,
		logger:      logger.With().Str("controller", "feed").Logger(),
	}
}

// GetFeed returns the filtered feed
// @Summary Get the feed
// @Description Events, posts and campaigns newest first, filtered by text, type and association
// @Tags feed
// @Produce json
// @Param q query string false "Text searched in titles, descriptions and association names"
// @Param type query []string false "Item types" collectionFormat(multi) Enums(event, post, campaign)
// @Param association_id query []int false "Association IDs, repeated or comma separated" collectionFormat(multi)
// @Success 200 {object} dto.APIResponse{data=dto.FeedResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /feed [get]
func (c *FeedController) GetFeed(ctx *gin.Context) {
	var req dto.FeedRequest
	if !middleware.BindQuery(ctx, &req) {
		return
	}
	req.AssociationIDs = helpers.ParseIDList(ctx.QueryArray("association_id"))

	feed, err := c.feedService.GetFeed(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feed, ""))
}

// GetMap returns every geolocated item
// @Summary Get map items
// @Description Events, campaigns, reports and petitions with coordinates
// @Tags feed
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.MapItem}
// @Router /map [get]
func (c *FeedController) GetMap(ctx *gin.Context) {
	items, err := c.feedService.GetMap(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items, ""))
}

// GetEventsMap returns geolocated events and campaigns
// @Summary Get event map items
// @Tags feed
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.MapItem}
// @Router /events/map [get]
func (c *FeedController) GetEventsMap(ctx *gin.Context) {
	items, err := c.feedService.GetEventsMap(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items, ""))
}
