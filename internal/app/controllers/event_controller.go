package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/app/services"
	"github.com/yigit/volunteerhub/internal/middleware"
)

// EventController handles events and the applications to them
type EventController struct {
	eventService         services.EventService
	participationService services.ParticipationService
	logger               zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, participationService services.ParticipationService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService:         eventService,
		participationService: participationService,
		logger:               logger.With().Str("controller", "event").Logger(),
	}
}

// CreateEvent handles event creation
// @Summary Create an event
// @Description Associations only. Coordinates are optional; malformed ones are ignored.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EventRequest true "Event"
// @Success 201 {object} dto.APIResponse{data=models.Event}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 403 {object} dto.ErrorResponse "Only associations can create events"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.EventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Event creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event, "Event created"))
}

// UpdateEvent handles event update
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Param request body dto.EventRequest true "Event"
// @Success 200 {object} dto.APIResponse{data=models.Event}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.EventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.UpdateEvent(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Event updated"))
}

// DeleteEvent removes an event and its applications
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.eventService.DeleteEvent(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Event deleted"}, ""))
}

// UploadImage sets the event image
// @Summary Upload event image
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Param image formData file true "Event image"
// @Success 200 {object} dto.APIResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid image"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /events/{id}/image [post]
func (c *EventController) UploadImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	file, ok := formImage(ctx, "image")
	if !ok {
		return
	}
	resp, err := c.eventService.UploadImage(ctx.Request.Context(), middleware.CurrentActor(ctx), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Image uploaded"))
}

// GetEvent returns an event with its capacity
// @Summary Get an event
// @Description Includes capacity and, for an authenticated volunteer, the status of their application
// @Tags events
// @Produce json
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.EventDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.eventService.GetEvent(ctx.Request.Context(), id, middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail, ""))
}

// ListMyEvents lists the caller association's events by date
// @Summary List my events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Event}
// @Router /events/my [get]
func (c *EventController) ListMyEvents(ctx *gin.Context) {
	events, err := c.eventService.ListMyEvents(ctx.Request.Context(), middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// Apply submits the caller's application
// @Summary Apply to an event
// @Description Volunteers only. A full event or a repeated application answers an informational outcome.
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.OutcomeResponse}
// @Failure 403 {object} dto.ErrorResponse "Only volunteers can apply"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/apply [post]
func (c *EventController) Apply(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.participationService.Apply(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	outcome(ctx, res)
}

// Withdraw removes the caller's application
// @Summary Withdraw from an event
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "No application for this event"
// @Router /events/{id}/participation [delete]
func (c *EventController) Withdraw(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.participationService.Withdraw(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Application withdrawn"}, ""))
}

// ListParticipants lists the applications of an owned event
// @Summary List event participants
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ParticipantsResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/participants [get]
func (c *EventController) ListParticipants(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.eventService.ListParticipants(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Decide accepts or rejects an application
// @Summary Accept or reject an application
// @Description The volunteer is notified in the same transaction and receives an email
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID" Format(int64) minimum(1)
// @Param pid path int true "Participation ID" Format(int64) minimum(1)
// @Param action path string true "Decision" Enums(accept, reject)
// @Success 200 {object} dto.APIResponse{data=models.Participation}
// @Failure 400 {object} dto.ErrorResponse "Unknown action"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Router /events/{id}/participants/{pid}/{action} [post]
func (c *EventController) Decide(ctx *gin.Context) {
	eventID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	participationID, ok := pathID(ctx, "pid")
	if !ok {
		return
	}

	p, err := c.participationService.Decide(ctx.Request.Context(), middleware.CurrentActor(ctx), eventID, participationID, ctx.Param("action"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("eventID", eventID).Int64("participationID", participationID).Str("status", string(p.Status)).Msg("Application decided")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(p, "Application updated"))
}
