package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/app/services"
	"github.com/yigit/volunteerhub/internal/middleware"
)

// PetitionController handles petitions, signatures and association support
type PetitionController struct {
	petitionService services.PetitionService
	logger          zerolog.Logger
}

// NewPetitionController creates a new PetitionController
func NewPetitionController(petitionService services.PetitionService, logger zerolog.Logger) *PetitionController {
	return &PetitionController{
		petitionService: petitionService,
		logger:          logger.With().Str("controller", "petition").Logger(),
	}
}

// CreatePetition handles petition creation
// @Summary Create a petition
// @Description The position on the map is required
// @Tags petitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PetitionRequest true "Petition"
// @Success 201 {object} dto.APIResponse{data=models.Petition}
// @Failure 400 {object} dto.ErrorResponse "Invalid request or missing position"
// @Router /petitions [post]
func (c *PetitionController) CreatePetition(ctx *gin.Context) {
	var req dto.PetitionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	petition, err := c.petitionService.CreatePetition(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(petition, "Petition created"))
}

// UpdatePetition edits a petition
// @Summary Update a petition
// @Tags petitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Petition ID" Format(int64) minimum(1)
// @Param request body dto.PetitionRequest true "Petition"
// @Success 200 {object} dto.APIResponse{data=models.Petition}
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Petition not found"
// @Router /petitions/{id} [put]
func (c *PetitionController) UpdatePetition(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.PetitionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	petition, err := c.petitionService.UpdatePetition(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(petition, "Petition updated"))
}

// UploadImage sets the petition image
// @Summary Upload petition image
// @Tags petitions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Petition ID" Format(int64) minimum(1)
// @Param image formData file true "Petition image"
// @Success 200 {object} dto.APIResponse{data=dto.UploadResponse}
// @Router /petitions/{id}/image [post]
func (c *PetitionController) UploadImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	file, ok := formImage(ctx, "image")
	if !ok {
		return
	}
	resp, err := c.petitionService.UploadImage(ctx.Request.Context(), middleware.CurrentActor(ctx), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Image uploaded"))
}

// GetPetition returns a petition with its signature count
// @Summary Get a petition
// @Tags petitions
// @Produce json
// @Param id path int true "Petition ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Petition}
// @Failure 404 {object} dto.ErrorResponse "Petition not found"
// @Router /petitions/{id} [get]
func (c *PetitionController) GetPetition(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	petition, err := c.petitionService.GetPetition(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(petition, ""))
}

// ListPetitions lists petitions newest first
// @Summary List petitions
// @Tags petitions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Petition}
// @Router /petitions [get]
func (c *PetitionController) ListPetitions(ctx *gin.Context) {
	petitions, err := c.petitionService.ListPetitions(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(petitions, ""))
}

// Sign adds the caller's signature
// @Summary Sign a petition
// @Description A repeated signature answers an informational outcome
// @Tags petitions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Petition ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.OutcomeResponse}
// @Failure 404 {object} dto.ErrorResponse "Petition not found"
// @Router /petitions/{id}/sign [post]
func (c *PetitionController) Sign(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.petitionService.Sign(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	outcome(ctx, res)
}

// Support records an association's support
// @Summary Support a petition
// @Description Associations only, once per petition
// @Tags petitions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Petition ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.OutcomeResponse}
// @Failure 404 {object} dto.ErrorResponse "Petition not found"
// @Router /petitions/{id}/support [post]
func (c *PetitionController) Support(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.petitionService.Support(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	outcome(ctx, res)
}
