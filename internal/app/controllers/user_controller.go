package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/app/services"
	"github.com/yigit/volunteerhub/internal/middleware"
)

// UserController handles profiles, associations and follows
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger.With().Str("controller", "user").Logger(),
	}
}

// GetMyProfile retrieves the caller's profile
// @Summary Get current user profile
// @Description Retrieves the profile of the authenticated user including the role payload
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User} "Profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/me [get]
func (c *UserController) GetMyProfile(ctx *gin.Context) {
	actor := middleware.CurrentActor(ctx)
	user, err := c.userService.GetProfile(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, ""))
}

// UpdateMyProfile updates the caller's profile
// @Summary Update current user profile
// @Description Updates identity fields and the role specific payload of the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile update"
// @Success 200 {object} dto.APIResponse{data=models.User} "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /users/me [put]
func (c *UserController) UpdateMyProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Profile update failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, "Profile updated"))
}

// UpdateProfilePhoto uploads a new profile photo
// @Summary Upload profile photo
// @Description Replaces the caller's profile photo; the image is resized and re-encoded
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Profile photo (jpeg, png, gif)"
// @Success 200 {object} dto.APIResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid image"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /users/me/photo [post]
func (c *UserController) UpdateProfilePhoto(ctx *gin.Context) {
	file, ok := formImage(ctx, "photo")
	if !ok {
		return
	}

	resp, err := c.userService.UpdateProfilePhoto(ctx.Request.Context(), middleware.CurrentActor(ctx), file)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Profile photo upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Profile photo updated"))
}

// DeleteProfilePhoto removes the caller's profile photo
// @Summary Delete profile photo
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /users/me/photo [delete]
func (c *UserController) DeleteProfilePhoto(ctx *gin.Context) {
	if err := c.userService.DeleteProfilePhoto(ctx.Request.Context(), middleware.CurrentActor(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Profile photo removed"}, ""))
}

// GetVolunteerProfile returns the public page of a volunteer
// @Summary Get volunteer profile
// @Tags volunteers
// @Produce json
// @Param id path int true "Volunteer ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.VolunteerProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid volunteer ID"
// @Failure 404 {object} dto.ErrorResponse "Volunteer not found"
// @Router /volunteers/{id} [get]
func (c *UserController) GetVolunteerProfile(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	profile, err := c.userService.GetVolunteerProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, ""))
}

// GetVolunteerFollowed lists the associations a volunteer follows
// @Summary List associations followed by a volunteer
// @Tags volunteers
// @Produce json
// @Param id path int true "Volunteer ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.UserSummary}
// @Failure 400 {object} dto.ErrorResponse "Invalid volunteer ID"
// @Router /volunteers/{id}/followed-associations [get]
func (c *UserController) GetVolunteerFollowed(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	followed, err := c.userService.ListFollowed(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(followed, ""))
}

// ListAssociations lists every association by name
// @Summary List associations
// @Tags associations
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Router /associations [get]
func (c *UserController) ListAssociations(ctx *gin.Context) {
	associations, err := c.userService.ListAssociations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(associations, ""))
}

// GetAssociationProfile returns the public page of an association
// @Summary Get association profile
// @Description Events, campaigns, posts and followers of an association; isFollowing reflects the caller when authenticated
// @Tags associations
// @Produce json
// @Param id path int true "Association ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.AssociationProfileResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid association ID"
// @Failure 404 {object} dto.ErrorResponse "Association not found"
// @Router /associations/{id} [get]
func (c *UserController) GetAssociationProfile(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	profile, err := c.userService.GetAssociationProfile(ctx.Request.Context(), id, middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, ""))
}

// Follow follows an association
// @Summary Follow an association
// @Description Volunteers only. Refused or repeated follows answer an informational outcome instead of an error.
// @Tags associations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Association ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.OutcomeResponse}
// @Failure 404 {object} dto.ErrorResponse "Association not found"
// @Router /associations/{id}/follow [post]
func (c *UserController) Follow(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.userService.Follow(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	outcome(ctx, res)
}

// Unfollow stops following an association
// @Summary Unfollow an association
// @Tags associations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Association ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.OutcomeResponse}
// @Router /associations/{id}/unfollow [post]
func (c *UserController) Unfollow(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.userService.Unfollow(ctx.Request.Context(), middleware.CurrentActor(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	outcome(ctx, res)
}

// ListMyFollowed lists the associations the caller follows
// @Summary List my followed associations
// @Tags associations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.UserSummary}
// @Router /associations/followed [get]
func (c *UserController) ListMyFollowed(ctx *gin.Context) {
	followed, err := c.userService.ListFollowed(ctx.Request.Context(), middleware.CurrentActor(ctx).UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(followed, ""))
}
