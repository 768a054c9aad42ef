package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/middleware"
	"github.com/yigit/volunteerhub/internal/pkg/helpers"
)

// pathID reads a positive id path parameter; on failure the 400 response is already written
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := helpers.ParseIDParam(ctx, name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	return id, true
}

// formImage reads the uploaded image of a multipart request
func formImage(ctx *gin.Context, field string) (*multipart.FileHeader, bool) {
	file, err := ctx.FormFile(field)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "No image uploaded").
			WithField(field).
			WithDetails("A multipart field named " + field + " is required")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return nil, false
	}
	return file, true
}

// outcome answers a business rule result that is not an error
func outcome(ctx *gin.Context, res *dto.OutcomeResponse) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res, res.Message))
}
