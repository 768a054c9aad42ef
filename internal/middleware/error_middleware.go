package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/logger"
)

type errorMapping struct {
	targets []error
	status  int
	code    dto.ErrorCode
	message string
}

// Checked in order; the first match wins
var errorMappings = []errorMapping{
	{
		targets: []error{
			apperrors.ErrResourceNotFound, apperrors.ErrUserNotFound, apperrors.ErrEventNotFound,
			apperrors.ErrParticipationNotFound, apperrors.ErrCampaignNotFound, apperrors.ErrPostNotFound,
			apperrors.ErrPetitionNotFound, apperrors.ErrReportNotFound, apperrors.ErrChatNotFound,
			apperrors.ErrDonationNotFound, apperrors.ErrCheckoutNotFound,
		},
		status: http.StatusNotFound, code: dto.ErrorCodeResourceNotFound, message: "Resource not found",
	},
	{
		targets: []error{apperrors.ErrPermissionDenied},
		status:  http.StatusForbidden, code: dto.ErrorCodeForbidden, message: "Permission denied",
	},
	{
		targets: []error{apperrors.ErrInvalidCredentials},
		status:  http.StatusUnauthorized, code: dto.ErrorCodeInvalidCredentials, message: "Invalid credentials",
	},
	{
		targets: []error{apperrors.ErrTokenExpired},
		status:  http.StatusUnauthorized, code: dto.ErrorCodeExpiredToken, message: "Token expired",
	},
	{
		targets: []error{apperrors.ErrTokenNotFound},
		status:  http.StatusUnauthorized, code: dto.ErrorCodeTokenNotFound, message: "Token not found",
	},
	{
		targets: []error{apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked},
		status:  http.StatusUnauthorized, code: dto.ErrorCodeInvalidToken, message: "Invalid token",
	},
	{
		targets: []error{apperrors.ErrValidationFailed},
		status:  http.StatusBadRequest, code: dto.ErrorCodeValidationFailed, message: "Validation failed",
	},
	{
		targets: []error{apperrors.ErrBadRequest},
		status:  http.StatusBadRequest, code: dto.ErrorCodeBadRequest, message: "Bad request",
	},
	{
		targets: []error{apperrors.ErrEmailAlreadyExists, apperrors.ErrResourceAlreadyExists},
		status:  http.StatusConflict, code: dto.ErrorCodeResourceAlreadyExists, message: "Resource already exists",
	},
	{
		targets: []error{apperrors.ErrConflict},
		status:  http.StatusConflict, code: dto.ErrorCodeConflict, message: "Conflict",
	},
	{
		targets: []error{apperrors.ErrExternalService},
		status:  http.StatusBadGateway, code: dto.ErrorCodeExternalServiceError, message: "External service unavailable",
	},
}

// HandleAPIError handles common API errors and returns appropriate responses.
// The message of an apperrors.CustomError replaces the generic one.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	hasCustom := errors.As(err, &custom)

	for _, m := range errorMappings {
		if !apperrors.Is(err, m.targets[0], m.targets[1:]...) {
			continue
		}

		message := m.message
		if hasCustom && custom.Message != "" {
			message = custom.Message
		} else if !hasCustom {
			message = err.Error()
		}
		detail := dto.NewErrorDetail(m.code, message)
		if hasCustom && len(custom.Details) > 0 {
			if field, ok := custom.Details["field"].(string); ok {
				detail.WithField(field)
			}
			if m.status != http.StatusBadGateway {
				detail.WithDetails(custom.Details)
			}
		}
		c.AbortWithStatusJSON(m.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
}

// HandleBindingError answers a request whose body or query failed to bind
func HandleBindingError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
