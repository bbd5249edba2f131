package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// errorMapping pairs an error kind with its HTTP status and code. Order
// matters: the first kind the error unwraps to wins.
var errorMapping = []struct {
	kind   error
	status int
	code   dto.ErrorCode
}{
	{apperrors.ErrConnectionFailed, http.StatusServiceUnavailable, dto.ErrorCodeDatabaseUnavailable},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict},
	{apperrors.ErrReferentialIntegrity, http.StatusConflict, dto.ErrorCodeReferenced},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.kind) {
			if m.status >= http.StatusInternalServerError {
				logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
			}
			c.JSON(m.status, dto.NewErrorResponse(dto.NewErrorDetail(m.code, apperrors.UserMessage(err))))
			return
		}
	}

	// Unknown errors never leak driver text
	logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unexpected error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeDatabaseError, apperrors.UserMessage(err)),
	))
}
