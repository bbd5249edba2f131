package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/services"
	"github.com/yigit/hostel/internal/middleware"
	"github.com/yigit/hostel/internal/pkg/apperrors"
)

// UserController handles staff account management. All routes are admin only.
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

func parseUserID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid user ID."))
		return 0, false
	}
	return id, true
}

// ListUsers returns every account
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse}
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Returning empty user list")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewUserResponses(users)))
}

// DeleteUser removes a staff account
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Admin accounts cannot be deleted"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User deleted successfully.", nil))
}

// ResetPassword sets a new password for a user
// @Summary Reset a user's password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.APIResponse
// @Router /users/{id}/password [put]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	var req dto.ResetPasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.userService.ResetPassword(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Password reset successfully.", nil))
}
