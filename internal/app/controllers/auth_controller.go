// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/services"
	"github.com/yigit/hostel/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Register handles staff registration
// @Summary Register a new staff account
// @Description Creates a staff account. Username and email must both be unused.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "Registration successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 409 {object} dto.ErrorResponse "Username or email already exists"
// @Failure 503 {object} dto.ErrorResponse "Database unavailable"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Registration successful! You can now log in.", dto.NewUserResponse(user)))
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user and returns a session token with the user record
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 503 {object} dto.ErrorResponse "Database unavailable"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Debug().Err(err).Str("username", req.Username).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", resp.User.ID).Str("role", string(resp.User.Role)).Msg("User logged in")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Login successful.", resp))
}
