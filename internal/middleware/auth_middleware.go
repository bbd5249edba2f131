package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Invalid token format")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, models.Role(claims.Role))

		c.Next()
	}
}

// RoleRequired middleware to check if user has required role
func (m *AuthMiddleware) RoleRequired(requiredRole models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Ensure JWTAuth middleware has run first
		role, exists := c.Get(ContextRole)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("User role not found")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if r, ok := role.(models.Role); !ok || r != requiredRole {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")

			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, if any
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
