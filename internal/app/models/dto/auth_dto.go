package dto

import (
	"strings"
	"time"

	"github.com/yigit/hostel/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents a staff registration request
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,username"`
	Email           string `json:"email" validate:"required,email,max=100"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Normalize trims identity fields before validation.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// ResetPasswordRequest sets a new password without the old one
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// UserResponse represents a user account without its password
type UserResponse struct {
	ID        int64       `json:"id" example:"1"`
	Username  string      `json:"username" example:"warden"`
	Email     string      `json:"email" example:"warden@hostel.local"`
	Role      models.Role `json:"role" example:"staff"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// NewUserResponse maps a user model onto its public shape
func NewUserResponse(user *models.User) UserResponse {
	var resp UserResponse
	if user == nil {
		return resp
	}
	copyFields(&resp, user)
	return resp
}

// NewUserResponses maps a slice of users, never returning nil
func NewUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
