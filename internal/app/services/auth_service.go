package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/auth"
	"github.com/yigit/hostel/internal/pkg/validation"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo   *repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a staff account. Username and email must both be unused.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	req.Normalize()
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Error checking user existence")
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUsernameOrEmailExists
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: digest,
		Role:     models.RoleStaff,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}

// Login checks credentials and issues a session token. Unknown users and
// wrong passwords produce the same error. A legacy digest is upgraded to
// bcrypt after a successful check.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrBadCredentials
		}
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Error loading user for login")
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Str("username", req.Username).Msg("Login rejected")
		return nil, apperrors.ErrBadCredentials
	}

	if auth.IsLegacyDigest(user.Password) {
		s.upgradeDigest(ctx, user, req.Password)
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Error generating token")
		return nil, err
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		User: dto.NewUserResponse(user),
	}, nil
}

// upgradeDigest rehashes a legacy password. Failure leaves the legacy digest
// in place and does not fail the login.
func (s *AuthService) upgradeDigest(ctx context.Context, user *models.User, password string) {
	digest, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not rehash legacy password")
		return
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, digest); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not store upgraded password")
		return
	}
	user.Password = digest
	s.logger.Info().Int64("userID", user.ID).Msg("Upgraded legacy password digest")
}
