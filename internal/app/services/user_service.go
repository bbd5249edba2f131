package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/repositories"
	"github.com/yigit/hostel/internal/db"
	"github.com/yigit/hostel/internal/pkg/apperrors"
	"github.com/yigit/hostel/internal/pkg/auth"
	"github.com/yigit/hostel/internal/pkg/validation"
)

// UserService handles staff account management
type UserService struct {
	db       *db.PostgresDB
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(database *db.PostgresDB, userRepo *repositories.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		db:       database,
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns every account without password digests
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx, "")
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing users")
		return []*models.User{}, err
	}
	return users, nil
}

// DeleteUser removes a staff account. Admin accounts can never be deleted.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		users := s.userRepo.WithTx(tx)

		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user.IsAdmin() {
			return apperrors.ErrAdminUndeletable
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", id).Msg("User not deleted")
		return err
	}

	s.logger.Info().Int64("userID", id).Msg("User deleted")
	return nil
}

// ResetPassword replaces a user's password without checking the old one
func (s *UserService) ResetPassword(ctx context.Context, id int64, req *dto.ResetPasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, id, digest); err != nil {
		s.logger.Warn().Err(err).Int64("userID", id).Msg("Password not reset")
		return err
	}

	s.logger.Info().Int64("userID", id).Msg("Password reset")
	return nil
}

// EnsureAdmin creates the given admin account when no admin exists yet.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	admins, err := s.userRepo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.User{
		Username: username,
		Email:    email,
		Password: digest,
		Role:     models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, err
	}

	s.logger.Info().Str("username", username).Msg("Seeded admin account")
	return true, nil
}
