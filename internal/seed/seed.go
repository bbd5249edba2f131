package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/services"
	"github.com/yigit/hostel/internal/config"
)

// EnsureAdmin creates the configured admin account when the database has no
// admin yet. Existing admins are never touched.
func EnsureAdmin(ctx context.Context, users *services.UserService, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.Password == "" {
		lgr.Warn().Msg("No admin password configured, skipping admin seed")
		return nil
	}
	if cfg.Admin.Username == "" || cfg.Admin.Email == "" {
		return errors.New("admin username and email are required to seed an admin")
	}

	created, err := users.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}
	if created {
		lgr.Info().Str("username", cfg.Admin.Username).Msg("Default admin user created successfully")
	} else {
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}
	return nil
}
