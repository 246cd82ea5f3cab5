// Package seed creates the default records a fresh deployment needs.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/config"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/auth"
)

// CreateDefaultData ensures a bootstrap admin account exists so the portal
// is administrable on first start. Credentials come from ADMIN_EMAIL and
// ADMIN_PASSWORD; without them the seed is skipped.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	adminEmail := config.GetEnv("ADMIN_EMAIL", "")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "")
	if adminEmail == "" || adminPassword == "" {
		lgr.Info().Msg("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	userRepo := repositories.NewUserRepository(dbPool)

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	employeeID := "ADMIN-001"
	admin := &models.User{
		Email:      adminEmail,
		Password:   hashed,
		FirstName:  "Portal",
		LastName:   "Admin",
		Role:       models.RoleAdmin,
		Department: "Administration",
		EmployeeID: &employeeID,
		IsActive:   true,
	}

	err = userRepo.Create(ctx, admin)
	if errors.Is(err, apperrors.ErrEmailAlreadyExists) || errors.Is(err, apperrors.ErrIdentifierExists) {
		lgr.Info().Str("email", adminEmail).Msg("Admin account already exists, skipping seed")
		return nil
	}
	if err != nil {
		return err
	}

	lgr.Info().Str("email", adminEmail).Int64("userID", admin.ID).Msg("Admin account seeded")
	return nil
}
