package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"ofx/internal/domain/user"
)

// UserStoreForSeed defines the store interface needed by SeedAdmin.
type UserStoreForSeed interface {
	CountAdmins(ctx context.Context) (int, error)
	Create(ctx context.Context, u user.User) error
}

// SeedAdminInput carries the bootstrap admin credentials.
type SeedAdminInput struct {
	Name     string
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	UserStore  UserStoreForSeed
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSeedAdmin creates an admin account if none exists.
// PRE: Database is migrated
// POST: Returns true when an admin was created; no-op without credentials or when an admin exists
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) (bool, error) {
	if input.Email == "" || input.Password == "" {
		return false, nil
	}
	count, err := deps.UserStore.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	name := input.Name
	if name == "" {
		name = "Administrator"
	}
	admin := user.User{
		ID:        deps.GenerateID(),
		Name:      name,
		Email:     user.NormalizeEmail(input.Email),
		IsAdmin:   true,
		CreatedAt: deps.Now(),
	}
	if err := admin.Validate(); err != nil {
		return false, err
	}
	if err := admin.SetPassword(input.Password); err != nil {
		return false, err
	}
	if err := deps.UserStore.Create(ctx, admin); err != nil {
		return false, err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", admin.Email)
	return true, nil
}
