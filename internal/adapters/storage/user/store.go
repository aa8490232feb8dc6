package user

import (
	"context"

	domain "ofx/internal/domain/user"
)

// Store persists User state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, value domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
	CountReferred(ctx context.Context) (int, error)
	CountReferredBy(ctx context.Context, referrerID string) (int, error)
	CountAdmins(ctx context.Context) (int, error)
}
