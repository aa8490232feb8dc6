package withdrawal

import (
	"context"

	"github.com/shopspring/decimal"

	domain "ofx/internal/domain/withdrawal"
)

// Store persists Withdrawal state.
type Store interface {
	Create(ctx context.Context, value domain.Withdrawal) error
	GetByID(ctx context.Context, id string) (domain.Withdrawal, error)
	SaveDecision(ctx context.Context, value domain.Withdrawal) error
	List(ctx context.Context) ([]domain.Withdrawal, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.Withdrawal, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Withdrawal, error)
	SumByStatus(ctx context.Context, status domain.Status) (decimal.Decimal, error)
}
