package earning

import (
	"context"

	"github.com/shopspring/decimal"

	domain "ofx/internal/domain/earning"
)

// Store persists Earning state.
type Store interface {
	Create(ctx context.Context, value domain.Earning) error
	ListByUserID(ctx context.Context, userID string) ([]domain.Earning, error)
	SumByUserID(ctx context.Context, userID string) (decimal.Decimal, error)
	Sum(ctx context.Context) (decimal.Decimal, error)
	SumByType(ctx context.Context) (map[domain.Type]decimal.Decimal, error)
}
