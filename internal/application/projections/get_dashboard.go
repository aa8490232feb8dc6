package projections

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"ofx/internal/domain/money"
)

// DashboardEarningStore defines the earning store interface needed by the dashboard projection.
type DashboardEarningStore interface {
	SumByUserID(ctx context.Context, userID string) (decimal.Decimal, error)
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	UserID string
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	UserStore       UserGetter
	ReferralCounter ReferralCounter
	EarningStore    DashboardEarningStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Name            string
	Referrals       int
	Earnings        decimal.Decimal
	EarningsDisplay string
}

// QueryGetDashboard returns the signed-in user's headline figures.
// PRE: query.UserID is an authenticated user
// POST: Earnings is the live sum of the user's earnings, zero when none
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	u, err := deps.UserStore.GetByID(ctx, query.UserID)
	if err != nil {
		return DashboardResult{}, fmt.Errorf("load user: %w", err)
	}
	referrals, err := deps.ReferralCounter.CountReferredBy(ctx, u.ID)
	if err != nil {
		return DashboardResult{}, fmt.Errorf("count referrals: %w", err)
	}
	total, err := deps.EarningStore.SumByUserID(ctx, u.ID)
	if err != nil {
		return DashboardResult{}, fmt.Errorf("sum earnings: %w", err)
	}

	return DashboardResult{
		Name:            u.Name,
		Referrals:       referrals,
		Earnings:        total,
		EarningsDisplay: money.Format(total),
	}, nil
}
