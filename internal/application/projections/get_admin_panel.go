package projections

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ofx/internal/domain/earning"
	"ofx/internal/domain/money"
	"ofx/internal/domain/user"
	"ofx/internal/domain/video"
	"ofx/internal/domain/withdrawal"
)

// AdminUserStore defines the user store interface needed by the admin projection.
type AdminUserStore interface {
	List(ctx context.Context) ([]user.User, error)
	Count(ctx context.Context) (int, error)
	CountReferred(ctx context.Context) (int, error)
}

// AdminEarningStore defines the earning store interface needed by the admin projection.
type AdminEarningStore interface {
	Sum(ctx context.Context) (decimal.Decimal, error)
	SumByType(ctx context.Context) (map[earning.Type]decimal.Decimal, error)
}

// AdminWithdrawalStore defines the withdrawal store interface needed by the admin projection.
type AdminWithdrawalStore interface {
	List(ctx context.Context) ([]withdrawal.Withdrawal, error)
	ListByStatus(ctx context.Context, status withdrawal.Status) ([]withdrawal.Withdrawal, error)
	SumByStatus(ctx context.Context, status withdrawal.Status) (decimal.Decimal, error)
}

// GetAdminPanelDeps holds dependencies for the admin projection.
type GetAdminPanelDeps struct {
	UserStore       AdminUserStore
	VideoStore      VideoLister
	EarningStore    AdminEarningStore
	WithdrawalStore AdminWithdrawalStore
}

// IncomeLine is one row of the income-by-type breakdown.
type IncomeLine struct {
	Type    earning.Type
	Amount  decimal.Decimal
	Display string
}

// AdminUser is a row of the user listing.
type AdminUser struct {
	ID           string
	Name         string
	Email        string
	ReferrerName string
	IsAdmin      bool
	CreatedAt    time.Time
}

// AdminWithdrawal is a withdrawal joined with its requester.
type AdminWithdrawal struct {
	ID            string
	UserName      string
	UserEmail     string
	Amount        decimal.Decimal
	AmountDisplay string
	Status        withdrawal.Status
	RequestedAt   time.Time
	DecidedAt     time.Time
}

// AdminPanelResult carries the output of the admin projection.
type AdminPanelResult struct {
	TotalUsers           int
	ReferredUsers        int
	TotalEarnings        decimal.Decimal
	TotalEarningsDisplay string
	TotalPayouts         decimal.Decimal
	TotalPayoutsDisplay  string
	Income               []IncomeLine
	Videos               []video.Video
	Users                []AdminUser
	PendingWithdrawals   []AdminWithdrawal
	Withdrawals          []AdminWithdrawal
}

// QueryGetAdminPanel gathers the aggregate statistics and listings.
// PRE: Caller is an admin
// POST: Income always lists the reported types, zero when absent
func QueryGetAdminPanel(ctx context.Context, deps GetAdminPanelDeps) (AdminPanelResult, error) {
	var res AdminPanelResult
	var err error

	if res.TotalUsers, err = deps.UserStore.Count(ctx); err != nil {
		return AdminPanelResult{}, fmt.Errorf("count users: %w", err)
	}
	if res.ReferredUsers, err = deps.UserStore.CountReferred(ctx); err != nil {
		return AdminPanelResult{}, fmt.Errorf("count referred: %w", err)
	}
	if res.TotalEarnings, err = deps.EarningStore.Sum(ctx); err != nil {
		return AdminPanelResult{}, fmt.Errorf("sum earnings: %w", err)
	}
	if res.TotalPayouts, err = deps.WithdrawalStore.SumByStatus(ctx, withdrawal.StatusApproved); err != nil {
		return AdminPanelResult{}, fmt.Errorf("sum payouts: %w", err)
	}
	res.TotalEarningsDisplay = money.Format(res.TotalEarnings)
	res.TotalPayoutsDisplay = money.Format(res.TotalPayouts)

	byType, err := deps.EarningStore.SumByType(ctx)
	if err != nil {
		return AdminPanelResult{}, fmt.Errorf("sum by type: %w", err)
	}
	res.Income = incomeLines(byType)

	if res.Videos, err = deps.VideoStore.List(ctx); err != nil {
		return AdminPanelResult{}, fmt.Errorf("list videos: %w", err)
	}

	users, err := deps.UserStore.List(ctx)
	if err != nil {
		return AdminPanelResult{}, fmt.Errorf("list users: %w", err)
	}
	byID := make(map[string]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, u := range users {
		res.Users = append(res.Users, AdminUser{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			ReferrerName: byID[u.ReferralID].Name,
			IsAdmin:      u.IsAdmin,
			CreatedAt:    u.CreatedAt,
		})
	}

	all, err := deps.WithdrawalStore.List(ctx)
	if err != nil {
		return AdminPanelResult{}, fmt.Errorf("list withdrawals: %w", err)
	}
	for _, w := range all {
		res.Withdrawals = append(res.Withdrawals, adminWithdrawal(w, byID))
	}

	pending, err := deps.WithdrawalStore.ListByStatus(ctx, withdrawal.StatusPending)
	if err != nil {
		return AdminPanelResult{}, fmt.Errorf("list pending withdrawals: %w", err)
	}
	for _, w := range pending {
		res.PendingWithdrawals = append(res.PendingWithdrawals, adminWithdrawal(w, byID))
	}

	return res, nil
}

func adminWithdrawal(w withdrawal.Withdrawal, byID map[string]user.User) AdminWithdrawal {
	return AdminWithdrawal{
		ID:            w.ID,
		UserName:      byID[w.UserID].Name,
		UserEmail:     byID[w.UserID].Email,
		Amount:        w.Amount,
		AmountDisplay: money.Format(w.Amount),
		Status:        w.Status,
		RequestedAt:   w.RequestedAt,
		DecidedAt:     w.DecidedAt,
	}
}

// incomeLines orders totals by earning.Types, keeping reported types even at zero.
func incomeLines(totals map[earning.Type]decimal.Decimal) []IncomeLine {
	reported := make(map[earning.Type]bool, len(earning.ReportedTypes))
	for _, t := range earning.ReportedTypes {
		reported[t] = true
	}
	var lines []IncomeLine
	for _, t := range earning.Types {
		amount, ok := totals[t]
		if !ok && !reported[t] {
			continue
		}
		lines = append(lines, IncomeLine{Type: t, Amount: amount, Display: money.Format(amount)})
	}
	return lines
}
