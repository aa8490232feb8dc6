package projections

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ofx/internal/domain/earning"
	"ofx/internal/domain/money"
	"ofx/internal/domain/withdrawal"
)

// WalletEarningStore defines the earning store interface needed by the wallet projection.
type WalletEarningStore interface {
	ListByUserID(ctx context.Context, userID string) ([]earning.Earning, error)
}

// WalletWithdrawalStore defines the withdrawal store interface needed by the wallet projection.
type WalletWithdrawalStore interface {
	ListByUserID(ctx context.Context, userID string) ([]withdrawal.Withdrawal, error)
}

// GetWalletQuery carries input for the wallet projection.
type GetWalletQuery struct {
	UserID string
}

// GetWalletDeps holds dependencies for the wallet projection.
type GetWalletDeps struct {
	EarningStore    WalletEarningStore
	WithdrawalStore WalletWithdrawalStore
}

// WalletEntry is one line of earnings history.
type WalletEntry struct {
	Type          earning.Type
	Amount        decimal.Decimal
	AmountDisplay string
	CreatedAt     time.Time
}

// WalletWithdrawal is one of the user's withdrawal requests.
type WalletWithdrawal struct {
	ID            string
	Status        withdrawal.Status
	AmountDisplay string
	RequestedAt   time.Time
}

// WalletResult carries the output of the wallet projection.
type WalletResult struct {
	Entries        []WalletEntry
	Balance        decimal.Decimal
	BalanceDisplay string
	Withdrawals    []WalletWithdrawal
}

// QueryGetWallet returns earnings history, balance and withdrawal requests.
// PRE: query.UserID is an authenticated user
// POST: Balance is the sum of Entries; withdrawals never reduce it
func QueryGetWallet(ctx context.Context, query GetWalletQuery, deps GetWalletDeps) (WalletResult, error) {
	history, err := deps.EarningStore.ListByUserID(ctx, query.UserID)
	if err != nil {
		return WalletResult{}, fmt.Errorf("list earnings: %w", err)
	}
	requests, err := deps.WithdrawalStore.ListByUserID(ctx, query.UserID)
	if err != nil {
		return WalletResult{}, fmt.Errorf("list withdrawals: %w", err)
	}

	result := WalletResult{Balance: earning.Sum(history)}
	result.BalanceDisplay = money.Format(result.Balance)
	for _, e := range history {
		result.Entries = append(result.Entries, WalletEntry{
			Type:          e.Type,
			Amount:        e.Amount,
			AmountDisplay: money.Format(e.Amount),
			CreatedAt:     e.CreatedAt,
		})
	}
	for _, w := range requests {
		result.Withdrawals = append(result.Withdrawals, WalletWithdrawal{
			ID:            w.ID,
			Status:        w.Status,
			AmountDisplay: money.Format(w.Amount),
			RequestedAt:   w.RequestedAt,
		})
	}
	return result, nil
}
