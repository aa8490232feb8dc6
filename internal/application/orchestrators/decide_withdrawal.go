package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"ofx/internal/domain/withdrawal"
)

// WithdrawalStoreForDecide defines the store interface needed by DecideWithdrawal.
type WithdrawalStoreForDecide interface {
	GetByID(ctx context.Context, id string) (withdrawal.Withdrawal, error)
	SaveDecision(ctx context.Context, w withdrawal.Withdrawal) error
}

// DecideWithdrawalInput carries input for the orchestrator.
type DecideWithdrawalInput struct {
	WithdrawalID string
	Decision     string // withdrawal.DecisionApprove or withdrawal.DecisionReject
	AdminID      string
}

// DecideWithdrawalDeps holds dependencies for DecideWithdrawal.
type DecideWithdrawalDeps struct {
	WithdrawalStore WithdrawalStoreForDecide
	Now             func() time.Time
}

// ExecuteDecideWithdrawal approves or rejects a pending withdrawal.
// PRE: Caller is an admin
// POST: Withdrawal is approved or rejected with DecidedAt set
// INVARIANT: Only pending withdrawals change state
func ExecuteDecideWithdrawal(ctx context.Context, input DecideWithdrawalInput, deps DecideWithdrawalDeps) (withdrawal.Withdrawal, error) {
	w, err := deps.WithdrawalStore.GetByID(ctx, input.WithdrawalID)
	if err != nil {
		return withdrawal.Withdrawal{}, err
	}
	if err := w.Decide(input.Decision, deps.Now()); err != nil {
		return withdrawal.Withdrawal{}, err
	}
	if err := deps.WithdrawalStore.SaveDecision(ctx, w); err != nil {
		return withdrawal.Withdrawal{}, err
	}

	slog.Info("withdrawal_decided", "withdrawal_id", w.ID, "status", string(w.Status), "admin_id", input.AdminID)
	return w, nil
}
