package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ofx/internal/adapters/email"
	"ofx/internal/domain/money"
	"ofx/internal/domain/user"
	"ofx/internal/domain/withdrawal"
)

// WithdrawalStoreForRequest defines the store interface needed by RequestWithdrawal.
type WithdrawalStoreForRequest interface {
	Create(ctx context.Context, w withdrawal.Withdrawal) error
}

// UserStoreForWithdrawal looks up the requester for the admin notice.
type UserStoreForWithdrawal interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// RequestWithdrawalInput carries input for the orchestrator.
type RequestWithdrawalInput struct {
	UserID string
	Amount string // raw form value
}

// RequestWithdrawalDeps holds dependencies for RequestWithdrawal.
type RequestWithdrawalDeps struct {
	WithdrawalStore WithdrawalStoreForRequest
	UserStore       UserStoreForWithdrawal // only needed when NotifyEmail is set
	Mailer          email.Sender
	NotifyEmail     string // admin address; empty disables the notice
	AdminURL        string
	GenerateID      func() string
	Now             func() time.Time
}

// WithdrawalRequestedMessage is the notice shown after a successful request.
const WithdrawalRequestedMessage = "Withdrawal request sent. Please wait " + withdrawal.ApprovalWindow + " for admin approval."

// ExecuteRequestWithdrawal records a pending withdrawal for the user.
// PRE: input.UserID is an authenticated user
// POST: One pending withdrawal row exists; no earnings are touched
// INVARIANT: Balance is not held or deducted
func ExecuteRequestWithdrawal(ctx context.Context, input RequestWithdrawalInput, deps RequestWithdrawalDeps) (withdrawal.Withdrawal, error) {
	amount, err := money.ParseAmount(input.Amount)
	if err != nil {
		return withdrawal.Withdrawal{}, err
	}

	w := withdrawal.New(deps.GenerateID(), input.UserID, amount, deps.Now())
	if err := w.Validate(); err != nil {
		return withdrawal.Withdrawal{}, err
	}
	if err := deps.WithdrawalStore.Create(ctx, w); err != nil {
		return withdrawal.Withdrawal{}, fmt.Errorf("create withdrawal: %w", err)
	}

	slog.Info("withdrawal_requested", "withdrawal_id", w.ID, "user_id", w.UserID, "amount", w.Amount.String())
	notifyAdmin(ctx, deps, w)

	return w, nil
}

// notifyAdmin is best effort; the request stands even if the notice fails.
func notifyAdmin(ctx context.Context, deps RequestWithdrawalDeps, w withdrawal.Withdrawal) {
	if deps.Mailer == nil || deps.NotifyEmail == "" || deps.UserStore == nil {
		return
	}
	u, err := deps.UserStore.GetByID(ctx, w.UserID)
	if err == nil {
		var msg email.SendRequest
		msg, err = email.WithdrawalNoticeMessage(deps.NotifyEmail, u.Name, u.Email, money.Format(w.Amount), deps.AdminURL)
		if err == nil {
			_, err = deps.Mailer.Send(ctx, msg)
		}
	}
	if err != nil {
		slog.Warn("withdrawal_notice_failed", "withdrawal_id", w.ID, "error", err)
	}
}
