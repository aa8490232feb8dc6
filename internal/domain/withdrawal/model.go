package withdrawal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a withdrawal request.
type Status string

// Status constants
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Decision constants accepted by Decide.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ApprovalWindow is the turnaround promised to users on request.
const ApprovalWindow = "3–4 hours"

// Domain errors
var (
	ErrEmptyUserID       = errors.New("user_id is required")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrInvalidStatus     = errors.New("status must be one of: pending, approved, rejected")
	ErrInvalidDecision   = errors.New("decision must be approve or reject")
	ErrAlreadyDecided    = errors.New("withdrawal has already been decided")
	ErrNotFound          = errors.New("withdrawal not found")
)

// Withdrawal is a user's request to be paid out. Requesting does not hold
// or deduct any balance.
type Withdrawal struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Status      Status
	RequestedAt time.Time
	DecidedAt   time.Time
}

// New creates a pending withdrawal.
// PRE: id and userID are non-empty
// POST: Returns a withdrawal in pending status
func New(id, userID string, amount decimal.Decimal, now time.Time) Withdrawal {
	return Withdrawal{
		ID:          id,
		UserID:      userID,
		Amount:      amount,
		Status:      StatusPending,
		RequestedAt: now,
	}
}

// Validate checks if the Withdrawal has valid data.
func (w *Withdrawal) Validate() error {
	if w.UserID == "" {
		return ErrEmptyUserID
	}
	if !w.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if !w.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Decide moves a pending withdrawal to approved or rejected.
// PRE: Withdrawal is pending
// POST: Status is terminal and DecidedAt is set
// INVARIANT: approved and rejected are never left
func (w *Withdrawal) Decide(decision string, now time.Time) error {
	if w.Status != StatusPending {
		return ErrAlreadyDecided
	}
	switch decision {
	case DecisionApprove:
		w.Status = StatusApproved
	case DecisionReject:
		w.Status = StatusRejected
	default:
		return ErrInvalidDecision
	}
	w.DecidedAt = now
	return nil
}

// IsPending returns true while awaiting a decision.
func (w *Withdrawal) IsPending() bool {
	return w.Status == StatusPending
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
