package withdrawal_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ofx/internal/domain/withdrawal"
)

func TestNew_IsPending(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	w := withdrawal.New("w1", "u1", decimal.NewFromInt(500), now)
	if w.Status != withdrawal.StatusPending {
		t.Errorf("Status = %q, want pending", w.Status)
	}
	if !w.RequestedAt.Equal(now) {
		t.Errorf("RequestedAt = %v, want %v", w.RequestedAt, now)
	}
	if err := w.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// TestWithdrawal_Validate tests validation of Withdrawal.
func TestWithdrawal_Validate(t *testing.T) {
	tests := []struct {
		name    string
		w       withdrawal.Withdrawal
		wantErr error
	}{
		{"missing user", withdrawal.Withdrawal{Amount: decimal.NewFromInt(1), Status: withdrawal.StatusPending}, withdrawal.ErrEmptyUserID},
		{"zero amount", withdrawal.Withdrawal{UserID: "u1", Status: withdrawal.StatusPending}, withdrawal.ErrNonPositiveAmount},
		{"unknown status", withdrawal.Withdrawal{UserID: "u1", Amount: decimal.NewFromInt(1), Status: "paid"}, withdrawal.ErrInvalidStatus},
		{"approved", withdrawal.Withdrawal{UserID: "u1", Amount: decimal.NewFromInt(1), Status: withdrawal.StatusApproved}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.w.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestWithdrawal_Decide tests the pending -> approved/rejected transitions.
func TestWithdrawal_Decide(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name       string
		from       withdrawal.Status
		decision   string
		wantStatus withdrawal.Status
		wantErr    error
	}{
		{"approve pending", withdrawal.StatusPending, withdrawal.DecisionApprove, withdrawal.StatusApproved, nil},
		{"reject pending", withdrawal.StatusPending, withdrawal.DecisionReject, withdrawal.StatusRejected, nil},
		{"unknown decision", withdrawal.StatusPending, "maybe", withdrawal.StatusPending, withdrawal.ErrInvalidDecision},
		{"approve approved", withdrawal.StatusApproved, withdrawal.DecisionApprove, withdrawal.StatusApproved, withdrawal.ErrAlreadyDecided},
		{"approve rejected", withdrawal.StatusRejected, withdrawal.DecisionApprove, withdrawal.StatusRejected, withdrawal.ErrAlreadyDecided},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := withdrawal.Withdrawal{UserID: "u1", Amount: decimal.NewFromInt(1), Status: tt.from}
			err := w.Decide(tt.decision, now)
			if err != tt.wantErr {
				t.Fatalf("Decide() error = %v, want %v", err, tt.wantErr)
			}
			if w.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", w.Status, tt.wantStatus)
			}
			if err == nil && w.DecidedAt.IsZero() {
				t.Error("DecidedAt should be set after a decision")
			}
		})
	}
}
