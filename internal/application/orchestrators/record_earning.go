package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ofx/internal/domain/earning"
	"ofx/internal/domain/money"
	"ofx/internal/domain/user"
)

// UserStoreForEarning resolves the credited user.
type UserStoreForEarning interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// EarningStoreForRecord defines the store interface needed by RecordEarning.
type EarningStoreForRecord interface {
	Create(ctx context.Context, e earning.Earning) error
}

// RecordEarningInput carries raw admin form values.
type RecordEarningInput struct {
	UserEmail string
	Amount    string
	Type      string
}

// RecordEarningDeps holds dependencies for RecordEarning.
type RecordEarningDeps struct {
	UserStore    UserStoreForEarning
	EarningStore EarningStoreForRecord
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRecordEarning credits an earning to the user with the given email.
// PRE: Caller is an admin
// POST: One earning row exists for the user
func ExecuteRecordEarning(ctx context.Context, input RecordEarningInput, deps RecordEarningDeps) (earning.Earning, error) {
	typ, err := earning.ParseType(strings.TrimSpace(input.Type))
	if err != nil {
		return earning.Earning{}, err
	}
	amount, err := money.ParseAmount(input.Amount)
	if err != nil {
		return earning.Earning{}, err
	}
	addr := user.NormalizeEmail(input.UserEmail)
	if addr == "" {
		return earning.Earning{}, user.ErrEmptyEmail
	}
	u, err := deps.UserStore.GetByEmail(ctx, addr)
	if err != nil {
		return earning.Earning{}, err
	}

	e := earning.Earning{
		ID:        deps.GenerateID(),
		UserID:    u.ID,
		Amount:    amount,
		Type:      typ,
		CreatedAt: deps.Now(),
	}
	if err := e.Validate(); err != nil {
		return earning.Earning{}, err
	}
	if err := deps.EarningStore.Create(ctx, e); err != nil {
		return earning.Earning{}, fmt.Errorf("create earning: %w", err)
	}

	slog.Info("earning_recorded", "earning_id", e.ID, "user_id", e.UserID, "type", string(e.Type), "amount", e.Amount.String())
	return e, nil
}
