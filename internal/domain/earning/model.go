package earning

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the category of an earning.
type Type string

// Earning types. The set is closed; Validate rejects anything else.
const (
	TypeCPA              Type = "CPA"
	TypeReferralOverflow Type = "Referral Overflow"
	TypeReferralBonus    Type = "Referral Bonus"
	TypeVideoReward      Type = "Video Reward"
)

// Types lists every earning type in display order.
var Types = []Type{TypeCPA, TypeReferralOverflow, TypeReferralBonus, TypeVideoReward}

// ReportedTypes are always shown on the admin income breakdown, even at zero.
var ReportedTypes = []Type{TypeCPA, TypeReferralOverflow}

// Domain errors
var (
	ErrEmptyUserID       = errors.New("user_id is required")
	ErrInvalidType       = errors.New("type must be one of: CPA, Referral Overflow, Referral Bonus, Video Reward")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

// Earning is a credit to a user's balance.
type Earning struct {
	ID        string
	UserID    string
	Amount    decimal.Decimal
	Type      Type
	CreatedAt time.Time
}

// Validate checks if the Earning has valid data.
// PRE: Earning struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Earning) Validate() error {
	if e.UserID == "" {
		return ErrEmptyUserID
	}
	if !e.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if !e.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType converts a form value into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// Sum adds up the amounts of the given earnings. Zero for an empty slice.
func Sum(earnings []Earning) decimal.Decimal {
	total := decimal.Zero
	for _, e := range earnings {
		total = total.Add(e.Amount)
	}
	return total
}
