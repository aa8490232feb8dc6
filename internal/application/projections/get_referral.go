package projections

import (
	"context"
	"fmt"

	"ofx/internal/domain/money"
	"ofx/internal/domain/user"
)

// GetReferralQuery carries input for the referral projection.
type GetReferralQuery struct {
	UserID  string
	BaseURL string
}

// GetReferralDeps holds dependencies for the referral projection.
type GetReferralDeps struct {
	ReferralCounter ReferralCounter
}

// ReferralResult carries the output of the referral projection.
type ReferralResult struct {
	Referrals        int
	ReferralEarnings int
	EarningsDisplay  string
	BonusUnlocked    bool
	BonusThreshold   string
	ReferralLink     string
}

// QueryGetReferral derives referral figures from the referral count alone.
// PRE: query.UserID is an authenticated user
// POST: ReferralEarnings == Referrals * user.ReferralReward
// INVARIANT: Independent of the user's recorded earnings
func QueryGetReferral(ctx context.Context, query GetReferralQuery, deps GetReferralDeps) (ReferralResult, error) {
	n, err := deps.ReferralCounter.CountReferredBy(ctx, query.UserID)
	if err != nil {
		return ReferralResult{}, fmt.Errorf("count referrals: %w", err)
	}
	earned := user.ReferralEarnings(n)
	return ReferralResult{
		Referrals:        n,
		ReferralEarnings: earned,
		EarningsDisplay:  money.FormatInt(earned),
		BonusUnlocked:    user.BonusUnlocked(n),
		BonusThreshold:   money.FormatInt(user.ReferralBonusThreshold),
		ReferralLink:     user.ReferralLink(query.BaseURL, query.UserID),
	}, nil
}
