package projections

import (
	"context"
)

// GetAccountDeps holds dependencies for the account projection.
type GetAccountDeps struct {
	UserStore UserGetter
}

// AccountResult carries the output of the account projection.
type AccountResult struct {
	Name  string
	Email string
}

// QueryGetAccount returns the signed-in user's profile.
func QueryGetAccount(ctx context.Context, userID string, deps GetAccountDeps) (AccountResult, error) {
	u, err := deps.UserStore.GetByID(ctx, userID)
	if err != nil {
		return AccountResult{}, err
	}
	return AccountResult{Name: u.Name, Email: u.Email}, nil
}
