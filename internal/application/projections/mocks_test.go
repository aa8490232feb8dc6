package projections

import (
	"context"

	"github.com/shopspring/decimal"

	"ofx/internal/domain/earning"
	"ofx/internal/domain/user"
	"ofx/internal/domain/video"
	"ofx/internal/domain/withdrawal"
)

// mockUsers serves a fixed user list.
type mockUsers struct {
	users []user.User
}

// GetByID returns the seeded user or user.ErrNotFound.
func (m *mockUsers) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

// List returns all seeded users.
func (m *mockUsers) List(_ context.Context) ([]user.User, error) {
	return m.users, nil
}

// Count returns the number of seeded users.
func (m *mockUsers) Count(_ context.Context) (int, error) {
	return len(m.users), nil
}

// CountReferred counts users with a referrer.
func (m *mockUsers) CountReferred(_ context.Context) (int, error) {
	n := 0
	for _, u := range m.users {
		if u.WasReferred() {
			n++
		}
	}
	return n, nil
}

// CountReferredBy counts users credited to referrerID.
func (m *mockUsers) CountReferredBy(_ context.Context, referrerID string) (int, error) {
	n := 0
	for _, u := range m.users {
		if u.ReferralID == referrerID {
			n++
		}
	}
	return n, nil
}

// mockVideos serves a fixed video list.
type mockVideos struct {
	videos []video.Video
}

// List returns the seeded videos.
func (m *mockVideos) List(_ context.Context) ([]video.Video, error) {
	return m.videos, nil
}

// mockEarnings aggregates a fixed earning list.
type mockEarnings struct {
	rows []earning.Earning
}

// ListByUserID filters rows by user.
func (m *mockEarnings) ListByUserID(_ context.Context, userID string) ([]earning.Earning, error) {
	var out []earning.Earning
	for _, e := range m.rows {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// SumByUserID totals a user's rows.
func (m *mockEarnings) SumByUserID(ctx context.Context, userID string) (decimal.Decimal, error) {
	rows, _ := m.ListByUserID(ctx, userID)
	return earning.Sum(rows), nil
}

// Sum totals all rows.
func (m *mockEarnings) Sum(_ context.Context) (decimal.Decimal, error) {
	return earning.Sum(m.rows), nil
}

// SumByType groups totals by type.
func (m *mockEarnings) SumByType(_ context.Context) (map[earning.Type]decimal.Decimal, error) {
	out := make(map[earning.Type]decimal.Decimal)
	for _, e := range m.rows {
		out[e.Type] = out[e.Type].Add(e.Amount)
	}
	return out, nil
}

// mockWithdrawals serves a fixed withdrawal list.
type mockWithdrawals struct {
	rows []withdrawal.Withdrawal
}

// List returns all rows.
func (m *mockWithdrawals) List(_ context.Context) ([]withdrawal.Withdrawal, error) {
	return m.rows, nil
}

// ListByStatus filters rows by status.
func (m *mockWithdrawals) ListByStatus(_ context.Context, status withdrawal.Status) ([]withdrawal.Withdrawal, error) {
	var out []withdrawal.Withdrawal
	for _, w := range m.rows {
		if w.Status == status {
			out = append(out, w)
		}
	}
	return out, nil
}

// ListByUserID filters rows by user.
func (m *mockWithdrawals) ListByUserID(_ context.Context, userID string) ([]withdrawal.Withdrawal, error) {
	var out []withdrawal.Withdrawal
	for _, w := range m.rows {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

// SumByStatus totals rows in status.
func (m *mockWithdrawals) SumByStatus(_ context.Context, status withdrawal.Status) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, w := range m.rows {
		if w.Status == status {
			total = total.Add(w.Amount)
		}
	}
	return total, nil
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }
