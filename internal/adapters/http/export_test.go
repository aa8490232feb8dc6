package web

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ofx/internal/application/projections"
	"ofx/internal/domain/earning"
	"ofx/internal/domain/withdrawal"
)

func TestBuildWorkbook(t *testing.T) {
	requested := time.Date(2026, 2, 2, 9, 30, 0, 0, time.UTC)
	panel := projections.AdminPanelResult{
		TotalEarnings: decimal.RequireFromString("1300"),
		TotalPayouts:  decimal.RequireFromString("150"),
		Income: []projections.IncomeLine{
			{Type: earning.TypeCPA, Amount: decimal.RequireFromString("1300")},
			{Type: earning.TypeReferralOverflow, Amount: decimal.Zero},
		},
		Users: []projections.AdminUser{
			{ID: "u1", Name: "Ada", Email: "ada@x.com"},
			{ID: "u2", Name: "Bob", Email: "bob@x.com", ReferrerName: "Ada"},
		},
		Withdrawals: []projections.AdminWithdrawal{
			{ID: "w1", UserName: "Ada", UserEmail: "ada@x.com", Amount: decimal.RequireFromString("150"), Status: withdrawal.StatusApproved, RequestedAt: requested, DecidedAt: requested.Add(time.Hour)},
			{ID: "w2", UserName: "Bob", UserEmail: "bob@x.com", Amount: decimal.RequireFromString("20.5"), Status: withdrawal.StatusPending, RequestedAt: requested},
		},
	}

	f, err := buildWorkbook(panel)
	if err != nil {
		t.Fatalf("buildWorkbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 3 || got[0] != sheetUsers || got[1] != sheetWithdrawals || got[2] != sheetIncome {
		t.Fatalf("sheets = %v", got)
	}

	users, err := f.GetRows(sheetUsers)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 3 || users[2][3] != "Ada" {
		t.Errorf("Users rows = %v", users)
	}

	withdrawals, err := f.GetRows(sheetWithdrawals)
	if err != nil {
		t.Fatal(err)
	}
	if len(withdrawals) != 3 {
		t.Fatalf("Withdrawals rows = %d, want 3", len(withdrawals))
	}
	if withdrawals[1][3] != "150" || withdrawals[1][6] != "2026-02-02 10:30:00" {
		t.Errorf("approved row = %v", withdrawals[1])
	}
	if withdrawals[2][3] != "20.5" || withdrawals[2][4] != "pending" {
		t.Errorf("pending row = %v", withdrawals[2])
	}

	income, err := f.GetRows(sheetIncome)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"Type", "Amount"},
		{"CPA", "1300"},
		{"Referral Overflow", "0"},
		{"Total earnings", "1300"},
		{"Total payouts", "150"},
	}
	if len(income) != len(want) {
		t.Fatalf("Income rows = %v", income)
	}
	for i := range want {
		if income[i][0] != want[i][0] || income[i][1] != want[i][1] {
			t.Errorf("Income row %d = %v, want %v", i, income[i], want[i])
		}
	}
}
