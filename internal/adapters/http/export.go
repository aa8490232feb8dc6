package web

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ofx/internal/application/projections"
)

// Sheet names in the admin export workbook.
const (
	sheetUsers       = "Users"
	sheetWithdrawals = "Withdrawals"
	sheetIncome      = "Income"
)

// defaultSheet is the sheet excelize.NewFile creates.
const defaultSheet = "Sheet1"

const exportTimeLayout = "2006-01-02 15:04:05"

// buildWorkbook lays out the admin panel as an xlsx file.
// POST: Workbook has Users, Withdrawals and Income sheets with a header row each
func buildWorkbook(panel projections.AdminPanelResult) (*excelize.File, error) {
	f := excelize.NewFile()

	users := [][]any{{"ID", "Name", "Email", "Referred by", "Admin", "Joined"}}
	for _, u := range panel.Users {
		users = append(users, []any{u.ID, u.Name, u.Email, u.ReferrerName, u.IsAdmin, u.CreatedAt.UTC().Format(exportTimeLayout)})
	}

	withdrawals := [][]any{{"ID", "Name", "Email", "Amount", "Status", "Requested", "Decided"}}
	for _, w := range panel.Withdrawals {
		amount, _ := w.Amount.Float64()
		decided := ""
		if !w.DecidedAt.IsZero() {
			decided = w.DecidedAt.UTC().Format(exportTimeLayout)
		}
		withdrawals = append(withdrawals, []any{w.ID, w.UserName, w.UserEmail, amount, string(w.Status), w.RequestedAt.UTC().Format(exportTimeLayout), decided})
	}

	income := [][]any{{"Type", "Amount"}}
	for _, line := range panel.Income {
		amount, _ := line.Amount.Float64()
		income = append(income, []any{string(line.Type), amount})
	}
	total, _ := panel.TotalEarnings.Float64()
	payouts, _ := panel.TotalPayouts.Float64()
	income = append(income, []any{"Total earnings", total}, []any{"Total payouts", payouts})

	sheets := []struct {
		name string
		rows [][]any
	}{
		{sheetUsers, users},
		{sheetWithdrawals, withdrawals},
		{sheetIncome, income},
	}
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename default sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("new sheet %s: %w", sh.name, err)
		}
		if err := writeRows(f, sh.name, sh.rows); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("%s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
