// Package report derives read-only views from a snapshot: the dashboard
// summary and CSV exports.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/model"
)

// CategoryTotal is the expense sum of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary holds the dashboard figures.
type Summary struct {
	Start                  string          `json:"start,omitempty"`
	End                    string          `json:"end,omitempty"`
	TotalAccountBalance    decimal.Decimal `json:"totalAccountBalance"`
	TotalInvestmentValue   decimal.Decimal `json:"totalInvestmentValue"`
	TotalUnpaidReceivables decimal.Decimal `json:"totalUnpaidReceivables"`
	TotalWealth            decimal.Decimal `json:"totalWealth"`
	TotalAssetValue        decimal.Decimal `json:"totalAssetValue"`
	InvestmentProfitLoss   decimal.Decimal `json:"investmentProfitLoss"`
	TotalExpense           decimal.Decimal `json:"totalExpense"`
	ExpenseToday           decimal.Decimal `json:"expenseToday"`
	ExpenseThisMonth       decimal.Decimal `json:"expenseThisMonth"`
	ExpenseByCategory      []CategoryTotal `json:"expenseByCategory"`
}

// Summarize computes the dashboard for snap. Range figures use rng; the
// today and this-month figures use now.
func Summarize(snap model.Snapshot, rng DateRange, now time.Time) Summary {
	s := Summary{
		TotalAccountBalance:    decimal.Zero,
		TotalInvestmentValue:   decimal.Zero,
		TotalUnpaidReceivables: decimal.Zero,
		TotalAssetValue:        decimal.Zero,
		InvestmentProfitLoss:   decimal.Zero,
		TotalExpense:           decimal.Zero,
		ExpenseToday:           decimal.Zero,
		ExpenseThisMonth:       decimal.Zero,
		ExpenseByCategory:      []CategoryTotal{},
	}
	if !rng.Start.IsZero() {
		s.Start = model.FormatDate(rng.Start)
	}
	if !rng.End.IsZero() {
		s.End = model.FormatDate(rng.End)
	}

	for _, a := range snap.Accounts {
		s.TotalAccountBalance = s.TotalAccountBalance.Add(a.Balance)
	}
	for _, inv := range snap.Investments {
		s.TotalInvestmentValue = s.TotalInvestmentValue.Add(inv.CurrentValue)
		s.InvestmentProfitLoss = s.InvestmentProfitLoss.Add(inv.ProfitLoss())
	}
	for _, r := range snap.Receivables {
		if r.Status == model.ReceivableUnpaid {
			s.TotalUnpaidReceivables = s.TotalUnpaidReceivables.Add(r.Amount)
		}
	}
	for _, a := range snap.Assets {
		s.TotalAssetValue = s.TotalAssetValue.Add(a.CurrentValue)
	}
	s.TotalWealth = s.TotalAccountBalance.Add(s.TotalInvestmentValue).Add(s.TotalUnpaidReceivables)

	today := model.FormatDate(now)
	monthStart := model.FormatDate(MonthToDate(now).Start)
	byCategory := map[string]decimal.Decimal{}
	for _, tx := range snap.Transactions {
		if tx.Type != model.TransactionExpense {
			continue
		}
		if tx.Date == today {
			s.ExpenseToday = s.ExpenseToday.Add(tx.Amount)
		}
		if tx.Date >= monthStart && tx.Date <= today {
			s.ExpenseThisMonth = s.ExpenseThisMonth.Add(tx.Amount)
		}
		if rng.Contains(tx.Date) {
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
			byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		}
	}

	for category, amount := range byCategory {
		s.ExpenseByCategory = append(s.ExpenseByCategory, CategoryTotal{Category: category, Amount: amount})
	}
	slices.SortFunc(s.ExpenseByCategory, func(a, b CategoryTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return s
}
