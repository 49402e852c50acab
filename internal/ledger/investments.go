package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/model"
)

// InvestmentInput describes a new investment.
type InvestmentInput struct {
	Date         string
	Name         string
	PlatformID   string
	AccountID    string
	InitialValue decimal.Decimal
	CurrentValue decimal.Decimal
}

// InvestmentUpdate holds the fields that stay editable after creation.
type InvestmentUpdate struct {
	Date       string
	Name       string
	PlatformID string
}

// AddInvestment stores the investment and posts its capital outflow from the
// funding account. Nothing is recorded when the funding account is unknown.
func (e *Engine) AddInvestment(in InvestmentInput) (model.Investment, bool) {
	if !e.HasAccount(in.AccountID) {
		return model.Investment{}, false
	}
	inv := model.Investment{
		ID:           e.newID(),
		Date:         in.Date,
		Name:         in.Name,
		PlatformID:   in.PlatformID,
		AccountID:    in.AccountID,
		InitialValue: in.InitialValue,
		CurrentValue: in.CurrentValue,
	}
	e.investments = append(e.investments, inv)
	e.PostTransaction(model.Transaction{
		Date:               inv.Date,
		Type:               model.TransactionExpense,
		SourceAccountID:    inv.AccountID,
		Amount:             inv.InitialValue,
		Category:           model.CategoryInvestment,
		Description:        "Modal awal investasi " + inv.Name,
		Origin:             model.OriginInvestment,
		LinkedInvestmentID: inv.ID,
	})
	return inv, true
}

// UpdateInvestment changes name, date and platform. Funding account and
// initial value are fixed once the capital outflow is posted.
func (e *Engine) UpdateInvestment(investmentID string, upd InvestmentUpdate) bool {
	i := e.investmentIndex(investmentID)
	if i < 0 {
		return false
	}
	inv := &e.investments[i]
	inv.Name = upd.Name
	inv.Date = upd.Date
	inv.PlatformID = upd.PlatformID
	return true
}

// UpdateInvestmentValue sets the market value. No transaction is posted.
func (e *Engine) UpdateInvestmentValue(investmentID string, value decimal.Decimal) bool {
	i := e.investmentIndex(investmentID)
	if i < 0 {
		return false
	}
	e.investments[i].CurrentValue = value
	return true
}

// DeleteInvestment refunds the initial value to the funding account and
// removes the investment. Every transaction linked to it with investment
// origin is then dropped, the capital outflow and the refund alike, so the
// two cancel out in the cached balance and leave no trace in the ledger.
func (e *Engine) DeleteInvestment(investmentID string) bool {
	i := e.investmentIndex(investmentID)
	if i < 0 {
		return false
	}
	inv := e.investments[i]

	e.PostTransaction(model.Transaction{
		Date:               e.today(),
		Type:               model.TransactionIncome,
		SourceAccountID:    inv.AccountID,
		Amount:             inv.InitialValue,
		Category:           model.CategoryInvestmentRefund,
		Description:        "Pengembalian modal investasi " + inv.Name,
		Origin:             model.OriginInvestment,
		LinkedInvestmentID: inv.ID,
	})

	e.investments = slices.Delete(e.investments, i, i+1)
	e.removeTransactions(func(tx model.Transaction) bool {
		return tx.LinkedInvestmentID == inv.ID && tx.Origin == model.OriginInvestment
	})
	return true
}
