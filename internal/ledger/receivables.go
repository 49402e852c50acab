package ledger

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/model"
)

// ReceivableInput describes money lent out.
type ReceivableInput struct {
	DebtorName string
	Amount     decimal.Decimal
	DueDate    string
	AccountID  string
}

// AddReceivable stores an unpaid receivable and posts the lending outflow.
// Nothing is recorded when the funding account is unknown.
func (e *Engine) AddReceivable(in ReceivableInput) (model.Receivable, bool) {
	if !e.HasAccount(in.AccountID) {
		return model.Receivable{}, false
	}
	r := model.Receivable{
		ID:         e.newID(),
		DebtorName: in.DebtorName,
		Amount:     in.Amount,
		DueDate:    in.DueDate,
		Status:     model.ReceivableUnpaid,
		AccountID:  in.AccountID,
	}
	e.receivables = append(e.receivables, r)
	e.PostTransaction(model.Transaction{
		Date:               e.today(),
		Type:               model.TransactionExpense,
		SourceAccountID:    r.AccountID,
		Amount:             r.Amount,
		Category:           model.CategoryReceivable,
		Description:        "Piutang kepada " + r.DebtorName,
		Origin:             model.OriginReceivable,
		LinkedReceivableID: r.ID,
	})
	return r, true
}

// UpdateReceivable changes debtor name and due date. Amount and funding
// account must not drift from the posted transaction, so they are fixed.
func (e *Engine) UpdateReceivable(receivableID, debtorName, dueDate string) bool {
	i := e.receivableIndex(receivableID)
	if i < 0 {
		return false
	}
	e.receivables[i].DebtorName = debtorName
	e.receivables[i].DueDate = dueDate
	return true
}

// MarkReceivablePaid marks the receivable paid and posts the repayment into
// the receiving account. A receivable is paid at most once. Unknown
// receivables and receiving accounts leave everything unchanged.
func (e *Engine) MarkReceivablePaid(receivableID, receivingAccountID string) error {
	i := e.receivableIndex(receivableID)
	if i < 0 || !e.HasAccount(receivingAccountID) {
		return nil
	}
	r := &e.receivables[i]
	if r.Status == model.ReceivablePaid {
		return fmt.Errorf("paying receivable from %q: %w", r.DebtorName, ErrReceivablePaid)
	}
	r.Status = model.ReceivablePaid
	e.PostTransaction(model.Transaction{
		Date:               e.today(),
		Type:               model.TransactionIncome,
		SourceAccountID:    receivingAccountID,
		Amount:             r.Amount,
		Category:           model.CategoryReceivable,
		Description:        "Pembayaran piutang dari " + r.DebtorName,
		Origin:             model.OriginReceivable,
		LinkedReceivableID: r.ID,
	})
	return nil
}

// DeleteReceivable removes the receivable and every transaction linked to
// it, then recomputes all balances from the remaining ledger.
func (e *Engine) DeleteReceivable(receivableID string) bool {
	i := e.receivableIndex(receivableID)
	if i < 0 {
		return false
	}
	e.receivables = slices.Delete(e.receivables, i, i+1)
	e.removeTransactions(func(tx model.Transaction) bool {
		return tx.LinkedReceivableID == receivableID
	})
	e.Recompute()
	return true
}
