package ledger

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/model"
)

// PostTransaction records a transaction and applies its effect to the cached
// balances of the accounts it references. It assigns ID and Seq, ignoring
// any values supplied in tx. Amounts are not sign-checked: opening balances
// and corrections may be zero or negative.
func (e *Engine) PostTransaction(tx model.Transaction) model.Transaction {
	tx = e.insert(tx)
	e.applyEffect(tx)
	return tx
}

// TransferInput describes a movement of money between two accounts.
type TransferInput struct {
	Date          string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
}

// Transfer posts a Transfer transaction between two accounts.
func (e *Engine) Transfer(in TransferInput) model.Transaction {
	return e.PostTransaction(model.Transaction{
		Date:                 in.Date,
		Type:                 model.TransactionTransfer,
		SourceAccountID:      in.FromAccountID,
		DestinationAccountID: in.ToAccountID,
		Amount:               in.Amount,
		Category:             model.CategoryTransfer,
		Description:          in.Description,
		Origin:               model.OriginManual,
	})
}

// insert adds tx to the ledger without touching balances.
func (e *Engine) insert(tx model.Transaction) model.Transaction {
	tx.ID = e.newID()
	e.seq++
	tx.Seq = e.seq
	if tx.Origin == "" {
		tx.Origin = model.OriginManual
	}
	e.transactions = append(e.transactions, tx)
	e.sortLedger()
	return tx
}

// applyEffect adds the transaction's effect to each referenced account once.
func (e *Engine) applyEffect(tx model.Transaction) {
	ids := []string{tx.SourceAccountID}
	if tx.DestinationAccountID != "" && tx.DestinationAccountID != tx.SourceAccountID {
		ids = append(ids, tx.DestinationAccountID)
	}
	for _, accountID := range ids {
		if i := e.accountIndex(accountID); i >= 0 {
			e.accounts[i].Balance = e.accounts[i].Balance.Add(tx.EffectOn(accountID))
		}
	}
}

// removeTransactions drops every transaction matching pred and returns how
// many were removed. Balances are not touched.
func (e *Engine) removeTransactions(pred func(model.Transaction) bool) int {
	before := len(e.transactions)
	e.transactions = slices.DeleteFunc(e.transactions, pred)
	return before - len(e.transactions)
}

// sortLedger orders by date descending; within a date the most recently
// inserted transaction comes first.
func (e *Engine) sortLedger() {
	slices.SortFunc(e.transactions, func(a, b model.Transaction) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.Seq, a.Seq)
	})
}
