package ledger

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/model"
)

// AccountInput holds the editable fields of an account.
type AccountInput struct {
	Name           string
	Type           model.AccountType
	InitialBalance decimal.Decimal
}

// AddAccount creates an account at balance zero and, for a non-zero initial
// balance, posts its opening-balance transaction.
func (e *Engine) AddAccount(in AccountInput) model.Account {
	acct := model.Account{
		ID:      e.newID(),
		Name:    in.Name,
		Type:    in.Type,
		Balance: decimal.Zero,
	}
	e.accounts = append(e.accounts, acct)
	if !in.InitialBalance.IsZero() {
		e.PostTransaction(e.openingTransaction(acct.ID, acct.Name, in.InitialBalance))
	}
	acct, _ = e.Account(acct.ID)
	return acct
}

// UpdateAccount changes name and type and reconciles the opening balance.
// The cached balance moves by the difference between the new and old
// opening balance; other transactions are not replayed. It reports whether
// the account exists.
func (e *Engine) UpdateAccount(accountID string, in AccountInput) bool {
	ai := e.accountIndex(accountID)
	if ai < 0 {
		return false
	}

	oldInitial := decimal.Zero
	ti := e.openingIndex(accountID)
	if ti >= 0 {
		oldInitial = e.transactions[ti].Amount
	}

	switch {
	case ti >= 0 && in.InitialBalance.IsZero():
		e.transactions = slices.Delete(e.transactions, ti, ti+1)
	case ti >= 0:
		e.transactions[ti].Amount = in.InitialBalance
	case !in.InitialBalance.IsZero():
		e.insert(e.openingTransaction(accountID, in.Name, in.InitialBalance))
	}

	acct := &e.accounts[ai]
	acct.Name = in.Name
	acct.Type = in.Type
	acct.Balance = acct.Balance.Add(in.InitialBalance.Sub(oldInitial))
	return true
}

// OpeningBalance returns the amount of the account's opening-balance
// transaction, or zero if it has none.
func (e *Engine) OpeningBalance(accountID string) decimal.Decimal {
	if i := e.openingIndex(accountID); i >= 0 {
		return e.transactions[i].Amount
	}
	return decimal.Zero
}

// IsAccountInUse reports whether anything besides its opening balance
// references the account.
func (e *Engine) IsAccountInUse(accountID string) bool {
	for _, tx := range e.transactions {
		if !tx.OpeningBalance && tx.Touches(accountID) {
			return true
		}
	}
	for _, inv := range e.investments {
		if inv.AccountID == accountID {
			return true
		}
	}
	for _, a := range e.assets {
		if a.AccountID == accountID {
			return true
		}
	}
	return false
}

// DeleteAccount removes an account together with its opening-balance
// transaction. It refuses with ErrAccountInUse while the account is in use.
// Deleting an unknown account is a no-op.
func (e *Engine) DeleteAccount(accountID string) error {
	ai := e.accountIndex(accountID)
	if ai < 0 {
		return nil
	}
	if e.IsAccountInUse(accountID) {
		return fmt.Errorf("deleting account %q: %w", e.accounts[ai].Name, ErrAccountInUse)
	}
	e.accounts = slices.Delete(e.accounts, ai, ai+1)
	e.removeTransactions(func(tx model.Transaction) bool {
		return tx.OpeningBalance && tx.SourceAccountID == accountID
	})
	return nil
}

func (e *Engine) openingIndex(accountID string) int {
	return slices.IndexFunc(e.transactions, func(tx model.Transaction) bool {
		return tx.OpeningBalance && tx.SourceAccountID == accountID
	})
}

func (e *Engine) openingTransaction(accountID, name string, amount decimal.Decimal) model.Transaction {
	return model.Transaction{
		Date:            e.today(),
		Type:            model.TransactionIncome,
		SourceAccountID: accountID,
		Amount:          amount,
		Category:        model.CategoryOpeningBalance,
		Description:     "Saldo awal untuk rekening " + name,
		Origin:          model.OriginManual,
		OpeningBalance:  true,
	}
}
