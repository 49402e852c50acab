package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-dev/dompet/internal/id"
	"github.com/dompet-dev/dompet/internal/model"
)

var testNow = time.Date(2025, 6, 15, 9, 30, 0, 0, time.Local)

const testToday = "2025-06-15"

func newTestEngine() *Engine {
	return New(
		WithClock(func() time.Time { return testNow }),
		WithIDs(id.Sequence("id")),
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func balanceOf(t *testing.T, e *Engine, accountID string) decimal.Decimal {
	t.Helper()
	acct, ok := e.Account(accountID)
	require.True(t, ok, "account %s should exist", accountID)
	return acct.Balance
}

// requireConsistent asserts every cached balance equals a replay from zero
// over all transactions, opening balances included.
func requireConsistent(t *testing.T, e *Engine) {
	t.Helper()
	for _, acct := range e.Accounts() {
		sum := decimal.Zero
		for _, tx := range e.Transactions() {
			sum = sum.Add(tx.EffectOn(acct.ID))
		}
		require.True(t, sum.Equal(acct.Balance), "account %s: cached %s, ledger %s", acct.Name, acct.Balance, sum)
	}
	require.Empty(t, e.Verify())
}

func linkedTo(e *Engine, pred func(model.Transaction) bool) []model.Transaction {
	var out []model.Transaction
	for _, tx := range e.Transactions() {
		if pred(tx) {
			out = append(out, tx)
		}
	}
	return out
}

func addCash(e *Engine, initial string) model.Account {
	return e.AddAccount(AccountInput{Name: "Cash", Type: model.AccountTypeCash, InitialBalance: dec(initial)})
}

func expense(accountID, amount, category string) model.Transaction {
	return model.Transaction{
		Date:            testToday,
		Type:            model.TransactionExpense,
		SourceAccountID: accountID,
		Amount:          dec(amount),
		Category:        category,
	}
}
