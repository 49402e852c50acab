package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-dev/dompet/internal/model"
)

func openingCount(e *Engine, accountID string) int {
	return len(linkedTo(e, func(tx model.Transaction) bool {
		return tx.OpeningBalance && tx.SourceAccountID == accountID
	}))
}

func TestAddAccount_ZeroInitialBalance(t *testing.T) {
	e := newTestEngine()
	acct := addCash(e, "0")

	assertAmount(t, "0", acct.Balance)
	assert.Empty(t, e.Transactions(), "no opening transaction for zero")
}

func TestAddAccount_NegativeInitialBalance(t *testing.T) {
	e := newTestEngine()
	acct := e.AddAccount(AccountInput{Name: "Kartu Kredit", Type: model.AccountTypeBank, InitialBalance: dec("-250000")})

	assertAmount(t, "-250000", acct.Balance)
	require.Equal(t, 1, openingCount(e, acct.ID))
	requireConsistent(t, e)
}

func TestUpdateAccount_OpeningBalanceTransitions(t *testing.T) {
	tests := []struct {
		name        string
		initial     string
		newInitial  string
		wantOpening int
		wantBalance string
	}{
		{"insert when none existed", "0", "5000", 1, "3000"},
		{"remove when set to zero", "10000", "0", 0, "-2000"},
		{"update in place", "10000", "15000", 1, "13000"},
		{"unchanged", "10000", "10000", 1, "8000"},
		{"zero stays zero", "0", "0", 0, "-2000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			acct := addCash(e, tt.initial)
			e.PostTransaction(expense(acct.ID, "2000", "Makanan"))

			ok := e.UpdateAccount(acct.ID, AccountInput{Name: "Dompet", Type: model.AccountTypeCash, InitialBalance: dec(tt.newInitial)})
			require.True(t, ok)

			assert.Equal(t, tt.wantOpening, openingCount(e, acct.ID))
			assertAmount(t, tt.wantBalance, balanceOf(t, e, acct.ID))
			assertAmount(t, tt.newInitial, e.OpeningBalance(acct.ID))
			got, _ := e.Account(acct.ID)
			assert.Equal(t, "Dompet", got.Name)
			requireConsistent(t, e)
		})
	}
}

func TestUpdateAccount_RepeatedEditsKeepOneOpening(t *testing.T) {
	e := newTestEngine()
	acct := addCash(e, "100")
	for _, v := range []string{"0", "300", "300", "-50", "0", "0", "75"} {
		e.UpdateAccount(acct.ID, AccountInput{Name: "Cash", Type: model.AccountTypeCash, InitialBalance: dec(v)})
		assert.LessOrEqual(t, openingCount(e, acct.ID), 1)
		requireConsistent(t, e)
	}
	assertAmount(t, "75", balanceOf(t, e, acct.ID))
}

func TestUpdateAccount_IgnoresUserCategoryMatchingOpeningLabel(t *testing.T) {
	e := newTestEngine()
	acct := addCash(e, "0")
	// A user-entered transaction that happens to reuse the label is not an
	// opening balance.
	e.PostTransaction(model.Transaction{
		Date: testToday, Type: model.TransactionIncome, SourceAccountID: acct.ID,
		Amount: dec("500"), Category: model.CategoryOpeningBalance,
	})

	e.UpdateAccount(acct.ID, AccountInput{Name: "Cash", Type: model.AccountTypeCash, InitialBalance: dec("1000")})

	assert.Equal(t, 1, openingCount(e, acct.ID))
	assert.Len(t, e.Transactions(), 2)
	assertAmount(t, "1500", balanceOf(t, e, acct.ID))
	requireConsistent(t, e)
}

func TestUpdateAccount_Missing(t *testing.T) {
	e := newTestEngine()
	assert.False(t, e.UpdateAccount("nope", AccountInput{Name: "x", InitialBalance: dec("10")}))
	assert.Empty(t, e.Transactions())
}

func TestIsAccountInUse(t *testing.T) {
	e := newTestEngine()
	cash := addCash(e, "1000")
	assert.False(t, e.IsAccountInUse(cash.ID), "opening balance alone does not count")

	bank := e.AddAccount(AccountInput{Name: "Bank", Type: model.AccountTypeBank})
	e.Transfer(TransferInput{Date: testToday, FromAccountID: cash.ID, ToAccountID: bank.ID, Amount: dec("10")})
	assert.True(t, e.IsAccountInUse(cash.ID))
	assert.True(t, e.IsAccountInUse(bank.ID), "destination counts too")
}

func TestIsAccountInUse_InvestmentAndAsset(t *testing.T) {
	e := newTestEngine()
	a := addCash(e, "0")
	b := e.AddAccount(AccountInput{Name: "Bank", Type: model.AccountTypeBank})
	p := e.AddPlatform("Ajaib")

	e.investments = append(e.investments, model.Investment{ID: "inv", AccountID: a.ID, PlatformID: p.ID})
	e.assets = append(e.assets, model.Asset{ID: "asset", AccountID: b.ID})

	assert.True(t, e.IsAccountInUse(a.ID))
	assert.True(t, e.IsAccountInUse(b.ID))
}

func TestDeleteAccount(t *testing.T) {
	e := newTestEngine()
	cash := addCash(e, "1000")
	other := e.AddAccount(AccountInput{Name: "Bank", Type: model.AccountTypeBank, InitialBalance: dec("50")})

	require.NoError(t, e.DeleteAccount(cash.ID))

	_, ok := e.Account(cash.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, openingCount(e, cash.ID))
	assert.Equal(t, 1, openingCount(e, other.ID), "other opening balances are untouched")
	requireConsistent(t, e)
}

func TestDeleteAccount_InUseIsBlocked(t *testing.T) {
	e := newTestEngine()
	cash := addCash(e, "1000")
	e.PostTransaction(expense(cash.ID, "100", "Makanan"))
	before := e.Snapshot()

	err := e.DeleteAccount(cash.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccountInUse))
	assert.Contains(t, err.Error(), "Cash")
	assert.Equal(t, before, e.Snapshot(), "state unchanged")
}

func TestDeleteAccount_Missing(t *testing.T) {
	e := newTestEngine()
	assert.NoError(t, e.DeleteAccount("ghost"))
}
