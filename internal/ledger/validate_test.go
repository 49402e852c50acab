package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-dev/dompet/internal/model"
)

func TestValidateTransaction(t *testing.T) {
	e := newTestEngine()
	cash := addCash(e, "0")
	bank := e.AddAccount(AccountInput{Name: "BCA", Type: model.AccountTypeBank})

	valid := expense(cash.ID, "10", "Makanan")

	tests := []struct {
		name   string
		mutate func(*model.Transaction)
		fields []string
	}{
		{"valid expense", func(*model.Transaction) {}, nil},
		{"negative correction allowed", func(tx *model.Transaction) { tx.Amount = dec("-5") }, nil},
		{"bad date", func(tx *model.Transaction) { tx.Date = "15/06/2025" }, []string{"date"}},
		{"unknown type", func(tx *model.Transaction) { tx.Type = "refund" }, []string{"type"}},
		{"unknown account", func(tx *model.Transaction) { tx.SourceAccountID = "ghost" }, []string{"accountId"}},
		{"missing category", func(tx *model.Transaction) { tx.Category = " " }, []string{"category"}},
		{"destination on expense", func(tx *model.Transaction) { tx.DestinationAccountID = bank.ID }, []string{"toAccountId"}},
		{"opening flag", func(tx *model.Transaction) { tx.OpeningBalance = true }, []string{"category"}},
		{"valid transfer", func(tx *model.Transaction) {
			tx.Type = model.TransactionTransfer
			tx.DestinationAccountID = bank.ID
			tx.Category = ""
		}, nil},
		{"transfer to self", func(tx *model.Transaction) {
			tx.Type = model.TransactionTransfer
			tx.DestinationAccountID = cash.ID
		}, []string{"toAccountId"}},
		{"transfer without destination", func(tx *model.Transaction) {
			tx.Type = model.TransactionTransfer
		}, []string{"toAccountId"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := ValidateTransaction(tx, e)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs), "got %v", err)
			var fields []string
			for _, ve := range verrs {
				fields = append(fields, ve.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestValidateAccount(t *testing.T) {
	assert.NoError(t, ValidateAccount(AccountInput{Name: "Cash", Type: model.AccountTypeCash, InitialBalance: dec("-10")}))

	err := ValidateAccount(AccountInput{Type: "crypto"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "name: is required")
	assert.Contains(t, err.Error(), "type: unknown account type")
}

func TestValidateHoldings(t *testing.T) {
	e := newTestEngine()
	cash := addCash(e, "0")
	p := e.AddPlatform("Bibit")

	assert.NoError(t, ValidateInvestment(InvestmentInput{
		Date: testToday, Name: "RDPU", PlatformID: p.ID, AccountID: cash.ID,
		InitialValue: dec("10"), CurrentValue: dec("10"),
	}, e))
	assert.Error(t, ValidateInvestment(InvestmentInput{
		Date: testToday, Name: "RDPU", PlatformID: "ghost", AccountID: cash.ID,
	}, e))
	assert.Error(t, ValidateInvestment(InvestmentInput{
		Date: testToday, Name: "RDPU", PlatformID: p.ID, AccountID: cash.ID, InitialValue: dec("-1"),
	}, e))

	inKind := AssetInput{Name: "Rumah", Type: model.AssetTypeProperty, PurchaseDate: "2020-01-01"}
	assert.NoError(t, ValidateAsset(inKind, false, e))
	assert.Error(t, ValidateAsset(inKind, true, e), "funded purchase needs an account")

	assert.NoError(t, ValidateReceivable(ReceivableInput{DebtorName: "Budi", Amount: dec("1"), DueDate: testToday, AccountID: cash.ID}, e))
	assert.Error(t, ValidateReceivable(ReceivableInput{DebtorName: "Budi", Amount: dec("0"), DueDate: testToday, AccountID: cash.ID}, e))
}
