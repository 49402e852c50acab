package model

import "github.com/shopspring/decimal"

// TransactionType is the accounting direction of a transaction.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

// Origin records what caused a transaction, independent of its type.
type Origin string

const (
	OriginManual     Origin = "manual"
	OriginInvestment Origin = "investment"
	OriginReceivable Origin = "receivable"
	OriginAsset      Origin = "asset"
)

// Categories the engine assigns to the transactions it synthesizes.
const (
	CategoryOpeningBalance   = "Saldo Awal"
	CategoryInvestment       = "Investasi"
	CategoryInvestmentRefund = "Pengembalian Investasi"
	CategoryAssetPurchase    = "Pembelian Aset"
	CategoryAssetSale        = "Penjualan Aset"
	CategoryReceivable       = "Piutang"
	CategoryTransfer         = "Transfer"
)

// Transaction is one entry in the ledger. The ledger is the source of truth
// for every account balance.
type Transaction struct {
	ID                   string          `json:"id"`
	Date                 string          `json:"date"` // YYYY-MM-DD
	Type                 TransactionType `json:"type"`
	SourceAccountID      string          `json:"accountId"`
	DestinationAccountID string          `json:"toAccountId,omitempty"` // Transfer only
	Amount               decimal.Decimal `json:"amount"`
	Category             string          `json:"category"`
	Description          string          `json:"description"`
	Origin               Origin          `json:"source"`
	OpeningBalance       bool            `json:"isOpeningBalance,omitempty"`
	LinkedInvestmentID   string          `json:"linkedInvestmentId,omitempty"`
	LinkedReceivableID   string          `json:"linkedReceivableId,omitempty"`
	LinkedAssetID        string          `json:"linkedAssetId,omitempty"`

	// Seq is the insertion sequence; later postings sort first within a date.
	Seq int64 `json:"seq"`
}

// Touches reports whether the transaction references accountID as source or
// destination.
func (t Transaction) Touches(accountID string) bool {
	return t.SourceAccountID == accountID || t.DestinationAccountID == accountID
}

// EffectOn returns the signed change the transaction applies to accountID.
func (t Transaction) EffectOn(accountID string) decimal.Decimal {
	effect := decimal.Zero
	if t.SourceAccountID == accountID {
		switch t.Type {
		case TransactionIncome:
			effect = effect.Add(t.Amount)
		case TransactionExpense, TransactionTransfer:
			effect = effect.Sub(t.Amount)
		}
	}
	if t.Type == TransactionTransfer && t.DestinationAccountID == accountID {
		effect = effect.Add(t.Amount)
	}
	return effect
}
