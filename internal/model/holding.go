package model

import "github.com/shopspring/decimal"

// Investment is capital placed on a platform, funded from an account.
type Investment struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	Name         string          `json:"name"`
	PlatformID   string          `json:"platformId"`
	AccountID    string          `json:"accountId"` // funding account
	InitialValue decimal.Decimal `json:"initialValue"`
	CurrentValue decimal.Decimal `json:"currentValue"`
}

// ProfitLoss is the unrealized gain or loss.
func (i Investment) ProfitLoss() decimal.Decimal {
	return i.CurrentValue.Sub(i.InitialValue)
}

// AssetType classifies physical assets.
type AssetType string

const (
	AssetTypeProperty    AssetType = "property"
	AssetTypeVehicle     AssetType = "vehicle"
	AssetTypeElectronics AssetType = "electronics"
	AssetTypeOther       AssetType = "other"
)

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeProperty, AssetTypeVehicle, AssetTypeElectronics, AssetTypeOther:
		return true
	}
	return false
}

// Asset is a physical possession. AccountID is empty for assets contributed
// in kind rather than bought with tracked funds.
type Asset struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Type          AssetType       `json:"type"`
	PurchaseDate  string          `json:"purchaseDate"`
	AccountID     string          `json:"accountId,omitempty"`
	PurchaseValue decimal.Decimal `json:"purchaseValue"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
}

// ProfitLoss is the unrealized gain or loss.
func (a Asset) ProfitLoss() decimal.Decimal {
	return a.CurrentValue.Sub(a.PurchaseValue)
}

// ReceivableStatus tracks whether lent money came back.
type ReceivableStatus string

const (
	ReceivableUnpaid ReceivableStatus = "unpaid"
	ReceivablePaid   ReceivableStatus = "paid"
)

// Receivable is money lent to a debtor from a funding account.
type Receivable struct {
	ID         string           `json:"id"`
	DebtorName string           `json:"debtorName"`
	Amount     decimal.Decimal  `json:"amount"`
	DueDate    string           `json:"dueDate"`
	Status     ReceivableStatus `json:"status"`
	AccountID  string           `json:"accountId"`
}
