package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/model"
)

// AssetInput describes a new asset.
type AssetInput struct {
	Name          string
	Type          model.AssetType
	PurchaseDate  string
	AccountID     string
	PurchaseValue decimal.Decimal
	CurrentValue  decimal.Decimal
}

// AssetUpdate holds the fields that stay editable after creation.
type AssetUpdate struct {
	Name         string
	Type         model.AssetType
	PurchaseDate string
	CurrentValue decimal.Decimal
}

// AddAsset stores an asset. A funded purchase posts an outflow from the
// funding account; an asset contributed in kind keeps no funding account and
// posts nothing. A funded purchase from an unknown account is not recorded.
func (e *Engine) AddAsset(in AssetInput, funded bool) (model.Asset, bool) {
	if funded && !e.HasAccount(in.AccountID) {
		return model.Asset{}, false
	}
	a := model.Asset{
		ID:            e.newID(),
		Name:          in.Name,
		Type:          in.Type,
		PurchaseDate:  in.PurchaseDate,
		PurchaseValue: in.PurchaseValue,
		CurrentValue:  in.CurrentValue,
	}
	if funded {
		a.AccountID = in.AccountID
	}
	e.assets = append(e.assets, a)

	if funded {
		e.PostTransaction(model.Transaction{
			Date:            a.PurchaseDate,
			Type:            model.TransactionExpense,
			SourceAccountID: a.AccountID,
			Amount:          a.PurchaseValue,
			Category:        model.CategoryAssetPurchase,
			Description:     "Beli aset: " + a.Name,
			Origin:          model.OriginAsset,
			LinkedAssetID:   a.ID,
		})
	}
	return a, true
}

// UpdateAsset changes the descriptive fields and current value. Purchase
// value and funding account are fixed.
func (e *Engine) UpdateAsset(assetID string, upd AssetUpdate) bool {
	i := e.assetIndex(assetID)
	if i < 0 {
		return false
	}
	a := &e.assets[i]
	a.Name = upd.Name
	a.Type = upd.Type
	a.PurchaseDate = upd.PurchaseDate
	a.CurrentValue = upd.CurrentValue
	return true
}

// UpdateAssetValue sets the market value. No transaction is posted.
func (e *Engine) UpdateAssetValue(assetID string, value decimal.Decimal) bool {
	i := e.assetIndex(assetID)
	if i < 0 {
		return false
	}
	e.assets[i].CurrentValue = value
	return true
}

// SellAsset posts the sale at current value into the receiving account and
// removes the asset. The purchase transaction, if any, stays as history.
func (e *Engine) SellAsset(assetID, receivingAccountID string) bool {
	i := e.assetIndex(assetID)
	if i < 0 || !e.HasAccount(receivingAccountID) {
		return false
	}
	a := e.assets[i]
	e.PostTransaction(model.Transaction{
		Date:            e.today(),
		Type:            model.TransactionIncome,
		SourceAccountID: receivingAccountID,
		Amount:          a.CurrentValue,
		Category:        model.CategoryAssetSale,
		Description:     "Jual aset: " + a.Name,
		Origin:          model.OriginAsset,
		LinkedAssetID:   a.ID,
	})
	e.assets = slices.Delete(e.assets, i, i+1)
	return true
}
