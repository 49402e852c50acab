package model

import "github.com/shopspring/decimal"

// AccountType classifies where money is kept.
type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeBank       AccountType = "bank"
	AccountTypeEWallet    AccountType = "e-wallet"
	AccountTypeInvestment AccountType = "investment"
)

// AccountTypes lists every known account type.
var AccountTypes = []AccountType{
	AccountTypeCash,
	AccountTypeBank,
	AccountTypeEWallet,
	AccountTypeInvestment,
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	for _, v := range AccountTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Account holds money. Balance is a cache derived from the transaction log.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// Platform is a broker or app where investments are held.
type Platform struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
