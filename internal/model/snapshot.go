package model

import "github.com/shopspring/decimal"

func init() {
	// Monetary values travel as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Snapshot is the full persisted state of one user.
type Snapshot struct {
	Accounts     []Account     `json:"accounts"`
	Platforms    []Platform    `json:"platforms"`
	Investments  []Investment  `json:"investments"`
	Transactions []Transaction `json:"transactions"`
	Receivables  []Receivable  `json:"receivables"`
	Assets       []Asset       `json:"assets"`
}

// EmptySnapshot returns a snapshot whose collections are empty, not nil.
func EmptySnapshot() Snapshot {
	return Snapshot{}.Normalize()
}

// Normalize replaces nil collections with empty ones so they encode as [].
func (s Snapshot) Normalize() Snapshot {
	if s.Accounts == nil {
		s.Accounts = []Account{}
	}
	if s.Platforms == nil {
		s.Platforms = []Platform{}
	}
	if s.Investments == nil {
		s.Investments = []Investment{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Receivables == nil {
		s.Receivables = []Receivable{}
	}
	if s.Assets == nil {
		s.Assets = []Asset{}
	}
	return s
}
