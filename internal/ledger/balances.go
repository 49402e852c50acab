package ledger

import (
	"github.com/shopspring/decimal"
)

// Discrepancy is an account whose cached balance disagrees with the ledger.
type Discrepancy struct {
	AccountID string
	Name      string
	Cached    decimal.Decimal
	Computed  decimal.Decimal
}

// ComputeBalances replays the ledger: each account starts from its opening
// balance (zero if none) and folds every other transaction over it.
func (e *Engine) ComputeBalances() map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(e.accounts))
	for _, acct := range e.accounts {
		balances[acct.ID] = e.OpeningBalance(acct.ID)
	}
	for _, tx := range e.transactions {
		if tx.OpeningBalance {
			continue
		}
		if b, ok := balances[tx.SourceAccountID]; ok {
			balances[tx.SourceAccountID] = b.Add(tx.EffectOn(tx.SourceAccountID))
		}
		if tx.DestinationAccountID == "" || tx.DestinationAccountID == tx.SourceAccountID {
			continue
		}
		if b, ok := balances[tx.DestinationAccountID]; ok {
			balances[tx.DestinationAccountID] = b.Add(tx.EffectOn(tx.DestinationAccountID))
		}
	}
	return balances
}

// Recompute overwrites every cached balance with the replayed value.
func (e *Engine) Recompute() {
	balances := e.ComputeBalances()
	for i := range e.accounts {
		e.accounts[i].Balance = balances[e.accounts[i].ID]
	}
}

// Verify lists accounts whose cached balance differs from the replay.
func (e *Engine) Verify() []Discrepancy {
	balances := e.ComputeBalances()
	var out []Discrepancy
	for _, acct := range e.accounts {
		if computed := balances[acct.ID]; !computed.Equal(acct.Balance) {
			out = append(out, Discrepancy{
				AccountID: acct.ID,
				Name:      acct.Name,
				Cached:    acct.Balance,
				Computed:  computed,
			})
		}
	}
	return out
}
