// Package ledger keeps account balances consistent with a single transaction
// log across every cascading operation on accounts, investments, assets and
// receivables.
//
// Balance maintenance uses two strategies. Posting, account edits,
// investment and asset operations adjust cached balances incrementally.
// Deleting a receivable removes a variable number of linked transactions, so
// it replays the whole ledger instead (see Engine.Recompute).
package ledger

import (
	"slices"
	"time"

	"github.com/dompet-dev/dompet/internal/id"
	"github.com/dompet-dev/dompet/internal/model"
)

// Engine owns all collections of one user. It is not safe for concurrent
// use; callers serialize mutations (see package session).
type Engine struct {
	accounts     []model.Account
	platforms    []model.Platform
	investments  []model.Investment
	assets       []model.Asset
	receivables  []model.Receivable
	transactions []model.Transaction // date desc, then seq desc

	seq   int64
	newID func() string
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for engine-dated transactions.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDs sets the identifier generator.
func WithIDs(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		newID: id.New,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) today() string {
	return model.FormatDate(e.now())
}

// Restore replaces all state with the snapshot contents.
func (e *Engine) Restore(snap model.Snapshot) {
	snap = snap.Normalize()
	e.accounts = slices.Clone(snap.Accounts)
	e.platforms = slices.Clone(snap.Platforms)
	e.investments = slices.Clone(snap.Investments)
	e.assets = slices.Clone(snap.Assets)
	e.receivables = slices.Clone(snap.Receivables)
	e.transactions = slices.Clone(snap.Transactions)

	e.seq = 0
	for _, tx := range e.transactions {
		e.seq = max(e.seq, tx.Seq)
	}
	e.flagLegacyOpenings()
	// Legacy entries without a sequence keep their stored order: the last
	// stored entry is the oldest.
	for i := len(e.transactions) - 1; i >= 0; i-- {
		if e.transactions[i].Seq == 0 {
			e.seq++
			e.transactions[i].Seq = e.seq
		}
	}
	e.sortLedger()
}

// flagLegacyOpenings marks opening balances stored before the flag existed.
// Such entries carry no sequence and are recognised by category; only the
// first one found per account is taken.
func (e *Engine) flagLegacyOpenings() {
	flagged := make(map[string]bool)
	for _, tx := range e.transactions {
		if tx.OpeningBalance {
			flagged[tx.SourceAccountID] = true
		}
	}
	for i := range e.transactions {
		tx := &e.transactions[i]
		if tx.OpeningBalance || tx.Seq != 0 || flagged[tx.SourceAccountID] {
			continue
		}
		if tx.Category == model.CategoryOpeningBalance && tx.Type == model.TransactionIncome && tx.DestinationAccountID == "" {
			tx.OpeningBalance = true
			flagged[tx.SourceAccountID] = true
		}
	}
}

// Snapshot returns a copy of the full state.
func (e *Engine) Snapshot() model.Snapshot {
	return model.Snapshot{
		Accounts:     e.Accounts(),
		Platforms:    e.Platforms(),
		Investments:  e.Investments(),
		Transactions: e.Transactions(),
		Receivables:  e.Receivables(),
		Assets:       e.Assets(),
	}.Normalize()
}

// Accounts returns all accounts in creation order.
func (e *Engine) Accounts() []model.Account { return slices.Clone(e.accounts) }

// Platforms returns all platforms in creation order.
func (e *Engine) Platforms() []model.Platform { return slices.Clone(e.platforms) }

// Investments returns all investments in creation order.
func (e *Engine) Investments() []model.Investment { return slices.Clone(e.investments) }

// Assets returns all assets in creation order.
func (e *Engine) Assets() []model.Asset { return slices.Clone(e.assets) }

// Receivables returns all receivables in creation order.
func (e *Engine) Receivables() []model.Receivable { return slices.Clone(e.receivables) }

// Transactions returns the ledger, newest first.
func (e *Engine) Transactions() []model.Transaction { return slices.Clone(e.transactions) }

// Account returns an account by ID.
func (e *Engine) Account(id string) (model.Account, bool) {
	i := e.accountIndex(id)
	if i < 0 {
		return model.Account{}, false
	}
	return e.accounts[i], true
}

// Investment returns an investment by ID.
func (e *Engine) Investment(id string) (model.Investment, bool) {
	i := e.investmentIndex(id)
	if i < 0 {
		return model.Investment{}, false
	}
	return e.investments[i], true
}

// Asset returns an asset by ID.
func (e *Engine) Asset(id string) (model.Asset, bool) {
	i := e.assetIndex(id)
	if i < 0 {
		return model.Asset{}, false
	}
	return e.assets[i], true
}

// Receivable returns a receivable by ID.
func (e *Engine) Receivable(id string) (model.Receivable, bool) {
	i := e.receivableIndex(id)
	if i < 0 {
		return model.Receivable{}, false
	}
	return e.receivables[i], true
}

// HasAccount reports whether an account ID exists.
func (e *Engine) HasAccount(id string) bool { return e.accountIndex(id) >= 0 }

// HasPlatform reports whether a platform ID exists.
func (e *Engine) HasPlatform(id string) bool { return e.platformIndex(id) >= 0 }

func (e *Engine) accountIndex(id string) int {
	return slices.IndexFunc(e.accounts, func(a model.Account) bool { return a.ID == id })
}

func (e *Engine) platformIndex(id string) int {
	return slices.IndexFunc(e.platforms, func(p model.Platform) bool { return p.ID == id })
}

func (e *Engine) investmentIndex(id string) int {
	return slices.IndexFunc(e.investments, func(i model.Investment) bool { return i.ID == id })
}

func (e *Engine) assetIndex(id string) int {
	return slices.IndexFunc(e.assets, func(a model.Asset) bool { return a.ID == id })
}

func (e *Engine) receivableIndex(id string) int {
	return slices.IndexFunc(e.receivables, func(r model.Receivable) bool { return r.ID == id })
}
