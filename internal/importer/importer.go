// Package importer turns bank statement CSV files into manual ledger
// transactions.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
)

// Row is one statement line. Amount is signed: negative means money left
// the account.
type Row struct {
	Date        string
	Description string
	Amount      decimal.Decimal
	Category    string
}

// Parser converts a statement CSV into rows.
type Parser interface {
	Parse(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file waiting in an import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&GenericParser{})
	r.Register(&BCAParser{})
	return r
}

// DefaultCategory is used for rows that carry no category.
const DefaultCategory = "Lainnya"

// Post validates every row against the engine and, only if all pass, posts
// them as manual transactions on accountID. Negative amounts become
// expenses, positive ones income. It returns the posted transactions.
func Post(e *ledger.Engine, rows []Row, accountID string) ([]model.Transaction, error) {
	txs := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		tx := toTransaction(row, accountID)
		if err := ledger.ValidateTransaction(tx, e); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}
	posted := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		posted = append(posted, e.PostTransaction(tx))
	}
	return posted, nil
}

func toTransaction(row Row, accountID string) model.Transaction {
	tx := model.Transaction{
		Date:            row.Date,
		Type:            model.TransactionIncome,
		SourceAccountID: accountID,
		Amount:          row.Amount,
		Category:        row.Category,
		Description:     row.Description,
		Origin:          model.OriginManual,
	}
	if row.Amount.IsNegative() {
		tx.Type = model.TransactionExpense
		tx.Amount = row.Amount.Neg()
	}
	if tx.Category == "" {
		tx.Category = DefaultCategory
	}
	return tx
}

// processedDir is the subdirectory imported files are moved to.
const processedDir = "processed"

// Scan returns the CSV files directly inside dir.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves dir/fileName into dir/processed/.
func MarkProcessed(dir, fileName string) error {
	dstDir := filepath.Join(dir, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	if err := os.Rename(filepath.Join(dir, fileName), filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
