package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/model"
)

// BCAParser parses BCA KlikBCA account statement ("mutasi rekening")
// exports.
type BCAParser struct{}

const (
	bcaDateFormat = "02/01/2006"
	bcaNumFields  = 6
	bcaColDate    = 0
	bcaColDesc    = 1
	bcaColAmount  = 3
	bcaColSide    = 4
)

// Format returns the parser name.
func (p *BCAParser) Format() string { return "bca" }

// Parse reads a BCA CSV and returns rows. Debit lines become negative.
func (p *BCAParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = bcaNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bca CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := parseBCARow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseBCARow(rec []string) (Row, error) {
	date, err := time.ParseInLocation(bcaDateFormat, strings.TrimSpace(rec[bcaColDate]), time.Local)
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", rec[bcaColDate], err)
	}

	// Amounts use a comma thousands separator: 1,250,000.00
	raw := strings.ReplaceAll(strings.TrimSpace(rec[bcaColAmount]), ",", "")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", rec[bcaColAmount], err)
	}

	switch side := strings.ToUpper(strings.TrimSpace(rec[bcaColSide])); side {
	case "DB":
		amount = amount.Neg()
	case "CR":
	default:
		return Row{}, fmt.Errorf("unknown debit/credit marker %q", side)
	}

	return Row{
		Date:        model.FormatDate(date),
		Description: strings.Join(strings.Fields(rec[bcaColDesc]), " "),
		Amount:      amount,
	}, nil
}
