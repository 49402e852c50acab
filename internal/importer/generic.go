package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/model"
)

// GenericParser reads "date,description,amount[,category]" with a header
// row. Dates are YYYY-MM-DD; amounts are signed.
type GenericParser struct{}

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic CSV and returns rows.
func (p *GenericParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generic CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseGenericRow(rec []string) (Row, error) {
	if len(rec) < 3 || len(rec) > 4 {
		return Row{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(rec))
	}
	date, err := model.ParseDate(rec[0])
	if err != nil {
		return Row{}, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", rec[2], err)
	}
	row := Row{
		Date:        model.FormatDate(date),
		Description: strings.TrimSpace(rec[1]),
		Amount:      amount,
	}
	if len(rec) == 4 {
		row.Category = strings.TrimSpace(rec[3])
	}
	return row, nil
}
