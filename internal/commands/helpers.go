package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
	"github.com/dompet-dev/dompet/internal/report"
)

func parseAmount(flag, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("--%s: invalid amount %q", flag, s)
	}
	return d, nil
}

func today() string {
	return model.FormatDate(time.Now())
}

// resolveAccount accepts an account ID or an exact, unique account name.
func resolveAccount(e *ledger.Engine, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if e.HasAccount(ref) {
		return ref, nil
	}
	var found []string
	for _, a := range e.Accounts() {
		if strings.EqualFold(a.Name, ref) {
			found = append(found, a.ID)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return "", fmt.Errorf("no account %q", ref)
	default:
		return "", fmt.Errorf("account name %q is ambiguous; use the ID", ref)
	}
}

// resolvePlatform accepts a platform ID or an exact, unique platform name.
func resolvePlatform(e *ledger.Engine, ref string) (string, error) {
	if e.HasPlatform(ref) {
		return ref, nil
	}
	var found []string
	for _, p := range e.Platforms() {
		if strings.EqualFold(p.Name, ref) {
			found = append(found, p.ID)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return "", fmt.Errorf("no platform %q", ref)
	default:
		return "", fmt.Errorf("platform name %q is ambiguous; use the ID", ref)
	}
}

func accountName(e *ledger.Engine, id string) string {
	if a, ok := e.Account(id); ok {
		return a.Name
	}
	return "N/A"
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}
	return tw
}

func row(tw *tabwriter.Writer, cells ...string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func (a *app) money(d decimal.Decimal) string {
	return report.FormatCurrency(d, a.cfg.Report.Currency)
}
