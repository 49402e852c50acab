package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/report"
)

func newSummaryCommand(a *app) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show wealth and spending",
		Long:  "Show total wealth and spending. The range defaults to the current month.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			rng := report.MonthToDate(now)
			if start != "" || end != "" {
				var err error
				if rng, err = report.ParseRange(start, end); err != nil {
					return err
				}
			}
			return a.view(cmd, func(e *ledger.Engine) error {
				s := report.Summarize(e.Snapshot(), rng, now)
				w := cmd.OutOrStdout()
				tw := newTable(w)
				row(tw, "Total wealth", a.money(s.TotalWealth))
				row(tw, "  Accounts", a.money(s.TotalAccountBalance))
				row(tw, "  Investments", a.money(s.TotalInvestmentValue))
				row(tw, "  Unpaid receivables", a.money(s.TotalUnpaidReceivables))
				row(tw, "Assets", a.money(s.TotalAssetValue))
				row(tw, "Investment P/L", a.money(s.InvestmentProfitLoss))
				row(tw, "Expense today", a.money(s.ExpenseToday))
				row(tw, "Expense this month", a.money(s.ExpenseThisMonth))
				row(tw, "Expense "+rng.String(), a.money(s.TotalExpense))
				if err := tw.Flush(); err != nil {
					return err
				}
				if len(s.ExpenseByCategory) == 0 {
					return nil
				}
				fmt.Fprintln(w)
				tw = newTable(w, "CATEGORY", "EXPENSE")
				for _, c := range s.ExpenseByCategory {
					row(tw, c.Category, a.money(c.Amount))
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day, inclusive (YYYY-MM-DD)")

	return cmd
}
