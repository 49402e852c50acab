package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/ledger"
)

func newVerifyCommand(a *app) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check cached balances against the transaction ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			var found []ledger.Discrepancy
			check := func(e *ledger.Engine) error {
				found = e.Verify()
				if len(found) == 0 {
					return nil
				}
				tw := newTable(w, "ACCOUNT", "CACHED", "LEDGER")
				for _, d := range found {
					row(tw, d.Name, a.money(d.Cached), a.money(d.Computed))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				if fix {
					e.Recompute()
				}
				return nil
			}

			var err error
			if fix {
				err = a.mutate(cmd, check)
			} else {
				err = a.view(cmd, check)
			}
			if err != nil {
				return err
			}

			switch {
			case len(found) == 0:
				fmt.Fprintln(w, "All balances match the ledger")
			case fix:
				fmt.Fprintf(w, "Recomputed %d account balance(s)\n", len(found))
			default:
				return fmt.Errorf("%d account balance(s) differ from the ledger; run with --fix to recompute", len(found))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "overwrite cached balances with the ledger replay")

	return cmd
}
