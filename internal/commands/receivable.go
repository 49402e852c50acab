package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
)

func newReceivableCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receivable",
		Short: "Track money lent out",
	}
	cmd.AddCommand(
		newReceivableAddCommand(a),
		newReceivableUpdateCommand(a),
		newReceivablePayCommand(a),
		newReceivableDeleteCommand(a),
		newReceivableListCommand(a),
	)
	return cmd
}

func newReceivableAddCommand(a *app) *cobra.Command {
	var debtor, amount, due, account string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Lend money from an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amt, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			var r model.Receivable
			err = a.mutate(cmd, func(e *ledger.Engine) error {
				accountID, err := resolveAccount(e, account)
				if err != nil {
					return err
				}
				in := ledger.ReceivableInput{DebtorName: debtor, Amount: amt, DueDate: due, AccountID: accountID}
				if err := ledger.ValidateReceivable(in, e); err != nil {
					return err
				}
				var ok bool
				if r, ok = e.AddReceivable(in); !ok {
					return fmt.Errorf("no account %q", account)
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Lent %s to %s (%s), due %s\n", a.money(r.Amount), r.DebtorName, r.ID, r.DueDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&debtor, "debtor", "", "borrower's name (required)")
	_ = cmd.MarkFlagRequired("debtor")
	cmd.Flags().StringVar(&amount, "amount", "", "amount lent (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("due")
	cmd.Flags().StringVar(&account, "account", "", "account the money comes from (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func newReceivableUpdateCommand(a *app) *cobra.Command {
	var debtor, due string

	cmd := &cobra.Command{
		Use:   "update <receivable-id>",
		Short: "Change the borrower's name or the due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, func(e *ledger.Engine) error {
				r, ok := e.Receivable(args[0])
				if !ok {
					return fmt.Errorf("no receivable %q", args[0])
				}
				if cmd.Flags().Changed("debtor") {
					r.DebtorName = debtor
				}
				if cmd.Flags().Changed("due") {
					r.DueDate = due
				}
				check := ledger.ReceivableInput{DebtorName: r.DebtorName, Amount: r.Amount, DueDate: r.DueDate, AccountID: r.AccountID}
				if err := ledger.ValidateReceivable(check, e); err != nil {
					return err
				}
				e.UpdateReceivable(r.ID, r.DebtorName, r.DueDate)
				fmt.Fprintf(cmd.OutOrStdout(), "Updated receivable from %s\n", r.DebtorName)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&debtor, "debtor", "", "new borrower's name")
	cmd.Flags().StringVar(&due, "due", "", "new due date")

	return cmd
}

func newReceivablePayCommand(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "pay <receivable-id>",
		Short: "Mark a receivable paid into an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, func(e *ledger.Engine) error {
				r, ok := e.Receivable(args[0])
				if !ok {
					return fmt.Errorf("no receivable %q", args[0])
				}
				ref := to
				if ref == "" {
					ref = r.AccountID
				}
				accountID, err := resolveAccount(e, ref)
				if err != nil {
					return err
				}
				if err := e.MarkReceivablePaid(r.ID, accountID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s repaid %s into %s\n", r.DebtorName, a.money(r.Amount), accountName(e, accountID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "receiving account (defaults to the lending account)")

	return cmd
}

func newReceivableDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <receivable-id>",
		Short: "Delete a receivable and every transaction linked to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, func(e *ledger.Engine) error {
				r, ok := e.Receivable(args[0])
				if !ok {
					return fmt.Errorf("no receivable %q", args[0])
				}
				e.DeleteReceivable(r.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted receivable from %s\n", r.DebtorName)
				return nil
			})
		},
	}
}

func newReceivableListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List receivables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, func(e *ledger.Engine) error {
				tw := newTable(cmd.OutOrStdout(), "ID", "DEBTOR", "AMOUNT", "DUE", "STATUS", "ACCOUNT")
				for _, r := range e.Receivables() {
					row(tw, r.ID, r.DebtorName, a.money(r.Amount), r.DueDate, string(r.Status), accountName(e, r.AccountID))
				}
				return tw.Flush()
			})
		},
	}
}
