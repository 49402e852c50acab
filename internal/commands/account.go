package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
)

func newAccountCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.AddCommand(
		newAccountAddCommand(a),
		newAccountUpdateCommand(a),
		newAccountDeleteCommand(a),
		newAccountListCommand(a),
	)
	return cmd
}

func newAccountAddCommand(a *app) *cobra.Command {
	var name, typ, initial string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account with an optional opening balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := parseAmount("initial", initial)
			if err != nil {
				return err
			}
			in := ledger.AccountInput{Name: name, Type: model.AccountType(typ), InitialBalance: amount}
			if err := ledger.ValidateAccount(in); err != nil {
				return err
			}
			var acct model.Account
			err = a.mutate(cmd, func(e *ledger.Engine) error {
				acct = e.AddAccount(in)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added account %s (%s) balance %s\n", acct.Name, acct.ID, a.money(acct.Balance))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&typ, "type", string(model.AccountTypeCash), "cash, bank, e-wallet or investment")
	cmd.Flags().StringVar(&initial, "initial", "0", "opening balance")

	return cmd
}

func newAccountUpdateCommand(a *app) *cobra.Command {
	var name, typ, initial string

	cmd := &cobra.Command{
		Use:   "update <account>",
		Short: "Rename an account, change its type or its opening balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var acct model.Account
			err := a.mutate(cmd, func(e *ledger.Engine) error {
				id, err := resolveAccount(e, args[0])
				if err != nil {
					return err
				}
				current, _ := e.Account(id)
				in := ledger.AccountInput{Name: current.Name, Type: current.Type, InitialBalance: e.OpeningBalance(id)}
				if cmd.Flags().Changed("name") {
					in.Name = name
				}
				if cmd.Flags().Changed("type") {
					in.Type = model.AccountType(typ)
				}
				if cmd.Flags().Changed("initial") {
					if in.InitialBalance, err = parseAmount("initial", initial); err != nil {
						return err
					}
				}
				if err := ledger.ValidateAccount(in); err != nil {
					return err
				}
				e.UpdateAccount(id, in)
				acct, _ = e.Account(id)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated account %s balance %s\n", acct.Name, a.money(acct.Balance))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&typ, "type", "", "new type")
	cmd.Flags().StringVar(&initial, "initial", "", "new opening balance")

	return cmd
}

func newAccountDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account>",
		Short: "Delete an account that nothing references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.mutate(cmd, func(e *ledger.Engine) error {
				id, err := resolveAccount(e, args[0])
				if err != nil {
					return err
				}
				return e.DeleteAccount(id)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", args[0])
			return nil
		},
	}
}

func newAccountListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, func(e *ledger.Engine) error {
				tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "TYPE", "BALANCE")
				for _, acct := range e.Accounts() {
					row(tw, acct.ID, acct.Name, string(acct.Type), a.money(acct.Balance))
				}
				return tw.Flush()
			})
		},
	}
}
