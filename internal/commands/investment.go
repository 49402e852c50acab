package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
)

func newInvestmentCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "investment",
		Aliases: []string{"inv"},
		Short:   "Manage investments",
	}
	cmd.AddCommand(
		newInvestmentAddCommand(a),
		newInvestmentUpdateCommand(a),
		newInvestmentValueCommand(a),
		newInvestmentDeleteCommand(a),
		newInvestmentListCommand(a),
	)
	return cmd
}

func newInvestmentAddCommand(a *app) *cobra.Command {
	var date, name, platform, account, initial, current string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Buy an investment, paying the initial value from an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			initialValue, err := parseAmount("initial", initial)
			if err != nil {
				return err
			}
			currentValue := initialValue
			if current != "" {
				if currentValue, err = parseAmount("current", current); err != nil {
					return err
				}
			}
			var inv model.Investment
			err = a.mutate(cmd, func(e *ledger.Engine) error {
				platformID, err := resolvePlatform(e, platform)
				if err != nil {
					return err
				}
				accountID, err := resolveAccount(e, account)
				if err != nil {
					return err
				}
				in := ledger.InvestmentInput{
					Date:         date,
					Name:         name,
					PlatformID:   platformID,
					AccountID:    accountID,
					InitialValue: initialValue,
					CurrentValue: currentValue,
				}
				if err := ledger.ValidateInvestment(in, e); err != nil {
					return err
				}
				var ok bool
				if inv, ok = e.AddInvestment(in); !ok {
					return fmt.Errorf("no account %q", account)
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added investment %s (%s) for %s\n", inv.Name, inv.ID, a.money(inv.InitialValue))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", today(), "purchase date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&name, "name", "", "investment name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&platform, "platform", "", "platform (required)")
	_ = cmd.MarkFlagRequired("platform")
	cmd.Flags().StringVar(&account, "account", "", "funding account (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&initial, "initial", "", "initial value (required)")
	_ = cmd.MarkFlagRequired("initial")
	cmd.Flags().StringVar(&current, "current", "", "current value (defaults to the initial value)")

	return cmd
}

func newInvestmentUpdateCommand(a *app) *cobra.Command {
	var date, name, platform string

	cmd := &cobra.Command{
		Use:   "update <investment-id>",
		Short: "Change an investment's name, date or platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, func(e *ledger.Engine) error {
				inv, ok := e.Investment(args[0])
				if !ok {
					return fmt.Errorf("no investment %q", args[0])
				}
				upd := ledger.InvestmentUpdate{Date: inv.Date, Name: inv.Name, PlatformID: inv.PlatformID}
				if cmd.Flags().Changed("date") {
					upd.Date = date
				}
				if cmd.Flags().Changed("name") {
					upd.Name = name
				}
				if cmd.Flags().Changed("platform") {
					id, err := resolvePlatform(e, platform)
					if err != nil {
						return err
					}
					upd.PlatformID = id
				}
				check := ledger.InvestmentInput{
					Date: upd.Date, Name: upd.Name, PlatformID: upd.PlatformID,
					AccountID: inv.AccountID, InitialValue: inv.InitialValue, CurrentValue: inv.CurrentValue,
				}
				if err := ledger.ValidateInvestment(check, e); err != nil {
					return err
				}
				e.UpdateInvestment(inv.ID, upd)
				fmt.Fprintf(cmd.OutOrStdout(), "Updated investment %s\n", upd.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "new date")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&platform, "platform", "", "new platform")

	return cmd
}

func newInvestmentValueCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "value <investment-id> <current-value>",
		Short: "Record an investment's market value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount("current-value", args[1])
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(e *ledger.Engine) error {
				if !e.UpdateInvestmentValue(args[0], value) {
					return fmt.Errorf("no investment %q", args[0])
				}
				inv, _ := e.Investment(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now worth %s (P/L %s)\n",
					inv.Name, a.money(inv.CurrentValue), a.money(inv.ProfitLoss()))
				return nil
			})
		},
	}
}

func newInvestmentDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <investment-id>",
		Short: "Delete an investment, returning its initial value to the funding account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, func(e *ledger.Engine) error {
				inv, ok := e.Investment(args[0])
				if !ok {
					return fmt.Errorf("no investment %q", args[0])
				}
				e.DeleteInvestment(inv.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted investment %s\n", inv.Name)
				return nil
			})
		},
	}
}

func newInvestmentListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List investments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, func(e *ledger.Engine) error {
				platforms := map[string]string{}
				for _, p := range e.Platforms() {
					platforms[p.ID] = p.Name
				}
				tw := newTable(cmd.OutOrStdout(), "ID", "DATE", "NAME", "PLATFORM", "ACCOUNT", "INITIAL", "CURRENT", "P/L")
				for _, inv := range e.Investments() {
					row(tw, inv.ID, inv.Date, inv.Name, platforms[inv.PlatformID], accountName(e, inv.AccountID),
						a.money(inv.InitialValue), a.money(inv.CurrentValue), a.money(inv.ProfitLoss()))
				}
				return tw.Flush()
			})
		},
	}
}
