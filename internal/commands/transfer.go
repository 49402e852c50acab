package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
)

func newTransferCommand(a *app) *cobra.Command {
	var date, from, to, amount, description string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move money between two accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amt, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(e *ledger.Engine) error {
				src, err := resolveAccount(e, from)
				if err != nil {
					return err
				}
				dst, err := resolveAccount(e, to)
				if err != nil {
					return err
				}
				in := ledger.TransferInput{Date: date, FromAccountID: src, ToAccountID: dst, Amount: amt, Description: description}
				err = ledger.ValidateTransaction(model.Transaction{
					Date:                 in.Date,
					Type:                 model.TransactionTransfer,
					SourceAccountID:      in.FromAccountID,
					DestinationAccountID: in.ToAccountID,
					Amount:               in.Amount,
				}, e)
				if err != nil {
					return err
				}
				e.Transfer(in)
				fmt.Fprintf(cmd.OutOrStdout(), "Transferred %s from %s to %s\n",
					a.money(amt), accountName(e, src), accountName(e, dst))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", today(), "transfer date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&from, "from", "", "source account (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&to, "to", "", "destination account (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&amount, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")

	return cmd
}
