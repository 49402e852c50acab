package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/importer"
	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
	"github.com/dompet-dev/dompet/internal/report"
)

func newTxCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record and list transactions",
	}
	cmd.AddCommand(
		newTxAddCommand(a),
		newTxListCommand(a),
		newTxImportCommand(a),
	)
	return cmd
}

func newTxAddCommand(a *app) *cobra.Command {
	var date, typ, account, to, amount, category, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a manual income, expense or transfer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amt, err := parseAmount("amount", amount)
			if err != nil {
				return err
			}
			var posted model.Transaction
			err = a.mutate(cmd, func(e *ledger.Engine) error {
				src, err := resolveAccount(e, account)
				if err != nil {
					return err
				}
				dst, err := resolveAccount(e, to)
				if err != nil {
					return err
				}
				tx := model.Transaction{
					Date:                 date,
					Type:                 model.TransactionType(typ),
					SourceAccountID:      src,
					DestinationAccountID: dst,
					Amount:               amt,
					Category:             category,
					Description:          description,
					Origin:               model.OriginManual,
				}
				if tx.Type == model.TransactionTransfer && tx.Category == "" {
					tx.Category = model.CategoryTransfer
				}
				if err := ledger.ValidateTransaction(tx, e); err != nil {
					return err
				}
				posted = e.PostTransaction(tx)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s on %s (%s)\n", posted.Type, a.money(posted.Amount), posted.Date, posted.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", today(), "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&typ, "type", string(model.TransactionExpense), "income, expense or transfer")
	cmd.Flags().StringVar(&account, "account", "", "source account (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&to, "to", "", "destination account for transfers")
	cmd.Flags().StringVar(&amount, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description")

	return cmd
}

func newTxListCommand(a *app) *cobra.Command {
	var start, end, account string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := report.ParseRange(start, end)
			if err != nil {
				return err
			}
			return a.view(cmd, func(e *ledger.Engine) error {
				filter, err := resolveAccount(e, account)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout(), "DATE", "TYPE", "CATEGORY", "DESCRIPTION", "FROM", "TO", "AMOUNT")
				for _, tx := range e.Transactions() {
					if !rng.Contains(tx.Date) || (filter != "" && !tx.Touches(filter)) {
						continue
					}
					to := ""
					if tx.DestinationAccountID != "" {
						to = accountName(e, tx.DestinationAccountID)
					}
					row(tw, tx.Date, string(tx.Type), tx.Category, tx.Description,
						accountName(e, tx.SourceAccountID), to, a.money(tx.Amount))
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&account, "account", "", "only transactions touching this account")

	return cmd
}

func newTxImportCommand(a *app) *cobra.Command {
	var format, account string

	cmd := &cobra.Command{
		Use:   "import <file-or-directory>",
		Short: "Import a bank statement CSV as manual transactions",
		Long: "Import one CSV file, or every CSV file in a directory. Files imported\n" +
			"from a directory are moved to its processed/ subdirectory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			target := args[0]
			info, err := os.Stat(target)
			if err != nil {
				return fmt.Errorf("reading %s: %w", target, err)
			}
			var files []importer.FileInfo
			if info.IsDir() {
				if files, err = importer.Scan(target); err != nil {
					return err
				}
			} else {
				files = []importer.FileInfo{{Name: filepath.Base(target), Path: target, Size: info.Size()}}
			}

			var rows []importer.Row
			for _, f := range files {
				fileRows, err := parseFile(parser, f.Path)
				if err != nil {
					return err
				}
				rows = append(rows, fileRows...)
			}

			var posted []model.Transaction
			err = a.mutate(cmd, func(e *ledger.Engine) error {
				id, err := resolveAccount(e, account)
				if err != nil {
					return err
				}
				posted, err = importer.Post(e, rows, id)
				return err
			})
			if err != nil {
				return err
			}

			if info.IsDir() {
				for _, f := range files {
					if err := importer.MarkProcessed(target, f.Name); err != nil {
						return err
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions from %d file(s)\n", len(posted), len(files))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "statement format: generic or bca")
	cmd.Flags().StringVar(&account, "account", "", "account the statement belongs to (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func parseFile(p importer.Parser, path string) ([]importer.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	rows, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rows, nil
}
