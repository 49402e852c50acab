package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
)

func newAssetCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage physical assets",
	}
	cmd.AddCommand(
		newAssetAddCommand(a),
		newAssetUpdateCommand(a),
		newAssetValueCommand(a),
		newAssetSellCommand(a),
		newAssetListCommand(a),
	)
	return cmd
}

func newAssetAddCommand(a *app) *cobra.Command {
	var name, typ, date, account, purchase, current string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an asset, bought from an account or owned already",
		Long: "With --account the purchase value is paid from that account.\n" +
			"Without it the asset is recorded as owned already and no money moves.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			purchaseValue, err := parseAmount("purchase", purchase)
			if err != nil {
				return err
			}
			currentValue := purchaseValue
			if current != "" {
				if currentValue, err = parseAmount("current", current); err != nil {
					return err
				}
			}
			funded := account != ""
			var asset model.Asset
			err = a.mutate(cmd, func(e *ledger.Engine) error {
				accountID, err := resolveAccount(e, account)
				if err != nil {
					return err
				}
				in := ledger.AssetInput{
					Name:          name,
					Type:          model.AssetType(typ),
					PurchaseDate:  date,
					AccountID:     accountID,
					PurchaseValue: purchaseValue,
					CurrentValue:  currentValue,
				}
				if err := ledger.ValidateAsset(in, funded, e); err != nil {
					return err
				}
				var ok bool
				if asset, ok = e.AddAsset(in, funded); !ok {
					return fmt.Errorf("no account %q", account)
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added asset %s (%s) worth %s\n", asset.Name, asset.ID, a.money(asset.CurrentValue))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "asset name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&typ, "type", string(model.AssetTypeOther), "property, vehicle, electronics or other")
	cmd.Flags().StringVar(&date, "date", today(), "purchase date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&account, "account", "", "funding account; omit for an asset owned already")
	cmd.Flags().StringVar(&purchase, "purchase", "", "purchase value (required)")
	_ = cmd.MarkFlagRequired("purchase")
	cmd.Flags().StringVar(&current, "current", "", "current value (defaults to the purchase value)")

	return cmd
}

func newAssetUpdateCommand(a *app) *cobra.Command {
	var name, typ, date, current string

	cmd := &cobra.Command{
		Use:   "update <asset-id>",
		Short: "Change an asset's name, type, purchase date or current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, func(e *ledger.Engine) error {
				asset, ok := e.Asset(args[0])
				if !ok {
					return fmt.Errorf("no asset %q", args[0])
				}
				upd := ledger.AssetUpdate{
					Name:         asset.Name,
					Type:         asset.Type,
					PurchaseDate: asset.PurchaseDate,
					CurrentValue: asset.CurrentValue,
				}
				if cmd.Flags().Changed("name") {
					upd.Name = name
				}
				if cmd.Flags().Changed("type") {
					upd.Type = model.AssetType(typ)
				}
				if cmd.Flags().Changed("date") {
					upd.PurchaseDate = date
				}
				if cmd.Flags().Changed("current") {
					v, err := parseAmount("current", current)
					if err != nil {
						return err
					}
					upd.CurrentValue = v
				}
				check := ledger.AssetInput{
					Name: upd.Name, Type: upd.Type, PurchaseDate: upd.PurchaseDate,
					PurchaseValue: asset.PurchaseValue, CurrentValue: upd.CurrentValue,
				}
				if err := ledger.ValidateAsset(check, false, e); err != nil {
					return err
				}
				e.UpdateAsset(asset.ID, upd)
				fmt.Fprintf(cmd.OutOrStdout(), "Updated asset %s\n", upd.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&typ, "type", "", "new type")
	cmd.Flags().StringVar(&date, "date", "", "new purchase date")
	cmd.Flags().StringVar(&current, "current", "", "new current value")

	return cmd
}

func newAssetValueCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "value <asset-id> <current-value>",
		Short: "Record an asset's market value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount("current-value", args[1])
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(e *ledger.Engine) error {
				if !e.UpdateAssetValue(args[0], value) {
					return fmt.Errorf("no asset %q", args[0])
				}
				asset, _ := e.Asset(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now worth %s\n", asset.Name, a.money(asset.CurrentValue))
				return nil
			})
		},
	}
}

func newAssetSellCommand(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "sell <asset-id>",
		Short: "Sell an asset at its current value into an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, func(e *ledger.Engine) error {
				asset, ok := e.Asset(args[0])
				if !ok {
					return fmt.Errorf("no asset %q", args[0])
				}
				accountID, err := resolveAccount(e, to)
				if err != nil {
					return err
				}
				if !e.SellAsset(asset.ID, accountID) {
					return fmt.Errorf("--to: no account %q", to)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sold %s for %s into %s\n",
					asset.Name, a.money(asset.CurrentValue), accountName(e, accountID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "receiving account (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newAssetListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, func(e *ledger.Engine) error {
				tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "TYPE", "BOUGHT", "PURCHASE", "CURRENT", "P/L")
				for _, asset := range e.Assets() {
					row(tw, asset.ID, asset.Name, string(asset.Type), asset.PurchaseDate,
						a.money(asset.PurchaseValue), a.money(asset.CurrentValue), a.money(asset.ProfitLoss()))
				}
				return tw.Flush()
			})
		},
	}
}
