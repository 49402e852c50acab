package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
)

func newPlatformCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Manage investment platforms",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a platform",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.TrimSpace(args[0])
				if name == "" {
					return errors.New("platform name is required")
				}
				var p model.Platform
				if err := a.mutate(cmd, func(e *ledger.Engine) error {
					p = e.AddPlatform(name)
					return nil
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added platform %s (%s)\n", p.Name, p.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "update <platform> <name>",
			Short: "Rename a platform",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(cmd, func(e *ledger.Engine) error {
					id, err := resolvePlatform(e, args[0])
					if err != nil {
						return err
					}
					e.UpdatePlatform(id, args[1])
					fmt.Fprintf(cmd.OutOrStdout(), "Renamed platform to %s\n", args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <platform>",
			Short: "Delete a platform no investment uses",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(cmd, func(e *ledger.Engine) error {
					id, err := resolvePlatform(e, args[0])
					if err != nil {
						return err
					}
					if err := e.DeletePlatform(id); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted platform %s\n", args[0])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List platforms",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.view(cmd, func(e *ledger.Engine) error {
					tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "INVESTMENTS")
					for _, p := range e.Platforms() {
						n := 0
						for _, inv := range e.Investments() {
							if inv.PlatformID == p.ID {
								n++
							}
						}
						row(tw, p.ID, p.Name, strconv.Itoa(n))
					}
					return tw.Flush()
				})
			},
		},
	)
	return cmd
}
