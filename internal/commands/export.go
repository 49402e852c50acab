package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/report"
)

func newExportCommand(a *app) *cobra.Command {
	var start, end, output string

	kinds := make([]string, len(report.Kinds))
	for i, k := range report.Kinds {
		kinds[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:       "export <kind>",
		Short:     "Export a collection as CSV",
		Long:      "Export one of: " + strings.Join(kinds, ", ") + ".\nOnly transactions are filtered by --start and --end.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := report.ParseKind(args[0])
			if err != nil {
				return err
			}
			rng, err := report.ParseRange(start, end)
			if err != nil {
				return err
			}
			return a.view(cmd, func(e *ledger.Engine) error {
				var w io.Writer = cmd.OutOrStdout()
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("creating %s: %w", output, err)
					}
					defer f.Close()
					w = f
				}
				return report.Export(w, kind, e.Snapshot(), rng)
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last day, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}
