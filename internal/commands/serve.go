package commands

import (
	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/server"
	"github.com/dompet-dev/dompet/internal/store"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve snapshots, summaries and exports over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close(st)

			if a.cfg.Server.JWTSecret == "" {
				a.logger.Warn("JWT_SECRET not set; /api/data is unauthenticated")
			}
			srv := server.New(st, server.Options{
				JWTSecret: a.cfg.Server.JWTSecret,
				Logger:    a.logger,
			})
			return srv.Run(cmd.Context(), a.cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr and PORT)")

	return cmd
}
