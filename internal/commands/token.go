package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/server"
)

func newTokenCommand(a *app) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the configured user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Server.JWTSecret == "" {
				return errors.New("no JWT secret: set server.jwt_secret or JWT_SECRET")
			}
			if a.cfg.User == "" {
				return errors.New("no user configured: pass --user or set DOMPET_USER")
			}
			token, err := server.IssueToken(a.cfg.Server.JWTSecret, a.cfg.User, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime; 0 for no expiry")

	return cmd
}
