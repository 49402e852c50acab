package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/buildinfo"
	"github.com/dompet-dev/dompet/internal/config"
	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/session"
	"github.com/dompet-dev/dompet/internal/store"
)

// app carries what every subcommand needs after flags are parsed.
type app struct {
	configPath string
	user       string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:     "dompet",
		Short:   "Personal finance ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "config file")
	rootCmd.PersistentFlags().StringVar(&a.user, "user", "", "identity key (overrides config and DOMPET_USER)")

	rootCmd.AddCommand(
		newInitCommand(a),
		newServeCommand(a),
		newTokenCommand(a),
		newAccountCommand(a),
		newPlatformCommand(a),
		newTxCommand(a),
		newTransferCommand(a),
		newInvestmentCommand(a),
		newAssetCommand(a),
		newReceivableCommand(a),
		newSummaryCommand(a),
		newExportCommand(a),
		newVerifyCommand(a),
	)

	return rootCmd
}

// loadConfig reads the config file if present, then .env and environment
// overrides, then the --user flag.
func (a *app) loadConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.Default("")
	case err != nil:
		return err
	}
	config.ApplyEnv(cfg, os.Getenv)
	if a.user != "" {
		cfg.User = a.user
	}
	if cfg.Store.Driver == config.DriverFile && cfg.Store.Path != "" && !filepath.IsAbs(cfg.Store.Path) {
		cfg.Store.Path = filepath.Join(filepath.Dir(a.configPath), cfg.Store.Path)
	}
	a.cfg = cfg
	a.logger = config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	return nil
}

// openStore opens the configured store after validating the config.
func (a *app) openStore() (store.Store, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	return store.Open(a.cfg.Store)
}

// withSession loads the user's data, runs fn, and waits for the resulting
// save before returning.
func (a *app) withSession(ctx context.Context, fn func(*session.Session) error) (err error) {
	if a.cfg.User == "" {
		return errors.New("no user configured: pass --user, set DOMPET_USER or run dompet init")
	}
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close(st)

	s, err := session.Open(ctx, st, a.cfg.User, a.logger)
	if err != nil {
		_ = s.Close(ctx)
		return err
	}
	defer func() {
		if cerr := s.Close(ctx); cerr != nil && err == nil {
			err = fmt.Errorf("saving data: %w", cerr)
		}
	}()
	return fn(s)
}

// mutate runs one engine operation and persists it.
func (a *app) mutate(cmd *cobra.Command, fn func(*ledger.Engine) error) error {
	return a.withSession(cmd.Context(), func(s *session.Session) error {
		return s.Do(fn)
	})
}

// view runs fn against the loaded engine without saving.
func (a *app) view(cmd *cobra.Command, fn func(*ledger.Engine) error) error {
	return a.withSession(cmd.Context(), func(s *session.Session) error {
		var err error
		if verr := s.View(func(e *ledger.Engine) { err = fn(e) }); verr != nil {
			return verr
		}
		return err
	})
}
