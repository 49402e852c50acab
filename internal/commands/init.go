package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dompet-dev/dompet/internal/config"
)

func newInitCommand(a *app) *cobra.Command {
	var driver, dsn, url string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a dompet.yaml for a user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if a.user == "" {
				return errors.New("--user is required")
			}

			cfg := config.Default(a.user)
			cfg.Store.Driver = driver
			cfg.Store.DSN = dsn
			cfg.Store.URL = url
			cfg.Store.AutoMigrate = driver == config.DriverPostgres
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := runInit(absDir, cfg, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized dompet for %s at %s\n", cfg.User, absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "store", config.DriverFile, "store driver: file, memory, postgres or http")
	cmd.Flags().StringVar(&dsn, "dsn", "", "postgres connection string")
	cmd.Flags().StringVar(&url, "url", "", "dompet server URL for the http driver")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing dompet.yaml")

	return cmd
}

func runInit(dir string, cfg *config.Config, force bool) error {
	if err := os.MkdirAll(filepath.Join(dir, "import"), 0o755); err != nil {
		return fmt.Errorf("creating import directory: %w", err)
	}

	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := "dompet.json\n.env\nimport/processed/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}
