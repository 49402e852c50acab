package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "dompet.yaml"

// Config represents the top-level dompet.yaml configuration.
type Config struct {
	User   string       `yaml:"user"`
	Store  StoreConfig  `yaml:"store"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Report ReportConfig `yaml:"report"`
}

// StoreConfig selects where snapshots are persisted.
type StoreConfig struct {
	Driver      string `yaml:"driver"`         // memory, file, postgres or http
	Path        string `yaml:"path,omitempty"` // file driver
	DSN         string `yaml:"dsn,omitempty"`  // postgres driver
	URL         string `yaml:"url,omitempty"`  // http driver
	Token       string `yaml:"token,omitempty"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// ServerConfig controls `dompet serve`.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	JWTSecret string `yaml:"jwt_secret,omitempty"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Currency string `yaml:"currency"`
}

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverHTTP     = "http"
)

// Load reads a dompet.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default(user string) *Config {
	return &Config{
		User: user,
		Store: StoreConfig{
			Driver: DriverFile,
			Path:   "dompet.json",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Report: ReportConfig{
			Currency: "IDR",
		},
	}
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from environment variables.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}
	set(&cfg.User, "DOMPET_USER")
	set(&cfg.Store.Driver, "DOMPET_STORE")
	set(&cfg.Store.Path, "DOMPET_DATA_FILE")
	set(&cfg.Store.DSN, "DATABASE_URL", "DB_DSN")
	set(&cfg.Store.URL, "DOMPET_STORE_URL")
	set(&cfg.Store.Token, "DOMPET_TOKEN")
	set(&cfg.Server.JWTSecret, "JWT_SECRET")
	set(&cfg.Log.Level, "LOG_LEVEL")
	if port := getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + strings.TrimPrefix(port, ":")
	}
}

// Validate checks the settings needed to open the configured store.
func (c *Config) Validate() error {
	var problems []string
	switch c.Store.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Store.Path == "" {
			problems = append(problems, "store.path is required for the file driver")
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			problems = append(problems, "store.dsn (or DATABASE_URL) is required for the postgres driver")
		}
	case DriverHTTP:
		if c.Store.URL == "" {
			problems = append(problems, "store.url is required for the http driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown store driver %q", c.Store.Driver))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if money.GetCurrency(c.Report.Currency) == nil {
		problems = append(problems, fmt.Sprintf("unknown report.currency %q", c.Report.Currency))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// NewLogger builds the process logger described by cfg.
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
