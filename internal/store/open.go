package store

import (
	"fmt"
	"io"

	"github.com/dompet-dev/dompet/internal/config"
)

// Open builds the store selected by cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverFile:
		return NewFileStore(cfg.Path), nil
	case config.DriverPostgres:
		return OpenPostgres(cfg.DSN, cfg.AutoMigrate)
	case config.DriverHTTP:
		return NewHTTPStore(cfg.URL, cfg.Token), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Close releases resources held by s, if any.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
