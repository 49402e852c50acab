package store

import (
	"os"
	"testing"
)

// Requires a reachable database: DB_DSN_TEST=1 DB_DSN=postgres://...
func TestPostgresStore(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("set DB_DSN_TEST=1 and DB_DSN to run postgres tests")
	}
	s, err := OpenPostgres(os.Getenv("DB_DSN"), true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		s.db.Exec("DELETE FROM snapshots WHERE key IN ?", []string{"sari", "budi"})
		s.Close()
	})
	exerciseStore(t, s)
}
