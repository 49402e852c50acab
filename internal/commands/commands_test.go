package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-dev/dompet/internal/commands"
	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
	"github.com/dompet-dev/dompet/internal/store"
)

const testUser = "sari@example.com"

// isolateEnv clears variables that would override the test config.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DOMPET_USER", "DOMPET_STORE", "DOMPET_DATA_FILE", "DATABASE_URL", "DB_DSN",
		"DOMPET_STORE_URL", "DOMPET_TOKEN", "JWT_SECRET", "PORT", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func runDompet(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "dompet.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runDompet(t, dir, args...)
	require.NoError(t, err, "dompet %s: %s", strings.Join(args, " "), out)
	return out
}

var idPattern = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)

func idFrom(t *testing.T, out string) string {
	t.Helper()
	m := idPattern.FindStringSubmatch(out)
	require.NotNil(t, m, "no id in %q", out)
	return m[1]
}

func setup(t *testing.T) string {
	t.Helper()
	isolateEnv(t)
	dir := t.TempDir()
	mustRun(t, dir, "init", dir, "--user", testUser)
	return dir
}

func loadSnapshot(t *testing.T, dir string) model.Snapshot {
	t.Helper()
	snap, err := store.NewFileStore(filepath.Join(dir, "dompet.json")).Load(context.Background(), testUser)
	require.NoError(t, err)
	return snap
}

func balance(t *testing.T, snap model.Snapshot, name string) decimal.Decimal {
	t.Helper()
	for _, a := range snap.Accounts {
		if a.Name == name {
			return a.Balance
		}
	}
	t.Fatalf("no account %s", name)
	return decimal.Zero
}

func assertBalance(t *testing.T, dir, name, want string) {
	t.Helper()
	got := balance(t, loadSnapshot(t, dir), name)
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", name, want, got)
}

func TestInit(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	out, err := runDompet(t, dir, "init", dir, "--user", testUser)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized dompet for "+testUser)

	data, err := os.ReadFile(filepath.Join(dir, "dompet.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "user: "+testUser)
	assert.Contains(t, string(data), "driver: file")

	info, err := os.Stat(filepath.Join(dir, "import"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = runDompet(t, dir, "init", dir, "--user", testUser)
	assert.Error(t, err, "existing config is not overwritten")
	mustRun(t, dir, "init", dir, "--user", "budi", "--force")
}

func TestInit_RequiresUser(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	_, err := runDompet(t, dir, "init", dir)
	require.Error(t, err)
}

func TestInit_RejectsIncompleteStore(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	_, err := runDompet(t, dir, "init", dir, "--user", testUser, "--store", "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.dsn")
}

func TestNoUser(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	_, err := runDompet(t, dir, "account", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user configured")
}

func TestFullFlow(t *testing.T) {
	dir := setup(t)

	out := mustRun(t, dir, "account", "add", "--name", "Cash", "--initial", "100000")
	assert.Contains(t, out, "Added account Cash")
	mustRun(t, dir, "account", "add", "--name", "BCA", "--type", "bank")
	mustRun(t, dir, "platform", "add", "Bibit")

	out = mustRun(t, dir, "investment", "add", "--name", "Fund X", "--platform", "Bibit",
		"--account", "Cash", "--initial", "20000", "--date", "2025-05-01")
	invID := idFrom(t, out)
	mustRun(t, dir, "investment", "value", invID, "25000")

	mustRun(t, dir, "transfer", "--from", "Cash", "--to", "BCA", "--amount", "10000")
	mustRun(t, dir, "tx", "add", "--account", "Cash", "--amount", "5000", "--category", "Makanan", "-d", "Bakso")

	out = mustRun(t, dir, "receivable", "add", "--debtor", "Budi", "--amount", "30000", "--due", "2025-07-01", "--account", "Cash")
	recID := idFrom(t, out)
	assertBalance(t, dir, "Cash", "35000")

	mustRun(t, dir, "receivable", "pay", recID, "--to", "BCA")
	assertBalance(t, dir, "BCA", "40000")

	_, err := runDompet(t, dir, "receivable", "pay", recID)
	assert.ErrorIs(t, err, ledger.ErrReceivablePaid)

	_, err = runDompet(t, dir, "account", "delete", "Cash")
	assert.ErrorIs(t, err, ledger.ErrAccountInUse)

	_, err = runDompet(t, dir, "platform", "delete", "Bibit")
	assert.ErrorIs(t, err, ledger.ErrPlatformInUse)

	mustRun(t, dir, "investment", "delete", invID)
	assertBalance(t, dir, "Cash", "55000")

	out = mustRun(t, dir, "verify")
	assert.Contains(t, out, "All balances match the ledger")

	out = mustRun(t, dir, "tx", "list", "--account", "Cash")
	assert.Contains(t, out, "Bakso")
	assert.Contains(t, out, "Saldo Awal")
	assert.NotContains(t, out, "Investasi")

	out = mustRun(t, dir, "summary")
	assert.Contains(t, out, "Total wealth")
	assert.Contains(t, out, "Rp")

	out = mustRun(t, dir, "export", "accounts")
	assert.Contains(t, out, "Nama Rekening,Jenis,Saldo")
	assert.Contains(t, out, "Cash,cash,55000")

	out = mustRun(t, dir, "account", "list")
	assert.Contains(t, out, "BCA")
	out = mustRun(t, dir, "receivable", "list")
	assert.Contains(t, out, string(model.ReceivablePaid))
}

func TestAccountUpdate_OpeningBalance(t *testing.T) {
	dir := setup(t)
	mustRun(t, dir, "account", "add", "--name", "Cash", "--initial", "100000")
	mustRun(t, dir, "tx", "add", "--account", "Cash", "--amount", "20000", "--category", "Makanan")

	mustRun(t, dir, "account", "update", "Cash", "--initial", "150000", "--name", "Dompet")
	assertBalance(t, dir, "Dompet", "130000")

	mustRun(t, dir, "account", "update", "Dompet", "--initial", "0")
	assertBalance(t, dir, "Dompet", "-20000")
	snap := loadSnapshot(t, dir)
	assert.Len(t, snap.Transactions, 1)
}

func TestAssetLifecycle(t *testing.T) {
	dir := setup(t)
	mustRun(t, dir, "account", "add", "--name", "Cash", "--initial", "50000")

	out := mustRun(t, dir, "asset", "add", "--name", "Laptop", "--type", "electronics", "--account", "Cash", "--purchase", "15000")
	laptop := idFrom(t, out)
	assertBalance(t, dir, "Cash", "35000")

	out = mustRun(t, dir, "asset", "add", "--name", "Rumah", "--type", "property", "--purchase", "900000")
	house := idFrom(t, out)
	assertBalance(t, dir, "Cash", "35000")

	mustRun(t, dir, "asset", "value", laptop, "12000")
	mustRun(t, dir, "asset", "update", house, "--current", "950000")
	mustRun(t, dir, "asset", "sell", laptop, "--to", "Cash")
	assertBalance(t, dir, "Cash", "47000")

	snap := loadSnapshot(t, dir)
	require.Len(t, snap.Assets, 1)
	assert.Equal(t, "950000", snap.Assets[0].CurrentValue.String())
	assert.Empty(t, snap.Assets[0].AccountID)

	out = mustRun(t, dir, "asset", "list")
	assert.Contains(t, out, "Rumah")
}

func TestReceivableDelete(t *testing.T) {
	dir := setup(t)
	mustRun(t, dir, "account", "add", "--name", "Cash", "--initial", "100000")
	out := mustRun(t, dir, "receivable", "add", "--debtor", "Budi", "--amount", "30000", "--due", "2025-07-01", "--account", "Cash")
	id := idFrom(t, out)
	mustRun(t, dir, "receivable", "update", id, "--debtor", "Budi S.")
	mustRun(t, dir, "receivable", "pay", id)
	mustRun(t, dir, "receivable", "delete", id)

	assertBalance(t, dir, "Cash", "100000")
	snap := loadSnapshot(t, dir)
	assert.Empty(t, snap.Receivables)
	assert.Len(t, snap.Transactions, 1)
}

func TestTxAdd_Validation(t *testing.T) {
	dir := setup(t)
	mustRun(t, dir, "account", "add", "--name", "Cash")

	_, err := runDompet(t, dir, "tx", "add", "--account", "Cash", "--amount", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")

	_, err = runDompet(t, dir, "tx", "add", "--account", "Nope", "--amount", "10", "--category", "x")
	assert.Error(t, err)

	_, err = runDompet(t, dir, "tx", "add", "--account", "Cash", "--amount", "ten", "--category", "x")
	assert.Error(t, err)

	_, err = runDompet(t, dir, "transfer", "--from", "Cash", "--to", "Cash", "--amount", "10")
	assert.Error(t, err)

	assert.Empty(t, loadSnapshot(t, dir).Transactions)
}

func TestTxImport(t *testing.T) {
	dir := setup(t)
	mustRun(t, dir, "account", "add", "--name", "BCA", "--type", "bank", "--initial", "1000000")

	importDir := filepath.Join(dir, "import")
	csvData := "date,description,amount,category\n2025-06-01,Gaji,500000,Gaji\n2025-06-02,Listrik,-200000,Tagihan\n"
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "juni.csv"), []byte(csvData), 0o644))

	out := mustRun(t, dir, "tx", "import", importDir, "--account", "BCA")
	assert.Contains(t, out, "Imported 2 transactions from 1 file(s)")
	assertBalance(t, dir, "BCA", "1300000")

	_, err := os.Stat(filepath.Join(importDir, "processed", "juni.csv"))
	assert.NoError(t, err)

	_, err = runDompet(t, dir, "tx", "import", importDir, "--account", "BCA", "--format", "chase")
	assert.Error(t, err)
}

func TestVerifyFix(t *testing.T) {
	dir := setup(t)
	mustRun(t, dir, "account", "add", "--name", "Cash", "--initial", "1000")

	snap := loadSnapshot(t, dir)
	snap.Accounts[0].Balance = decimal.NewFromInt(1)
	require.NoError(t, store.NewFileStore(filepath.Join(dir, "dompet.json")).Save(context.Background(), testUser, snap))

	out, err := runDompet(t, dir, "verify")
	require.Error(t, err)
	assert.Contains(t, out, "Cash")

	out = mustRun(t, dir, "verify", "--fix")
	assert.Contains(t, out, "Recomputed 1 account balance(s)")
	assertBalance(t, dir, "Cash", "1000")
}

func TestExport_ToFile(t *testing.T) {
	dir := setup(t)
	mustRun(t, dir, "account", "add", "--name", "Cash")
	mustRun(t, dir, "tx", "add", "--account", "Cash", "--amount", "10", "--category", "Makanan", "--date", "2025-06-01")

	path := filepath.Join(dir, "tx.csv")
	mustRun(t, dir, "export", "transactions", "--start", "2025-06-01", "--end", "2025-06-01", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-06-01,expense,Makanan")

	_, err = runDompet(t, dir, "export", "ledger")
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	dir := setup(t)

	_, err := runDompet(t, dir, "token")
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	out := mustRun(t, dir, "token")
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."), "a JWT has three segments")
}

func TestUserFlagOverridesConfig(t *testing.T) {
	dir := setup(t)
	mustRun(t, dir, "--user", "budi", "account", "add", "--name", "Cash", "--initial", "5")

	assert.Empty(t, loadSnapshot(t, dir).Accounts)
	snap, err := store.NewFileStore(filepath.Join(dir, "dompet.json")).Load(context.Background(), "budi")
	require.NoError(t, err)
	assert.Len(t, snap.Accounts, 1)
}
