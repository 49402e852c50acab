package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dompet-dev/dompet/internal/ledger"
	"github.com/dompet-dev/dompet/internal/model"
)

const genericCSV = `date,description,amount,category
2025-06-01,Gaji Juni,8500000,Gaji
2025-06-02, Makan siang ,-45000,Makanan
2025-06-03,Parkir,-5000
`

const bcaCSV = `Tanggal,Keterangan,Cabang,Jumlah,,Saldo
03/06/2025,TRSF E-BANKING   DB 0306/FTSCY/WS95051,0000,"1,250,000.00",DB,"8,750,000.00"
05/06/2025,BUNGA,0000,"12,345.67",CR,"8,762,345.67"
`

func TestGenericParser_Parse(t *testing.T) {
	rows, err := (&GenericParser{}).Parse(strings.NewReader(genericCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "2025-06-01", rows[0].Date)
	assert.Equal(t, "Gaji Juni", rows[0].Description)
	assert.Equal(t, "8500000", rows[0].Amount.String())
	assert.Equal(t, "Gaji", rows[0].Category)
	assert.Equal(t, "Makan siang", rows[1].Description)
	assert.True(t, rows[1].Amount.IsNegative())
	assert.Empty(t, rows[2].Category)
}

func TestGenericParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"bad date", "date,description,amount\n06/01/2025,x,1\n", "row 2"},
		{"bad amount", "date,description,amount\n2025-06-01,x,abc\n", "parsing amount"},
		{"too few fields", "date,description,amount\n2025-06-01,x\n", "expected 3 or 4 fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&GenericParser{}).Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenericParser_HeaderOnly(t *testing.T) {
	rows, err := (&GenericParser{}).Parse(strings.NewReader("date,description,amount\n"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestBCAParser_Parse(t *testing.T) {
	rows, err := (&BCAParser{}).Parse(strings.NewReader(bcaCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2025-06-03", rows[0].Date)
	assert.Equal(t, "TRSF E-BANKING DB 0306/FTSCY/WS95051", rows[0].Description)
	assert.Equal(t, "-1250000.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, "12345.67", rows[1].Amount.StringFixed(2))
}

func TestBCAParser_BadMarker(t *testing.T) {
	input := "Tanggal,Keterangan,Cabang,Jumlah,,Saldo\n03/06/2025,X,0000,100.00,XX,0\n"
	_, err := (&BCAParser{}).Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debit/credit")
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("BCA"))
	assert.Nil(t, r.Get("chase"))
	assert.Panics(t, func() { r.Register(&GenericParser{}) })
}

func newEngine() (*ledger.Engine, model.Account) {
	e := ledger.New(ledger.WithClock(func() time.Time {
		return time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	}))
	acct := e.AddAccount(ledger.AccountInput{Name: "BCA", Type: model.AccountTypeBank, InitialBalance: decimal.NewFromInt(1000000)})
	return e, acct
}

func TestPost(t *testing.T) {
	e, acct := newEngine()
	rows, err := (&GenericParser{}).Parse(strings.NewReader(genericCSV))
	require.NoError(t, err)

	posted, err := Post(e, rows, acct.ID)
	require.NoError(t, err)
	require.Len(t, posted, 3)

	assert.Equal(t, model.TransactionIncome, posted[0].Type)
	assert.Equal(t, model.TransactionExpense, posted[1].Type)
	assert.Equal(t, "45000", posted[1].Amount.String(), "expense amounts are stored positive")
	assert.Equal(t, DefaultCategory, posted[2].Category)
	assert.Equal(t, model.OriginManual, posted[2].Origin)

	got, _ := e.Account(acct.ID)
	assert.Equal(t, "9450000", got.Balance.String())
	assert.Empty(t, e.Verify())
}

func TestPost_AllOrNothing(t *testing.T) {
	e, acct := newEngine()
	rows := []Row{
		{Date: "2025-06-01", Description: "ok", Amount: decimal.NewFromInt(-10), Category: "Makanan"},
		{Date: "2025-06-02", Description: "sneaky", Amount: decimal.NewFromInt(10), Category: model.CategoryOpeningBalance},
	}

	_, err := Post(e, rows, acct.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	var verrs ledger.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Len(t, e.Transactions(), 1, "nothing is posted when any row fails")

	_, err = Post(e, rows[:1], "ghost")
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "juni.csv"), []byte("a,b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MEI.CSV"), []byte("a,b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	names := map[string]bool{}
	for _, f := range files {
		names[f.Name] = true
		assert.Equal(t, int64(4), f.Size)
	}
	assert.True(t, names["juni.csv"])
	assert.True(t, names["MEI.CSV"])
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "juni.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "juni.csv"))

	_, err := os.Stat(filepath.Join(dir, "juni.csv"))
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(dir, "processed", "juni.csv"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}
