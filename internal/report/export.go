package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/dompet-dev/dompet/internal/model"
)

// Kind names an exportable collection.
type Kind string

const (
	KindAccounts     Kind = "accounts"
	KindPlatforms    Kind = "platforms"
	KindInvestments  Kind = "investments"
	KindAssets       Kind = "assets"
	KindReceivables  Kind = "receivables"
	KindTransactions Kind = "transactions"
)

// Kinds lists every export kind.
var Kinds = []Kind{KindAccounts, KindPlatforms, KindInvestments, KindAssets, KindReceivables, KindTransactions}

// ParseKind validates an export kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown export kind %q", s)
}

// FileName returns the download name for an export made at now.
func FileName(kind Kind, now time.Time) string {
	switch kind {
	case KindAccounts:
		return "daftar-rekening.csv"
	case KindPlatforms:
		return "daftar-platform.csv"
	case KindInvestments:
		return "daftar-investasi.csv"
	case KindAssets:
		return "daftar-aset.csv"
	case KindReceivables:
		return "daftar-piutang.csv"
	default:
		return fmt.Sprintf("Laporan-Transaksi-%d-%d-%d.csv", now.Day(), int(now.Month()), now.Year())
	}
}

const missingName = "N/A"

// Export writes one collection of snap as CSV. Only transactions are
// filtered by rng.
func Export(w io.Writer, kind Kind, snap model.Snapshot, rng DateRange) error {
	headers, rows := table(kind, snap, rng)
	if headers == nil {
		return fmt.Errorf("unknown export kind %q", kind)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("writing %s header: %w", kind, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s rows: %w", kind, err)
	}
	return nil
}

func table(kind Kind, snap model.Snapshot, rng DateRange) ([]string, [][]string) {
	accountNames := make(map[string]string, len(snap.Accounts))
	for _, a := range snap.Accounts {
		accountNames[a.ID] = a.Name
	}
	accountName := func(id string) string {
		if name, ok := accountNames[id]; ok {
			return name
		}
		return missingName
	}

	var rows [][]string
	switch kind {
	case KindAccounts:
		for _, a := range snap.Accounts {
			rows = append(rows, []string{a.Name, string(a.Type), a.Balance.String()})
		}
		return []string{"Nama Rekening", "Jenis", "Saldo"}, rows

	case KindPlatforms:
		counts := map[string]int{}
		for _, inv := range snap.Investments {
			counts[inv.PlatformID]++
		}
		for _, p := range snap.Platforms {
			rows = append(rows, []string{p.Name, fmt.Sprint(counts[p.ID])})
		}
		return []string{"Nama Platform", "Jumlah Investasi"}, rows

	case KindInvestments:
		platformNames := make(map[string]string, len(snap.Platforms))
		for _, p := range snap.Platforms {
			platformNames[p.ID] = p.Name
		}
		for _, inv := range snap.Investments {
			platform, ok := platformNames[inv.PlatformID]
			if !ok {
				platform = missingName
			}
			rows = append(rows, []string{
				inv.Date, inv.Name, platform,
				inv.InitialValue.String(), inv.CurrentValue.String(), inv.ProfitLoss().String(),
			})
		}
		return []string{"Tanggal", "Nama Investasi", "Platform", "Modal Awal", "Nilai Saat Ini", "P/L"}, rows

	case KindAssets:
		for _, a := range snap.Assets {
			rows = append(rows, []string{
				a.Name, string(a.Type), a.PurchaseDate,
				a.PurchaseValue.String(), a.CurrentValue.String(), a.ProfitLoss().String(),
			})
		}
		return []string{"Nama Aset", "Jenis", "Tanggal Beli", "Nilai Beli", "Nilai Saat Ini", "P/L"}, rows

	case KindReceivables:
		for _, r := range snap.Receivables {
			rows = append(rows, []string{
				r.DebtorName, r.Amount.String(), r.DueDate, string(r.Status), accountName(r.AccountID),
			})
		}
		return []string{"Peminjam", "Nominal", "Jatuh Tempo", "Status", "Sumber Dana"}, rows

	case KindTransactions:
		for _, tx := range snap.Transactions {
			if !rng.Contains(tx.Date) {
				continue
			}
			to := ""
			if tx.DestinationAccountID != "" {
				to = accountName(tx.DestinationAccountID)
			}
			rows = append(rows, []string{
				tx.Date, string(tx.Type), tx.Category, tx.Description,
				accountName(tx.SourceAccountID), to, tx.Amount.String(),
			})
		}
		return []string{"Tanggal", "Tipe", "Kategori", "Deskripsi", "Dari Rekening", "Ke Rekening", "Jumlah"}, rows
	}
	return nil, nil
}
