package export_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/smartenergiessig/smart-turpe/internal/export"
	"github.com/smartenergiessig/smart-turpe/internal/ledger"
	"github.com/smartenergiessig/smart-turpe/pkg/models"
)

func testEntry(company, org string, seq int) ledger.Entry {
	inv := models.Invoice{
		ContractID:    "30001234567",
		WritingDate:   time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC),
		InvoiceNumber: "100000157963",
		DueDate:       time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.RequireFromString("1000.00"),
		PeriodStart:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		MandateRef:    "M123",
	}
	return ledger.Expand(inv, org, company, seq)
}

func TestBaseName(t *testing.T) {
	now := time.Date(2024, time.October, 3, 15, 4, 5, 0, time.UTC)
	want := "Facture ENEDIS - Traitement du 03-10-2024"
	if got := export.BaseName(now); got != want {
		t.Errorf("BaseName = %q, want %q", got, want)
	}
}

func TestSortRows(t *testing.T) {
	entries := []ledger.Entry{
		testEntry("SP02", "BETA", 1),
		testEntry("SP01", "ALPHA", 2),
		testEntry("SP01", "ALPHA", 3),
	}

	rows := export.SortRows(entries)
	if len(rows) != 12 {
		t.Fatalf("rows = %d, want 12", len(rows))
	}

	// Company code sorts before sequence, so SP01 comes first even though
	// SP02 was accepted earlier.
	wantCompanies := []string{
		"SP01", "SP01", "SP01", "SP01",
		"SP01", "SP01", "SP01", "SP01",
		"SP02", "SP02", "SP02", "SP02",
	}
	wantSequences := []int{2, 2, 2, 2, 3, 3, 3, 3, 1, 1, 1, 1}
	for i, row := range rows {
		if row.CompanyCode != wantCompanies[i] || row.Sequence != wantSequences[i] {
			t.Errorf("row %d = %s/%d, want %s/%d",
				i, row.CompanyCode, row.Sequence, wantCompanies[i], wantSequences[i])
		}
	}

	// Groups stay whole: every run of four keeps the role order.
	for i := 0; i < len(rows); i += 4 {
		types := []string{rows[i].AccountType, rows[i+1].AccountType, rows[i+2].AccountType, rows[i+3].AccountType}
		if types[0] != "X" || types[1] != "G" || types[2] != "A" || types[3] != "G" {
			t.Errorf("group at %d has role order %v", i, types)
		}
	}

	// The input slice is left untouched.
	if entries[0].CompanyCode != "SP02" {
		t.Error("SortRows mutated its input")
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := export.SortRows([]ledger.Entry{testEntry("SP01", "ALPHA", 1)})

	if err := export.WriteCSV(path, rows); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(raw)
	if !strings.HasPrefix(content, "\ufeff") {
		t.Error("file does not start with the UTF-8 BOM")
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(content, "\ufeff")))
	r.Comma = ';'
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 5 {
		t.Fatalf("records = %d, want header + 4 rows", len(records))
	}

	header := records[0]
	// The first two columns of the full schema are dropped.
	if header[0] != "Société et/ou" {
		t.Errorf("first header = %q, want %q", header[0], "Société et/ou")
	}
	if header[1] != "Etablissement" {
		t.Errorf("second header = %q, want %q", header[1], "Etablissement")
	}
	if len(header) != 25 {
		t.Errorf("header columns = %d, want 25", len(header))
	}

	credit := records[1]
	if credit[0] != "SP01" {
		t.Errorf("company = %q, want SP01", credit[0])
	}
	// Invoice number is wrapped so spreadsheet importers keep it as text.
	if credit[10] != `="100000157963"` {
		t.Errorf("client label = %q", credit[10])
	}
	// Amounts use a decimal comma.
	if credit[14] != "1200,00" {
		t.Errorf("gross amount = %q, want 1200,00", credit[14])
	}
	// Dates use the accounting layout.
	if credit[5] != "2024/04/02" {
		t.Errorf("writing date = %q, want 2024/04/02", credit[5])
	}
	if credit[12] != "2024/05/15" {
		t.Errorf("due date = %q, want 2024/05/15", credit[12])
	}

	netDebit := records[2]
	if netDebit[14] != "1000,00" {
		t.Errorf("net amount = %q, want 1000,00", netDebit[14])
	}
	if netDebit[23] != "2024/03/01" || netDebit[24] != "2024/03/31" {
		t.Errorf("period = %q..%q", netDebit[23], netDebit[24])
	}
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	rows := export.SortRows([]ledger.Entry{testEntry("SP01", "ALPHA", 1)})

	if err := export.WriteExcel(path, rows); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if f.GetSheetName(0) != "Recap_factures_ENEDIS" {
		t.Errorf("sheet name = %q", f.GetSheetName(0))
	}

	get := func(cell string) string {
		t.Helper()
		v, err := f.GetCellValue("Recap_factures_ENEDIS", cell)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	if got := get("A1"); got != "CARDI" {
		t.Errorf("A1 = %q, want CARDI", got)
	}
	if got := get("C1"); got != "Société et/ou" {
		t.Errorf("C1 = %q", got)
	}

	// Row 2 is the credit summary of the only entry.
	if got := get("A2"); got != "30001234567" {
		t.Errorf("A2 = %q", got)
	}
	if got := get("E2"); got != "X" {
		t.Errorf("E2 = %q, want X", got)
	}
	if got := get("I2"); got != "40110000" {
		t.Errorf("I2 = %q, want 40110000", got)
	}
	if got := get("Q2"); got != "1200" {
		t.Errorf("Q2 = %q, want 1200", got)
	}
	if got := get("H2"); got != "02/04/2024" {
		t.Errorf("H2 = %q, want 02/04/2024", got)
	}

	// Row 4 is the tax base carrying the analytic plan.
	if got := get("E4"); got != "A" {
		t.Errorf("E4 = %q, want A", got)
	}
	if got := get("U4"); got != "ALPHA" {
		t.Errorf("U4 = %q, want ALPHA", got)
	}
	if got := get("V4"); got != "EBITDA_OPEX_REC" {
		t.Errorf("V4 = %q, want EBITDA_OPEX_REC", got)
	}

	// Row 5 is the VAT line.
	if got := get("I5"); got != "44561200" {
		t.Errorf("I5 = %q, want 44561200", got)
	}
	if got := get("Q5"); got != "200" {
		t.Errorf("Q5 = %q, want 200", got)
	}
}
