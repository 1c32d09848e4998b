package extract_test

import (
	"errors"
	"testing"
	"time"

	"github.com/smartenergiessig/smart-turpe/internal/extract"
)

// samplePage mimics the text layer of a one-page ENEDIS invoice.
const samplePage = `ENEDIS - Electricité Réseau Distribution France
Facture N° : 100000157963
13 août 2001
Nº contrat : 30001234567
Mandat SEPA n° : ECF-000042
Votre facture pour la période du 01.07.2001 au 31.07.2001
à régler avant le 15/09/2001
Sous-Total Accès au réseau H.T. 20,00 % 1 234,56 €
`

func samplePages() []string {
	return []string{samplePage}
}

func TestContractID(t *testing.T) {
	got, err := extract.ContractID(samplePages())
	if err != nil {
		t.Fatal(err)
	}
	if got != "30001234567" {
		t.Errorf("ContractID = %q, want %q", got, "30001234567")
	}
}

func TestContractIDNotFound(t *testing.T) {
	_, err := extract.ContractID([]string{"no labels here"})
	if !errors.Is(err, extract.ErrFieldNotFound) {
		t.Errorf("error = %v, want ErrFieldNotFound", err)
	}
}

func TestContractIDLaterPage(t *testing.T) {
	pages := []string{"page one has nothing", "Nº contrat : 777\n"}
	got, err := extract.ContractID(pages)
	if err != nil {
		t.Fatal(err)
	}
	if got != "777" {
		t.Errorf("ContractID = %q, want %q", got, "777")
	}
}

func TestWritingDate(t *testing.T) {
	got, err := extract.WritingDate(samplePages())
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2001, time.August, 13, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WritingDate = %v, want %v", got, want)
	}
}

func TestWritingDatePageOneOnly(t *testing.T) {
	// A long-form date on a later page must not be picked up.
	pages := []string{"rien ici", "13 août 2001"}
	_, err := extract.WritingDate(pages)
	if !errors.Is(err, extract.ErrFieldNotFound) {
		t.Errorf("error = %v, want ErrFieldNotFound", err)
	}
}

func TestInvoiceNumber(t *testing.T) {
	got, err := extract.InvoiceNumber(samplePages())
	if err != nil {
		t.Fatal(err)
	}
	if got != "100000157963" {
		t.Errorf("InvoiceNumber = %q, want %q", got, "100000157963")
	}
}

func TestInvoiceNumberKeepsDigitsOnly(t *testing.T) {
	pages := []string{"Facture N° : FAC-2024-00042 du mois\n"}
	got, err := extract.InvoiceNumber(pages)
	if err != nil {
		t.Fatal(err)
	}
	if got != "2024" {
		t.Errorf("InvoiceNumber = %q, want first digit run %q", got, "2024")
	}
}

func TestDueDate(t *testing.T) {
	got, err := extract.DueDate(samplePages())
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2001, time.September, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DueDate = %v, want %v", got, want)
	}
}

func TestPeriod(t *testing.T) {
	start, err := extract.PeriodStart(samplePages())
	if err != nil {
		t.Fatal(err)
	}
	end, err := extract.PeriodEnd(samplePages())
	if err != nil {
		t.Fatal(err)
	}
	wantStart := time.Date(2001, time.July, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2001, time.July, 31, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("PeriodStart = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("PeriodEnd = %v, want %v", end, wantEnd)
	}
}

func TestMandateRef(t *testing.T) {
	got, err := extract.MandateRef(samplePages())
	if err != nil {
		t.Fatal(err)
	}
	if got != "ECF-000042" {
		t.Errorf("MandateRef = %q, want %q", got, "ECF-000042")
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"thousands separator", "Sous-Total Accès au réseau H.T. 20,00 % 1 234,56 €", "1234.56"},
		{"plain", "Sous-Total Accès au réseau H.T. 20,00 % 845,10 €", "845.1"},
		{"small", "Sous-Total Accès au réseau H.T. 20,00 % 9,99 €", "9.99"},
		{"negative spaced minus", "Sous-Total Accès au réseau H.T. 20,00 % -  45,67 €", "-45.67"},
		{"zero", "Sous-Total Accès au réseau H.T. 20,00 % 0,00 €", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extract.Amount([]string{tt.line})
			if err != nil {
				t.Fatalf("Amount returned error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Amount = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAmountNonBreakingSpaces(t *testing.T) {
	// PDF text layers often render the thousands separator and label
	// padding as non-breaking spaces.
	line := "Sous-Total Accès au réseau H.T.\u00a020,00\u00a0%\u00a012\u202f345,67\u00a0€"
	got, err := extract.Amount([]string{line})
	if err != nil {
		t.Fatalf("Amount returned error: %v", err)
	}
	if got.String() != "12345.67" {
		t.Errorf("Amount = %s, want 12345.67", got)
	}
}

func TestAmountNotFound(t *testing.T) {
	_, err := extract.Amount([]string{"Sous-Total Energie H.T. 5,50 % 12,00 €"})
	if !errors.Is(err, extract.ErrAmountNotFound) {
		t.Errorf("error = %v, want ErrAmountNotFound", err)
	}
}

func TestExtractorFullDocument(t *testing.T) {
	inv, err := extract.NewExtractor().Extract(samplePages())
	if err != nil {
		t.Fatal(err)
	}

	if inv.ContractID != "30001234567" {
		t.Errorf("ContractID = %q", inv.ContractID)
	}
	if inv.InvoiceNumber != "100000157963" {
		t.Errorf("InvoiceNumber = %q", inv.InvoiceNumber)
	}
	if inv.Amount.String() != "1234.56" {
		t.Errorf("Amount = %s", inv.Amount)
	}
	if inv.MandateRef != "ECF-000042" {
		t.Errorf("MandateRef = %q", inv.MandateRef)
	}
	if inv.WritingDate.Format("02/01/2006") != "13/08/2001" {
		t.Errorf("WritingDate = %v", inv.WritingDate)
	}
}

func TestExtractorToleratesMissingOptionalFields(t *testing.T) {
	// Only the amount and the period dates are required.
	page := `pour la période du 01.03.2024 au 31.03.2024
Sous-Total Accès au réseau H.T. 20,00 % 100,00 €
`
	inv, err := extract.NewExtractor().Extract([]string{page})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if inv.ContractID != "" || inv.InvoiceNumber != "" || inv.MandateRef != "" {
		t.Errorf("optional fields not empty: %+v", inv)
	}
	if !inv.WritingDate.IsZero() || !inv.DueDate.IsZero() {
		t.Errorf("optional dates not zero: %+v", inv)
	}
}

func TestExtractorFailsWithoutAmount(t *testing.T) {
	page := `Nº contrat : 42
pour la période du 01.03.2024 au 31.03.2024
`
	_, err := extract.NewExtractor().Extract([]string{page})
	if !errors.Is(err, extract.ErrAmountNotFound) {
		t.Errorf("error = %v, want ErrAmountNotFound", err)
	}
}

func TestExtractorFailsWithoutPeriod(t *testing.T) {
	page := `Sous-Total Accès au réseau H.T. 20,00 % 100,00 €`
	_, err := extract.NewExtractor().Extract([]string{page})
	if !errors.Is(err, extract.ErrFieldNotFound) {
		t.Errorf("error = %v, want ErrFieldNotFound", err)
	}

	var fieldErr *extract.FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("error %v is not a *FieldError", err)
	}
	if fieldErr.Field != "period_start" {
		t.Errorf("failing field = %q, want %q", fieldErr.Field, "period_start")
	}
}
