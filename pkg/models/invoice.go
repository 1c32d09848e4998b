package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice holds the fields extracted from one ENEDIS grid-access invoice.
// It is built once per document and is immutable afterwards; the ledger
// expansion consumes it and the record is discarded.
type Invoice struct {
	// ContractID is the CARD-I contract number printed on the invoice,
	// used as the join key into the reference workbook. Empty when the
	// label was not found (tolerated downstream).
	ContractID string

	// WritingDate is the invoice issue date ("Date écriture"), taken from
	// the French long-form date on page 1. Zero when not found.
	WritingDate time.Time

	// InvoiceNumber is the numeric run after "Facture N°". It doubles as
	// the duplicate-detection key across the batch.
	InvoiceNumber string

	// DueDate is the payment due date ("Date d'échéance"). Zero when not
	// found.
	DueDate time.Time

	// Amount is the pre-tax grid-access subtotal, signed. Required.
	Amount decimal.Decimal

	// PeriodStart and PeriodEnd bound the billed delivery period. Required.
	PeriodStart time.Time
	PeriodEnd   time.Time

	// MandateRef is the SEPA mandate reference, appended to the entry
	// label for non-negative amounts. Empty when not found.
	MandateRef string
}
