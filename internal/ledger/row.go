// Package ledger models the accounting export rows and the fixed four-line
// decomposition of one grid-access invoice.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fixed per-row metadata of the ACH purchase journal decomposition.
const (
	Journal      = "ACH"
	DocumentType = "FF"
	Counterparty = "ERDF"
	VATProfile   = "TVA Déd. 20% (débits)"
	Plan2OpexRec = "EBITDA_OPEX_REC"

	AccountSupplier = 40110000
	AccountGridFees = 60410000
	AccountVAT      = 44561200
)

// Row is one line of the accounting export. Fields that stay empty for a
// given role keep their zero value and render as empty cells.
type Row struct {
	ContractID    string          // CARDI
	OrgCode       string          // Mapping
	CompanyCode   string          // Société et/ou
	Establishment string          // Etablissement
	AccountType   string          // Type de compte: X, G or A
	Journal       string          // Journal
	DocumentType  string          // Type de pièce
	WritingDate   time.Time       // Date écriture
	AccountCode   int             // Code compte
	Counterparty  string          // Code tiers (valeur par défaut)
	VATProfile    string          // Profil de TVA
	Sequence      int             // N° pièce
	ClientLabel   string          // Libellé pièce (nom du client)
	EntryLabel    string          // Libellé écriture
	DueDate       time.Time       // Date d'échéance
	Direction     string          // Sens: C or D
	Amount        decimal.Decimal // Montant EUR
	Plan1         string          // PLAN 1
	Plan2         string          // PLAN 2
	PeriodStart   time.Time       // Date Début
	PeriodEnd     time.Time       // Date Fin
}

// Entry is the four-line decomposition of one accepted invoice. The roles
// are fixed: the supplier credit carries the gross amount, the net debit
// and the tax base carry the pre-tax amount, and the VAT line carries the
// 20% tax. All four share the sequence number, contract id and labels.
type Entry struct {
	Sequence      int
	CompanyCode   string
	CreditSummary Row // account type X, supplier account, sens C
	NetDebit      Row // account type G, grid-fees account, sens D
	TaxBase       Row // account type A, grid-fees account, sens D
	TaxAmount     Row // account type G, deductible-VAT account, sens D
}

// Rows flattens the entry into export order: credit summary, net debit,
// tax base, tax amount.
func (e Entry) Rows() []Row {
	return []Row{e.CreditSummary, e.NetDebit, e.TaxBase, e.TaxAmount}
}
