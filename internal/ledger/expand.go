package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartenergiessig/smart-turpe/pkg/models"
)

var vatRate = decimal.RequireFromString("0.20")

// Expand produces the four ledger rows of one accepted invoice. orgCode and
// companyCode may be empty when the reference lookup found no match; the
// rows are still produced with the corresponding cells blank.
func Expand(inv models.Invoice, orgCode, companyCode string, seq int) Entry {
	base := Row{
		ContractID:   inv.ContractID,
		OrgCode:      orgCode,
		CompanyCode:  companyCode,
		Journal:      Journal,
		DocumentType: DocumentType,
		WritingDate:  inv.WritingDate,
		Sequence:     seq,
		ClientLabel:  inv.InvoiceNumber,
		EntryLabel:   EntryLabel(inv, orgCode),
	}
	// The establishment is derived from the legal-entity code and stays
	// blank when the code is unresolved.
	if companyCode != "" {
		base.Establishment = "SIEGE-" + companyCode
	}

	taxBase := inv.Amount
	tax := taxBase.Mul(vatRate).Round(2)
	net := taxBase
	gross := net.Add(tax)

	creditSummary := base
	creditSummary.AccountType = "X"
	creditSummary.AccountCode = AccountSupplier
	creditSummary.Counterparty = Counterparty
	creditSummary.DueDate = inv.DueDate
	creditSummary.Direction = "C"
	creditSummary.Amount = gross

	netDebit := base
	netDebit.AccountType = "G"
	netDebit.AccountCode = AccountGridFees
	netDebit.VATProfile = VATProfile
	netDebit.Direction = "D"
	netDebit.Amount = net
	netDebit.PeriodStart = inv.PeriodStart
	netDebit.PeriodEnd = inv.PeriodEnd

	taxBaseRow := base
	taxBaseRow.AccountType = "A"
	taxBaseRow.AccountCode = AccountGridFees
	taxBaseRow.Direction = "D"
	taxBaseRow.Amount = taxBase
	taxBaseRow.Plan1 = orgCode
	taxBaseRow.Plan2 = Plan2OpexRec

	taxAmount := base
	taxAmount.AccountType = "G"
	taxAmount.AccountCode = AccountVAT
	taxAmount.Direction = "D"
	taxAmount.Amount = tax

	return Entry{
		Sequence:      seq,
		CompanyCode:   companyCode,
		CreditSummary: creditSummary,
		NetDebit:      netDebit,
		TaxBase:       taxBaseRow,
		TaxAmount:     taxAmount,
	}
}

// EntryLabel composes the "Libellé écriture" shared by the four rows:
// counterparty, month/year of the period start and plant code, with the
// SEPA mandate reference appended only for non-negative amounts.
func EntryLabel(inv models.Invoice, orgCode string) string {
	label := Counterparty + "-" + MonthYear(inv.PeriodStart) + "-" + orgCode
	if inv.Amount.Sign() >= 0 {
		label += "-" + inv.MandateRef
	}
	return label
}

// MonthYear renders a date as "M/YYYY" with no leading zero on the month.
func MonthYear(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Year())
}
