// Package export sorts the accumulated ledger rows and writes the two run
// artifacts: the recap spreadsheet and the semicolon-delimited import file.
package export

import (
	"sort"
	"strconv"
	"time"

	"github.com/smartenergiessig/smart-turpe/internal/ledger"
)

// SheetName is the single sheet of the recap spreadsheet.
const SheetName = "Recap_factures_ENEDIS"

// companyColumn is the 0-based index of "Société et/ou"; the delimited
// export keeps the columns from there onward.
const companyColumn = 2

// headers is the export schema, in column order.
var headers = []string{
	"CARDI",
	"Mapping",
	"Société et/ou",
	"Etablissement",
	"Type de compte",
	"Journal",
	"Type de pièce",
	"Date écriture",
	"Code compte",
	"Code tiers (valeur par défaut)",
	"Profil de TVA",
	"N° pièce",
	"Libellé pièce (nom du client)",
	"Libellé écriture",
	"Date d'échéance",
	"Sens",
	"Montant EUR",
	"Montant DEVISE(par défaut)",
	"DEVISE (par défaut)",
	"Mode reg (par défaut)",
	"PLAN 1",
	"PLAN 2",
	"Axe analytique",
	"Champs supplémentaire ESM",
	"Champs supplémentaire ESM_",
	"Date Début",
	"Date Fin",
}

// BaseName returns the artifact base name for a run date, e.g.
// "Facture ENEDIS - Traitement du 03-10-2024". The run date in the name
// keeps re-runs on different days from overwriting each other.
func BaseName(now time.Time) string {
	return "Facture ENEDIS - Traitement du " + now.Format("02-01-2006")
}

// SortRows orders the entries by company code then sequence number, both
// ascending, and flattens them. Whole entries are sorted, never flat rows,
// so the four roles of a group always stay in order.
func SortRows(entries []ledger.Entry) []ledger.Row {
	sorted := make([]ledger.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CompanyCode != sorted[j].CompanyCode {
			return sorted[i].CompanyCode < sorted[j].CompanyCode
		}
		return sorted[i].Sequence < sorted[j].Sequence
	})

	rows := make([]ledger.Row, 0, 4*len(sorted))
	for _, e := range sorted {
		rows = append(rows, e.Rows()...)
	}
	return rows
}

// formatDate renders a date with the given layout, or an empty cell for
// the zero value.
func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

// textCells renders a row as strings with the given date layout. Used for
// the delimited export and for spreadsheet column sizing.
func textCells(r ledger.Row, dateLayout string) []string {
	cells := make([]string, len(headers))
	cells[0] = r.ContractID
	cells[1] = r.OrgCode
	cells[2] = r.CompanyCode
	cells[3] = r.Establishment
	cells[4] = r.AccountType
	cells[5] = r.Journal
	cells[6] = r.DocumentType
	cells[7] = formatDate(r.WritingDate, dateLayout)
	if r.AccountCode != 0 {
		cells[8] = strconv.Itoa(r.AccountCode)
	}
	cells[9] = r.Counterparty
	cells[10] = r.VATProfile
	cells[11] = strconv.Itoa(r.Sequence)
	cells[12] = r.ClientLabel
	cells[13] = r.EntryLabel
	cells[14] = formatDate(r.DueDate, dateLayout)
	cells[15] = r.Direction
	cells[16] = r.Amount.StringFixed(2)
	cells[20] = r.Plan1
	cells[21] = r.Plan2
	cells[25] = formatDate(r.PeriodStart, dateLayout)
	cells[26] = formatDate(r.PeriodEnd, dateLayout)
	return cells
}
