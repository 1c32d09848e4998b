package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/smartenergiessig/smart-turpe/internal/ledger"
)

// csvDateLayout is the date form the accounting import expects.
const csvDateLayout = "2006/01/02"

// amountColumn is the 0-based index of "Montant EUR" in the full schema.
const amountColumn = 16

// WriteCSV writes the delimited import file: UTF-8 with BOM, semicolon
// separator, columns from the company code onward, decimal commas in the
// amount column, and the invoice number wrapped as a formula-escaped
// string literal so spreadsheet importers don't rewrite it in scientific
// notation.
func WriteCSV(path string, rows []ledger.Row) error {
	const op = "WriteCSV"

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: failed to create %s: %w", op, path, err)
	}
	defer f.Close()

	// UTF-8 signature so the import software decodes accents correctly.
	if _, err := f.WriteString("\ufeff"); err != nil {
		return fmt.Errorf("%s: failed to write BOM: %w", op, err)
	}

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(headers[companyColumn:]); err != nil {
		return fmt.Errorf("%s: failed to write header: %w", op, err)
	}

	for _, row := range rows {
		cells := textCells(row, csvDateLayout)
		cells[amountColumn] = strings.ReplaceAll(cells[amountColumn], ".", ",")
		cells[clientLabelColumn] = `="` + cells[clientLabelColumn] + `"`
		if err := w.Write(cells[companyColumn:]); err != nil {
			return fmt.Errorf("%s: failed to write row: %w", op, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%s: failed to flush: %w", op, err)
	}
	return nil
}
