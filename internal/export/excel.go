package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/smartenergiessig/smart-turpe/internal/ledger"
)

// excelDateLayout renders dates the way the accounting team reads them.
const excelDateLayout = "02/01/2006"

// WriteExcel writes the recap spreadsheet: styled header row, auto-sized
// columns, the invoice-number column forced to integer display and the
// company-code column forced to text so leading zeros survive.
func WriteExcel(path string, rows []ledger.Row) error {
	const op = "WriteExcel"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("%s: failed to name sheet: %w", op, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D7E4BC"}},
		Border: []excelize.Border{
			{Type: "left", Style: 1, Color: "000000"},
			{Type: "right", Style: 1, Color: "000000"},
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 1, Color: "000000"},
		},
	})
	if err != nil {
		return fmt.Errorf("%s: failed to create header style: %w", op, err)
	}

	integerFmt := "0"
	integerStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &integerFmt})
	if err != nil {
		return fmt.Errorf("%s: failed to create integer style: %w", op, err)
	}

	// Built-in format 49 is "@" (text).
	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return fmt.Errorf("%s: failed to create text style: %w", op, err)
	}

	widths := make([]int, len(headers))
	for col, header := range headers {
		widths[col] = len([]rune(header))
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return fmt.Errorf("%s: failed to write header: %w", op, err)
		}
	}

	for i, row := range rows {
		cells := excelCells(row)
		rendered := textCells(row, excelDateLayout)
		for col, value := range cells {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("%s: failed to write row %d: %w", op, i+2, err)
			}
		}
		for col, text := range rendered {
			if n := len([]rune(text)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := f.SetColWidth(SheetName, name, name, float64(width+2)); err != nil {
			return fmt.Errorf("%s: failed to set column width: %w", op, err)
		}
	}

	// Invoice-number column as plain integers, company column as text.
	if err := setColStyle(f, clientLabelColumn, integerStyle, len(rows)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := setColStyle(f, companyColumn, textStyle, len(rows)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Header style last so it wins over the column styles on row 1.
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetName, first, last, headerStyle); err != nil {
		return fmt.Errorf("%s: failed to style header: %w", op, err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%s: failed to save %s: %w", op, path, err)
	}
	return nil
}

// clientLabelColumn is the 0-based index of "Libellé pièce (nom du client)".
const clientLabelColumn = 12

// excelCells renders a row as typed spreadsheet values; nil means the cell
// stays empty.
func excelCells(r ledger.Row) []interface{} {
	cells := make([]interface{}, len(headers))
	put := func(i int, s string) {
		if s != "" {
			cells[i] = s
		}
	}
	put(0, r.ContractID)
	put(1, r.OrgCode)
	put(2, r.CompanyCode)
	put(3, r.Establishment)
	put(4, r.AccountType)
	put(5, r.Journal)
	put(6, r.DocumentType)
	put(7, formatDate(r.WritingDate, excelDateLayout))
	if r.AccountCode != 0 {
		cells[8] = r.AccountCode
	}
	put(9, r.Counterparty)
	put(10, r.VATProfile)
	cells[11] = r.Sequence
	// Numeric invoice numbers are written as numbers so the integer
	// display format applies; anything else stays text.
	if n, err := strconv.ParseInt(r.ClientLabel, 10, 64); err == nil {
		cells[12] = n
	} else {
		put(12, r.ClientLabel)
	}
	put(13, r.EntryLabel)
	put(14, formatDate(r.DueDate, excelDateLayout))
	put(15, r.Direction)
	cells[16], _ = r.Amount.Float64()
	put(20, r.Plan1)
	put(21, r.Plan2)
	put(25, formatDate(r.PeriodStart, excelDateLayout))
	put(26, formatDate(r.PeriodEnd, excelDateLayout))
	return cells
}

// setColStyle styles the data cells of one 0-based column.
func setColStyle(f *excelize.File, col, style, rowCount int) error {
	if rowCount == 0 {
		return nil
	}
	first, err := excelize.CoordinatesToCellName(col+1, 2)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(col+1, rowCount+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, first, last, style)
}
