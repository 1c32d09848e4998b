// Package refdata loads the "Gestion SPV" reference workbook and resolves
// contract numbers to their plant and legal-entity codes.
package refdata

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/smartenergiessig/smart-turpe/internal/logger"
)

// Columns names the headers of the three columns the resolver needs.
type Columns struct {
	ContractID string // contract number column (e.g. "N° CARD I")
	OrgCode    string // plant column (e.g. "Centrale")
	Company    string // legal-entity column (e.g. "Code SPV")
}

// Mapping is the pair of codes resolved for one contract number.
type Mapping struct {
	OrgCode string
	Company string
}

type entry struct {
	contractID string
	mapping    Mapping
}

// Resolver answers contract-number lookups against the reference table
// loaded at startup. It is read-only for the duration of the run.
type Resolver struct {
	entries []entry
	log     zerolog.Logger
}

// Load reads the reference sheet once. A missing or unreadable workbook is
// fatal for the whole run, so the error is returned as-is to the caller.
func Load(path, sheet string, columns Columns) (*Resolver, error) {
	const op = "Load"

	log := logger.WithComponent("refdata")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open reference workbook %s: %w", op, path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet %q: %w", op, sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q is empty", op, sheet)
	}

	idCol, orgCol, companyCol := -1, -1, -1
	for i, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case columns.ContractID:
			idCol = i
		case columns.OrgCode:
			orgCol = i
		case columns.Company:
			companyCol = i
		}
	}
	if idCol < 0 || orgCol < 0 || companyCol < 0 {
		return nil, fmt.Errorf("%s: sheet %q is missing one of the columns %q, %q, %q",
			op, sheet, columns.ContractID, columns.OrgCode, columns.Company)
	}

	r := &Resolver{log: log}
	for _, row := range rows[1:] {
		id := NormalizeID(cell(row, idCol))
		if id == "" {
			continue
		}
		r.entries = append(r.entries, entry{
			contractID: id,
			mapping: Mapping{
				OrgCode: strings.ToUpper(strings.TrimSpace(cell(row, orgCol))),
				Company: strings.ToUpper(strings.TrimSpace(cell(row, companyCol))),
			},
		})
	}

	log.Info().
		Str("file", path).
		Str("sheet", sheet).
		Int("entries", len(r.entries)).
		Msg("Reference table loaded")

	return r, nil
}

// Resolve returns the codes of the first row whose contract number equals
// the given id, compared as text. The second return is false when there is
// no match; the invoice is still processed with empty codes.
func (r *Resolver) Resolve(contractID string) (Mapping, bool) {
	id := NormalizeID(contractID)
	for _, e := range r.entries {
		if e.contractID == id {
			return e.mapping, true
		}
	}
	return Mapping{}, false
}

// Len returns the number of usable reference rows.
func (r *Resolver) Len() int {
	return len(r.entries)
}

// NormalizeID canonicalizes a contract number for comparison as text.
// Numeric-looking ids must never be coerced to numbers; the only folding
// applied is trimming and stripping the ".0" suffix that float-typed
// spreadsheet cells render on whole numbers.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if v, ok := strings.CutSuffix(id, ".0"); ok && isDigits(v) {
		return v
	}
	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
