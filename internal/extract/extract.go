// Package extract pulls the atomic invoice fields out of the per-page text
// layers of an ENEDIS grid-access invoice. Every field is an ordered chain
// of candidate patterns tried page by page; the first match wins.
package extract

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/smartenergiessig/smart-turpe/internal/logger"
	"github.com/smartenergiessig/smart-turpe/pkg/models"
)

var (
	contractPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Nº contrat\s*:?\s*(.*)`),
	}

	// Long-form French date, page 1 only.
	writingDatePattern = regexp.MustCompile(`(\d{1,2}\s+(?:janvier|février|mars|avril|mai|juin|juillet|août|septembre|octobre|novembre|décembre)\s+\d{4})`)

	invoiceNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Facture N°\s*:?\s*(.*)`),
	}
	digitsPattern = regexp.MustCompile(`(\d+)`)

	dueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`le (\d{2}/\d{2}/\d{4})`),
	}

	// Pattern A anchors on the fixed 20,00 % VAT-rate label and accepts
	// thousands separators; pattern B is the fallback for small or
	// negative amounts, where the minus sign is rendered with irregular
	// spacing ahead of the digits.
	amountPattern         = regexp.MustCompile(`Sous-Total Accès au réseau H\.T\.\s+20,00\s+%\s+(\d{1,3}(?:\s?\d{3})*,\d{2})\s+€`)
	amountFallbackPattern = regexp.MustCompile(`Sous-Total Accès au réseau H\.T\.\s+20,00\s+%\s+(-\s{2})?(\d+,\d+)\s+€`)

	periodStartPatterns = []*regexp.Regexp{
		regexp.MustCompile(`pour la période du (\d{2}\.\d{2}\.\d{4})`),
	}
	periodEndPatterns = []*regexp.Regexp{
		regexp.MustCompile(`au (\d{2}\.\d{2}\.\d{4})`),
	}

	mandatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Mandat SEPA n°\s*:?\s*(.*)`),
	}
)

// Extractor applies the field rules to one document's text layers.
type Extractor struct {
	log zerolog.Logger
}

// NewExtractor returns an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{log: logger.WithComponent("extract")}
}

// Extract builds the invoice record for one document. Missing contract id,
// writing date, invoice number, due date or mandate reference are logged
// and left at their zero value; a missing or unparseable amount, period
// date, or an unrecognized month name fails the document.
func (e *Extractor) Extract(pages []string) (models.Invoice, error) {
	var inv models.Invoice

	contractID, err := ContractID(pages)
	if err != nil {
		e.log.Warn().Msg("Contract number not found")
	}
	inv.ContractID = contractID

	writingDate, err := WritingDate(pages)
	switch {
	case err == nil:
		inv.WritingDate = writingDate
	case isNotFound(err):
		e.log.Warn().Msg("Writing date not found on page 1")
	default:
		return models.Invoice{}, err
	}

	invoiceNumber, err := InvoiceNumber(pages)
	if err != nil {
		e.log.Warn().Msg("Invoice number not found")
	}
	inv.InvoiceNumber = invoiceNumber

	dueDate, err := DueDate(pages)
	if err != nil {
		e.log.Warn().Msg("Due date not found")
	}
	inv.DueDate = dueDate

	amount, err := Amount(pages)
	if err != nil {
		return models.Invoice{}, err
	}
	inv.Amount = amount

	periodStart, err := PeriodStart(pages)
	if err != nil {
		return models.Invoice{}, err
	}
	inv.PeriodStart = periodStart

	periodEnd, err := PeriodEnd(pages)
	if err != nil {
		return models.Invoice{}, err
	}
	inv.PeriodEnd = periodEnd

	mandateRef, err := MandateRef(pages)
	if err != nil {
		e.log.Debug().Msg("SEPA mandate reference not found")
	}
	inv.MandateRef = mandateRef

	return inv, nil
}

// ContractID returns the CARD-I contract number, the free text after the
// "Nº contrat" label.
func ContractID(pages []string) (string, error) {
	m, ok := firstMatch(pages, contractPatterns)
	if !ok {
		return "", newFieldError("contract_id", ErrFieldNotFound, "")
	}
	return strings.TrimSpace(m[1]), nil
}

// WritingDate returns the invoice issue date, matched as a French
// long-form date on page 1 only.
func WritingDate(pages []string) (time.Time, error) {
	if len(pages) == 0 {
		return time.Time{}, newFieldError("writing_date", ErrFieldNotFound, "")
	}
	m := writingDatePattern.FindStringSubmatch(sanitize(pages[0]))
	if m == nil {
		return time.Time{}, newFieldError("writing_date", ErrFieldNotFound, "")
	}
	t, err := ParseLongDate(m[1])
	if err != nil {
		return time.Time{}, newFieldError("writing_date", err, m[1])
	}
	return t, nil
}

// InvoiceNumber returns the digit run after the "Facture N°" label. It is
// the duplicate-detection key for the batch.
func InvoiceNumber(pages []string) (string, error) {
	m, ok := firstMatch(pages, invoiceNumberPatterns)
	if !ok {
		return "", newFieldError("invoice_number", ErrFieldNotFound, "")
	}
	digits := digitsPattern.FindStringSubmatch(strings.TrimSpace(m[1]))
	if digits == nil {
		return "", newFieldError("invoice_number", ErrFieldNotFound, m[1])
	}
	return digits[1], nil
}

// DueDate returns the payment due date, the DD/MM/YYYY date after "le".
func DueDate(pages []string) (time.Time, error) {
	m, ok := firstMatch(pages, dueDatePatterns)
	if !ok {
		return time.Time{}, newFieldError("due_date", ErrFieldNotFound, "")
	}
	t, err := parseNumericDate(m[1], "02/01/2006")
	if err != nil {
		return time.Time{}, newFieldError("due_date", err, m[1])
	}
	return t, nil
}

// Amount returns the signed pre-tax grid-access subtotal. The anchored
// pattern is tried first on each page, then the looser fallback that also
// accepts a spaced-out leading minus sign.
func Amount(pages []string) (decimal.Decimal, error) {
	for _, page := range pages {
		page = sanitize(page)

		if m := amountPattern.FindStringSubmatch(page); m != nil {
			return parseAmount(m[1])
		}
		if m := amountFallbackPattern.FindStringSubmatch(page); m != nil {
			value := m[2]
			if m[1] != "" {
				value = "-" + value
			}
			return parseAmount(value)
		}
	}
	return decimal.Decimal{}, newFieldError("amount", ErrAmountNotFound, "")
}

// PeriodStart returns the start of the billed period ("pour la période du").
func PeriodStart(pages []string) (time.Time, error) {
	return periodDate(pages, periodStartPatterns, "period_start")
}

// PeriodEnd returns the end of the billed period ("au").
func PeriodEnd(pages []string) (time.Time, error) {
	return periodDate(pages, periodEndPatterns, "period_end")
}

// MandateRef returns the free text after the "Mandat SEPA n°" label.
func MandateRef(pages []string) (string, error) {
	m, ok := firstMatch(pages, mandatePatterns)
	if !ok {
		return "", newFieldError("mandate_ref", ErrFieldNotFound, "")
	}
	return strings.TrimSpace(m[1]), nil
}

func periodDate(pages []string, patterns []*regexp.Regexp, field string) (time.Time, error) {
	m, ok := firstMatch(pages, patterns)
	if !ok {
		return time.Time{}, newFieldError(field, ErrFieldNotFound, "")
	}
	t, err := parseNumericDate(m[1], "02.01.2006")
	if err != nil {
		return time.Time{}, newFieldError(field, err, m[1])
	}
	return t, nil
}

// firstMatch scans the pages in order and tries the candidate patterns in
// order on each page, returning the submatches of the first hit.
func firstMatch(pages []string, patterns []*regexp.Regexp) ([]string, bool) {
	for _, page := range pages {
		page = sanitize(page)
		for _, re := range patterns {
			if m := re.FindStringSubmatch(page); m != nil {
				return m, true
			}
		}
	}
	return nil, false
}

// sanitize folds the non-breaking spaces PDF text layers use for thousands
// separators and label padding into regular spaces.
func sanitize(page string) string {
	page = strings.ReplaceAll(page, "\u00a0", " ")
	return strings.ReplaceAll(page, "\u202f", " ")
}

func parseAmount(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(raw, ",", ".")
	normalized = strings.ReplaceAll(normalized, " ", "")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, newFieldError("amount", err, raw)
	}
	return d, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrFieldNotFound)
}
