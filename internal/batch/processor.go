// Package batch walks one folder of invoice PDFs and accumulates the
// ledger rows of every accepted invoice.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/smartenergiessig/smart-turpe/internal/extract"
	"github.com/smartenergiessig/smart-turpe/internal/ledger"
	"github.com/smartenergiessig/smart-turpe/internal/logger"
	"github.com/smartenergiessig/smart-turpe/internal/refdata"
	"github.com/smartenergiessig/smart-turpe/pkg/models"
)

// TextReader yields the per-page text layers of one document.
type TextReader interface {
	ReadPages(path string) ([]string, error)
}

// Resolver answers contract-number lookups against the reference table.
type Resolver interface {
	Resolve(contractID string) (refdata.Mapping, bool)
}

// Result is the outcome of one batch run.
type Result struct {
	Entries []ledger.Entry

	Total      int // documents found
	Accepted   int // invoices expanded into rows
	Duplicates int // skipped: invoice number already accepted
	ZeroAmount int // skipped: amount to settle is zero
	Failed     int // skipped: extraction or read error
}

// Processor coordinates the extractor, the resolver and the expander over
// the documents of one folder. It owns the only mutable state of a run,
// the growing entry list inside Result.
type Processor struct {
	reader    TextReader
	extractor *extract.Extractor
	resolver  Resolver
	log       zerolog.Logger
}

// New returns a Processor reading documents through reader and resolving
// contract numbers through resolver.
func New(reader TextReader, resolver Resolver) *Processor {
	return &Processor{
		reader:    reader,
		extractor: extract.NewExtractor(),
		resolver:  resolver,
		log:       logger.WithComponent("batch"),
	}
}

// Run processes every PDF of the folder, non-recursively, in file-name
// order. A bad document never aborts the batch: it is logged and skipped.
// The sequence number is 1-based over accepted invoices only.
func (p *Processor) Run(folder string) (*Result, error) {
	const op = "Run"

	files, err := listPDFs(folder)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list %s: %w", op, folder, err)
	}

	result := &Result{Total: len(files)}
	seen := make(map[string]bool)

	for _, file := range files {
		name := filepath.Base(file)
		p.log.Info().Str("file", name).Msg("Processing invoice")

		inv, err := p.extractInvoice(file)
		if err != nil {
			result.Failed++
			p.log.Error().
				Err(err).
				Str("file", name).
				Msg("Invoice skipped")
			continue
		}

		// Skip conditions, in order: duplicate then zero amount. The
		// unparseable-amount case already failed extraction above.
		if seen[inv.InvoiceNumber] {
			result.Duplicates++
			p.log.Warn().
				Str("file", name).
				Str("invoice_number", inv.InvoiceNumber).
				Msg("Duplicate invoice number, skipping")
			continue
		}
		if inv.Amount.IsZero() {
			result.ZeroAmount++
			p.log.Warn().
				Str("file", name).
				Str("invoice_number", inv.InvoiceNumber).
				Msg("Amount to settle is zero, skipping")
			continue
		}

		mapping, ok := p.resolver.Resolve(inv.ContractID)
		if !ok {
			p.log.Warn().
				Str("file", name).
				Str("contract_id", inv.ContractID).
				Msg("No match for contract number in reference table")
		}

		result.Accepted++
		seen[inv.InvoiceNumber] = true
		entry := ledger.Expand(inv, mapping.OrgCode, mapping.Company, result.Accepted)
		result.Entries = append(result.Entries, entry)

		p.log.Info().
			Str("file", name).
			Int("sequence", entry.Sequence).
			Str("company", entry.CompanyCode).
			Str("amount", inv.Amount.StringFixed(2)).
			Msg("Invoice expanded")
	}

	p.log.Info().
		Int("total", result.Total).
		Int("accepted", result.Accepted).
		Int("duplicates", result.Duplicates).
		Int("zero_amount", result.ZeroAmount).
		Int("failed", result.Failed).
		Msg("Batch completed")

	return result, nil
}

func (p *Processor) extractInvoice(file string) (models.Invoice, error) {
	pages, err := p.reader.ReadPages(file)
	if err != nil {
		return models.Invoice{}, err
	}
	return p.extractor.Extract(pages)
}

// listPDFs returns the PDF files of the folder, non-recursive, sorted by
// name so sequence numbers are stable across filesystems.
func listPDFs(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(folder, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
