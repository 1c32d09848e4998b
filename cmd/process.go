package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smartenergiessig/smart-turpe/internal/batch"
	"github.com/smartenergiessig/smart-turpe/internal/export"
	"github.com/smartenergiessig/smart-turpe/internal/logger"
	"github.com/smartenergiessig/smart-turpe/internal/pdftext"
	"github.com/smartenergiessig/smart-turpe/internal/refdata"
)

var processCmd = &cobra.Command{
	Use:   "process [folder]",
	Short: "Process a folder of ENEDIS invoices into the ledger export",
	Long: `Process every PDF invoice of the folder (non-recursive), resolve each
contract number against the reference workbook, expand each accepted invoice
into its four accounting lines, and write the two run artifacts next to the
inputs: a recap spreadsheet and a semicolon-delimited import file, both named
after the run date.

Duplicated invoice numbers and zero-amount invoices are skipped; a document
that cannot be read or extracted is logged and skipped without aborting the
batch. A missing reference workbook aborts the run before any document is
processed.

Configuration (environment variables, .env supported):
  REFERENCE_FILE            - Reference workbook path (default: Gestion SPV.xlsx)
  REFERENCE_SHEET           - Reference sheet name (default: PCARD.I)
  REFERENCE_ID_COLUMN       - Contract number column (default: N° CARD I)
  REFERENCE_ORG_COLUMN      - Plant column (default: Centrale)
  REFERENCE_COMPANY_COLUMN  - Legal-entity column (default: Code SPV)`,
	Example: `  # Process the current folder with the reference workbook beside it
  smart-turpe process

  # Process another folder with an explicit reference workbook
  smart-turpe process ./factures --reference "I:/Exploitation/Gestion SPV.xlsx"

  # Extract and expand without writing the artifacts
  smart-turpe process ./factures --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().String("reference", "", "Reference workbook path (overrides REFERENCE_FILE)")
	processCmd.Flags().String("sheet", "", "Reference sheet name (overrides REFERENCE_SHEET)")
	processCmd.Flags().Bool("dry-run", false, "Process invoices but don't write the artifacts")
	processCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging for this run")
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process")

	folder := "."
	if len(args) == 1 {
		folder = args[0]
	}
	referencePath, _ := cmd.Flags().GetString("reference")
	referenceSheet, _ := cmd.Flags().GetString("sheet")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if referencePath == "" {
		referencePath = cfg.ReferenceFile
		if !filepath.IsAbs(referencePath) {
			referencePath = filepath.Join(folder, referencePath)
		}
	}
	if referenceSheet == "" {
		referenceSheet = cfg.ReferenceSheet
	}

	folderInfo, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("folder not found: %s", folder)
	}
	if !folderInfo.IsDir() {
		return fmt.Errorf("path is not a directory: %s", folder)
	}

	log.Info().
		Str("folder", folder).
		Str("reference", referencePath).
		Str("sheet", referenceSheet).
		Bool("dry_run", dryRun).
		Msg("Starting invoice batch")

	// A missing reference workbook is fatal: no invoice is processed.
	resolver, err := refdata.Load(referencePath, referenceSheet, refdata.Columns{
		ContractID: cfg.ReferenceIDColumn,
		OrgCode:    cfg.ReferenceOrgColumn,
		Company:    cfg.ReferenceCompanyColumn,
	})
	if err != nil {
		return fmt.Errorf("le fichier %s est introuvable ou illisible, vérifiez le nom de votre fichier: %w",
			filepath.Base(referencePath), err)
	}

	processor := batch.New(pdftext.NewReader(), resolver)
	result, err := processor.Run(folder)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("            TRAITEMENT DES FACTURES ENEDIS")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Factures trouvées:   %d\n", result.Total)
	fmt.Printf("Factures traitées:   %d\n", result.Accepted)
	if result.Duplicates > 0 {
		fmt.Printf("Doublons ignorés:    %d\n", result.Duplicates)
	}
	if result.ZeroAmount > 0 {
		fmt.Printf("Montants nuls:       %d\n", result.ZeroAmount)
	}
	if result.Failed > 0 {
		fmt.Printf("Erreurs de lecture:  %d\n", result.Failed)
	}

	if dryRun {
		fmt.Println("Mode: dry run, aucun fichier écrit")
		fmt.Println(strings.Repeat("=", 60))
		return nil
	}

	rows := export.SortRows(result.Entries)
	baseName := export.BaseName(time.Now())
	xlsxPath := filepath.Join(folder, baseName+".xlsx")
	csvPath := filepath.Join(folder, baseName+".csv")

	if err := export.WriteExcel(xlsxPath, rows); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	if err := export.WriteCSV(csvPath, rows); err != nil {
		return fmt.Errorf("failed to write delimited file: %w", err)
	}

	fmt.Printf("Fichier Excel:       %s\n", xlsxPath)
	fmt.Printf("Fichier CSV:         %s\n", csvPath)
	fmt.Println(strings.Repeat("=", 60))

	log.Info().
		Int("rows", len(rows)).
		Str("xlsx", xlsxPath).
		Str("csv", csvPath).
		Msg("Invoice batch completed")

	return nil
}
