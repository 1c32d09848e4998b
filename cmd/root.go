package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartenergiessig/smart-turpe/internal/config"
	"github.com/smartenergiessig/smart-turpe/internal/logger"
)

var version = "1.0.0"

// cfg holds the run configuration, injected by main through Execute.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "smart-turpe",
	Short: "Convert ENEDIS grid-access invoices into an accounting ledger export",
	Long: `smart-turpe reads the ENEDIS (TURPE) invoices of a folder, resolves each
contract number against the "Gestion SPV" reference workbook, expands every
invoice into its four accounting lines (supplier credit, net debit, tax base,
deductible VAT), and writes a recap spreadsheet plus a semicolon-delimited
file ready for import into the accounting software.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Use 'smart-turpe process [folder]' to run a batch.")
		fmt.Println("Use --help to see available commands and options.")
	},
}

// Execute runs the CLI with the loaded configuration.
func Execute(c *config.Config) {
	cfg = c

	log := logger.WithComponent("cmd")
	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
