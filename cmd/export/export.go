// Package export writes the ledger to a backup document or CSV file.
package export

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayveeee07/spaylater-tracker/cmd/root"
	"github.com/dayveeee07/spaylater-tracker/internal/backup"
)

var (
	output string
	asCSV  bool
)

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full ledger to a backup file",
	Long: `Export all transactions, borrowers, settings and paid cycles as a
version "1.0" JSON document, or the transactions as CSV with --csv.`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default spaylater-export-YYYY-MM-DD.json)")
	Cmd.Flags().BoolVar(&asCSV, "csv", false, "Write transactions as CSV instead of the backup document")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	now := time.Now()
	s := root.OpenStore()

	if asCSV {
		transactions, err := s.LoadTransactions()
		if err != nil {
			return err
		}
		target := output
		if target == "" {
			target = fmt.Sprintf("spaylater-transactions-%s.csv", now.Format("2006-01-02"))
		}
		if err := backup.WriteTransactionsCSV(transactions, target, root.CSVDelimiter()); err != nil {
			return err
		}
		fmt.Printf("Exported %d transactions to %s\n", len(transactions), target)
		return nil
	}

	anchor, err := root.AnchorDate()
	if err != nil {
		return err
	}

	doc, err := backup.BuildDocument(s, anchor.Time)
	if err != nil {
		return err
	}

	target := output
	if target == "" {
		target = backup.DefaultExportName(now)
	}
	if err := doc.WriteFile(target); err != nil {
		return err
	}
	fmt.Printf("Exported %d transactions and %d borrowers to %s\n",
		len(doc.Transactions), len(doc.Borrowers), target)
	return nil
}
