// Package importcmd restores the ledger from a backup document.
package importcmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayveeee07/spaylater-tracker/cmd/root"
	"github.com/dayveeee07/spaylater-tracker/internal/backup"
)

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the ledger with a previously exported backup",
	Long: `Validate and import a backup document. The document's borrowers and
transactions fully replace the current collections; validation happens
before any state is touched, so a malformed file changes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: importFunc,
}

func importFunc(cmd *cobra.Command, args []string) error {
	doc, err := backup.ReadDocument(args[0])
	if err != nil {
		return err
	}

	if err := backup.Restore(root.OpenStore(), doc, time.Now()); err != nil {
		return err
	}

	fmt.Printf("Imported %d transactions and %d borrowers from %s\n",
		len(doc.Transactions), len(doc.Borrowers), args[0])
	return nil
}
