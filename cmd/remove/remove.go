// Package remove handles deleting a transaction.
package remove

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayveeee07/spaylater-tracker/cmd/root"
)

// Cmd represents the remove command.
var Cmd = &cobra.Command{
	Use:   "remove <transaction-id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.OpenStore().RemoveTransaction(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed transaction %s\n", args[0])
		return nil
	},
}
