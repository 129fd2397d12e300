// Package borrower handles managing the borrower list.
package borrower

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayveeee07/spaylater-tracker/cmd/root"
)

// Cmd represents the borrower command.
var Cmd = &cobra.Command{
	Use:   "borrower",
	Short: "Manage borrowers",
	Long: `Manage the borrower list. "Personal" always exists and cannot be
removed; it is the fallback for transactions without an explicit borrower.`,
	RunE: listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a borrower",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.OpenStore().AddBorrower(args[0]); err != nil {
			return err
		}
		fmt.Printf("Added borrower %s\n", args[0])
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a borrower",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.OpenStore().RemoveBorrower(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed borrower %s\n", args[0])
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List borrowers",
	RunE:  listFunc,
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(listCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	borrowers, err := root.OpenStore().LoadBorrowers()
	if err != nil {
		return err
	}
	for _, name := range borrowers {
		fmt.Println(name)
	}
	return nil
}
