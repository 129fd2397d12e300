// Package list shows the transactions active in a billing cycle.
package list

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dayveeee07/spaylater-tracker/cmd/root"
	"github.com/dayveeee07/spaylater-tracker/internal/aggregator"
	"github.com/dayveeee07/spaylater-tracker/internal/allocator"
	"github.com/dayveeee07/spaylater-tracker/internal/billing"
	"github.com/dayveeee07/spaylater-tracker/internal/models"
)

var showAll bool

// Cmd represents the list command.
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions active in a billing cycle",
	Long: `List the transactions active in the cycle containing the anchor date
(--date, default today), newest first, with their per-cycle amounts.
Use --all to list every recorded transaction instead.`,
	RunE: listFunc,
}

func init() {
	Cmd.Flags().BoolVar(&showAll, "all", false, "List every transaction regardless of cycle")
}

func listFunc(cmd *cobra.Command, args []string) error {
	anchor, err := root.AnchorDate()
	if err != nil {
		return err
	}

	transactions, err := root.OpenStore().LoadTransactions()
	if err != nil {
		return err
	}

	cycle := billing.CycleFor(anchor.Time)
	listed := transactions
	if !showAll {
		listed = aggregator.ActiveTransactions(transactions, cycle, cycle.Index())
		fmt.Printf("Cycle %s (index %d, due %s)\n\n", cycle.Label, cycle.Index(), cycle.Due.Format("Jan 2, 2006"))
	}

	if len(listed) == 0 {
		fmt.Println("No transactions.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tPER CYCLE\tPLAN\tBORROWER\tORDER DATE\tID")
	for _, tx := range listed {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ProductName,
			allocator.AmountForCycle(tx).StringFixed(2),
			models.PlanLabels[tx.PaymentPlan],
			ownerColumn(tx),
			tx.OrderDate.String(),
			tx.ID,
		)
	}
	return w.Flush()
}

func ownerColumn(tx models.Transaction) string {
	if !tx.IsShared() {
		return tx.Borrower
	}
	parts := make([]string, len(tx.Shares))
	for i, share := range tx.Shares {
		parts[i] = fmt.Sprintf("%s %s", share.Borrower, share.AmountPerCycle.StringFixed(2))
	}
	return "shared: " + strings.Join(parts, ", ")
}
