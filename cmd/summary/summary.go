// Package summary computes and prints the full aggregation for a cycle.
package summary

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dayveeee07/spaylater-tracker/cmd/root"
	"github.com/dayveeee07/spaylater-tracker/internal/aggregator"
	"github.com/dayveeee07/spaylater-tracker/internal/billing"
	"github.com/dayveeee07/spaylater-tracker/internal/ledgererror"
)

var format string

// Cmd represents the summary command.
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show cycle totals, per-borrower balances and credit utilization",
	Long: `Aggregate the ledger for the cycle containing the anchor date (--date,
default today): active transactions, the BNPL/installment total split,
per-borrower due/paid/balance, and used credit against the configured
limit.`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	anchor, err := root.AnchorDate()
	if err != nil {
		return err
	}

	s := root.OpenStore()
	transactions, err := s.LoadTransactions()
	if err != nil {
		return err
	}
	payments, err := s.LoadPayments()
	if err != nil {
		return err
	}
	borrowers, err := s.LoadBorrowers()
	if err != nil {
		return err
	}
	creditLimit, err := s.LoadCreditLimit()
	if err != nil {
		return err
	}
	paidCycles, err := s.LoadPaidCycles()
	if err != nil {
		return err
	}

	cycle := billing.CycleFor(anchor.Time)
	result := aggregator.Aggregate(transactions, payments, borrowers, cycle, cycle.Index(), paidCycles, creditLimit)

	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	case "text":
		printText(result)
		return nil
	default:
		return &ledgererror.ValidationError{Field: "format", Reason: "unknown format: " + format}
	}
}

func printText(s aggregator.Summary) {
	fmt.Printf("Current Cycle: %s (index %d)\n", s.Cycle.Label, s.CycleIndex)
	fmt.Printf("Due Date:      %s\n", s.Cycle.Due.Format("Jan 2, 2006"))
	if s.CyclePaid {
		fmt.Println("Status:        marked paid")
	}
	fmt.Println()

	fmt.Printf("Cycle total:        %s\n", s.CycleTotal.StringFixed(2))
	fmt.Printf("  BNPL:             %s\n", s.BnplTotal.StringFixed(2))
	fmt.Printf("  Installments:     %s\n", s.InstallmentTotal.StringFixed(2))
	fmt.Printf("Active transactions: %d\n", len(s.Active))
	fmt.Println()

	names := make([]string, 0, len(s.Borrowers))
	for name := range s.Borrowers {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BORROWER\tDUE\tPAID\tBALANCE\tITEMS")
	for _, name := range names {
		entry := s.Borrowers[name]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			name, entry.Due.StringFixed(2), entry.Paid.StringFixed(2), entry.Balance.StringFixed(2), entry.Count)
	}
	_ = w.Flush()
	fmt.Println()

	fmt.Printf("Used credit (all cycles): %s\n", s.UsedCredit.StringFixed(2))
	if s.RemainingCredit != nil {
		fmt.Printf("Credit limit:             %s\n", s.CreditLimit.StringFixed(2))
		fmt.Printf("Remaining credit:         %s\n", s.RemainingCredit.StringFixed(2))
		fmt.Printf("Utilization:              %s%%\n", s.Utilization.StringFixed(1))
	} else {
		fmt.Println("No credit limit configured.")
	}
}
