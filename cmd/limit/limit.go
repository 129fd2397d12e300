// Package limit shows or sets the global credit limit.
package limit

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dayveeee07/spaylater-tracker/cmd/root"
	"github.com/dayveeee07/spaylater-tracker/internal/aggregator"
	"github.com/dayveeee07/spaylater-tracker/internal/ledgererror"
)

// Cmd represents the limit command.
var Cmd = &cobra.Command{
	Use:   "limit [amount]",
	Short: "Show or set the credit limit",
	Long: `Without an argument, show the configured credit limit and current
utilization. With an amount, set the limit; zero disables it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: limitFunc,
}

func limitFunc(cmd *cobra.Command, args []string) error {
	s := root.OpenStore()

	if len(args) == 1 {
		value, err := decimal.NewFromString(args[0])
		if err != nil || value.IsNegative() {
			return &ledgererror.ValidationError{Field: "creditLimit", Reason: "credit limit must be a non-negative number"}
		}
		if err := s.SaveCreditLimit(value); err != nil {
			return err
		}
		if value.IsZero() {
			fmt.Println("Credit limit disabled")
		} else {
			fmt.Printf("Credit limit set to %s\n", value.StringFixed(2))
		}
		return nil
	}

	creditLimit, err := s.LoadCreditLimit()
	if err != nil {
		return err
	}
	if !creditLimit.IsPositive() {
		fmt.Println("No credit limit configured.")
		return nil
	}

	transactions, err := s.LoadTransactions()
	if err != nil {
		return err
	}
	paidCycles, err := s.LoadPaidCycles()
	if err != nil {
		return err
	}

	used := aggregator.UsedCredit(transactions, paidCycles)
	remaining := creditLimit.Sub(used)
	fmt.Printf("Credit limit:     %s\n", creditLimit.StringFixed(2))
	fmt.Printf("Used credit:      %s\n", used.StringFixed(2))
	fmt.Printf("Remaining credit: %s\n", remaining.StringFixed(2))
	if used.IsPositive() {
		fmt.Printf("Utilization:      %s%%\n", used.Div(creditLimit).Mul(decimal.NewFromInt(100)).StringFixed(1))
	} else {
		fmt.Println("Utilization:      0.0%")
	}
	return nil
}
