// Package cycle shows billing cycle boundaries and paid markings.
package cycle

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayveeee07/spaylater-tracker/cmd/root"
	"github.com/dayveeee07/spaylater-tracker/internal/billing"
)

var offset int

// Cmd represents the cycle command.
var Cmd = &cobra.Command{
	Use:   "cycle",
	Short: "Show the billing cycle for a date",
	Long: `Show the billing cycle containing the anchor date (--date, default
today): start, end, due date, label and cycle index. Use --offset to
navigate to earlier or later cycles.`,
	RunE: showFunc,
}

var togglePaidCmd = &cobra.Command{
	Use:   "toggle-paid",
	Short: "Mark the cycle fully settled, or unmark it",
	RunE:  togglePaidFunc,
}

func init() {
	Cmd.PersistentFlags().IntVar(&offset, "offset", 0, "Cycles to move from the anchor date (negative for past)")
	Cmd.AddCommand(togglePaidCmd)
}

func resolveCycle() (billing.Cycle, error) {
	anchor, err := root.AnchorDate()
	if err != nil {
		return billing.Cycle{}, err
	}
	return billing.Shift(anchor.Time, offset), nil
}

func showFunc(cmd *cobra.Command, args []string) error {
	c, err := resolveCycle()
	if err != nil {
		return err
	}

	paidCycles, err := root.OpenStore().LoadPaidCycles()
	if err != nil {
		return err
	}
	paid := false
	for _, index := range paidCycles {
		if index == c.Index() {
			paid = true
			break
		}
	}

	fmt.Printf("Cycle:  %s\n", c.Label)
	fmt.Printf("Start:  %s\n", c.Start.Format("2006-01-02"))
	fmt.Printf("End:    %s\n", c.End.Format("2006-01-02"))
	fmt.Printf("Due:    %s\n", c.Due.Format("2006-01-02"))
	fmt.Printf("Index:  %d\n", c.Index())
	fmt.Printf("Paid:   %t\n", paid)
	return nil
}

func togglePaidFunc(cmd *cobra.Command, args []string) error {
	c, err := resolveCycle()
	if err != nil {
		return err
	}

	paid, err := root.OpenStore().TogglePaidCycle(c.Index())
	if err != nil {
		return err
	}
	if paid {
		fmt.Printf("Marked cycle %d (%s) as paid\n", c.Index(), c.Label)
	} else {
		fmt.Printf("Unmarked cycle %d (%s)\n", c.Index(), c.Label)
	}
	return nil
}
