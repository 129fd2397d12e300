// Package pay handles recording borrower payments against a cycle.
package pay

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dayveeee07/spaylater-tracker/cmd/root"
	"github.com/dayveeee07/spaylater-tracker/internal/billing"
	"github.com/dayveeee07/spaylater-tracker/internal/ledgererror"
	"github.com/dayveeee07/spaylater-tracker/internal/models"
)

var (
	borrower   string
	amountStr  string
	dateStr    string
	methodStr  string
	methodNote string
)

// Cmd represents the pay command.
var Cmd = &cobra.Command{
	Use:   "pay",
	Short: "Record a borrower payment for a billing cycle",
	Long: `Record a payment counted against the cycle containing the anchor date
(--date, default today). The cycle association is fixed once recorded.`,
	RunE: payFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments recorded for a billing cycle",
	RunE:  listFunc,
}

var removeCmd = &cobra.Command{
	Use:   "remove <payment-id>",
	Short: "Delete a payment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := root.OpenStore().RemovePayment(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed payment %s\n", args[0])
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&borrower, "borrower", "b", "", "Borrower making the payment")
	Cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "Payment amount")
	Cmd.Flags().StringVar(&dateStr, "paid-on", "", "Payment date, YYYY-MM-DD (default today)")
	Cmd.Flags().StringVarP(&methodStr, "method", "m", string(models.MethodCash), "Payment method: cash, gcash, maya, bank_transfer, other")
	Cmd.Flags().StringVar(&methodNote, "note", "", "Free-text note about the method")
	_ = Cmd.MarkFlagRequired("borrower")
	_ = Cmd.MarkFlagRequired("amount")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(removeCmd)
}

func payFunc(cmd *cobra.Command, args []string) error {
	now := time.Now()

	amount, err := decimal.NewFromString(amountStr)
	if err != nil || !amount.IsPositive() {
		return &ledgererror.ValidationError{Field: "amount", Reason: "amount must be a positive number"}
	}

	method := models.PaymentMethod(methodStr)
	if !models.IsValidMethod(method) {
		return &ledgererror.ValidationError{Field: "method", Reason: "unknown payment method: " + methodStr}
	}

	paidOn := models.DateOf(now)
	if dateStr != "" {
		paidOn, err = models.ParseDate(dateStr)
		if err != nil {
			return &ledgererror.ValidationError{Field: "date", Reason: err.Error()}
		}
	}

	anchor, err := root.AnchorDate()
	if err != nil {
		return err
	}
	cycleIndex := billing.IndexFor(anchor.Time)

	payment := models.Payment{
		ID:         uuid.NewString(),
		Borrower:   borrower,
		CycleIndex: cycleIndex,
		Amount:     amount,
		Date:       paidOn,
		Method:     method,
		MethodNote: methodNote,
	}

	if err := root.OpenStore().AppendPayment(payment); err != nil {
		return err
	}

	fmt.Printf("Recorded %s from %s against cycle %d (%s)\n",
		payment.Amount.StringFixed(2), payment.Borrower, cycleIndex, payment.Method)
	return nil
}

func listFunc(cmd *cobra.Command, args []string) error {
	anchor, err := root.AnchorDate()
	if err != nil {
		return err
	}
	cycleIndex := billing.IndexFor(anchor.Time)

	payments, err := root.OpenStore().LoadPayments()
	if err != nil {
		return err
	}

	fmt.Printf("Payments for cycle %d\n\n", cycleIndex)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BORROWER\tAMOUNT\tDATE\tMETHOD\tID")
	count := 0
	for _, p := range payments {
		if p.CycleIndex != cycleIndex {
			continue
		}
		count++
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Borrower, p.Amount.StringFixed(2), p.Date.String(), p.Method, p.ID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("No payments recorded for this cycle.")
	}
	return nil
}
