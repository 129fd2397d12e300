// Package add handles recording a new transaction.
package add

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dayveeee07/spaylater-tracker/cmd/root"
	"github.com/dayveeee07/spaylater-tracker/internal/allocator"
	"github.com/dayveeee07/spaylater-tracker/internal/ledgererror"
	"github.com/dayveeee07/spaylater-tracker/internal/models"
)

var (
	productName    string
	description    string
	amountStr      string
	orderDateStr   string
	planStr        string
	monthlyStr     string
	borrower       string
	shareSpecs     []string
	splitBorrowers []string
)

// Cmd represents the add command.
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new purchase",
	Long: `Record a purchase under a payment plan. Use --share Name=Amount
(repeatable) for a shared transaction, or --split-evenly Name (repeatable)
to divide the per-cycle amount evenly across borrowers.`,
	RunE: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&productName, "product", "p", "", "Product name")
	Cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	Cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "Total principal")
	Cmd.Flags().StringVarP(&orderDateStr, "order-date", "o", "", "Order date, YYYY-MM-DD (default today)")
	Cmd.Flags().StringVar(&planStr, "plan", string(models.PlanSinglePay), "Payment plan: bnpl, 3months, 6months, 12months")
	Cmd.Flags().StringVarP(&monthlyStr, "monthly", "m", "", "Monthly payment for installment plans")
	Cmd.Flags().StringVarP(&borrower, "borrower", "b", models.DefaultBorrower, "Responsible borrower for a single transaction")
	Cmd.Flags().StringArrayVar(&shareSpecs, "share", nil, "Shared split row as Name=Amount (repeatable)")
	Cmd.Flags().StringArrayVar(&splitBorrowers, "split-evenly", nil, "Split the per-cycle amount evenly across these borrowers (repeatable)")
	_ = Cmd.MarkFlagRequired("product")
	_ = Cmd.MarkFlagRequired("amount")
}

func addFunc(cmd *cobra.Command, args []string) error {
	now := time.Now()

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return &ledgererror.ValidationError{Field: "amount", Reason: "amount must be a number"}
	}

	orderDate := models.DateOf(now)
	if orderDateStr != "" {
		orderDate, err = models.ParseDate(orderDateStr)
		if err != nil {
			return &ledgererror.ValidationError{Field: "orderDate", Reason: err.Error()}
		}
	}

	monthly := decimal.Zero
	if monthlyStr != "" {
		monthly, err = decimal.NewFromString(monthlyStr)
		if err != nil {
			return &ledgererror.ValidationError{Field: "monthlyPayment", Reason: "monthly payment must be a number"}
		}
	}

	input := allocator.Input{
		ProductName:    productName,
		Description:    description,
		Amount:         amount,
		OrderDate:      orderDate,
		PaymentPlan:    models.PaymentPlan(planStr),
		MonthlyPayment: monthly,
		Mode:           models.ModeSingle,
		Borrower:       borrower,
	}

	shares, err := buildShares(amount, monthly, models.PaymentPlan(planStr))
	if err != nil {
		return err
	}
	if len(shares) > 0 {
		input.Mode = models.ModeShared
		input.Shares = shares
	}

	tx, err := allocator.Normalize(input, now)
	if err != nil {
		return err
	}

	if err := root.OpenStore().AppendTransaction(tx); err != nil {
		return err
	}

	fmt.Printf("Recorded %s (%s) for %s, %s\n",
		tx.ProductName, tx.Amount.StringFixed(2), describeOwner(tx), models.PlanLabels[tx.PaymentPlan])
	fmt.Printf("Active cycles: %d through %d\n", tx.StartCycleIndex, tx.StartCycleIndex+tx.TotalMonths-1)

	if preview := models.ComputeInterestPreview(tx.Amount, tx.MonthlyPayment, tx.PaymentPlan); preview != nil {
		fmt.Printf("Total over plan: %s (interest %s, %s%%)\n",
			preview.TotalPaid.StringFixed(2), preview.TotalInterest.StringFixed(2), preview.Percent.StringFixed(1))
	}
	return nil
}

// buildShares assembles the shared split from --share and --split-evenly.
func buildShares(amount, monthly decimal.Decimal, plan models.PaymentPlan) ([]models.Share, error) {
	if len(shareSpecs) > 0 && len(splitBorrowers) > 0 {
		return nil, &ledgererror.ValidationError{Field: "shares", Reason: "use either --share or --split-evenly, not both"}
	}

	if len(splitBorrowers) > 0 {
		required := amount
		if months := models.PaymentPlanMonths[plan]; months > 1 && !monthly.IsZero() {
			required = monthly
		}
		amounts := allocator.SplitEvenly(required, len(splitBorrowers))
		shares := make([]models.Share, len(splitBorrowers))
		for i, name := range splitBorrowers {
			shares[i] = models.Share{Borrower: name, AmountPerCycle: amounts[i]}
		}
		return shares, nil
	}

	shares := make([]models.Share, 0, len(shareSpecs))
	for _, spec := range shareSpecs {
		name, value, found := strings.Cut(spec, "=")
		if !found || name == "" {
			return nil, &ledgererror.ValidationError{Field: "shares", Reason: "share must be Name=Amount, got " + spec}
		}
		shareAmount, err := decimal.NewFromString(value)
		if err != nil {
			return nil, &ledgererror.ValidationError{Field: "shares", Reason: "share amount must be a number in " + spec}
		}
		shares = append(shares, models.Share{Borrower: name, AmountPerCycle: shareAmount})
	}
	return shares, nil
}

func describeOwner(tx models.Transaction) string {
	if !tx.IsShared() {
		return tx.Borrower
	}
	names := make([]string, len(tx.Shares))
	for i, share := range tx.Shares {
		names[i] = share.Borrower
	}
	return "shared by " + strings.Join(names, ", ")
}
